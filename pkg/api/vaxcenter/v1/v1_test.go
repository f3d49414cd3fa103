// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/auth"
)

func TestStaffRole(t *testing.T) {
	roles := StaffRoles()
	require.Len(t, roles, 6)
	assert.Equal(t, RoleCenterAdmin, roles[0])

	roles[0] = "MUTATED"
	assert.Equal(t, RoleCenterAdmin, StaffRoles()[0])

	tests := []struct {
		name    string
		role    StaffRole
		valid   bool
		display string
	}{
		{"中心管理员", RoleCenterAdmin, true, "Center Admin"},
		{"医务官", RoleMedicalOfficer, true, "Medical Officer"},
		{"志愿者", RoleVolunteer, true, "Volunteer"},
		{"小写不合法", "nurse", false, "nurse"},
		{"空值", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.role.Valid())
			assert.Equal(t, tt.display, tt.role.DisplayName())
		})
	}
	assert.True(t, RoleCenterAdmin.CanManageCenter())
	assert.False(t, RoleNurse.CanManageCenter())
}

func TestCenterStatus(t *testing.T) {
	assert.Len(t, CenterStatuses(), 4)
	assert.True(t, CenterTemporarilyClosed.Valid())
	assert.False(t, CenterStatus("CLOSED").Valid())

	assert.True(t, CenterActive.AcceptsAppointments())
	assert.False(t, CenterUnderMaintenance.AcceptsAppointments())
	assert.False(t, CenterInactive.AcceptsAppointments())
}

func TestDivisions(t *testing.T) {
	all := Divisions()
	require.Len(t, all, 8)

	total := 0
	for _, d := range all {
		total += len(d.Districts)
	}
	assert.Equal(t, 64, total)
	assert.Equal(t, []string{"Barishal", "Chattogram", "Dhaka", "Khulna", "Mymensingh", "Rajshahi", "Rangpur", "Sylhet"}, DivisionNames())

	d, ok := LookupDivision("  sylhet ")
	require.True(t, ok)
	assert.Equal(t, "Sylhet", d.Name)
	assert.Equal(t, []string{"Habiganj", "Moulvibazar", "Sunamganj", "Sylhet"}, d.Districts)

	_, ok = LookupDivision("Kolkata")
	assert.False(t, ok)
	assert.Nil(t, DistrictsOf("Kolkata"))

	DistrictsOf("Dhaka")[0] = "MUTATED"
	assert.Equal(t, "Dhaka", DistrictsOf("Dhaka")[0])

	assert.True(t, IsDistrictOf("Dhaka", "gazipur"))
	assert.True(t, IsDistrictOf("Chattogram", "Cox's Bazar"))
	assert.False(t, IsDistrictOf("Dhaka", "Sylhet"))
	assert.False(t, IsDistrictOf("Nowhere", "Dhaka"))
}

func TestAccount(t *testing.T) {
	req := &SignUpRequest{
		Name:     "Rahim",
		Email:    "rahim@example.com",
		Password: "Vaccine@2025",
		Role:     RoleNurse,
		Division: "Dhaka",
		District: "Gazipur",
	}
	acc := req.Account()
	assert.Equal(t, "account", acc.TableName())
	assert.Equal(t, RoleNurse, acc.Role)

	hashed, err := auth.EncryptWithCost(acc.Password, 4)
	require.NoError(t, err)
	acc.Password = hashed

	assert.NoError(t, acc.Compare("Vaccine@2025"))
	assert.Error(t, acc.Compare("wrong"))
	assert.Empty(t, acc.Public().Password)
	assert.NotEmpty(t, acc.Password)

	empty := &Account{}
	require.NoError(t, empty.BeforeCreate(nil))
	assert.Equal(t, RoleVolunteer, empty.Role)
}
