// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

// StaffRole 接种中心员工角色
type StaffRole string

const (
	RoleCenterAdmin    StaffRole = "CENTER_ADMIN"
	RoleMedicalOfficer StaffRole = "MEDICAL_OFFICER"
	RoleNurse          StaffRole = "NURSE"
	RoleVaccinator     StaffRole = "VACCINATOR"
	RoleRegistrar      StaffRole = "REGISTRAR"
	RoleVolunteer      StaffRole = "VOLUNTEER"
)

var staffRoles = []StaffRole{
	RoleCenterAdmin,
	RoleMedicalOfficer,
	RoleNurse,
	RoleVaccinator,
	RoleRegistrar,
	RoleVolunteer,
}

var roleDisplayNames = map[StaffRole]string{
	RoleCenterAdmin:    "Center Admin",
	RoleMedicalOfficer: "Medical Officer",
	RoleNurse:          "Nurse",
	RoleVaccinator:     "Vaccinator",
	RoleRegistrar:      "Registrar",
	RoleVolunteer:      "Volunteer",
}

// StaffRoles 按固定顺序返回全部角色
func StaffRoles() []StaffRole {
	roles := make([]StaffRole, len(staffRoles))
	copy(roles, staffRoles)
	return roles
}

func (r StaffRole) Valid() bool {
	_, ok := roleDisplayNames[r]
	return ok
}

func (r StaffRole) String() string {
	return string(r)
}

// DisplayName 未知角色返回原值
func (r StaffRole) DisplayName() string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return string(r)
}

// CanManageCenter 只有中心管理员可以修改中心信息
func (r StaffRole) CanManageCenter() bool {
	return r == RoleCenterAdmin
}

// RoleOption 角色下拉选项
type RoleOption struct {
	Value         string `json:"value"`
	Label         string `json:"label"`
	ManagesCenter bool   `json:"managesCenter"`
}
