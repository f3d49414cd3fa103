// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

// CenterStatus 接种中心运营状态
type CenterStatus string

const (
	CenterActive            CenterStatus = "ACTIVE"
	CenterInactive          CenterStatus = "INACTIVE"
	CenterTemporarilyClosed CenterStatus = "TEMPORARILY_CLOSED"
	CenterUnderMaintenance  CenterStatus = "UNDER_MAINTENANCE"
)

var centerStatuses = []CenterStatus{
	CenterActive,
	CenterInactive,
	CenterTemporarilyClosed,
	CenterUnderMaintenance,
}

// CenterStatuses 按固定顺序返回全部状态
func CenterStatuses() []CenterStatus {
	statuses := make([]CenterStatus, len(centerStatuses))
	copy(statuses, centerStatuses)
	return statuses
}

func (s CenterStatus) Valid() bool {
	for _, status := range centerStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s CenterStatus) String() string {
	return string(s)
}

// AcceptsAppointments 只有 ACTIVE 状态的中心接受预约
func (s CenterStatus) AcceptsAppointments() bool {
	return s == CenterActive
}

// CenterStatusOption 接种中心状态及是否接受预约
type CenterStatusOption struct {
	Value               CenterStatus `json:"value"`
	AcceptsAppointments bool         `json:"acceptsAppointments"`
}
