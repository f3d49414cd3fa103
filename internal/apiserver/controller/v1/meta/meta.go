// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package meta 只读的参考数据接口
package meta

import (
	"github.com/gin-gonic/gin"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/core"
	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
)

type MetaController struct{}

func NewMetaController() *MetaController {
	return &MetaController{}
}

func (m *MetaController) StaffRoles(c *gin.Context) {
	roles := v1.StaffRoles()
	options := make([]v1.RoleOption, 0, len(roles))
	for _, r := range roles {
		options = append(options, v1.RoleOption{
			Value:         r.String(),
			Label:         r.DisplayName(),
			ManagesCenter: r.CanManageCenter(),
		})
	}

	core.WriteResponse(c, nil, options)
}

func (m *MetaController) CenterStatuses(c *gin.Context) {
	statuses := v1.CenterStatuses()
	options := make([]v1.CenterStatusOption, 0, len(statuses))
	for _, s := range statuses {
		options = append(options, v1.CenterStatusOption{Value: s, AcceptsAppointments: s.AcceptsAppointments()})
	}

	core.WriteResponse(c, nil, options)
}

func (m *MetaController) Divisions(c *gin.Context) {
	core.WriteResponse(c, nil, v1.Divisions())
}

// Districts 行政区名称不区分大小写
func (m *MetaController) Districts(c *gin.Context) {
	name := c.Param("name")
	division, ok := v1.LookupDivision(name)
	if !ok {
		core.WriteResponse(c, errors.WithCode(code.ErrDivisionNotFound, "Division %s not found", name), nil)
		return
	}

	core.WriteResponse(c, nil, division.Districts)
}
