// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/auth"
)

// Account 接种中心员工账号，同时作为 API 返回结构和 gorm 模型。
// LoginedAt 在首次登录前为 nil
type Account struct {
	ID        uint64     `json:"id"                 gorm:"primaryKey;autoIncrement"`
	Name      string     `json:"name"               gorm:"column:name;size:64;not null"`
	Email     string     `json:"email"              gorm:"column:email;size:128;uniqueIndex;not null"`
	Password  string     `json:"password,omitempty" gorm:"column:password;size:255;not null"`
	Role      StaffRole  `json:"role"               gorm:"column:role;size:32;not null"`
	Division  string     `json:"division"           gorm:"column:division;size:32"`
	District  string     `json:"district"           gorm:"column:district;size:32"`
	LoginedAt *time.Time `json:"loginedAt,omitempty" gorm:"column:logined_at"`
	CreatedAt time.Time  `json:"createdAt"          gorm:"column:created_at"`
	UpdatedAt time.Time  `json:"updatedAt"          gorm:"column:updated_at"`
}

// TableName 映射到 account 表
func (a *Account) TableName() string {
	return "account"
}

// Compare 校验明文密码
func (a *Account) Compare(pwd string) error {
	if err := auth.Compare(a.Password, pwd); err != nil {
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}

// BeforeCreate 入库前统一补全角色
func (a *Account) BeforeCreate(_ *gorm.DB) error {
	if a.Role == "" {
		a.Role = RoleVolunteer
	}
	return nil
}

// Public 去掉密码后的账号信息
func (a *Account) Public() *Account {
	copied := *a
	copied.Password = ""
	return &copied
}

// SignUpRequest 注册请求体
type SignUpRequest struct {
	Name     string    `json:"name"     binding:"required,min=2,max=64"`
	Email    string    `json:"email"    binding:"required,email,max=128"`
	Password string    `json:"password" binding:"required,password"`
	Role     StaffRole `json:"role"     binding:"required,staffrole"`
	Division string    `json:"division" binding:"required,division"`
	District string    `json:"district" binding:"required"`
}

// Account 转换为待入库的账号，密码需由调用方另行加密
func (r *SignUpRequest) Account() *Account {
	return &Account{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		Division: r.Division,
		District: r.District,
	}
}

// SignInRequest 登录请求体，也可以用 Basic 认证头代替
type SignInRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
