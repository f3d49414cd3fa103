// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package validator 向 gin 的绑定校验器注册自定义规则。
//
// 导入本包后，binding 标签中可以使用 username、password、staffrole、division，
// 并对 SignUpRequest 做 division/district 的一致性校验。
package validator

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 64
)

var usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9]([-A-Za-z0-9_.]{0,61}[A-Za-z0-9])?$`)

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRegexp.MatchString(fl.Field().String())
}

// IsValidPassword 8 到 64 位，至少包含大写字母、小写字母、数字和符号各一个
func IsValidPassword(password string) bool {
	if len(password) < passwordMinLength || len(password) > passwordMaxLength {
		return false
	}

	var upper, lower, number, symbol bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			upper = true
		case unicode.IsLower(ch):
			lower = true
		case unicode.IsDigit(ch):
			number = true
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			symbol = true
		}
	}
	return upper && lower && number && symbol
}

func validatePassword(fl validator.FieldLevel) bool {
	return IsValidPassword(fl.Field().String())
}

func validateStaffRole(fl validator.FieldLevel) bool {
	return v1.StaffRole(fl.Field().String()).Valid()
}

func validateDivision(fl validator.FieldLevel) bool {
	_, ok := v1.LookupDivision(fl.Field().String())
	return ok
}

// signUpStructLevel 县必须属于所选行政区
func signUpStructLevel(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(v1.SignUpRequest)
	if !ok {
		return
	}
	if _, known := v1.LookupDivision(req.Division); !known || req.District == "" {
		return
	}
	if !v1.IsDistrictOf(req.Division, req.District) {
		sl.ReportError(req.District, "district", "District", "districtof", req.Division)
	}
}

// Register 注册到指定的校验器，返回第一个注册错误
func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"username":  validateUsername,
		"password":  validatePassword,
		"staffrole": validateStaffRole,
		"division":  validateDivision,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	v.RegisterStructValidation(signUpStructLevel, v1.SignUpRequest{})
	v.RegisterTagNameFunc(jsonFieldName)
	return nil
}

// jsonFieldName 错误中的字段名使用 json 名称
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = Register(v)
		if t, err := NewTranslator(v); err == nil {
			defaultTrans = t
		}
	}
}
