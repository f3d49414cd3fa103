// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package validator

import (
	"strings"

	english "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en "github.com/go-playground/validator/v10/translations/en"

	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
)

// defaultTrans 绑定到 gin 校验器的英文翻译器
var defaultTrans ut.Translator

var translations = []struct {
	tag         string
	translation string
}{
	{tag: "username", translation: "{0} may only contain letters, digits, '-', '_' and '.'"},
	{tag: "password", translation: "{0} must be 8-64 characters with upper and lower case letters, a digit and a symbol"},
	{tag: "staffrole", translation: "{0} is not a valid staff role"},
	{tag: "division", translation: "{0} must be one of: " + strings.Join(v1.DivisionNames(), ", ")},
	{tag: "districtof", translation: "{0} does not belong to the selected division"},
}

// NewTranslator 为 v 注册默认英文翻译和自定义规则的翻译
func NewTranslator(v *validator.Validate) (ut.Translator, error) {
	eng := english.New()
	uni := ut.New(eng, eng)
	trans, _ := uni.GetTranslator("en")

	if err := en.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}
	for _, t := range translations {
		if err := v.RegisterTranslation(t.tag, trans, registrationFunc(t.tag, t.translation), translateFunc); err != nil {
			return nil, err
		}
	}

	return trans, nil
}

func registrationFunc(tag string, translation string) validator.RegisterTranslationsFunc {
	return func(ut ut.Translator) error {
		return ut.Add(tag, translation, true)
	}
}

func translateFunc(ut ut.Translator, fe validator.FieldError) string {
	t, err := ut.T(fe.Tag(), fe.Field())
	if err != nil {
		return fe.Error()
	}
	return t
}

// Translate 把校验错误转换成一句给用户看的话，其它错误原样返回
func Translate(err error) string {
	return TranslateWith(defaultTrans, err)
}

// TranslateWith 使用指定的翻译器，trans 为 nil 时返回原始错误
func TranslateWith(trans ut.Translator, err error) string {
	if err == nil {
		return ""
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || trans == nil {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(trans))
	}

	return strings.Join(msgs, "; ")
}
