// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package auth 密码哈希与校验。
package auth

import "golang.org/x/crypto/bcrypt"

// Encrypt 使用默认代价计算 bcrypt 哈希
func Encrypt(source string) (string, error) {
	return EncryptWithCost(source, 0)
}

// EncryptWithCost cost 超出范围时取边界值，<=0 使用默认代价
func EncryptWithCost(source string, cost int) (string, error) {
	switch {
	case cost <= 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(source), cost)
	return string(hashedBytes), err
}

// Compare 比较哈希与明文，不匹配时返回 bcrypt.ErrMismatchedHashAndPassword
func Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
