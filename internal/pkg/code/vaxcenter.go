// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package code

// vaxcenter-apiserver：账号
const (
	// ErrAccountNotFound - 404: Account not found.
	ErrAccountNotFound int = iota + 110001

	// ErrAccountAlreadyExist - 409: Account already exists.
	ErrAccountAlreadyExist

	// ErrUnauthorized - 401: Invalid email or password.
	ErrUnauthorized
)

// vaxcenter-apiserver：接种中心与参考数据
const (
	// ErrDivisionNotFound - 404: Division not found.
	ErrDivisionNotFound int = iota + 110101

	// ErrDistrictMismatch - 400: District does not belong to the division.
	ErrDistrictMismatch
)
