// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package code

// 通用：基础错误
const (
	// ErrSuccess - 200: OK.
	ErrSuccess int = iota + 100001

	// ErrUnknown - 500: Internal server error.
	ErrUnknown

	// ErrBind - 400: Error occurred while binding the request body to the struct.
	ErrBind

	// ErrValidation - 400: Validation failed.
	ErrValidation

	// ErrPageNotFound - 404: Page not found.
	ErrPageNotFound

	// ErrMethodNotAllowed - 405: Method not allowed.
	ErrMethodNotAllowed

	// ErrRequestTimeout - 408: Request canceled or timed out.
	ErrRequestTimeout

	// ErrTooManyRequests - 429: Too many requests.
	ErrTooManyRequests
)

// 通用：数据库
const (
	// ErrDatabase - 500: Database error.
	ErrDatabase int = iota + 100101

	// ErrDatabaseTimeout - 500: Database timeout.
	ErrDatabaseTimeout
)

// 通用：认证授权
const (
	// ErrEncrypt - 500: Error occurred while encrypting the password.
	ErrEncrypt int = iota + 100201

	// ErrSignatureInvalid - 401: Signature is invalid.
	ErrSignatureInvalid

	// ErrExpired - 401: Token expired.
	ErrExpired

	// ErrInvalidAuthHeader - 401: Invalid authorization header.
	ErrInvalidAuthHeader

	// ErrMissingHeader - 401: The Authorization header was empty.
	ErrMissingHeader

	// ErrPasswordIncorrect - 401: Password was incorrect.
	ErrPasswordIncorrect

	// ErrPermissionDenied - 403: Permission denied.
	ErrPermissionDenied

	// ErrTokenInvalid - 401: Token invalid.
	ErrTokenInvalid

	// ErrTokenRevoked - 401: Token has been revoked.
	ErrTokenRevoked
)

// 通用：编解码
const (
	// ErrEncodingFailed - 500: Encoding failed due to an error with the data.
	ErrEncodingFailed int = iota + 100301

	// ErrDecodingFailed - 500: Decoding failed due to an error with the data.
	ErrDecodingFailed

	// ErrInvalidJSON - 400: Data is not valid JSON.
	ErrInvalidJSON
)
