// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package code

func init() {
	register(ErrSuccess, 200, "OK")
	register(ErrUnknown, 500, "Internal server error")
	register(ErrBind, 400, "Error occurred while binding the request body to the struct")
	register(ErrValidation, 400, "Validation failed")
	register(ErrPageNotFound, 404, "Page not found")
	register(ErrMethodNotAllowed, 405, "Method not allowed")
	register(ErrRequestTimeout, 408, "Request canceled or timed out")
	register(ErrTooManyRequests, 429, "Too many requests, please try again later")

	register(ErrDatabase, 500, "Database error")
	register(ErrDatabaseTimeout, 500, "Database timeout")

	register(ErrEncrypt, 500, "Error occurred while encrypting the password")
	register(ErrSignatureInvalid, 401, "Signature is invalid")
	register(ErrExpired, 401, "Token expired")
	register(ErrInvalidAuthHeader, 401, "Invalid authorization header")
	register(ErrMissingHeader, 401, "The Authorization header was empty")
	register(ErrPasswordIncorrect, 401, "Password was incorrect")
	register(ErrPermissionDenied, 403, "Permission denied")
	register(ErrTokenInvalid, 401, "Token invalid")
	register(ErrTokenRevoked, 401, "Token has been revoked, please sign in again")

	register(ErrEncodingFailed, 500, "Encoding failed due to an error with the data")
	register(ErrDecodingFailed, 500, "Decoding failed due to an error with the data")
	register(ErrInvalidJSON, 400, "Data is not valid JSON")

	register(ErrAccountNotFound, 404, "Account not found")
	register(ErrAccountAlreadyExist, 409, "Account already exists")
	register(ErrUnauthorized, 401, "Invalid email or password")

	register(ErrDivisionNotFound, 404, "Division not found")
	register(ErrDistrictMismatch, 400, "District does not belong to the division")
}
