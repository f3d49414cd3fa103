// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package errors

import stderrors "errors"

// Is 等同于标准库 errors.Is
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As 等同于标准库 errors.As
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Unwrap 等同于标准库 errors.Unwrap
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}
