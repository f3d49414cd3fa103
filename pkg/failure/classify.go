// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package failure

import (
	"errors"
	"reflect"
)

// Classify 在失败被捕获的边界把任意值构造成 Failure。
// 识别顺序：TransportFailure（直接值或错误链中的 Transporter）→ error → 其它。
func Classify(v any) (f Failure) {
	defer func() {
		if r := recover(); r != nil {
			f = UnrecognizedFailure{Value: v}
		}
	}()

	switch x := v.(type) {
	case nil:
		return UnrecognizedFailure{}
	case *TransportFailure:
		if x == nil {
			return UnrecognizedFailure{Value: v}
		}
		return x
	case TransportFailure:
		return &x
	case GenericFailure:
		return x
	case UnrecognizedFailure:
		return x
	case error:
		return classifyError(x)
	default:
		return UnrecognizedFailure{Value: v}
	}
}

func classifyError(err error) Failure {
	if isNilPointer(err) {
		return UnrecognizedFailure{Value: err}
	}

	var tf *TransportFailure
	if errors.As(err, &tf) && tf != nil {
		return tf
	}
	var tr Transporter
	if errors.As(err, &tr) {
		if tf := tr.TransportFailure(); tf != nil {
			return tf
		}
	}

	return GenericFailure{Err: err, Message: safeMessage(err)}
}

// safeMessage Error() panic 时返回空串
func safeMessage(err error) (msg string) {
	defer func() {
		if recover() != nil {
			msg = ""
		}
	}()
	return err.Error()
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
