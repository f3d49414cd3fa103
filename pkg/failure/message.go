// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package failure

// Message 按优先级取出展示消息，结果总是非空
func Message(f Failure) string {
	switch x := f.(type) {
	case *TransportFailure:
		if x == nil {
			break
		}
		if msg := x.ServerError(); msg != "" {
			return msg
		}
		if x.Message != "" {
			return x.Message
		}
	case GenericFailure:
		if x.Message != "" {
			return x.Message
		}
	case UnrecognizedFailure:
	}
	return UnknownErrorMessage
}

// ExtractMessage 把任意失败值转换为可展示的消息
func ExtractMessage(v any) string {
	return Message(Classify(v))
}
