// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

/*
Package failure 把任意失败值归一为一条可以直接展示给用户的消息。

失败值在第一次被捕获的位置通过 Classify 构造成三种变体之一：

	TransportFailure     HTTP 客户端层产生的错误，可能携带服务端返回的 {"error": "..."} 载荷
	GenericFailure       实现了 error 接口的普通错误
	UnrecognizedFailure  其它任何值（nil、数字、字符串、普通 map/struct）

Message 按固定优先级取消息：

 1. TransportFailure：response.data.error 非空时返回它，否则返回自身的 Message
 2. GenericFailure：返回错误消息
 3. 其它：返回 "Unknown error"

ExtractMessage = Message(Classify(v))，对任何输入都返回非空字符串且不会 panic。
空字符串的 response.data.error 与缺失等价，继续回退到上一级消息。
*/
package failure
