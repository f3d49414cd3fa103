// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// Frame 调用栈中的单个栈帧，保存的是 PC+1
type Frame uintptr

func (f Frame) pc() uintptr { return uintptr(f) - 1 }

func (f Frame) file() string {
	fn := runtime.FuncForPC(f.pc())
	if fn == nil {
		return "unknown"
	}
	file, _ := fn.FileLine(f.pc())
	return file
}

func (f Frame) line() int {
	fn := runtime.FuncForPC(f.pc())
	if fn == nil {
		return 0
	}
	_, line := fn.FileLine(f.pc())
	return line
}

func (f Frame) name() string {
	fn := runtime.FuncForPC(f.pc())
	if fn == nil {
		return "unknown"
	}
	return fn.Name()
}

// Format 支持的格式动词：
//
//	%s    函数名（不含包路径）
//	%+s   完整函数名 + 换行 + 文件路径
//	%d    行号
//	%n    简化函数名
//	%v    函数名:行号
//	%+v   完整函数名 + 文件路径:行号
func (f Frame) Format(s fmt.State, verb rune) {
	switch verb {
	case 's':
		if s.Flag('+') {
			io.WriteString(s, f.name())
			io.WriteString(s, "\n\t")
			io.WriteString(s, f.file())
		} else {
			io.WriteString(s, path.Base(f.file()))
		}
	case 'd':
		io.WriteString(s, strconv.Itoa(f.line()))
	case 'n':
		io.WriteString(s, funcname(f.name()))
	case 'v':
		f.Format(s, 's')
		io.WriteString(s, ":")
		f.Format(s, 'd')
	}
}

// MarshalText 输出 "函数名 文件:行号"
func (f Frame) MarshalText() ([]byte, error) {
	name := f.name()
	if name == "unknown" {
		return []byte(name), nil
	}
	return []byte(fmt.Sprintf("%s %s:%d", name, f.file(), f.line())), nil
}

// StackTrace 从最内层到最外层的栈帧序列
type StackTrace []Frame

func (st StackTrace) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		switch {
		case s.Flag('+'):
			for _, f := range st {
				io.WriteString(s, "\n")
				f.Format(s, verb)
			}
		case s.Flag('#'):
			fmt.Fprintf(s, "%#v", []Frame(st))
		default:
			st.formatSlice(s, verb)
		}
	case 's':
		st.formatSlice(s, verb)
	}
}

func (st StackTrace) formatSlice(s fmt.State, verb rune) {
	io.WriteString(s, "[")
	for i, f := range st {
		if i > 0 {
			io.WriteString(s, " ")
		}
		f.Format(s, verb)
	}
	io.WriteString(s, "]")
}

// stack 原始 PC 列表
type stack []uintptr

func (s *stack) Format(st fmt.State, verb rune) {
	if verb == 'v' && st.Flag('+') {
		for _, pc := range *s {
			f := Frame(pc)
			fmt.Fprintf(st, "\n%+v", f)
		}
	}
}

// StackTrace 转换为 Frame 序列
func (s *stack) StackTrace() StackTrace {
	frames := make([]Frame, len(*s))
	for i, pc := range *s {
		frames[i] = Frame(pc)
	}
	return frames
}

// ToSlice 将堆栈转换为 "[函数()]文件:行号" 形式的字符串数组，空堆栈返回 nil
func (s *stack) ToSlice() []string {
	if s == nil || len(*s) == 0 {
		return nil
	}
	var out []string
	frames := runtime.CallersFrames(*s)
	for {
		frame, more := frames.Next()
		out = append(out, fmt.Sprintf("[%s()]%s:%d", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return out
}

// callers 最多捕获 32 层，跳过 runtime.Callers、callers 及构造函数自身
func callers() *stack {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	st := stack(pcs[:n])
	return &st
}

// funcname 去掉包路径，"github.com/x/pkg.Foo" → "Foo"
func funcname(name string) string {
	if i := strings.LastIndex(name, "/"); i != -1 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i > 0 {
		name = name[i+1:]
	}
	return name
}
