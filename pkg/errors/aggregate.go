// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package errors

import (
	stderrors "errors"
	"strings"
)

// Aggregate 表示一组错误，常用于配置校验一次性返回所有问题
type Aggregate interface {
	error
	Errors() []error
	Is(error) bool
}

// NewAggregate 过滤掉 nil 后聚合，为空时返回 nil
func NewAggregate(errlist []error) Aggregate {
	var errs []error
	for _, e := range errlist {
		if e != nil {
			errs = append(errs, e)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return aggregate(errs)
}

type aggregate []error

// Error 去重后合并消息，多条时用 [] 包裹
func (agg aggregate) Error() string {
	if len(agg) == 0 {
		return ""
	}
	if len(agg) == 1 {
		return agg[0].Error()
	}
	seen := map[string]struct{}{}
	var msgs []string
	agg.visit(func(err error) bool {
		msg := err.Error()
		if _, ok := seen[msg]; ok {
			return false
		}
		seen[msg] = struct{}{}
		msgs = append(msgs, msg)
		return false
	})
	if len(msgs) == 1 {
		return msgs[0]
	}
	return "[" + strings.Join(msgs, ", ") + "]"
}

func (agg aggregate) Is(target error) bool {
	return agg.visit(func(err error) bool {
		return stderrors.Is(err, target)
	})
}

func (agg aggregate) visit(f func(err error) bool) bool {
	for _, err := range agg {
		switch err := err.(type) {
		case aggregate:
			if err.visit(f) {
				return true
			}
		case Aggregate:
			for _, nested := range err.Errors() {
				if f(nested) {
					return true
				}
			}
		default:
			if f(err) {
				return true
			}
		}
	}
	return false
}

func (agg aggregate) Errors() []error { return []error(agg) }

// Flatten 展平嵌套的 Aggregate
func Flatten(agg Aggregate) Aggregate {
	var result []error
	if agg == nil {
		return nil
	}
	for _, err := range agg.Errors() {
		if a, ok := err.(Aggregate); ok {
			if r := Flatten(a); r != nil {
				result = append(result, r.Errors()...)
			}
		} else if err != nil {
			result = append(result, err)
		}
	}
	return NewAggregate(result)
}

// Reduce 单元素聚合返回该元素本身
func Reduce(err error) error {
	if agg, ok := err.(Aggregate); ok && err != nil {
		switch len(agg.Errors()) {
		case 1:
			return agg.Errors()[0]
		case 0:
			return nil
		}
	}
	return err
}
