package txnorm

import (
	"bytes"
	"encoding/json"
)

// Optional 是三态可选值：字段显式出现（Some）、显式为 null（Null）、
// 根本未序列化（Skip）。规范化时两种缺席态统一折叠为空值，折叠点只有一个，
// 但 Null 与 Skip 的区分在折叠前保持可见（meta 的 *None 标志依赖它）。
type Optional[T any] struct {
	state optState
	value T
}

type optState uint8

const (
	optSkip optState = iota
	optNull
	optSome
)

var jsonNull = []byte("null")

func Some[T any](v T) Optional[T] {
	return Optional[T]{state: optSome, value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{state: optNull}
}

// UnmarshalJSON 只在字段出现时被调用，零值即 Skip。
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, jsonNull) {
		o.state = optNull
		return nil
	}
	if err := json.Unmarshal(b, &o.value); err != nil {
		return err
	}
	o.state = optSome
	return nil
}

func (o Optional[T]) IsSome() bool {
	return o.state == optSome
}

// IsNull 仅在字段显式为 null 时为真，未序列化（Skip）不算。
func (o Optional[T]) IsNull() bool {
	return o.state == optNull
}

func (o Optional[T]) Value() (T, bool) {
	return o.value, o.state == optSome
}

// OrZero 把 Null 与 Skip 统一折叠为零值。
func (o Optional[T]) OrZero() T {
	if o.state == optSome {
		return o.value
	}
	var zero T
	return zero
}
