package decoder

import (
	"errors"
	"fmt"
)

// ErrFiltered 表示指令不属于该解码器（program id 不匹配），属预期情况，不打日志。
var ErrFiltered = errors.New("instruction filtered")

// AccountsTooFewError 表示指令账户数低于已匹配 variant 声明的最小值。
type AccountsTooFewError struct {
	Needed int
	Actual int
}

func (e *AccountsTooFewError) Error() string {
	return fmt.Sprintf("too few accounts: need %d, got %d", e.Needed, e.Actual)
}

// UnknownVariantError 表示 discriminant 前缀不在该程序已知 variant 表中。
type UnknownVariantError struct {
	Discriminant uint32
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown instruction variant: discriminant=%d", e.Discriminant)
}

// UnknownArityError 表示 variant 已识别，但账户数不落在任何已知 wire 布局上。
// 即使超过宽松下限，未被精确分支覆盖的账户数也按此失败，绝不回退到默认布局。
type UnknownArityError struct {
	Variant  string
	Accounts int
}

func (e *UnknownArityError) Error() string {
	return fmt.Sprintf("unknown account arity for %s: %d accounts", e.Variant, e.Accounts)
}

// MalformedPayloadError 表示 data 字节与 variant 的二进制布局不符。
type MalformedPayloadError struct {
	Reason string
	Err    error
}

func (e *MalformedPayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed payload: %s", e.Reason)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// TooManyInstructionsError 是交易级失败：展平后的指令数超过配置上限，整笔交易中止。
type TooManyInstructionsError struct {
	Count int
	Limit int
}

func (e *TooManyInstructionsError) Error() string {
	return fmt.Sprintf("too many instructions: %d > %d", e.Count, e.Limit)
}

// DecodeError 是交易级失败：外层 encoding 无法识别或还原，不产生任何部分结果。
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transaction decode error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("transaction decode error: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func NewMalformedPayload(reason string, err error) *MalformedPayloadError {
	return &MalformedPayloadError{Reason: reason, Err: err}
}

// NewShortPayload 构造字节长度不符的 MalformedPayloadError。
func NewShortPayload(field string, want, got int) *MalformedPayloadError {
	return &MalformedPayloadError{
		Reason: fmt.Sprintf("%s: want %d bytes, got %d", field, want, got),
	}
}

// CheckMinAccounts 校验账户数下限，必须在任何角色绑定之前调用。
func CheckMinAccounts(actual, needed int) error {
	if actual < needed {
		return &AccountsTooFewError{Needed: needed, Actual: actual}
	}
	return nil
}
