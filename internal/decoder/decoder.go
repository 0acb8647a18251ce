package decoder

import (
	"sol-ix-decoder/internal/instruction"
	"sol-ix-decoder/internal/types"
)

// DecodedIx 是所有程序指令联合体变体的公共接口。
// 每个 variant 结构体实现 IxName()，返回稳定的 variant 名，供日志与诊断使用。
type DecodedIx interface {
	IxName() string
}

// Decoder 是每个程序解码器实现的统一契约。
//
// Decode 是纯函数：program id 不匹配时返回 ErrFiltered（不读 data）；
// 其余失败遵循封闭的错误分类（见 errors.go），调用方将所有失败等同于"未认领"。
type Decoder interface {
	// ID 返回解码器的稳定名称，用于结果归属与日志。
	ID() string

	// ProgramID 返回该解码器独占认领的程序地址。
	ProgramID() types.Pubkey

	// Prefilter 返回声明式预过滤条件，供调用方在解析字节前跳过无关指令。
	Prefilter() Prefilter

	// Decode 将一条指令的账户列表与 data 字节解析为该程序的某个 tagged variant。
	Decode(ix *instruction.Instruction) (DecodedIx, error)
}

// DecodeResult 是一条指令被某个解码器成功认领后的产物，构造后不可变。
type DecodeResult struct {
	Ix        DecodedIx    // 解码出的 tagged variant
	ProgramID types.Pubkey // 指令的程序 ID
	Decoder   string       // 认领该指令的解码器 ID
}
