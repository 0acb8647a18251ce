package runtime

import (
	"sol-ix-decoder/internal/config"
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/decoder/computebudget"
	"sol-ix-decoder/internal/decoder/memo"
	"sol-ix-decoder/internal/decoder/system"
	"sol-ix-decoder/internal/decoder/token"
	"sol-ix-decoder/internal/decoder/token2022"
)

// DefaultMaxInstructions 是单笔交易展平后指令数的默认上限。
const DefaultMaxInstructions = 1000

// Builder 按注册顺序组装解码器列表，Build 之后 Runtime 不可变。
// 注册顺序即分派顺序：同一条指令被多个解码器接受时，先注册者胜出。
type Builder struct {
	decoders        []decoder.Decoder
	maxInstructions int
}

func NewBuilder() *Builder {
	return &Builder{maxInstructions: DefaultMaxInstructions}
}

// MaxInstructions 覆盖指令数上限，非正值回落到默认值。
func (b *Builder) MaxInstructions(n int) *Builder {
	if n > 0 {
		b.maxInstructions = n
	}
	return b
}

// Register 追加一个解码器（内置或外部），顺序即分派优先级。
func (b *Builder) Register(d decoder.Decoder) *Builder {
	b.decoders = append(b.decoders, d)
	return b
}

func (b *Builder) WithSystemProgram() *Builder {
	return b.Register(system.NewDecoder())
}

func (b *Builder) WithTokenProgram() *Builder {
	return b.Register(token.NewDecoder())
}

func (b *Builder) WithToken2022Program() *Builder {
	return b.Register(token2022.NewDecoder())
}

func (b *Builder) WithComputeBudgetProgram() *Builder {
	return b.Register(computebudget.NewDecoder())
}

// WithMemoProgram 同时注册 v2 与 legacy 两个 memo program id。
func (b *Builder) WithMemoProgram() *Builder {
	return b.Register(memo.NewDecoder()).Register(memo.NewLegacyDecoder())
}

func (b *Builder) Build() *Runtime {
	decoders := make([]decoder.Decoder, len(b.decoders))
	copy(decoders, b.decoders)
	return &Runtime{
		decoders:        decoders,
		maxInstructions: b.maxInstructions,
	}
}

// FromConfig 按配置开关以固定顺序注册内置解码器。
func FromConfig(cfg config.RuntimeConfig) *Runtime {
	b := NewBuilder().MaxInstructions(cfg.MaxInstructions)
	if cfg.SystemProgram {
		b.WithSystemProgram()
	}
	if cfg.TokenProgram {
		b.WithTokenProgram()
	}
	if cfg.Token2022Program {
		b.WithToken2022Program()
	}
	if cfg.ComputeBudgetProgram {
		b.WithComputeBudgetProgram()
	}
	if cfg.MemoProgram {
		b.WithMemoProgram()
	}
	return b.Build()
}

// MinimalRuntime 返回启用全部内置解码器的运行时，测试与工具场景使用。
func MinimalRuntime() *Runtime {
	return NewBuilder().
		WithSystemProgram().
		WithTokenProgram().
		WithToken2022Program().
		WithComputeBudgetProgram().
		WithMemoProgram().
		Build()
}
