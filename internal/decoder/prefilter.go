package decoder

import "sol-ix-decoder/internal/types"

// Prefilter 是便宜的声明式预过滤条件：指令的 program id 落在 TransactionAccounts
// 中才值得调用 Decode。无副作用，构建后不可变。
type Prefilter struct {
	TransactionAccounts []types.Pubkey
}

// Matches 判断 program id 是否命中预过滤条件。
func (p Prefilter) Matches(program types.Pubkey) bool {
	for _, account := range p.TransactionAccounts {
		if account == program {
			return true
		}
	}
	return false
}

// PrefilterBuilder 以 builder 方式构建 Prefilter。
type PrefilterBuilder struct {
	transactionAccounts []types.Pubkey
}

func NewPrefilter() *PrefilterBuilder {
	return &PrefilterBuilder{}
}

func (b *PrefilterBuilder) TransactionAccounts(accounts ...types.Pubkey) *PrefilterBuilder {
	b.transactionAccounts = append(b.transactionAccounts, accounts...)
	return b
}

func (b *PrefilterBuilder) Build() Prefilter {
	return Prefilter{TransactionAccounts: b.transactionAccounts}
}
