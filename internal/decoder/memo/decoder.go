package memo

import (
	"unicode/utf8"

	"sol-ix-decoder/internal/consts"
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/instruction"
	"sol-ix-decoder/internal/types"
)

// Ix 是 memo program 指令联合体，只有 WriteMemo 一个 variant。
type Ix interface {
	IxName() string
	isMemoIx()
}

// WriteMemoAccounts 的 Signers 是账户列表全量：memo 的所有账户都是签名者。
type WriteMemoAccounts struct {
	Signers []types.Pubkey
}

type WriteMemoData struct {
	Memo string
}

type WriteMemo struct {
	Accounts WriteMemoAccounts
	Data     WriteMemoData
}

func (WriteMemo) IxName() string { return "WriteMemo" }
func (WriteMemo) isMemoIx() {}

// Decoder 解码 memo program 指令。程序 ID 参数化：v2（MemoSq4）与
// legacy（Memo1Uhk）共用同一解析逻辑，各自实例化。
type Decoder struct {
	id      string
	program types.Pubkey
}

func NewDecoder() *Decoder {
	return &Decoder{id: "memo_program", program: consts.MemoProgram}
}

func NewLegacyDecoder() *Decoder {
	return &Decoder{id: "memo_legacy_program", program: consts.MemoLegacyProgram}
}

func (d *Decoder) ID() string {
	return d.id
}

func (d *Decoder) ProgramID() types.Pubkey {
	return d.program
}

func (d *Decoder) Prefilter() decoder.Prefilter {
	return decoder.NewPrefilter().
		TransactionAccounts(d.program).
		Build()
}

func (d *Decoder) Decode(ix *instruction.Instruction) (decoder.DecodedIx, error) {
	if ix.Program != d.program {
		return nil, decoder.ErrFiltered
	}
	if !utf8.Valid(ix.Data) {
		return nil, decoder.NewMalformedPayload("memo is not valid utf-8", nil)
	}
	return WriteMemo{
		Accounts: WriteMemoAccounts{Signers: ix.Accounts},
		Data:     WriteMemoData{Memo: string(ix.Data)},
	}, nil
}
