package runtime

import (
	"encoding/binary"
	"errors"
	"testing"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-ix-decoder/internal/config"
	"sol-ix-decoder/internal/consts"
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/instruction"
	"sol-ix-decoder/internal/types"
)

func keyBytes(seed byte) []byte {
	b := make([]byte, 32)
	for i := range b {
		b[i] = seed
	}
	return b
}

func pkFromSeed(seed byte) types.Pubkey {
	var p types.Pubkey
	for i := range p {
		p[i] = seed
	}
	return p
}

func systemTransferData(lamports uint64) []byte {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[:4], 2)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	return data
}

func computeUnitLimitData(units uint32) []byte {
	data := make([]byte, 5)
	data[0] = 2
	binary.LittleEndian.PutUint32(data[1:], units)
	return data
}

// mkTx 构造一笔仅含主指令的测试交易，accountKeys 与 instructions 按位传入。
func mkTx(accountKeys [][]byte, instructions []*pb.CompiledInstruction) *pb.SubscribeUpdateTransactionInfo {
	return &pb.SubscribeUpdateTransactionInfo{
		Transaction: &pb.Transaction{
			Message: &pb.Message{
				AccountKeys:  accountKeys,
				Instructions: instructions,
			},
		},
		Meta: &pb.TransactionStatusMeta{},
	}
}

// stubDecoder 用于验证分派顺序与失败吞没，不解析任何字节。
type stubDecoder struct {
	id      string
	program types.Pubkey
	fail    bool
}

type stubIx struct{ name string }

func (s stubIx) IxName() string { return s.name }

func (s *stubDecoder) ID() string { return s.id }

func (s *stubDecoder) ProgramID() types.Pubkey { return s.program }

func (s *stubDecoder) Prefilter() decoder.Prefilter {
	return decoder.NewPrefilter().TransactionAccounts(s.program).Build()
}

func (s *stubDecoder) Decode(ix *instruction.Instruction) (decoder.DecodedIx, error) {
	if ix.Program != s.program {
		return nil, decoder.ErrFiltered
	}
	if s.fail {
		return nil, decoder.NewMalformedPayload("stub failure", nil)
	}
	return stubIx{name: s.id}, nil
}

func TestDecodeTransaction_ClaimedAndUnclaimed(t *testing.T) {
	r := MinimalRuntime()

	accountKeys := [][]byte{
		keyBytes(1), // from
		keyBytes(2), // to
		consts.SystemProgram[:],
		keyBytes(9), // 没有解码器认领的程序
		consts.ComputeBudgetProgram[:],
	}
	tx := mkTx(accountKeys, []*pb.CompiledInstruction{
		{ProgramIdIndex: 2, Accounts: []byte{0, 1}, Data: systemTransferData(500)},
		{ProgramIdIndex: 3, Accounts: []byte{0}, Data: []byte{1, 2, 3}},
		{ProgramIdIndex: 4, Accounts: nil, Data: computeUnitLimitData(1_400_000)},
	})

	results, err := r.DecodeTransaction(tx)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// 未认领的指令静默跳过，结果保持前序
	assert.Equal(t, "system_program", results[0].Decoder)
	assert.Equal(t, "Transfer", results[0].Ix.IxName())
	assert.Equal(t, consts.SystemProgram, results[0].ProgramID)
	assert.Equal(t, "compute_budget_program", results[1].Decoder)
	assert.Equal(t, "SetComputeUnitLimit", results[1].Ix.IxName())
}

func TestDecodeTransaction_InnerPreOrder(t *testing.T) {
	r := MinimalRuntime()
	h2 := uint32(2)

	accountKeys := [][]byte{
		keyBytes(1),
		keyBytes(2),
		consts.SystemProgram[:],
		consts.MemoProgram[:],
	}
	tx := mkTx(accountKeys, []*pb.CompiledInstruction{
		{ProgramIdIndex: 2, Accounts: []byte{0, 1}, Data: systemTransferData(1)},
		{ProgramIdIndex: 2, Accounts: []byte{1, 0}, Data: systemTransferData(2)},
	})
	tx.Meta.InnerInstructions = []*pb.InnerInstructions{
		{
			Index: 0,
			Instructions: []*pb.InnerInstruction{
				{ProgramIdIndex: 3, Accounts: []byte{0}, Data: []byte("inner memo"), StackHeight: &h2},
			},
		},
	}

	results, err := r.DecodeTransaction(tx)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// 第 1 条主指令的 inner 先于第 2 条主指令输出
	assert.Equal(t, "Transfer", results[0].Ix.IxName())
	assert.Equal(t, "WriteMemo", results[1].Ix.IxName())
	assert.Equal(t, "Transfer", results[2].Ix.IxName())
}

// 同一个程序被两个解码器认领时，先注册者胜出
func TestDecodeTransaction_FirstMatchWins(t *testing.T) {
	program := pkFromSeed(0xAA)
	a := &stubDecoder{id: "a", program: program}
	b := &stubDecoder{id: "b", program: program}

	tx := mkTx([][]byte{program[:]}, []*pb.CompiledInstruction{
		{ProgramIdIndex: 0, Data: []byte{1}},
	})

	results, err := NewBuilder().Register(a).Register(b).Build().DecodeTransaction(tx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Decoder)

	results, err = NewBuilder().Register(b).Register(a).Build().DecodeTransaction(tx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Decoder)
}

// 前面的解码器失败等同于未认领，指令继续交给后面的解码器
func TestDecodeTransaction_FailureFallsThrough(t *testing.T) {
	program := pkFromSeed(0xBB)
	failing := &stubDecoder{id: "failing", program: program, fail: true}
	working := &stubDecoder{id: "working", program: program}

	tx := mkTx([][]byte{program[:]}, []*pb.CompiledInstruction{
		{ProgramIdIndex: 0, Data: []byte{1}},
	})

	results, err := NewBuilder().Register(failing).Register(working).Build().DecodeTransaction(tx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "working", results[0].Decoder)

	// 全部失败时没有结果，也没有错误
	results, err = NewBuilder().Register(failing).Build().DecodeTransaction(tx)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDecodeTransaction_SizeGuard(t *testing.T) {
	program := pkFromSeed(0xCC)
	d := &stubDecoder{id: "d", program: program}
	r := NewBuilder().Register(d).MaxInstructions(3).Build()

	ixs := make([]*pb.CompiledInstruction, 0, 4)
	for i := 0; i < 4; i++ {
		ixs = append(ixs, &pb.CompiledInstruction{ProgramIdIndex: 0, Data: []byte{byte(i)}})
	}

	// 超限：整笔拒绝，零结果
	_, err := r.DecodeTransaction(mkTx([][]byte{program[:]}, ixs))
	var tooMany *decoder.TooManyInstructionsError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 4, tooMany.Count)
	assert.Equal(t, 3, tooMany.Limit)

	// 恰好等于上限：正常解码
	results, err := r.DecodeTransaction(mkTx([][]byte{program[:]}, ixs[:3]))
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestDecodeTransaction_MalformedTx(t *testing.T) {
	r := MinimalRuntime()

	_, err := r.DecodeTransaction(nil)
	var decodeErr *decoder.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestBuilder_MaxInstructionsNonPositive(t *testing.T) {
	assert.Equal(t, DefaultMaxInstructions, NewBuilder().MaxInstructions(0).Build().maxInstructions)
	assert.Equal(t, DefaultMaxInstructions, NewBuilder().MaxInstructions(-5).Build().maxInstructions)
	assert.Equal(t, 10, NewBuilder().MaxInstructions(10).Build().maxInstructions)
}

func TestRuntime_Decoders(t *testing.T) {
	m := MinimalRuntime().Decoders()

	assert.Equal(t, consts.SystemProgram, m["system_program"])
	assert.Equal(t, consts.TokenProgram, m["token_program"])
	assert.Equal(t, consts.TokenProgram2022, m["token_2022_program"])
	assert.Equal(t, consts.ComputeBudgetProgram, m["compute_budget_program"])
	assert.Equal(t, consts.MemoProgram, m["memo_program"])
	assert.Equal(t, consts.MemoLegacyProgram, m["memo_legacy_program"])
}

func TestFromConfig(t *testing.T) {
	r := FromConfig(config.RuntimeConfig{SystemProgram: true, MemoProgram: true})
	m := r.Decoders()

	// memo 开关一次注册 v2 + legacy 两个实例
	assert.Len(t, m, 3)
	assert.Contains(t, m, "system_program")
	assert.Contains(t, m, "memo_program")
	assert.Contains(t, m, "memo_legacy_program")
	assert.NotContains(t, m, "token_program")
	assert.Equal(t, DefaultMaxInstructions, r.maxInstructions)
}
