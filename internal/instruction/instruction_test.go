package instruction

import (
	"testing"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func height(h uint32) *uint32 {
	return &h
}

func TestVisitAll_PreOrder(t *testing.T) {
	grandchild := &Instruction{Data: []byte("G"), StackHeight: 3}
	c1 := &Instruction{Data: []byte("C1"), StackHeight: 2, Inner: []*Instruction{grandchild}}
	c2 := &Instruction{Data: []byte("C2"), StackHeight: 2}
	root := &Instruction{Data: []byte("R"), StackHeight: 1, Inner: []*Instruction{c1, c2}}

	flat := root.VisitAll()
	require.Len(t, flat, 4)

	// C1 的子指令先于 C2 输出
	names := make([]string, 0, len(flat))
	for _, ix := range flat {
		names = append(names, string(ix.Data))
	}
	assert.Equal(t, []string{"R", "C1", "G", "C2"}, names)
}

func TestFlattenAll_MultipleRoots(t *testing.T) {
	r1 := &Instruction{Data: []byte("R1"), Inner: []*Instruction{{Data: []byte("I1")}}}
	r2 := &Instruction{Data: []byte("R2")}

	flat := FlattenAll([]*Instruction{r1, r2})
	require.Len(t, flat, 3)
	assert.Equal(t, []byte("I1"), flat[1].Data)
	assert.Equal(t, []byte("R2"), flat[2].Data)
}

func TestParseFromTx_ResolvesAccounts(t *testing.T) {
	// 账户全集 = accountKeys + lookup table writable + readonly，按此顺序编号
	tx := &pb.SubscribeUpdateTransactionInfo{
		Transaction: &pb.Transaction{
			Message: &pb.Message{
				AccountKeys: [][]byte{keyBytes(1), keyBytes(2)},
				Instructions: []*pb.CompiledInstruction{
					{ProgramIdIndex: 1, Accounts: []byte{0, 2, 3}, Data: []byte{7}},
				},
			},
		},
		Meta: &pb.TransactionStatusMeta{
			LoadedWritableAddresses: [][]byte{keyBytes(3)},
			LoadedReadonlyAddresses: [][]byte{keyBytes(4)},
		},
	}

	roots, err := ParseFromTx(tx)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	ix := roots[0]
	assert.Equal(t, pkFromSeed(2), ix.Program)
	assert.Equal(t, []types.Pubkey{pkFromSeed(1), pkFromSeed(3), pkFromSeed(4)}, ix.Accounts)
	assert.Equal(t, []byte{7}, ix.Data)
	assert.Equal(t, uint32(1), ix.StackHeight)
	assert.Empty(t, ix.Inner)
}

func TestParseFromTx_InnerTree(t *testing.T) {
	tx := &pb.SubscribeUpdateTransactionInfo{
		Transaction: &pb.Transaction{
			Message: &pb.Message{
				AccountKeys: [][]byte{keyBytes(1), keyBytes(2)},
				Instructions: []*pb.CompiledInstruction{
					{ProgramIdIndex: 0, Data: []byte("R")},
				},
			},
		},
		Meta: &pb.TransactionStatusMeta{
			InnerInstructions: []*pb.InnerInstructions{
				{
					Index: 0,
					Instructions: []*pb.InnerInstruction{
						{ProgramIdIndex: 1, Data: []byte("A"), StackHeight: height(2)},
						{ProgramIdIndex: 1, Data: []byte("A1"), StackHeight: height(3)},
						{ProgramIdIndex: 1, Data: []byte("A2"), StackHeight: height(3)},
						{ProgramIdIndex: 1, Data: []byte("B"), StackHeight: height(2)},
					},
				},
			},
		},
	}

	roots, err := ParseFromTx(tx)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	root := roots[0]
	require.Len(t, root.Inner, 2)
	a, b := root.Inner[0], root.Inner[1]
	assert.Equal(t, []byte("A"), a.Data)
	assert.Equal(t, []byte("B"), b.Data)
	require.Len(t, a.Inner, 2)
	assert.Equal(t, []byte("A1"), a.Inner[0].Data)
	assert.Equal(t, []byte("A2"), a.Inner[1].Data)
	assert.Empty(t, b.Inner)

	flat := FlattenAll(roots)
	require.Len(t, flat, 5)
	assert.Equal(t, []byte("A2"), flat[3].Data)
	assert.Equal(t, []byte("B"), flat[4].Data)
}

// 回到浅层之后再出现的深层 inner 必须挂到新路径，不能挂回旧分支
func TestParseFromTx_DeepParentInvalidation(t *testing.T) {
	tx := &pb.SubscribeUpdateTransactionInfo{
		Transaction: &pb.Transaction{
			Message: &pb.Message{
				AccountKeys: [][]byte{keyBytes(1)},
				Instructions: []*pb.CompiledInstruction{
					{ProgramIdIndex: 0, Data: []byte("R")},
				},
			},
		},
		Meta: &pb.TransactionStatusMeta{
			InnerInstructions: []*pb.InnerInstructions{
				{
					Index: 0,
					Instructions: []*pb.InnerInstruction{
						{ProgramIdIndex: 0, Data: []byte("A"), StackHeight: height(2)},
						{ProgramIdIndex: 0, Data: []byte("A1"), StackHeight: height(3)},
						{ProgramIdIndex: 0, Data: []byte("A11"), StackHeight: height(4)},
						{ProgramIdIndex: 0, Data: []byte("B"), StackHeight: height(2)},
						{ProgramIdIndex: 0, Data: []byte("B1"), StackHeight: height(3)},
					},
				},
			},
		},
	}

	roots, err := ParseFromTx(tx)
	require.NoError(t, err)

	root := roots[0]
	require.Len(t, root.Inner, 2)
	b := root.Inner[1]
	require.Len(t, b.Inner, 1)
	assert.Equal(t, []byte("B1"), b.Inner[0].Data)
}

// 缺失 stack height 的旧数据按高度 2 处理，全部直接挂在根下
func TestParseFromTx_DefaultStackHeight(t *testing.T) {
	tx := &pb.SubscribeUpdateTransactionInfo{
		Transaction: &pb.Transaction{
			Message: &pb.Message{
				AccountKeys: [][]byte{keyBytes(1)},
				Instructions: []*pb.CompiledInstruction{
					{ProgramIdIndex: 0, Data: []byte("R")},
				},
			},
		},
		Meta: &pb.TransactionStatusMeta{
			InnerInstructions: []*pb.InnerInstructions{
				{
					Index: 0,
					Instructions: []*pb.InnerInstruction{
						{ProgramIdIndex: 0, Data: []byte("X")},
						{ProgramIdIndex: 0, Data: []byte("Y")},
					},
				},
			},
		},
	}

	roots, err := ParseFromTx(tx)
	require.NoError(t, err)

	root := roots[0]
	require.Len(t, root.Inner, 2)
	assert.Equal(t, uint32(2), root.Inner[0].StackHeight)
	assert.Empty(t, root.Inner[0].Inner)
}

func TestParseFromTx_MissingParent(t *testing.T) {
	tx := &pb.SubscribeUpdateTransactionInfo{
		Transaction: &pb.Transaction{
			Message: &pb.Message{
				AccountKeys: [][]byte{keyBytes(1)},
				Instructions: []*pb.CompiledInstruction{
					{ProgramIdIndex: 0, Data: []byte("R")},
				},
			},
		},
		Meta: &pb.TransactionStatusMeta{
			InnerInstructions: []*pb.InnerInstructions{
				{
					Index: 0,
					Instructions: []*pb.InnerInstruction{
						// 高度 4 出现时路径上没有高度 3 的指令
						{ProgramIdIndex: 0, Data: []byte("orphan"), StackHeight: height(4)},
					},
				},
			},
		},
	}

	_, err := ParseFromTx(tx)
	assert.ErrorContains(t, err, "no parent")
}

func TestParseFromTx_IndexOutOfRange(t *testing.T) {
	base := func() *pb.SubscribeUpdateTransactionInfo {
		return &pb.SubscribeUpdateTransactionInfo{
			Transaction: &pb.Transaction{
				Message: &pb.Message{
					AccountKeys: [][]byte{keyBytes(1)},
					Instructions: []*pb.CompiledInstruction{
						{ProgramIdIndex: 0, Data: []byte("R")},
					},
				},
			},
			Meta: &pb.TransactionStatusMeta{},
		}
	}

	tx := base()
	tx.Transaction.Message.Instructions[0].Accounts = []byte{5}
	_, err := ParseFromTx(tx)
	assert.ErrorContains(t, err, "out of range")

	tx = base()
	tx.Transaction.Message.Instructions[0].ProgramIdIndex = 3
	_, err = ParseFromTx(tx)
	assert.ErrorContains(t, err, "out of range")

	tx = base()
	tx.Meta.InnerInstructions = []*pb.InnerInstructions{{Index: 7}}
	_, err = ParseFromTx(tx)
	assert.ErrorContains(t, err, "out of range")
}

func TestParseFromTx_MissingMessage(t *testing.T) {
	_, err := ParseFromTx(nil)
	assert.Error(t, err)

	_, err = ParseFromTx(&pb.SubscribeUpdateTransactionInfo{})
	assert.Error(t, err)
}

func TestParseFromTx_InvalidAccountKey(t *testing.T) {
	tx := &pb.SubscribeUpdateTransactionInfo{
		Transaction: &pb.Transaction{
			Message: &pb.Message{
				AccountKeys: [][]byte{{1, 2, 3}}, // 不是 32 字节
			},
		},
	}
	_, err := ParseFromTx(tx)
	assert.Error(t, err)
}
