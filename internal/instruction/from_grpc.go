package instruction

import (
	"fmt"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"

	"sol-ix-decoder/internal/types"
)

// buildFullAccountKeys 构造交易中完整的账户 Pubkey 列表。
// 拼接 message.accountKeys 与 Address Lookup Table 中的 writable / readonly 地址，
// 供后续通过 accountIndex 索引使用。顺序固定：主账户 → writable → readonly。
func buildFullAccountKeys(
	accountKeys, loadedWritable, loadedReadonly [][]byte,
) ([]types.Pubkey, error) {
	total := len(accountKeys) + len(loadedWritable) + len(loadedReadonly)
	pubkeys := make([]types.Pubkey, 0, total)

	for _, group := range [][][]byte{accountKeys, loadedWritable, loadedReadonly} {
		for _, b := range group {
			p, err := types.PubkeyFromBytes(b)
			if err != nil {
				return nil, fmt.Errorf("invalid account key at index %d: %w", len(pubkeys), err)
			}
			pubkeys = append(pubkeys, p)
		}
	}
	return pubkeys, nil
}

// resolveAccounts 把指令里的账户索引解析为 Pubkey 列表。
func resolveAccounts(indexes []byte, accountKeys []types.Pubkey) ([]types.Pubkey, error) {
	accounts := make([]types.Pubkey, 0, len(indexes))
	for _, idx := range indexes {
		if int(idx) >= len(accountKeys) {
			return nil, fmt.Errorf("account index %d out of range (have %d keys)", idx, len(accountKeys))
		}
		accounts = append(accounts, accountKeys[idx])
	}
	return accounts, nil
}

// ParseFromTx 把一笔 yellowstone 交易解析为指令树（根指令 + 按 stack height 嵌套的 inner）。
//
// 嵌套规则：主指令 StackHeight=1；inner 的 StackHeight 从 2 起，
// 高度为 h 的 inner 挂到当前路径上高度 h-1 的最近一条指令之下。
// 旧数据缺失 stack height 时按 2 处理（全部直接挂在根下）。
func ParseFromTx(tx *pb.SubscribeUpdateTransactionInfo) ([]*Instruction, error) {
	if tx == nil || tx.Transaction == nil || tx.Transaction.Message == nil {
		return nil, fmt.Errorf("transaction missing message")
	}
	msg := tx.Transaction.Message

	var loadedWritable, loadedReadonly [][]byte
	if tx.Meta != nil {
		loadedWritable = tx.Meta.LoadedWritableAddresses
		loadedReadonly = tx.Meta.LoadedReadonlyAddresses
	}
	accountKeys, err := buildFullAccountKeys(msg.AccountKeys, loadedWritable, loadedReadonly)
	if err != nil {
		return nil, err
	}

	roots := make([]*Instruction, 0, len(msg.Instructions))
	for _, inst := range msg.Instructions {
		if int(inst.ProgramIdIndex) >= len(accountKeys) {
			return nil, fmt.Errorf("program id index %d out of range", inst.ProgramIdIndex)
		}
		accounts, err := resolveAccounts(inst.Accounts, accountKeys)
		if err != nil {
			return nil, err
		}
		roots = append(roots, &Instruction{
			Program:     accountKeys[inst.ProgramIdIndex],
			Accounts:    accounts,
			Data:        inst.Data,
			StackHeight: 1,
		})
	}

	if tx.Meta != nil {
		for _, innerSet := range tx.Meta.InnerInstructions {
			if int(innerSet.Index) >= len(roots) {
				return nil, fmt.Errorf("inner instruction index %d out of range (have %d roots)", innerSet.Index, len(roots))
			}
			if err := attachInner(roots[innerSet.Index], innerSet.Instructions, accountKeys); err != nil {
				return nil, err
			}
		}
	}
	return roots, nil
}

// attachInner 把一个主指令的 inner 列表按 stack height 还原为树。
func attachInner(root *Instruction, inners []*pb.InnerInstruction, accountKeys []types.Pubkey) error {
	// parents[h] 是当前路径上高度为 h 的最近一条指令
	parents := map[uint32]*Instruction{1: root}

	for _, inner := range inners {
		if int(inner.ProgramIdIndex) >= len(accountKeys) {
			return fmt.Errorf("inner program id index %d out of range", inner.ProgramIdIndex)
		}
		accounts, err := resolveAccounts(inner.Accounts, accountKeys)
		if err != nil {
			return err
		}

		height := uint32(2)
		if inner.StackHeight != nil && *inner.StackHeight >= 2 {
			height = *inner.StackHeight
		}

		node := &Instruction{
			Program:     accountKeys[inner.ProgramIdIndex],
			Accounts:    accounts,
			Data:        inner.Data,
			StackHeight: height,
		}

		parent, ok := parents[height-1]
		if !ok {
			return fmt.Errorf("inner instruction at stack height %d has no parent", height)
		}
		parent.Inner = append(parent.Inner, node)
		parents[height] = node

		// 回到较浅层时，更深的 parent 记录全部失效
		for h := height + 1; ; h++ {
			if _, ok := parents[h]; !ok {
				break
			}
			delete(parents, h)
		}
	}
	return nil
}
