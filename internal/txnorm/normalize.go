package txnorm

import (
	"strconv"

	bloctotypes "github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"

	"sol-ix-decoder/internal/consts"
	"sol-ix-decoder/internal/decoder"
)

// Normalize 把 RPC 编码交易还原为统一的 pb 结构。
//
// 交易本体经 TransactionDeserialize 还原（legacy 与 v0 消息、lookup table
// 在这一步被统一），meta 的三态字段在这里折叠：Null 与 Skip 都变成空列表/nil，
// 显式 null 额外置起 *None 标志。任何外层 encoding 失败都是整笔交易的
// DecodeError，不产生部分结果。
func Normalize(
	encoded *EncodedConfirmedTransactionWithStatusMeta, slot uint64,
) (*pb.SubscribeUpdateTransaction, error) {
	raw, err := encoded.Transaction.Transaction.Decode()
	if err != nil {
		return nil, err
	}

	tx, err := bloctotypes.TransactionDeserialize(raw)
	if err != nil {
		return nil, &decoder.DecodeError{Reason: "canonicalize transaction", Err: err}
	}

	msg, err := convertMessage(tx.Message)
	if err != nil {
		return nil, err
	}

	var signature []byte
	if len(tx.Signatures) > 0 {
		signature = tx.Signatures[0]
	}

	info := &pb.SubscribeUpdateTransactionInfo{
		Signature: signature,
		IsVote:    isVoteTransaction(msg),
		Transaction: &pb.Transaction{
			Signatures: convertSignatures(tx.Signatures),
			Message:    msg,
		},
		Meta:  convertMeta(encoded.Transaction.Meta),
		Index: 0,
	}
	return &pb.SubscribeUpdateTransaction{Transaction: info, Slot: slot}, nil
}

func convertSignatures(sigs []bloctotypes.Signature) [][]byte {
	out := make([][]byte, 0, len(sigs))
	for _, sig := range sigs {
		out = append(out, sig)
	}
	return out
}

// convertMessage 把 legacy 与 v0 消息归一到同一 pb 形状：
// legacy 的 Versioned=false 且 lookup 列表为空。
func convertMessage(msg bloctotypes.Message) (*pb.Message, error) {
	accountKeys := make([][]byte, 0, len(msg.Accounts))
	for _, key := range msg.Accounts {
		accountKeys = append(accountKeys, key.Bytes())
	}

	blockhash, err := base58.Decode(msg.RecentBlockHash)
	if err != nil {
		return nil, &decoder.DecodeError{Reason: "recent blockhash", Err: err}
	}

	instructions := make([]*pb.CompiledInstruction, 0, len(msg.Instructions))
	for _, inst := range msg.Instructions {
		accounts := make([]byte, 0, len(inst.Accounts))
		for _, idx := range inst.Accounts {
			accounts = append(accounts, byte(idx))
		}
		instructions = append(instructions, &pb.CompiledInstruction{
			ProgramIdIndex: uint32(inst.ProgramIDIndex),
			Accounts:       accounts,
			Data:           inst.Data,
		})
	}

	lookups := make([]*pb.MessageAddressTableLookup, 0, len(msg.AddressLookupTables))
	for _, table := range msg.AddressLookupTables {
		lookups = append(lookups, &pb.MessageAddressTableLookup{
			AccountKey:      table.AccountKey.Bytes(),
			WritableIndexes: table.WritableIndexes,
			ReadonlyIndexes: table.ReadonlyIndexes,
		})
	}

	return &pb.Message{
		Header:              nil,
		AccountKeys:         accountKeys,
		RecentBlockhash:     blockhash,
		Instructions:        instructions,
		Versioned:           msg.Version == bloctotypes.MessageVersionV0,
		AddressTableLookups: lookups,
	}, nil
}

func convertMeta(ui *UiTransactionStatusMeta) *pb.TransactionStatusMeta {
	if ui == nil {
		return nil
	}

	meta := &pb.TransactionStatusMeta{
		Fee:          ui.Fee,
		PreBalances:  ui.PreBalances,
		PostBalances: ui.PostBalances,

		InnerInstructions:     convertInnerInstructions(ui.InnerInstructions.OrZero()),
		InnerInstructionsNone: ui.InnerInstructions.IsNull(),

		LogMessages:     ui.LogMessages.OrZero(),
		LogMessagesNone: ui.LogMessages.IsNull(),

		PreTokenBalances:  convertTokenBalances(ui.PreTokenBalances.OrZero()),
		PostTokenBalances: convertTokenBalances(ui.PostTokenBalances.OrZero()),

		Rewards: convertRewards(ui.Rewards.OrZero()),

		ReturnDataNone: ui.ReturnData.IsNull(),
	}

	// 交易级错误不做解读，原样保留序列化后的 JSON 字节
	if errBlob, ok := ui.Err.Value(); ok {
		meta.Err = &pb.TransactionError{Err: errBlob}
	}

	loaded := ui.LoadedAddresses.OrZero()
	meta.LoadedWritableAddresses = decodeAddresses(loaded.Writable)
	meta.LoadedReadonlyAddresses = decodeAddresses(loaded.Readonly)

	if ret, ok := ui.ReturnData.Value(); ok {
		meta.ReturnData = convertReturnData(ret)
	}

	if units, ok := ui.ComputeUnitsConsumed.Value(); ok {
		meta.ComputeUnitsConsumed = &units
	}
	return meta
}

// convertInnerInstructions 只保留 compiled 形式，parsed 形式静默丢弃。
func convertInnerInstructions(list []UiInnerInstructions) []*pb.InnerInstructions {
	out := make([]*pb.InnerInstructions, 0, len(list))
	for _, inner := range list {
		instructions := make([]*pb.InnerInstruction, 0, len(inner.Instructions))
		for _, inst := range inner.Instructions {
			if !inst.isCompiled() {
				continue
			}
			data, err := base58.Decode(inst.Data)
			if err != nil {
				data = nil
			}
			accounts := make([]byte, 0, len(inst.Accounts))
			for _, idx := range inst.Accounts {
				accounts = append(accounts, byte(idx))
			}
			instructions = append(instructions, &pb.InnerInstruction{
				ProgramIdIndex: *inst.ProgramIDIndex,
				Accounts:       accounts,
				Data:           data,
				StackHeight:    inst.StackHeight,
			})
		}
		out = append(out, &pb.InnerInstructions{
			Index:        inner.Index,
			Instructions: instructions,
		})
	}
	return out
}

func convertTokenBalances(list []UiTransactionTokenBalance) []*pb.TokenBalance {
	out := make([]*pb.TokenBalance, 0, len(list))
	for _, balance := range list {
		out = append(out, &pb.TokenBalance{
			AccountIndex: balance.AccountIndex,
			Mint:         balance.Mint,
			UiTokenAmount: &pb.UiTokenAmount{
				UiAmount:       balance.UiTokenAmount.UiAmount.OrZero(),
				Decimals:       balance.UiTokenAmount.Decimals,
				Amount:         balance.UiTokenAmount.Amount,
				UiAmountString: balance.UiTokenAmount.UiAmountString,
			},
			Owner:     balance.Owner.OrZero(),
			ProgramId: balance.ProgramID.OrZero(),
		})
	}
	return out
}

func convertRewards(list []UiReward) []*pb.Reward {
	out := make([]*pb.Reward, 0, len(list))
	for _, reward := range list {
		commission := "0"
		if c, ok := reward.Commission.Value(); ok {
			commission = strconv.Itoa(int(c))
		}
		out = append(out, &pb.Reward{
			Pubkey:      reward.Pubkey,
			Lamports:    reward.Lamports,
			PostBalance: reward.PostBalance,
			RewardType:  rewardTypeFromString(reward.RewardType.OrZero()),
			Commission:  commission,
		})
	}
	return out
}

func rewardTypeFromString(s string) pb.RewardType {
	switch s {
	case "fee":
		return pb.RewardType_Fee
	case "rent":
		return pb.RewardType_Rent
	case "staking":
		return pb.RewardType_Staking
	case "voting":
		return pb.RewardType_Voting
	default:
		return pb.RewardType_Unspecified
	}
}

func convertReturnData(ret UiReturnData) *pb.ReturnData {
	programID, err := base58.Decode(ret.ProgramID)
	if err != nil {
		programID = nil
	}
	data, err := decodeWithEncoding(ret.Data[0], ret.Data[1])
	if err != nil {
		data = nil
	}
	return &pb.ReturnData{ProgramId: programID, Data: data}
}

func decodeWithEncoding(payload, encoding string) ([]byte, error) {
	enc := EncodedTransaction{Raw: payload, Encoding: encoding}
	return enc.Decode()
}

func decodeAddresses(addrs []string) [][]byte {
	out := make([][]byte, 0, len(addrs))
	for _, addr := range addrs {
		b, err := base58.Decode(addr)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out
}

// isVoteTransaction 判断任一主指令的程序是否为 vote program。
func isVoteTransaction(msg *pb.Message) bool {
	vote := consts.VoteProgram.Bytes()
	for _, inst := range msg.Instructions {
		idx := int(inst.ProgramIdIndex)
		if idx >= len(msg.AccountKeys) {
			continue
		}
		key := msg.AccountKeys[idx]
		if len(key) == len(vote) && string(key) == string(vote) {
			return true
		}
	}
	return false
}
