package runtime

import (
	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"

	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/instruction"
	"sol-ix-decoder/internal/txnorm"
	"sol-ix-decoder/internal/types"
)

// Runtime 持有不可变的解码器注册表，对交易的每条指令（含 inner）做首配分派。
// 解码是纯 CPU 操作，Runtime 可在多个 goroutine 间共享。
type Runtime struct {
	decoders        []decoder.Decoder
	maxInstructions int
}

// Decoders 返回解码器 ID → 其认领的程序地址，用于诊断。
func (r *Runtime) Decoders() map[string]types.Pubkey {
	m := make(map[string]types.Pubkey, len(r.decoders))
	for _, d := range r.decoders {
		m[d.ID()] = d.ProgramID()
	}
	return m
}

// DecodeTransaction 解码一笔交易的全部指令。
//
// 展平为前序序列后先做规模校验：超过上限返回 TooManyInstructionsError，
// 不产生任何结果。随后每条指令按注册顺序尝试解码器，Filtered 与其他解码
// 失败一律视为"未认领"，首个成功者胜出；未被认领的指令静默跳过。
// 结果顺序与前序遍历一致。
func (r *Runtime) DecodeTransaction(tx *pb.SubscribeUpdateTransactionInfo) ([]decoder.DecodeResult, error) {
	roots, err := instruction.ParseFromTx(tx)
	if err != nil {
		return nil, &decoder.DecodeError{Reason: "build instruction tree", Err: err}
	}
	flat := instruction.FlattenAll(roots)
	if len(flat) > r.maxInstructions {
		return nil, &decoder.TooManyInstructionsError{Count: len(flat), Limit: r.maxInstructions}
	}

	results := make([]decoder.DecodeResult, 0, len(flat))
	for _, ix := range flat {
		for _, d := range r.decoders {
			if !d.Prefilter().Matches(ix.Program) {
				continue
			}
			decoded, err := d.Decode(ix)
			if err != nil {
				continue
			}
			results = append(results, decoder.DecodeResult{
				Ix:        decoded,
				ProgramID: ix.Program,
				Decoder:   d.ID(),
			})
			break
		}
	}
	return results, nil
}

// DecodeEncodedTransaction 先把 RPC 编码交易规范化为统一结构再分派。
// 外层 encoding 无法识别时返回 DecodeError，不产生部分结果。
func (r *Runtime) DecodeEncodedTransaction(
	encoded *txnorm.EncodedConfirmedTransactionWithStatusMeta, slot uint64,
) ([]decoder.DecodeResult, error) {
	tx, err := txnorm.Normalize(encoded, slot)
	if err != nil {
		return nil, err
	}
	return r.DecodeTransaction(tx.Transaction)
}
