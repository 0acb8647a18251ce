package mq

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"

	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/types"
	"sol-ix-decoder/pkg/mq"
	"sol-ix-decoder/pkg/utils"
)

// 事件类型前缀（uint32 小端序），下游按前 4 字节路由
const (
	EventTypeDecodedTx uint32 = 1
)

// DecodedIxEvent 是单条被认领指令的发布形态
type DecodedIxEvent struct {
	Decoder string            `json:"decoder"`
	Program types.Pubkey      `json:"program"`
	Name    string            `json:"name"`
	Ix      decoder.DecodedIx `json:"ix"`
}

// DecodedTxEvent 是一笔交易的全部解码结果，按指令前序排列
type DecodedTxEvent struct {
	Slot      uint64           `json:"slot"`
	Signature string           `json:"signature"` // base58
	Ixs       []DecodedIxEvent `json:"ixs"`
}

// EncodeDecodedTx 将一笔交易的解码结果编码为带事件类型前缀的二进制数据：
// - 前 4 字节为事件类型（uint32，小端序）
// - 后续为 JSON 序列化数据
func EncodeDecodedTx(slot uint64, signature []byte, results []decoder.DecodeResult) ([]byte, error) {
	event := DecodedTxEvent{
		Slot:      slot,
		Signature: base58.Encode(signature),
		Ixs:       make([]DecodedIxEvent, 0, len(results)),
	}
	for _, res := range results {
		event.Ixs = append(event.Ixs, DecodedIxEvent{
			Decoder: res.Decoder,
			Program: res.ProgramID,
			Name:    res.Ix.IxName(),
			Ix:      res.Ix,
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode decoded tx: %w", err)
	}

	buf := make([]byte, 4, 4+len(payload))
	binary.LittleEndian.PutUint32(buf[:4], EventTypeDecodedTx)
	return append(buf, payload...), nil
}

// BuildDecodedTxJob 构造一条发布任务，按交易签名哈希选分区，
// 保证同一笔交易的重放落在同一分区。
func BuildDecodedTxJob(
	topic string, partitions int,
	slot uint64, signature []byte, results []decoder.DecodeResult,
) (*mq.KafkaJob, error) {
	value, err := EncodeDecodedTx(slot, signature, results)
	if err != nil {
		return nil, err
	}
	return &mq.KafkaJob{
		Topic:     topic,
		Partition: int32(utils.PartitionHashBytes(signature, uint32(partitions))),
		Value:     value,
	}, nil
}
