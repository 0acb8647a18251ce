package decoder

import (
	"encoding/binary"

	"sol-ix-decoder/internal/types"
)

// DataReader 按 Solana 程序参数的小端布局顺序读取 data 字节。
// 所有 Read* 在越界时返回 MalformedPayloadError，读取位置不回退。
type DataReader struct {
	data []byte
	pos  int
}

func NewDataReader(data []byte) *DataReader {
	return &DataReader{data: data}
}

func (r *DataReader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *DataReader) take(n int, what string) ([]byte, error) {
	if r.Remaining() < n {
		return nil, NewMalformedPayload(what+": data too short", nil)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *DataReader) ReadUint8(what string) (uint8, error) {
	b, err := r.take(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *DataReader) ReadUint32(what string) (uint32, error) {
	b, err := r.take(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *DataReader) ReadUint64(what string) (uint64, error) {
	b, err := r.take(8, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *DataReader) ReadPubkey(what string) (types.Pubkey, error) {
	b, err := r.take(32, what)
	if err != nil {
		return types.Pubkey{}, err
	}
	var p types.Pubkey
	copy(p[:], b)
	return p, nil
}

// ReadBincodeString 读取 bincode 布局的字符串：u64 长度前缀 + UTF-8 字节。
// system program 的 seed 参数使用该布局。
func (r *DataReader) ReadBincodeString(what string) (string, error) {
	n, err := r.ReadUint64(what + " length")
	if err != nil {
		return "", err
	}
	if n > uint64(r.Remaining()) {
		return "", NewMalformedPayload(what+": length prefix exceeds data", nil)
	}
	b, err := r.take(int(n), what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SignerTail 返回固定角色之后的 multisig 签名者尾部，保持原始顺序。
// 长度 = len(accounts) - fixed，常见为 0。
func SignerTail(accounts []types.Pubkey, fixed int) []types.Pubkey {
	if len(accounts) <= fixed {
		return nil
	}
	tail := make([]types.Pubkey, len(accounts)-fixed)
	copy(tail, accounts[fixed:])
	return tail
}
