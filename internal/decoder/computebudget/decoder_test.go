package computebudget

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-ix-decoder/internal/consts"
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/instruction"
)

func cbIx(data []byte) *instruction.Instruction {
	return &instruction.Instruction{
		Program:     consts.ComputeBudgetProgram,
		Data:        data,
		StackHeight: 1,
	}
}

func u32le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func u64le(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func TestDecode_SetComputeUnitLimit(t *testing.T) {
	d := NewDecoder()
	got, err := d.Decode(cbIx(append([]byte{2}, u32le(1_400_000)...)))
	require.NoError(t, err)

	limit, ok := got.(SetComputeUnitLimit)
	require.True(t, ok)
	assert.Equal(t, uint32(1_400_000), limit.Data.Units)
}

func TestDecode_SetComputeUnitPrice(t *testing.T) {
	d := NewDecoder()
	got, err := d.Decode(cbIx(append([]byte{3}, u64le(25_000)...)))
	require.NoError(t, err)
	assert.Equal(t, uint64(25_000), got.(SetComputeUnitPrice).Data.MicroLamports)
}

func TestDecode_RequestUnitsDeprecated(t *testing.T) {
	d := NewDecoder()
	data := append([]byte{0}, u32le(200_000)...)
	data = append(data, u32le(50)...)

	got, err := d.Decode(cbIx(data))
	require.NoError(t, err)

	req := got.(RequestUnitsDeprecated)
	assert.Equal(t, uint32(200_000), req.Data.Units)
	assert.Equal(t, uint32(50), req.Data.AdditionalFee)
}

func TestDecode_RequestHeapFrame(t *testing.T) {
	d := NewDecoder()
	got, err := d.Decode(cbIx(append([]byte{1}, u32le(256*1024)...)))
	require.NoError(t, err)
	assert.Equal(t, uint32(256*1024), got.(RequestHeapFrame).Data.Bytes)
}

func TestDecode_SetLoadedAccountsDataSizeLimit(t *testing.T) {
	d := NewDecoder()
	got, err := d.Decode(cbIx(append([]byte{4}, u32le(1024)...)))
	require.NoError(t, err)
	assert.Equal(t, uint32(1024), got.(SetLoadedAccountsDataSizeLimit).Data.Bytes)
}

// 参数长度必须精确匹配：缺字节与多字节都是 malformed
func TestDecode_ExactLengthEnforced(t *testing.T) {
	d := NewDecoder()

	short := append([]byte{2}, 0x01, 0x02)
	_, err := d.Decode(cbIx(short))
	var malformed *decoder.MalformedPayloadError
	assert.ErrorAs(t, err, &malformed)

	long := append([]byte{2}, u64le(1)...)
	_, err = d.Decode(cbIx(long))
	assert.ErrorAs(t, err, &malformed)
}

func TestDecode_UnknownDiscriminant(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode(cbIx([]byte{9}))
	var unknown *decoder.UnknownVariantError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, uint32(9), unknown.Discriminant)
}

func TestDecode_EmptyData(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode(cbIx(nil))
	var malformed *decoder.MalformedPayloadError
	assert.ErrorAs(t, err, &malformed)
}

func TestDecode_WrongProgramFiltered(t *testing.T) {
	d := NewDecoder()
	ix := &instruction.Instruction{
		Program: consts.SystemProgram,
		Data:    append([]byte{2}, u32le(1)...),
	}
	_, err := d.Decode(ix)
	assert.ErrorIs(t, err, decoder.ErrFiltered)
}
