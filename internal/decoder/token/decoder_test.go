package token

import (
	"testing"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-ix-decoder/internal/consts"
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/instruction"
	"sol-ix-decoder/internal/types"
)

func pk(seed byte) types.Pubkey {
	var p types.Pubkey
	for i := range p {
		p[i] = seed
	}
	return p
}

func tokenIx(accounts []types.Pubkey, data []byte) *instruction.Instruction {
	return &instruction.Instruction{
		Program:     consts.TokenProgram,
		Accounts:    accounts,
		Data:        data,
		StackHeight: 1,
	}
}

// ixData 拼装 1 字节 discriminant + borsh 序列化参数
func ixData(t *testing.T, disc byte, args any) []byte {
	if args == nil {
		return []byte{disc}
	}
	payload, err := borsh.Serialize(args)
	require.NoError(t, err)
	return append([]byte{disc}, payload...)
}

func TestDecode_Transfer(t *testing.T) {
	d := NewDecoder()
	data := ixData(t, 3, TransferData{Amount: 1_000_000})

	got, err := d.Decode(tokenIx([]types.Pubkey{pk(1), pk(2), pk(3)}, data))
	require.NoError(t, err)

	transfer, ok := got.(Transfer)
	require.True(t, ok)
	assert.Equal(t, "Transfer", transfer.IxName())
	assert.Equal(t, pk(1), transfer.Accounts.Source)
	assert.Equal(t, pk(2), transfer.Accounts.Destination)
	assert.Equal(t, pk(3), transfer.Accounts.Owner)
	assert.Empty(t, transfer.Accounts.MultisigSigners)
	assert.Equal(t, uint64(1_000_000), transfer.Data.Amount)

	// 参数结构体按同一布局重新序列化应逐字节还原 wire 数据
	reencoded, err := borsh.Serialize(transfer.Data)
	require.NoError(t, err)
	assert.Equal(t, data[1:], reencoded)
}

// multisig owner：第 3 个之后的账户全部进入签名者尾部，顺序保持
func TestDecode_TransferWithMultisig(t *testing.T) {
	d := NewDecoder()
	data := ixData(t, 3, TransferData{Amount: 5})

	got, err := d.Decode(tokenIx([]types.Pubkey{pk(1), pk(2), pk(3), pk(4), pk(5)}, data))
	require.NoError(t, err)

	transfer := got.(Transfer)
	assert.Equal(t, []types.Pubkey{pk(4), pk(5)}, transfer.Accounts.MultisigSigners)
}

func TestDecode_InitializeMintVariants(t *testing.T) {
	d := NewDecoder()
	freeze := pk(9)
	args := InitializeMintData{
		Decimals:        6,
		MintAuthority:   pk(8),
		FreezeAuthority: &freeze,
	}

	// InitializeMint(0) 与 InitializeMint2(20) 参数布局一致
	for _, disc := range []byte{0, 20} {
		got, err := d.Decode(tokenIx([]types.Pubkey{pk(1)}, ixData(t, disc, args)))
		require.NoError(t, err)

		mint, ok := got.(InitializeMint)
		require.True(t, ok)
		assert.Equal(t, uint8(6), mint.Data.Decimals)
		assert.Equal(t, pk(8), mint.Data.MintAuthority)
		require.NotNil(t, mint.Data.FreezeAuthority)
		assert.Equal(t, freeze, *mint.Data.FreezeAuthority)
	}
}

func TestDecode_InitializeMint_NoFreezeAuthority(t *testing.T) {
	d := NewDecoder()
	args := InitializeMintData{Decimals: 0, MintAuthority: pk(8)}

	got, err := d.Decode(tokenIx([]types.Pubkey{pk(1)}, ixData(t, 0, args)))
	require.NoError(t, err)
	assert.Nil(t, got.(InitializeMint).Data.FreezeAuthority)
}

// Multisig 与 Multisig2 的签名者起点不同：前者跳过 rent sysvar
func TestDecode_InitializeMultisigSignerOffsets(t *testing.T) {
	d := NewDecoder()
	args := InitializeMultisigData{M: 2}
	accounts := []types.Pubkey{pk(1), pk(2), pk(3), pk(4)}

	got, err := d.Decode(tokenIx(accounts, ixData(t, 2, args)))
	require.NoError(t, err)
	assert.Equal(t, []types.Pubkey{pk(3), pk(4)}, got.(InitializeMultisig).Accounts.Signers)

	got, err = d.Decode(tokenIx(accounts, ixData(t, 19, args)))
	require.NoError(t, err)
	assert.Equal(t, []types.Pubkey{pk(2), pk(3), pk(4)}, got.(InitializeMultisig).Accounts.Signers)
}

func TestDecode_SetAuthority(t *testing.T) {
	d := NewDecoder()
	newAuth := pk(7)
	args := SetAuthorityData{AuthorityType: 2, NewAuthority: &newAuth}

	got, err := d.Decode(tokenIx([]types.Pubkey{pk(1), pk(2)}, ixData(t, 6, args)))
	require.NoError(t, err)

	set := got.(SetAuthority)
	assert.Equal(t, uint8(2), set.Data.AuthorityType)
	require.NotNil(t, set.Data.NewAuthority)
	assert.Equal(t, newAuth, *set.Data.NewAuthority)
}

func TestDecode_TransferChecked(t *testing.T) {
	d := NewDecoder()
	args := TransferCheckedData{Amount: 123, Decimals: 9}

	got, err := d.Decode(tokenIx([]types.Pubkey{pk(1), pk(2), pk(3), pk(4)}, ixData(t, 12, args)))
	require.NoError(t, err)

	transfer := got.(TransferChecked)
	assert.Equal(t, pk(2), transfer.Accounts.Mint)
	assert.Equal(t, uint64(123), transfer.Data.Amount)
	assert.Equal(t, uint8(9), transfer.Data.Decimals)
}

// UiAmountToAmount 的参数是剩余全部字节，没有长度前缀
func TestDecode_UiAmountToAmount(t *testing.T) {
	d := NewDecoder()
	data := append([]byte{24}, []byte("1.50")...)

	got, err := d.Decode(tokenIx([]types.Pubkey{pk(1)}, data))
	require.NoError(t, err)
	assert.Equal(t, "1.50", got.(UiAmountToAmount).Data.UiAmount)
}

func TestDecode_SyncNative(t *testing.T) {
	d := NewDecoder()
	got, err := d.Decode(tokenIx([]types.Pubkey{pk(1)}, []byte{17}))
	require.NoError(t, err)
	assert.Equal(t, "SyncNative", got.IxName())
}

func TestDecode_EmptyData(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode(tokenIx([]types.Pubkey{pk(1)}, nil))
	var malformed *decoder.MalformedPayloadError
	assert.ErrorAs(t, err, &malformed)
}

func TestDecode_UnknownDiscriminant(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode(tokenIx([]types.Pubkey{pk(1)}, []byte{200}))
	var unknown *decoder.UnknownVariantError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, uint32(200), unknown.Discriminant)
}

func TestDecode_TooFewAccounts(t *testing.T) {
	d := NewDecoder()
	data := ixData(t, 3, TransferData{Amount: 1})

	_, err := d.Decode(tokenIx([]types.Pubkey{pk(1), pk(2)}, data))
	var tooFew *decoder.AccountsTooFewError
	require.ErrorAs(t, err, &tooFew)
	assert.Equal(t, 3, tooFew.Needed)
}

func TestDecode_WrongProgramFiltered(t *testing.T) {
	d := NewDecoder()
	ix := &instruction.Instruction{
		Program:  consts.TokenProgram2022,
		Accounts: []types.Pubkey{pk(1), pk(2), pk(3)},
		Data:     ixData(t, 3, TransferData{Amount: 1}),
	}
	_, err := d.Decode(ix)
	assert.ErrorIs(t, err, decoder.ErrFiltered)
}
