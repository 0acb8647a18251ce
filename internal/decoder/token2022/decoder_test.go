package token2022

import (
	"testing"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-ix-decoder/internal/consts"
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/decoder/token"
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

func pks(seeds ...byte) []types.Pubkey {
	out := make([]types.Pubkey, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, pk(s))
	}
	return out
}

func t22Ix(accounts []types.Pubkey, data []byte) *instruction.Instruction {
	return &instruction.Instruction{
		Program:     consts.TokenProgram2022,
		Accounts:    accounts,
		Data:        data,
		StackHeight: 1,
	}
}

func borshData(t *testing.T, prefix []byte, args any) []byte {
	payload, err := borsh.Serialize(args)
	require.NoError(t, err)
	return append(prefix, payload...)
}

// classic 区间（0..=24）直接复用 token 解码核心，包在 Classic 里
func TestDecode_ClassicPassthrough(t *testing.T) {
	d := NewDecoder()
	data := borshData(t, []byte{3}, token.TransferData{Amount: 777})

	got, err := d.Decode(t22Ix(pks(1, 2, 3), data))
	require.NoError(t, err)

	classic, ok := got.(Classic)
	require.True(t, ok)
	transfer, ok := classic.Ix.(token.Transfer)
	require.True(t, ok)
	assert.Equal(t, "Transfer", classic.IxName())
	assert.Equal(t, uint64(777), transfer.Data.Amount)
}

// SetAuthority 在 2022 下单独建模，不走 Classic 包装
func TestDecode_SetAuthorityCarveOut(t *testing.T) {
	d := NewDecoder()
	newAuth := pk(9)
	data := borshData(t, []byte{6}, token.SetAuthorityData{AuthorityType: 12, NewAuthority: &newAuth})

	got, err := d.Decode(t22Ix(pks(1, 2), data))
	require.NoError(t, err)

	set, ok := got.(SetAuthority)
	require.True(t, ok)
	assert.Equal(t, uint8(12), set.Data.AuthorityType)
}

func TestDecode_InitializeMintCloseAuthority(t *testing.T) {
	d := NewDecoder()
	closeAuth := pk(5)
	data := borshData(t, []byte{25}, InitializeMintCloseAuthorityData{CloseAuthority: &closeAuth})

	got, err := d.Decode(t22Ix(pks(1), data))
	require.NoError(t, err)

	init, ok := got.(InitializeMintCloseAuthority)
	require.True(t, ok)
	require.NotNil(t, init.Data.CloseAuthority)
	assert.Equal(t, closeAuth, *init.Data.CloseAuthority)
}

func TestDecode_Reallocate(t *testing.T) {
	d := NewDecoder()
	data := borshData(t, []byte{29}, ReallocateData{ExtensionTypes: []uint16{3, 7}})

	got, err := d.Decode(t22Ix(pks(1, 2, 3), data))
	require.NoError(t, err)
	assert.Equal(t, []uint16{3, 7}, got.(Reallocate).Data.ExtensionTypes)
}

func TestDecode_TransferCheckedWithFee(t *testing.T) {
	d := NewDecoder()
	data := borshData(t, []byte{26, 1}, TransferCheckedWithFeeData{Amount: 100, Decimals: 6, Fee: 3})

	got, err := d.Decode(t22Ix(pks(1, 2, 3, 4), data))
	require.NoError(t, err)

	transfer, ok := got.(TransferCheckedWithFee)
	require.True(t, ok)
	assert.Equal(t, uint64(100), transfer.Data.Amount)
	assert.Equal(t, uint64(3), transfer.Data.Fee)
	assert.Equal(t, pk(2), transfer.Accounts.Mint)

	reencoded, err := borsh.Serialize(transfer.Data)
	require.NoError(t, err)
	assert.Equal(t, data[2:], reencoded)
}

func TestDecode_SetTransferFee(t *testing.T) {
	d := NewDecoder()
	data := borshData(t, []byte{26, 5}, SetTransferFeeData{TransferFeeBasisPoints: 50, MaximumFee: 10_000})

	got, err := d.Decode(t22Ix(pks(1, 2), data))
	require.NoError(t, err)
	assert.Equal(t, uint16(50), got.(SetTransferFee).Data.TransferFeeBasisPoints)
}

func TestDecode_ConfidentialDeposit(t *testing.T) {
	d := NewDecoder()

	got, err := d.Decode(t22Ix(pks(1, 2, 3), []byte{27, 5}))
	require.NoError(t, err)

	deposit, ok := got.(ConfidentialDeposit)
	require.True(t, ok)
	assert.Equal(t, pk(1), deposit.Accounts.Account)
	assert.Equal(t, pk(3), deposit.Accounts.Owner)
}

// 9 账户布局的判别：accounts[8] 为 zk proof program 时是 context-state 布局
func TestDecode_TransferWithSplitProofs_NineAccountsContextState(t *testing.T) {
	d := NewDecoder()
	accounts := pks(1, 2, 3, 4, 5, 6, 7, 8)
	accounts = append(accounts, consts.ZkTokenProofProgram)

	got, err := d.Decode(t22Ix(accounts, []byte{27, 13}))
	require.NoError(t, err)

	transfer, ok := got.(TransferWithSplitProofs)
	require.True(t, ok)
	acc := transfer.Accounts
	require.NotNil(t, acc.VerifyBatchedRangeProofU128)
	assert.Equal(t, pk(6), *acc.VerifyBatchedRangeProofU128)
	require.NotNil(t, acc.DestinationAccountForLamports)
	assert.Equal(t, pk(7), *acc.DestinationAccountForLamports)
	require.NotNil(t, acc.ContextStateAccountOwner)
	assert.Equal(t, pk(8), *acc.ContextStateAccountOwner)
	require.NotNil(t, acc.ZkTokenProofProgram)
	assert.Nil(t, acc.Owner)
	assert.Nil(t, acc.VerifyFeeSigmaProof)
}

// accounts[8] 不是 zk proof program 时是带手续费证明的布局
func TestDecode_TransferWithSplitProofs_NineAccountsFeeProofs(t *testing.T) {
	d := NewDecoder()
	accounts := pks(1, 2, 3, 4, 5, 6, 7, 8, 9)

	got, err := d.Decode(t22Ix(accounts, []byte{27, 13}))
	require.NoError(t, err)

	acc := got.(TransferWithSplitProofs).Accounts
	require.NotNil(t, acc.VerifyFeeSigmaProof)
	assert.Equal(t, pk(6), *acc.VerifyFeeSigmaProof)
	require.NotNil(t, acc.VerifyBatchedRangeProofU256)
	assert.Equal(t, pk(7), *acc.VerifyBatchedRangeProofU256)
	require.NotNil(t, acc.Owner)
	assert.Equal(t, pk(9), *acc.Owner)
	assert.Nil(t, acc.ZkTokenProofProgram)
	assert.Nil(t, acc.ContextStateAccountOwner)
}

func TestDecode_TransferWithSplitProofs_SevenAccounts(t *testing.T) {
	d := NewDecoder()

	got, err := d.Decode(t22Ix(pks(1, 2, 3, 4, 5, 6, 7), []byte{27, 13}))
	require.NoError(t, err)

	acc := got.(TransferWithSplitProofs).Accounts
	require.NotNil(t, acc.VerifyBatchedRangeProofU128)
	assert.Equal(t, pk(6), *acc.VerifyBatchedRangeProofU128)
	require.NotNil(t, acc.Owner)
	assert.Equal(t, pk(7), *acc.Owner)
}

func TestDecode_TransferWithSplitProofs_ElevenAccounts(t *testing.T) {
	d := NewDecoder()

	got, err := d.Decode(t22Ix(pks(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11), []byte{27, 13}))
	require.NoError(t, err)

	acc := got.(TransferWithSplitProofs).Accounts
	require.NotNil(t, acc.ZkTokenProofProgram)
	assert.Equal(t, pk(11), *acc.ZkTokenProofProgram)
	require.NotNil(t, acc.VerifyBatchedRangeProofU256)
	assert.Equal(t, pk(6), *acc.VerifyBatchedRangeProofU256)
}

// 落在下限之上但未被精确分支覆盖的账户数是 arity 错误，绝不回退到默认布局
func TestDecode_TransferWithSplitProofs_UnknownArity(t *testing.T) {
	d := NewDecoder()

	for _, n := range []int{8, 10, 12} {
		accounts := make([]types.Pubkey, n)
		for i := range accounts {
			accounts[i] = pk(byte(i + 1))
		}
		_, err := d.Decode(t22Ix(accounts, []byte{27, 13}))
		var arity *decoder.UnknownArityError
		require.ErrorAs(t, err, &arity, "accounts=%d", n)
		assert.Equal(t, n, arity.Accounts)
		assert.Equal(t, "TransferWithSplitProofs", arity.Variant)
	}
}

func TestDecode_TransferWithSplitProofs_BelowFloor(t *testing.T) {
	d := NewDecoder()

	_, err := d.Decode(t22Ix(pks(1, 2, 3, 4, 5, 6), []byte{27, 13}))
	var tooFew *decoder.AccountsTooFewError
	require.ErrorAs(t, err, &tooFew)
	assert.Equal(t, 7, tooFew.Needed)
}

func TestDecode_ConfidentialTransferFee_EnableHarvest(t *testing.T) {
	d := NewDecoder()

	got, err := d.Decode(t22Ix(pks(1, 2), []byte{37, 4}))
	require.NoError(t, err)
	assert.Equal(t, "EnableHarvestToMint", got.IxName())
}

// 扩展族包装的 IxName 是「族名 + 子指令名」
func TestDecode_ExtensionFamilies(t *testing.T) {
	d := NewDecoder()

	cases := []struct {
		data     []byte
		accounts []types.Pubkey
		name     string
	}{
		{[]byte{28, 0}, pks(1), "DefaultAccountStateInitialize"},
		{[]byte{28, 1}, pks(1, 2), "DefaultAccountStateUpdate"},
		{[]byte{30, 0}, pks(1, 2), "MemoTransferEnable"},
		{[]byte{30, 1}, pks(1, 2), "MemoTransferDisable"},
		{[]byte{34, 1}, pks(1, 2), "CpiGuardDisable"},
		{[]byte{36, 0}, pks(1), "TransferHookInitialize"},
		{[]byte{39, 0}, pks(1), "MetadataPointerInitialize"},
		{[]byte{40, 1}, pks(1, 2), "GroupPointerUpdate"},
		{[]byte{41, 0}, pks(1), "GroupMemberPointerInitialize"},
	}
	for _, tc := range cases {
		got, err := d.Decode(t22Ix(tc.accounts, tc.data))
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.name, got.IxName())
	}
}

func TestDecode_WithdrawExcessLamports(t *testing.T) {
	d := NewDecoder()

	got, err := d.Decode(t22Ix(pks(1, 2, 3, 4), []byte{38}))
	require.NoError(t, err)

	withdraw := got.(WithdrawExcessLamports)
	assert.Equal(t, pk(2), withdraw.Accounts.DestinationAccount)
	assert.Equal(t, []types.Pubkey{pk(4)}, withdraw.Accounts.MultisigSigners)
}

func TestDecode_UnknownDiscriminant(t *testing.T) {
	d := NewDecoder()

	_, err := d.Decode(t22Ix(pks(1), []byte{42}))
	var unknown *decoder.UnknownVariantError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, uint32(42), unknown.Discriminant)
}

func TestDecode_WrongProgramFiltered(t *testing.T) {
	d := NewDecoder()
	ix := &instruction.Instruction{
		Program:  consts.TokenProgram,
		Accounts: pks(1),
		Data:     []byte{17},
	}
	_, err := d.Decode(ix)
	assert.ErrorIs(t, err, decoder.ErrFiltered)
}
