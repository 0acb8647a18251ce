package token2022

import (
	"sol-ix-decoder/internal/decoder/token"
	"sol-ix-decoder/internal/types"
)

// Ix 是 token-2022 指令联合体。0..=24 区间与 classic token 布局兼容，
// 对应 Classic 包装；25 起为 2022 独有 variant 与扩展族（各自的子联合体）。
type Ix interface {
	IxName() string
	isToken2022Ix()
}

// Classic 包装与 classic token 布局完全一致的指令（discriminant 0..=24）。
type Classic struct {
	Ix token.Ix
}

func (c Classic) IxName() string { return c.Ix.IxName() }
func (Classic) isToken2022Ix() {}

// SetAuthority 单独建模：token-2022 的 AuthorityType 取值范围超出 classic。
type SetAuthority struct {
	Accounts token.SetAuthorityAccounts
	Data     token.SetAuthorityData
}

func (SetAuthority) IxName() string { return "SetAuthority" }
func (SetAuthority) isToken2022Ix() {}

type InitializeMintCloseAuthorityAccounts struct {
	Mint types.Pubkey
}

type InitializeMintCloseAuthorityData struct {
	CloseAuthority *types.Pubkey
}

type InitializeMintCloseAuthority struct {
	Accounts InitializeMintCloseAuthorityAccounts
	Data     InitializeMintCloseAuthorityData
}

func (InitializeMintCloseAuthority) IxName() string { return "InitializeMintCloseAuthority" }
func (InitializeMintCloseAuthority) isToken2022Ix() {}

type CreateNativeMintAccounts struct {
	FundingAccount types.Pubkey
	Mint           types.Pubkey
}

type CreateNativeMint struct {
	Accounts CreateNativeMintAccounts
}

func (CreateNativeMint) IxName() string { return "CreateNativeMint" }
func (CreateNativeMint) isToken2022Ix() {}

type InitializeNonTransferableMintAccounts struct {
	Mint types.Pubkey
}

type InitializeNonTransferableMint struct {
	Accounts InitializeNonTransferableMintAccounts
}

func (InitializeNonTransferableMint) IxName() string { return "InitializeNonTransferableMint" }
func (InitializeNonTransferableMint) isToken2022Ix() {}

type ReallocateAccounts struct {
	Account         types.Pubkey
	Payer           types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

// ReallocateData 的 ExtensionTypes 是 u16 扩展类型编号列表（borsh vec）。
type ReallocateData struct {
	ExtensionTypes []uint16
}

type Reallocate struct {
	Accounts ReallocateAccounts
	Data     ReallocateData
}

func (Reallocate) IxName() string { return "Reallocate" }
func (Reallocate) isToken2022Ix() {}

type InitializePermanentDelegateAccounts struct {
	Account types.Pubkey
}

type InitializePermanentDelegateData struct {
	Delegate types.Pubkey
}

type InitializePermanentDelegate struct {
	Accounts InitializePermanentDelegateAccounts
	Data     InitializePermanentDelegateData
}

func (InitializePermanentDelegate) IxName() string { return "InitializePermanentDelegate" }
func (InitializePermanentDelegate) isToken2022Ix() {}

type WithdrawExcessLamportsAccounts struct {
	SourceAccount      types.Pubkey
	DestinationAccount types.Pubkey
	Authority          types.Pubkey
	MultisigSigners    []types.Pubkey
}

type WithdrawExcessLamports struct {
	Accounts WithdrawExcessLamportsAccounts
}

func (WithdrawExcessLamports) IxName() string { return "WithdrawExcessLamports" }
func (WithdrawExcessLamports) isToken2022Ix() {}
