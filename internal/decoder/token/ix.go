package token

import "sol-ix-decoder/internal/types"

// Ix 是 SPL token program 指令联合体，每个 wire variant 一个实现。
// 账户角色按槽位绑定，MultisigSigners 为固定角色之后的可变长签名者尾部。
type Ix interface {
	IxName() string
	isTokenIx()
}

type InitializeMintAccounts struct {
	Mint types.Pubkey
}

// InitializeMintData 的布局与 borsh 一致：u8 + pubkey + option<pubkey>（1 字节 tag）。
type InitializeMintData struct {
	Decimals        uint8
	MintAuthority   types.Pubkey
	FreezeAuthority *types.Pubkey
}

// InitializeMint 同时覆盖 InitializeMint 与 InitializeMint2（参数布局相同）。
type InitializeMint struct {
	Accounts InitializeMintAccounts
	Data     InitializeMintData
}

func (InitializeMint) IxName() string { return "InitializeMint" }
func (InitializeMint) isTokenIx() {}

type InitializeAccountAccounts struct {
	Account types.Pubkey
	Mint    types.Pubkey
	Owner   types.Pubkey
}

type InitializeAccount struct {
	Accounts InitializeAccountAccounts
}

func (InitializeAccount) IxName() string { return "InitializeAccount" }
func (InitializeAccount) isTokenIx() {}

type InitializeAccount2Accounts struct {
	Account types.Pubkey
	Mint    types.Pubkey
}

type InitializeAccount2Data struct {
	Owner types.Pubkey
}

type InitializeAccount2 struct {
	Accounts InitializeAccount2Accounts
	Data     InitializeAccount2Data
}

func (InitializeAccount2) IxName() string { return "InitializeAccount2" }
func (InitializeAccount2) isTokenIx() {}

type InitializeAccount3 struct {
	Accounts InitializeAccount2Accounts
	Data     InitializeAccount2Data
}

func (InitializeAccount3) IxName() string { return "InitializeAccount3" }
func (InitializeAccount3) isTokenIx() {}

type InitializeMultisigAccounts struct {
	Multisig types.Pubkey
	Signers  []types.Pubkey
}

type InitializeMultisigData struct {
	M uint8
}

// InitializeMultisig 同时覆盖 InitializeMultisig 与 InitializeMultisig2。
type InitializeMultisig struct {
	Accounts InitializeMultisigAccounts
	Data     InitializeMultisigData
}

func (InitializeMultisig) IxName() string { return "InitializeMultisig" }
func (InitializeMultisig) isTokenIx() {}

type TransferAccounts struct {
	Source          types.Pubkey
	Destination     types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type TransferData struct {
	Amount uint64
}

type Transfer struct {
	Accounts TransferAccounts
	Data     TransferData
}

func (Transfer) IxName() string { return "Transfer" }
func (Transfer) isTokenIx() {}

type ApproveAccounts struct {
	Source          types.Pubkey
	Delegate        types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type ApproveData struct {
	Amount uint64
}

type Approve struct {
	Accounts ApproveAccounts
	Data     ApproveData
}

func (Approve) IxName() string { return "Approve" }
func (Approve) isTokenIx() {}

type RevokeAccounts struct {
	Source          types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type Revoke struct {
	Accounts RevokeAccounts
}

func (Revoke) IxName() string { return "Revoke" }
func (Revoke) isTokenIx() {}

type SetAuthorityAccounts struct {
	Account          types.Pubkey
	CurrentAuthority types.Pubkey
	MultisigSigners  []types.Pubkey
}

type SetAuthorityData struct {
	AuthorityType uint8
	NewAuthority  *types.Pubkey
}

type SetAuthority struct {
	Accounts SetAuthorityAccounts
	Data     SetAuthorityData
}

func (SetAuthority) IxName() string { return "SetAuthority" }
func (SetAuthority) isTokenIx() {}

type MintToAccounts struct {
	Mint            types.Pubkey
	Account         types.Pubkey
	MintAuthority   types.Pubkey
	MultisigSigners []types.Pubkey
}

type MintToData struct {
	Amount uint64
}

type MintTo struct {
	Accounts MintToAccounts
	Data     MintToData
}

func (MintTo) IxName() string { return "MintTo" }
func (MintTo) isTokenIx() {}

type BurnAccounts struct {
	Account         types.Pubkey
	Mint            types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type BurnData struct {
	Amount uint64
}

type Burn struct {
	Accounts BurnAccounts
	Data     BurnData
}

func (Burn) IxName() string { return "Burn" }
func (Burn) isTokenIx() {}

type CloseAccountAccounts struct {
	Account         types.Pubkey
	Destination     types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type CloseAccount struct {
	Accounts CloseAccountAccounts
}

func (CloseAccount) IxName() string { return "CloseAccount" }
func (CloseAccount) isTokenIx() {}

type FreezeAccountAccounts struct {
	Account             types.Pubkey
	Mint                types.Pubkey
	MintFreezeAuthority types.Pubkey
	MultisigSigners     []types.Pubkey
}

type FreezeAccount struct {
	Accounts FreezeAccountAccounts
}

func (FreezeAccount) IxName() string { return "FreezeAccount" }
func (FreezeAccount) isTokenIx() {}

type ThawAccount struct {
	Accounts FreezeAccountAccounts
}

func (ThawAccount) IxName() string { return "ThawAccount" }
func (ThawAccount) isTokenIx() {}

type TransferCheckedAccounts struct {
	Source          types.Pubkey
	Mint            types.Pubkey
	Destination     types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type TransferCheckedData struct {
	Amount   uint64
	Decimals uint8
}

type TransferChecked struct {
	Accounts TransferCheckedAccounts
	Data     TransferCheckedData
}

func (TransferChecked) IxName() string { return "TransferChecked" }
func (TransferChecked) isTokenIx() {}

type ApproveCheckedAccounts struct {
	Source          types.Pubkey
	Mint            types.Pubkey
	Delegate        types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type ApproveCheckedData struct {
	Amount   uint64
	Decimals uint8
}

type ApproveChecked struct {
	Accounts ApproveCheckedAccounts
	Data     ApproveCheckedData
}

func (ApproveChecked) IxName() string { return "ApproveChecked" }
func (ApproveChecked) isTokenIx() {}

type MintToCheckedData struct {
	Amount   uint64
	Decimals uint8
}

type MintToChecked struct {
	Accounts MintToAccounts
	Data     MintToCheckedData
}

func (MintToChecked) IxName() string { return "MintToChecked" }
func (MintToChecked) isTokenIx() {}

type BurnCheckedData struct {
	Amount   uint64
	Decimals uint8
}

type BurnChecked struct {
	Accounts BurnAccounts
	Data     BurnCheckedData
}

func (BurnChecked) IxName() string { return "BurnChecked" }
func (BurnChecked) isTokenIx() {}

type SyncNativeAccounts struct {
	Account types.Pubkey
}

type SyncNative struct {
	Accounts SyncNativeAccounts
}

func (SyncNative) IxName() string { return "SyncNative" }
func (SyncNative) isTokenIx() {}

type GetAccountDataSizeAccounts struct {
	Mint types.Pubkey
}

type GetAccountDataSize struct {
	Accounts GetAccountDataSizeAccounts
}

func (GetAccountDataSize) IxName() string { return "GetAccountDataSize" }
func (GetAccountDataSize) isTokenIx() {}

type InitializeImmutableOwnerAccounts struct {
	Account types.Pubkey
}

type InitializeImmutableOwner struct {
	Accounts InitializeImmutableOwnerAccounts
}

func (InitializeImmutableOwner) IxName() string { return "InitializeImmutableOwner" }
func (InitializeImmutableOwner) isTokenIx() {}

type AmountToUiAmountAccounts struct {
	Mint types.Pubkey
}

type AmountToUiAmountData struct {
	Amount uint64
}

type AmountToUiAmount struct {
	Accounts AmountToUiAmountAccounts
	Data     AmountToUiAmountData
}

func (AmountToUiAmount) IxName() string { return "AmountToUiAmount" }
func (AmountToUiAmount) isTokenIx() {}

type UiAmountToAmountAccounts struct {
	Mint types.Pubkey
}

// UiAmountToAmountData 的 UiAmount 是 discriminant 之后的全部剩余字节（无长度前缀）。
type UiAmountToAmountData struct {
	UiAmount string
}

type UiAmountToAmount struct {
	Accounts UiAmountToAmountAccounts
	Data     UiAmountToAmountData
}

func (UiAmountToAmount) IxName() string { return "UiAmountToAmount" }
func (UiAmountToAmount) isTokenIx() {}
