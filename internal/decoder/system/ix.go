package system

import "sol-ix-decoder/internal/types"

// Ix 是 system program 指令联合体，封闭集合：每个 wire variant 对应一个实现。
type Ix interface {
	IxName() string
	isSystemIx()
}

type CreateAccountAccounts struct {
	From types.Pubkey
	To   types.Pubkey
}

type CreateAccountData struct {
	Lamports uint64
	Space    uint64
	Owner    types.Pubkey
}

type CreateAccount struct {
	Accounts CreateAccountAccounts
	Data     CreateAccountData
}

func (CreateAccount) IxName() string { return "CreateAccount" }
func (CreateAccount) isSystemIx() {}

type AssignAccounts struct {
	Account types.Pubkey
}

type AssignData struct {
	Owner types.Pubkey
}

type Assign struct {
	Accounts AssignAccounts
	Data     AssignData
}

func (Assign) IxName() string { return "Assign" }
func (Assign) isSystemIx() {}

type TransferAccounts struct {
	From types.Pubkey
	To   types.Pubkey
}

type TransferData struct {
	Lamports uint64
}

type Transfer struct {
	Accounts TransferAccounts
	Data     TransferData
}

func (Transfer) IxName() string { return "Transfer" }
func (Transfer) isSystemIx() {}

type CreateAccountWithSeedAccounts struct {
	From types.Pubkey
	To   types.Pubkey
	Base types.Pubkey
}

type CreateAccountWithSeedData struct {
	Base     types.Pubkey
	Seed     string
	Lamports uint64
	Space    uint64
	Owner    types.Pubkey
}

type CreateAccountWithSeed struct {
	Accounts CreateAccountWithSeedAccounts
	Data     CreateAccountWithSeedData
}

func (CreateAccountWithSeed) IxName() string { return "CreateAccountWithSeed" }
func (CreateAccountWithSeed) isSystemIx() {}

type AdvanceNonceAccountAccounts struct {
	NonceAccount            types.Pubkey
	RecentBlockhashesSysvar types.Pubkey
	NonceAuthority          types.Pubkey
}

type AdvanceNonceAccount struct {
	Accounts AdvanceNonceAccountAccounts
}

func (AdvanceNonceAccount) IxName() string { return "AdvanceNonceAccount" }
func (AdvanceNonceAccount) isSystemIx() {}

type WithdrawNonceAccountAccounts struct {
	NonceAccount            types.Pubkey
	To                      types.Pubkey
	RecentBlockhashesSysvar types.Pubkey
	RentSysvar              types.Pubkey
	NonceAuthority          types.Pubkey
}

type WithdrawNonceAccountData struct {
	Lamports uint64
}

type WithdrawNonceAccount struct {
	Accounts WithdrawNonceAccountAccounts
	Data     WithdrawNonceAccountData
}

func (WithdrawNonceAccount) IxName() string { return "WithdrawNonceAccount" }
func (WithdrawNonceAccount) isSystemIx() {}

type InitializeNonceAccountAccounts struct {
	NonceAccount            types.Pubkey
	RecentBlockhashesSysvar types.Pubkey
	RentSysvar              types.Pubkey
}

type InitializeNonceAccountData struct {
	Authority types.Pubkey
}

type InitializeNonceAccount struct {
	Accounts InitializeNonceAccountAccounts
	Data     InitializeNonceAccountData
}

func (InitializeNonceAccount) IxName() string { return "InitializeNonceAccount" }
func (InitializeNonceAccount) isSystemIx() {}

type AuthorizeNonceAccountAccounts struct {
	NonceAccount   types.Pubkey
	NonceAuthority types.Pubkey
}

type AuthorizeNonceAccountData struct {
	NewAuthority types.Pubkey
}

type AuthorizeNonceAccount struct {
	Accounts AuthorizeNonceAccountAccounts
	Data     AuthorizeNonceAccountData
}

func (AuthorizeNonceAccount) IxName() string { return "AuthorizeNonceAccount" }
func (AuthorizeNonceAccount) isSystemIx() {}

type AllocateAccounts struct {
	Account types.Pubkey
}

type AllocateData struct {
	Space uint64
}

type Allocate struct {
	Accounts AllocateAccounts
	Data     AllocateData
}

func (Allocate) IxName() string { return "Allocate" }
func (Allocate) isSystemIx() {}

type AllocateWithSeedAccounts struct {
	Account types.Pubkey
	Base    types.Pubkey
}

type AllocateWithSeedData struct {
	Base  types.Pubkey
	Seed  string
	Space uint64
	Owner types.Pubkey
}

type AllocateWithSeed struct {
	Accounts AllocateWithSeedAccounts
	Data     AllocateWithSeedData
}

func (AllocateWithSeed) IxName() string { return "AllocateWithSeed" }
func (AllocateWithSeed) isSystemIx() {}

type AssignWithSeedAccounts struct {
	Account types.Pubkey
	Base    types.Pubkey
}

type AssignWithSeedData struct {
	Base  types.Pubkey
	Seed  string
	Owner types.Pubkey
}

type AssignWithSeed struct {
	Accounts AssignWithSeedAccounts
	Data     AssignWithSeedData
}

func (AssignWithSeed) IxName() string { return "AssignWithSeed" }
func (AssignWithSeed) isSystemIx() {}

type TransferWithSeedAccounts struct {
	From     types.Pubkey
	FromBase types.Pubkey
	To       types.Pubkey
}

type TransferWithSeedData struct {
	Lamports  uint64
	FromSeed  string
	FromOwner types.Pubkey
}

type TransferWithSeed struct {
	Accounts TransferWithSeedAccounts
	Data     TransferWithSeedData
}

func (TransferWithSeed) IxName() string { return "TransferWithSeed" }
func (TransferWithSeed) isSystemIx() {}

type UpgradeNonceAccountAccounts struct {
	NonceAccount types.Pubkey
}

type UpgradeNonceAccount struct {
	Accounts UpgradeNonceAccountAccounts
}

func (UpgradeNonceAccount) IxName() string { return "UpgradeNonceAccount" }
func (UpgradeNonceAccount) isSystemIx() {}
