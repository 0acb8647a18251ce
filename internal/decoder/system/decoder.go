package system

import (
	"sol-ix-decoder/internal/consts"
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/instruction"
	"sol-ix-decoder/internal/types"
)

// system program 的 bincode 指令 discriminant（u32 小端前缀）。
const (
	ixCreateAccount uint32 = iota
	ixAssign
	ixTransfer
	ixCreateAccountWithSeed
	ixAdvanceNonceAccount
	ixWithdrawNonceAccount
	ixInitializeNonceAccount
	ixAuthorizeNonceAccount
	ixAllocate
	ixAllocateWithSeed
	ixAssignWithSeed
	ixTransferWithSeed
	ixUpgradeNonceAccount
)

// Decoder 解码 system program（账户创建 / 转账 / nonce 生命周期）指令。
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) ID() string {
	return "system_program"
}

func (d *Decoder) ProgramID() types.Pubkey {
	return consts.SystemProgram
}

func (d *Decoder) Prefilter() decoder.Prefilter {
	return decoder.NewPrefilter().
		TransactionAccounts(consts.SystemProgram).
		Build()
}

func (d *Decoder) Decode(ix *instruction.Instruction) (decoder.DecodedIx, error) {
	if ix.Program != consts.SystemProgram {
		return nil, decoder.ErrFiltered
	}
	return parse(ix)
}

func parse(ix *instruction.Instruction) (decoder.DecodedIx, error) {
	r := decoder.NewDataReader(ix.Data)
	disc, err := r.ReadUint32("discriminant")
	if err != nil {
		return nil, err
	}
	accounts := ix.Accounts
	accountsLen := len(accounts)

	switch disc {
	case ixCreateAccount:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		var data CreateAccountData
		if data.Lamports, err = r.ReadUint64("lamports"); err != nil {
			return nil, err
		}
		if data.Space, err = r.ReadUint64("space"); err != nil {
			return nil, err
		}
		if data.Owner, err = r.ReadPubkey("owner"); err != nil {
			return nil, err
		}
		return CreateAccount{
			Accounts: CreateAccountAccounts{From: accounts[0], To: accounts[1]},
			Data:     data,
		}, nil

	case ixAssign:
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		var data AssignData
		if data.Owner, err = r.ReadPubkey("owner"); err != nil {
			return nil, err
		}
		return Assign{
			Accounts: AssignAccounts{Account: accounts[0]},
			Data:     data,
		}, nil

	case ixTransfer:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		var data TransferData
		if data.Lamports, err = r.ReadUint64("lamports"); err != nil {
			return nil, err
		}
		return Transfer{
			Accounts: TransferAccounts{From: accounts[0], To: accounts[1]},
			Data:     data,
		}, nil

	case ixCreateAccountWithSeed:
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		var data CreateAccountWithSeedData
		if data.Base, err = r.ReadPubkey("base"); err != nil {
			return nil, err
		}
		if data.Seed, err = r.ReadBincodeString("seed"); err != nil {
			return nil, err
		}
		if data.Lamports, err = r.ReadUint64("lamports"); err != nil {
			return nil, err
		}
		if data.Space, err = r.ReadUint64("space"); err != nil {
			return nil, err
		}
		if data.Owner, err = r.ReadPubkey("owner"); err != nil {
			return nil, err
		}
		return CreateAccountWithSeed{
			Accounts: CreateAccountWithSeedAccounts{From: accounts[0], To: accounts[1], Base: accounts[2]},
			Data:     data,
		}, nil

	case ixAdvanceNonceAccount:
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		return AdvanceNonceAccount{
			Accounts: AdvanceNonceAccountAccounts{
				NonceAccount:            accounts[0],
				RecentBlockhashesSysvar: accounts[1],
				NonceAuthority:          accounts[2],
			},
		}, nil

	case ixWithdrawNonceAccount:
		if err := decoder.CheckMinAccounts(accountsLen, 5); err != nil {
			return nil, err
		}
		var data WithdrawNonceAccountData
		if data.Lamports, err = r.ReadUint64("lamports"); err != nil {
			return nil, err
		}
		return WithdrawNonceAccount{
			Accounts: WithdrawNonceAccountAccounts{
				NonceAccount:            accounts[0],
				To:                      accounts[1],
				RecentBlockhashesSysvar: accounts[2],
				RentSysvar:              accounts[3],
				NonceAuthority:          accounts[4],
			},
			Data: data,
		}, nil

	case ixInitializeNonceAccount:
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		var data InitializeNonceAccountData
		if data.Authority, err = r.ReadPubkey("authority"); err != nil {
			return nil, err
		}
		return InitializeNonceAccount{
			Accounts: InitializeNonceAccountAccounts{
				NonceAccount:            accounts[0],
				RecentBlockhashesSysvar: accounts[1],
				RentSysvar:              accounts[2],
			},
			Data: data,
		}, nil

	case ixAuthorizeNonceAccount:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		var data AuthorizeNonceAccountData
		if data.NewAuthority, err = r.ReadPubkey("new authority"); err != nil {
			return nil, err
		}
		return AuthorizeNonceAccount{
			Accounts: AuthorizeNonceAccountAccounts{
				NonceAccount:   accounts[0],
				NonceAuthority: accounts[1],
			},
			Data: data,
		}, nil

	case ixAllocate:
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		var data AllocateData
		if data.Space, err = r.ReadUint64("space"); err != nil {
			return nil, err
		}
		return Allocate{
			Accounts: AllocateAccounts{Account: accounts[0]},
			Data:     data,
		}, nil

	case ixAllocateWithSeed:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		var data AllocateWithSeedData
		if data.Base, err = r.ReadPubkey("base"); err != nil {
			return nil, err
		}
		if data.Seed, err = r.ReadBincodeString("seed"); err != nil {
			return nil, err
		}
		if data.Space, err = r.ReadUint64("space"); err != nil {
			return nil, err
		}
		if data.Owner, err = r.ReadPubkey("owner"); err != nil {
			return nil, err
		}
		return AllocateWithSeed{
			Accounts: AllocateWithSeedAccounts{Account: accounts[0], Base: accounts[1]},
			Data:     data,
		}, nil

	case ixAssignWithSeed:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		var data AssignWithSeedData
		if data.Base, err = r.ReadPubkey("base"); err != nil {
			return nil, err
		}
		if data.Seed, err = r.ReadBincodeString("seed"); err != nil {
			return nil, err
		}
		if data.Owner, err = r.ReadPubkey("owner"); err != nil {
			return nil, err
		}
		return AssignWithSeed{
			Accounts: AssignWithSeedAccounts{Account: accounts[0], Base: accounts[1]},
			Data:     data,
		}, nil

	case ixTransferWithSeed:
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		var data TransferWithSeedData
		if data.Lamports, err = r.ReadUint64("lamports"); err != nil {
			return nil, err
		}
		if data.FromSeed, err = r.ReadBincodeString("from seed"); err != nil {
			return nil, err
		}
		if data.FromOwner, err = r.ReadPubkey("from owner"); err != nil {
			return nil, err
		}
		return TransferWithSeed{
			Accounts: TransferWithSeedAccounts{From: accounts[0], FromBase: accounts[1], To: accounts[2]},
			Data:     data,
		}, nil

	case ixUpgradeNonceAccount:
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		return UpgradeNonceAccount{
			Accounts: UpgradeNonceAccountAccounts{NonceAccount: accounts[0]},
		}, nil

	default:
		return nil, &decoder.UnknownVariantError{Discriminant: disc}
	}
}
