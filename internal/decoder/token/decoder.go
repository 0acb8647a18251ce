package token

import (
	sdktoken "github.com/blocto/solana-go-sdk/program/token"
	"github.com/near/borsh-go"

	"sol-ix-decoder/internal/consts"
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/instruction"
	"sol-ix-decoder/internal/types"
)

// Decoder 解码 SPL token program（Tokenkeg）指令。
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) ID() string {
	return "token_program"
}

func (d *Decoder) ProgramID() types.Pubkey {
	return consts.TokenProgram
}

func (d *Decoder) Prefilter() decoder.Prefilter {
	return decoder.NewPrefilter().
		TransactionAccounts(consts.TokenProgram).
		Build()
}

func (d *Decoder) Decode(ix *instruction.Instruction) (decoder.DecodedIx, error) {
	if ix.Program != consts.TokenProgram {
		return nil, decoder.ErrFiltered
	}
	return Parse(ix)
}

// Parse 按 1 字节 discriminant 解码 classic token 指令。
// token-2022 的 0..=24 区间与 classic 完全兼容，由 token2022 包复用本函数。
func Parse(ix *instruction.Instruction) (Ix, error) {
	if len(ix.Data) < 1 {
		return nil, decoder.NewShortPayload("discriminant", 1, 0)
	}
	disc := ix.Data[0]
	rest := ix.Data[1:]
	accounts := ix.Accounts
	accountsLen := len(accounts)

	switch disc {
	case byte(sdktoken.InstructionInitializeMint), byte(sdktoken.InstructionInitializeMint2):
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		var data InitializeMintData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("initialize mint args", 34, len(rest))
		}
		return InitializeMint{
			Accounts: InitializeMintAccounts{Mint: accounts[0]},
			Data:     data,
		}, nil

	case byte(sdktoken.InstructionInitializeAccount):
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		return InitializeAccount{
			Accounts: InitializeAccountAccounts{
				Account: accounts[0],
				Mint:    accounts[1],
				Owner:   accounts[2],
			},
		}, nil

	case byte(sdktoken.InstructionInitializeAccount2):
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		var data InitializeAccount2Data
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("owner", 32, len(rest))
		}
		return InitializeAccount2{
			Accounts: InitializeAccount2Accounts{Account: accounts[0], Mint: accounts[1]},
			Data:     data,
		}, nil

	case byte(sdktoken.InstructionInitializeAccount3):
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		var data InitializeAccount2Data
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("owner", 32, len(rest))
		}
		return InitializeAccount3{
			Accounts: InitializeAccount2Accounts{Account: accounts[0], Mint: accounts[1]},
			Data:     data,
		}, nil

	case byte(sdktoken.InstructionInitializeMultisig):
		// [multisig, rent_sysvar, signer...]
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		var data InitializeMultisigData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("m", 1, len(rest))
		}
		return InitializeMultisig{
			Accounts: InitializeMultisigAccounts{
				Multisig: accounts[0],
				Signers:  accounts[2:],
			},
			Data: data,
		}, nil

	case byte(sdktoken.InstructionInitializeMultisig2):
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		var data InitializeMultisigData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("m", 1, len(rest))
		}
		return InitializeMultisig{
			Accounts: InitializeMultisigAccounts{
				Multisig: accounts[0],
				Signers:  accounts[1:],
			},
			Data: data,
		}, nil

	case byte(sdktoken.InstructionTransfer):
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		var data TransferData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("amount", 8, len(rest))
		}
		return Transfer{
			Accounts: TransferAccounts{
				Source:          accounts[0],
				Destination:     accounts[1],
				Owner:           accounts[2],
				MultisigSigners: decoder.SignerTail(accounts, 3),
			},
			Data: data,
		}, nil

	case byte(sdktoken.InstructionApprove):
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		var data ApproveData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("amount", 8, len(rest))
		}
		return Approve{
			Accounts: ApproveAccounts{
				Source:          accounts[0],
				Delegate:        accounts[1],
				Owner:           accounts[2],
				MultisigSigners: decoder.SignerTail(accounts, 3),
			},
			Data: data,
		}, nil

	case byte(sdktoken.InstructionRevoke):
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		return Revoke{
			Accounts: RevokeAccounts{
				Source:          accounts[0],
				Owner:           accounts[1],
				MultisigSigners: decoder.SignerTail(accounts, 2),
			},
		}, nil

	case byte(sdktoken.InstructionSetAuthority):
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		var data SetAuthorityData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("set authority args", 2, len(rest))
		}
		return SetAuthority{
			Accounts: SetAuthorityAccounts{
				Account:          accounts[0],
				CurrentAuthority: accounts[1],
				MultisigSigners:  decoder.SignerTail(accounts, 2),
			},
			Data: data,
		}, nil

	case byte(sdktoken.InstructionMintTo):
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		var data MintToData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("amount", 8, len(rest))
		}
		return MintTo{
			Accounts: MintToAccounts{
				Mint:            accounts[0],
				Account:         accounts[1],
				MintAuthority:   accounts[2],
				MultisigSigners: decoder.SignerTail(accounts, 3),
			},
			Data: data,
		}, nil

	case byte(sdktoken.InstructionBurn):
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		var data BurnData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("amount", 8, len(rest))
		}
		return Burn{
			Accounts: BurnAccounts{
				Account:         accounts[0],
				Mint:            accounts[1],
				Owner:           accounts[2],
				MultisigSigners: decoder.SignerTail(accounts, 3),
			},
			Data: data,
		}, nil

	case byte(sdktoken.InstructionCloseAccount):
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		return CloseAccount{
			Accounts: CloseAccountAccounts{
				Account:         accounts[0],
				Destination:     accounts[1],
				Owner:           accounts[2],
				MultisigSigners: decoder.SignerTail(accounts, 3),
			},
		}, nil

	case byte(sdktoken.InstructionFreezeAccount):
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		return FreezeAccount{
			Accounts: FreezeAccountAccounts{
				Account:             accounts[0],
				Mint:                accounts[1],
				MintFreezeAuthority: accounts[2],
				MultisigSigners:     decoder.SignerTail(accounts, 3),
			},
		}, nil

	case byte(sdktoken.InstructionThawAccount):
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		return ThawAccount{
			Accounts: FreezeAccountAccounts{
				Account:             accounts[0],
				Mint:                accounts[1],
				MintFreezeAuthority: accounts[2],
				MultisigSigners:     decoder.SignerTail(accounts, 3),
			},
		}, nil

	case byte(sdktoken.InstructionTransferChecked):
		if err := decoder.CheckMinAccounts(accountsLen, 4); err != nil {
			return nil, err
		}
		var data TransferCheckedData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("transfer checked args", 9, len(rest))
		}
		return TransferChecked{
			Accounts: TransferCheckedAccounts{
				Source:          accounts[0],
				Mint:            accounts[1],
				Destination:     accounts[2],
				Owner:           accounts[3],
				MultisigSigners: decoder.SignerTail(accounts, 4),
			},
			Data: data,
		}, nil

	case byte(sdktoken.InstructionApproveChecked):
		if err := decoder.CheckMinAccounts(accountsLen, 4); err != nil {
			return nil, err
		}
		var data ApproveCheckedData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("approve checked args", 9, len(rest))
		}
		return ApproveChecked{
			Accounts: ApproveCheckedAccounts{
				Source:          accounts[0],
				Mint:            accounts[1],
				Delegate:        accounts[2],
				Owner:           accounts[3],
				MultisigSigners: decoder.SignerTail(accounts, 4),
			},
			Data: data,
		}, nil

	case byte(sdktoken.InstructionMintToChecked):
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		var data MintToCheckedData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("mint to checked args", 9, len(rest))
		}
		return MintToChecked{
			Accounts: MintToAccounts{
				Mint:            accounts[0],
				Account:         accounts[1],
				MintAuthority:   accounts[2],
				MultisigSigners: decoder.SignerTail(accounts, 3),
			},
			Data: data,
		}, nil

	case byte(sdktoken.InstructionBurnChecked):
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		var data BurnCheckedData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("burn checked args", 9, len(rest))
		}
		return BurnChecked{
			Accounts: BurnAccounts{
				Account:         accounts[0],
				Mint:            accounts[1],
				Owner:           accounts[2],
				MultisigSigners: decoder.SignerTail(accounts, 3),
			},
			Data: data,
		}, nil

	case byte(sdktoken.InstructionSyncNative):
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		return SyncNative{
			Accounts: SyncNativeAccounts{Account: accounts[0]},
		}, nil

	case byte(sdktoken.InstructionGetAccountDataSize):
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		return GetAccountDataSize{
			Accounts: GetAccountDataSizeAccounts{Mint: accounts[0]},
		}, nil

	case byte(sdktoken.InstructionInitializeImmutableOwner):
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		return InitializeImmutableOwner{
			Accounts: InitializeImmutableOwnerAccounts{Account: accounts[0]},
		}, nil

	case byte(sdktoken.InstructionAmountToUiAmount):
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		var data AmountToUiAmountData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("amount", 8, len(rest))
		}
		return AmountToUiAmount{
			Accounts: AmountToUiAmountAccounts{Mint: accounts[0]},
			Data:     data,
		}, nil

	case byte(sdktoken.InstructionUiAmountToAmount):
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		return UiAmountToAmount{
			Accounts: UiAmountToAmountAccounts{Mint: accounts[0]},
			Data:     UiAmountToAmountData{UiAmount: string(rest)},
		}, nil

	default:
		return nil, &decoder.UnknownVariantError{Discriminant: uint32(disc)}
	}
}
