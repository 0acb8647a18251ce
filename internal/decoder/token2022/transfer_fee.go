package token2022

import (
	"github.com/near/borsh-go"

	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/types"
)

// TransferFeeIx 是 TransferFeeExtension 子联合体（外层 discriminant 26）。
type TransferFeeIx interface {
	Ix
	isTransferFeeIx()
}

const (
	tfInitializeTransferFeeConfig uint8 = iota
	tfTransferCheckedWithFee
	tfWithdrawWithheldTokensFromMint
	tfWithdrawWithheldTokensFromAccounts
	tfHarvestWithheldTokensToMint
	tfSetTransferFee
)

type InitializeTransferFeeConfigAccounts struct {
	Mint types.Pubkey
}

type InitializeTransferFeeConfigData struct {
	TransferFeeConfigAuthority *types.Pubkey
	WithdrawWithheldAuthority  *types.Pubkey
	TransferFeeBasisPoints     uint16
	MaximumFee                 uint64
}

type InitializeTransferFeeConfig struct {
	Accounts InitializeTransferFeeConfigAccounts
	Data     InitializeTransferFeeConfigData
}

func (InitializeTransferFeeConfig) IxName() string { return "InitializeTransferFeeConfig" }
func (InitializeTransferFeeConfig) isToken2022Ix() {}
func (InitializeTransferFeeConfig) isTransferFeeIx() {}

type TransferCheckedWithFeeAccounts struct {
	Source          types.Pubkey
	Mint            types.Pubkey
	Destination     types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type TransferCheckedWithFeeData struct {
	Amount   uint64
	Decimals uint8
	Fee      uint64
}

type TransferCheckedWithFee struct {
	Accounts TransferCheckedWithFeeAccounts
	Data     TransferCheckedWithFeeData
}

func (TransferCheckedWithFee) IxName() string { return "TransferCheckedWithFee" }
func (TransferCheckedWithFee) isToken2022Ix() {}
func (TransferCheckedWithFee) isTransferFeeIx() {}

type WithdrawWithheldTokensFromMintAccounts struct {
	Mint                      types.Pubkey
	FeeRecipient              types.Pubkey
	WithdrawWithheldAuthority types.Pubkey
	MultisigSigners           []types.Pubkey
}

type WithdrawWithheldTokensFromMint struct {
	Accounts WithdrawWithheldTokensFromMintAccounts
}

func (WithdrawWithheldTokensFromMint) IxName() string { return "WithdrawWithheldTokensFromMint" }
func (WithdrawWithheldTokensFromMint) isToken2022Ix() {}
func (WithdrawWithheldTokensFromMint) isTransferFeeIx() {}

type WithdrawWithheldTokensFromAccountsAccounts struct {
	Mint                      types.Pubkey
	FeeRecipient              types.Pubkey
	WithdrawWithheldAuthority types.Pubkey
	SourceAccounts            []types.Pubkey
}

type WithdrawWithheldTokensFromAccountsData struct {
	NumTokenAccounts uint8
}

type WithdrawWithheldTokensFromAccounts struct {
	Accounts WithdrawWithheldTokensFromAccountsAccounts
	Data     WithdrawWithheldTokensFromAccountsData
}

func (WithdrawWithheldTokensFromAccounts) IxName() string {
	return "WithdrawWithheldTokensFromAccounts"
}
func (WithdrawWithheldTokensFromAccounts) isToken2022Ix() {}
func (WithdrawWithheldTokensFromAccounts) isTransferFeeIx() {}

type HarvestWithheldTokensToMintAccounts struct {
	Mint           types.Pubkey
	SourceAccounts []types.Pubkey
}

type HarvestWithheldTokensToMint struct {
	Accounts HarvestWithheldTokensToMintAccounts
}

func (HarvestWithheldTokensToMint) IxName() string { return "HarvestWithheldTokensToMint" }
func (HarvestWithheldTokensToMint) isToken2022Ix() {}
func (HarvestWithheldTokensToMint) isTransferFeeIx() {}

type SetTransferFeeAccounts struct {
	Mint            types.Pubkey
	Authority       types.Pubkey
	MultisigSigners []types.Pubkey
}

type SetTransferFeeData struct {
	TransferFeeBasisPoints uint16
	MaximumFee             uint64
}

type SetTransferFee struct {
	Accounts SetTransferFeeAccounts
	Data     SetTransferFeeData
}

func (SetTransferFee) IxName() string { return "SetTransferFee" }
func (SetTransferFee) isToken2022Ix() {}
func (SetTransferFee) isTransferFeeIx() {}

// parseTransferFee 解析 TransferFeeExtension 子指令，data 从子 discriminant 起。
func parseTransferFee(data []byte, accounts []types.Pubkey) (TransferFeeIx, error) {
	if len(data) < 1 {
		return nil, decoder.NewShortPayload("transfer fee sub-discriminant", 1, 0)
	}
	sub := data[0]
	rest := data[1:]
	accountsLen := len(accounts)

	switch sub {
	case tfInitializeTransferFeeConfig:
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		var d InitializeTransferFeeConfigData
		if err := borsh.Deserialize(&d, rest); err != nil {
			return nil, decoder.NewShortPayload("transfer fee config args", 12, len(rest))
		}
		return InitializeTransferFeeConfig{
			Accounts: InitializeTransferFeeConfigAccounts{Mint: accounts[0]},
			Data:     d,
		}, nil

	case tfTransferCheckedWithFee:
		if err := decoder.CheckMinAccounts(accountsLen, 4); err != nil {
			return nil, err
		}
		var d TransferCheckedWithFeeData
		if err := borsh.Deserialize(&d, rest); err != nil {
			return nil, decoder.NewShortPayload("transfer checked with fee args", 17, len(rest))
		}
		return TransferCheckedWithFee{
			Accounts: TransferCheckedWithFeeAccounts{
				Source:          accounts[0],
				Mint:            accounts[1],
				Destination:     accounts[2],
				Owner:           accounts[3],
				MultisigSigners: decoder.SignerTail(accounts, 4),
			},
			Data: d,
		}, nil

	case tfWithdrawWithheldTokensFromMint:
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		return WithdrawWithheldTokensFromMint{
			Accounts: WithdrawWithheldTokensFromMintAccounts{
				Mint:                      accounts[0],
				FeeRecipient:              accounts[1],
				WithdrawWithheldAuthority: accounts[2],
				MultisigSigners:           decoder.SignerTail(accounts, 3),
			},
		}, nil

	case tfWithdrawWithheldTokensFromAccounts:
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		var d WithdrawWithheldTokensFromAccountsData
		if err := borsh.Deserialize(&d, rest); err != nil {
			return nil, decoder.NewShortPayload("num token accounts", 1, len(rest))
		}
		return WithdrawWithheldTokensFromAccounts{
			Accounts: WithdrawWithheldTokensFromAccountsAccounts{
				Mint:                      accounts[0],
				FeeRecipient:              accounts[1],
				WithdrawWithheldAuthority: accounts[2],
				SourceAccounts:            decoder.SignerTail(accounts, 3),
			},
			Data: d,
		}, nil

	case tfHarvestWithheldTokensToMint:
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		return HarvestWithheldTokensToMint{
			Accounts: HarvestWithheldTokensToMintAccounts{
				Mint:           accounts[0],
				SourceAccounts: decoder.SignerTail(accounts, 1),
			},
		}, nil

	case tfSetTransferFee:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		var d SetTransferFeeData
		if err := borsh.Deserialize(&d, rest); err != nil {
			return nil, decoder.NewShortPayload("set transfer fee args", 10, len(rest))
		}
		return SetTransferFee{
			Accounts: SetTransferFeeAccounts{
				Mint:            accounts[0],
				Authority:       accounts[1],
				MultisigSigners: decoder.SignerTail(accounts, 2),
			},
			Data: d,
		}, nil

	default:
		return nil, &decoder.UnknownVariantError{Discriminant: uint32(sub)}
	}
}
