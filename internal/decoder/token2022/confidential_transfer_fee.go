package token2022

import (
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/types"
)

// ConfidentialTransferFeeIx 是 ConfidentialTransferFeeExtension 子联合体（外层 discriminant 37）。
type ConfidentialTransferFeeIx interface {
	Ix
	isConfidentialTransferFeeIx()
}

const (
	ctfInitializeConfidentialTransferFeeConfig uint8 = iota
	ctfWithdrawWithheldTokensFromMint
	ctfWithdrawWithheldTokensFromAccounts
	ctfHarvestWithheldTokensToMint
	ctfEnableHarvestToMint
	ctfDisableHarvestToMint
)

type InitializeConfidentialTransferFeeConfigAccounts struct {
	Mint types.Pubkey
}

type InitializeConfidentialTransferFeeConfig struct {
	Accounts InitializeConfidentialTransferFeeConfigAccounts
}

func (InitializeConfidentialTransferFeeConfig) IxName() string {
	return "InitializeConfidentialTransferFeeConfig"
}
func (InitializeConfidentialTransferFeeConfig) isToken2022Ix() {}
func (InitializeConfidentialTransferFeeConfig) isConfidentialTransferFeeIx() {}

type ConfidentialWithdrawWithheldFromMintAccounts struct {
	Mint                      types.Pubkey
	FeeRecipient              types.Pubkey
	Sysvar                    types.Pubkey
	WithdrawWithheldAuthority types.Pubkey
	MultisigSigners           []types.Pubkey
}

type ConfidentialWithdrawWithheldFromMint struct {
	Accounts ConfidentialWithdrawWithheldFromMintAccounts
}

func (ConfidentialWithdrawWithheldFromMint) IxName() string {
	return "ConfidentialWithdrawWithheldTokensFromMint"
}
func (ConfidentialWithdrawWithheldFromMint) isToken2022Ix() {}
func (ConfidentialWithdrawWithheldFromMint) isConfidentialTransferFeeIx() {}

type ConfidentialWithdrawWithheldFromAccountsAccounts struct {
	Mint                      types.Pubkey
	FeeRecipient              types.Pubkey
	Sysvar                    types.Pubkey
	WithdrawWithheldAuthority types.Pubkey
	SourceAccounts            []types.Pubkey
}

type ConfidentialWithdrawWithheldFromAccounts struct {
	Accounts ConfidentialWithdrawWithheldFromAccountsAccounts
}

func (ConfidentialWithdrawWithheldFromAccounts) IxName() string {
	return "ConfidentialWithdrawWithheldTokensFromAccounts"
}
func (ConfidentialWithdrawWithheldFromAccounts) isToken2022Ix() {}
func (ConfidentialWithdrawWithheldFromAccounts) isConfidentialTransferFeeIx() {}

type ConfidentialHarvestWithheldToMintAccounts struct {
	Mint           types.Pubkey
	SourceAccounts []types.Pubkey
}

type ConfidentialHarvestWithheldToMint struct {
	Accounts ConfidentialHarvestWithheldToMintAccounts
}

func (ConfidentialHarvestWithheldToMint) IxName() string {
	return "ConfidentialHarvestWithheldTokensToMint"
}
func (ConfidentialHarvestWithheldToMint) isToken2022Ix() {}
func (ConfidentialHarvestWithheldToMint) isConfidentialTransferFeeIx() {}

type EnableHarvestToMintAccounts struct {
	Mint                             types.Pubkey
	ConfidentialTransferFeeAuthority types.Pubkey
	MultisigSigners                  []types.Pubkey
}

type EnableHarvestToMint struct {
	Accounts EnableHarvestToMintAccounts
}

func (EnableHarvestToMint) IxName() string { return "EnableHarvestToMint" }
func (EnableHarvestToMint) isToken2022Ix() {}
func (EnableHarvestToMint) isConfidentialTransferFeeIx() {}

type DisableHarvestToMintAccounts struct {
	Account                          types.Pubkey
	ConfidentialTransferFeeAuthority types.Pubkey
	MultisigSigners                  []types.Pubkey
}

type DisableHarvestToMint struct {
	Accounts DisableHarvestToMintAccounts
}

func (DisableHarvestToMint) IxName() string { return "DisableHarvestToMint" }
func (DisableHarvestToMint) isToken2022Ix() {}
func (DisableHarvestToMint) isConfidentialTransferFeeIx() {}

// parseConfidentialTransferFee 解析 ConfidentialTransferFeeExtension 子指令。
func parseConfidentialTransferFee(data []byte, accounts []types.Pubkey) (ConfidentialTransferFeeIx, error) {
	if len(data) < 1 {
		return nil, decoder.NewShortPayload("confidential transfer fee sub-discriminant", 1, 0)
	}
	sub := data[0]
	accountsLen := len(accounts)

	switch sub {
	case ctfInitializeConfidentialTransferFeeConfig:
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		return InitializeConfidentialTransferFeeConfig{
			Accounts: InitializeConfidentialTransferFeeConfigAccounts{Mint: accounts[0]},
		}, nil

	case ctfWithdrawWithheldTokensFromMint:
		if err := decoder.CheckMinAccounts(accountsLen, 4); err != nil {
			return nil, err
		}
		return ConfidentialWithdrawWithheldFromMint{
			Accounts: ConfidentialWithdrawWithheldFromMintAccounts{
				Mint:                      accounts[0],
				FeeRecipient:              accounts[1],
				Sysvar:                    accounts[2],
				WithdrawWithheldAuthority: accounts[3],
				MultisigSigners:           decoder.SignerTail(accounts, 4),
			},
		}, nil

	case ctfWithdrawWithheldTokensFromAccounts:
		if err := decoder.CheckMinAccounts(accountsLen, 5); err != nil {
			return nil, err
		}
		return ConfidentialWithdrawWithheldFromAccounts{
			Accounts: ConfidentialWithdrawWithheldFromAccountsAccounts{
				Mint:                      accounts[0],
				FeeRecipient:              accounts[1],
				Sysvar:                    accounts[2],
				WithdrawWithheldAuthority: accounts[3],
				SourceAccounts:            decoder.SignerTail(accounts, 4),
			},
		}, nil

	case ctfHarvestWithheldTokensToMint:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		return ConfidentialHarvestWithheldToMint{
			Accounts: ConfidentialHarvestWithheldToMintAccounts{
				Mint:           accounts[0],
				SourceAccounts: decoder.SignerTail(accounts, 1),
			},
		}, nil

	case ctfEnableHarvestToMint:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		return EnableHarvestToMint{
			Accounts: EnableHarvestToMintAccounts{
				Mint:                             accounts[0],
				ConfidentialTransferFeeAuthority: accounts[1],
				MultisigSigners:                  decoder.SignerTail(accounts, 2),
			},
		}, nil

	case ctfDisableHarvestToMint:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		return DisableHarvestToMint{
			Accounts: DisableHarvestToMintAccounts{
				Account:                          accounts[0],
				ConfidentialTransferFeeAuthority: accounts[1],
				MultisigSigners:                  decoder.SignerTail(accounts, 2),
			},
		}, nil

	default:
		return nil, &decoder.UnknownVariantError{Discriminant: uint32(sub)}
	}
}
