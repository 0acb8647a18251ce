package token2022

import (
	"sol-ix-decoder/internal/consts"
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/types"
)

// ConfidentialTransferIx 是 ConfidentialTransferExtension 子联合体（外层 discriminant 27）。
type ConfidentialTransferIx interface {
	Ix
	isConfidentialTransferIx()
}

const (
	ctInitializeMint uint8 = iota
	ctUpdateMint
	ctConfigureAccount
	ctApproveAccount
	ctEmptyAccount
	ctDeposit
	ctWithdraw
	ctTransfer
	ctApplyPendingBalance
	ctEnableConfidentialCredits
	ctDisableConfidentialCredits
	ctEnableNonConfidentialCredits
	ctDisableNonConfidentialCredits
	ctTransferWithSplitProofs
)

type ConfidentialInitializeMintAccounts struct {
	Mint types.Pubkey
}

type ConfidentialInitializeMint struct {
	Accounts ConfidentialInitializeMintAccounts
}

func (ConfidentialInitializeMint) IxName() string { return "ConfidentialInitializeMint" }
func (ConfidentialInitializeMint) isToken2022Ix() {}
func (ConfidentialInitializeMint) isConfidentialTransferIx() {}

type ConfidentialUpdateMintAccounts struct {
	Mint      types.Pubkey
	Authority types.Pubkey
}

type ConfidentialUpdateMint struct {
	Accounts ConfidentialUpdateMintAccounts
}

func (ConfidentialUpdateMint) IxName() string { return "ConfidentialUpdateMint" }
func (ConfidentialUpdateMint) isToken2022Ix() {}
func (ConfidentialUpdateMint) isConfidentialTransferIx() {}

type ConfigureAccountAccounts struct {
	Account         types.Pubkey
	Mint            types.Pubkey
	Sysvar          types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type ConfigureAccount struct {
	Accounts ConfigureAccountAccounts
}

func (ConfigureAccount) IxName() string { return "ConfigureAccount" }
func (ConfigureAccount) isToken2022Ix() {}
func (ConfigureAccount) isConfidentialTransferIx() {}

type ApproveAccountAccounts struct {
	Account   types.Pubkey
	Mint      types.Pubkey
	Authority types.Pubkey
}

type ApproveAccount struct {
	Accounts ApproveAccountAccounts
}

func (ApproveAccount) IxName() string { return "ApproveAccount" }
func (ApproveAccount) isToken2022Ix() {}
func (ApproveAccount) isConfidentialTransferIx() {}

type EmptyAccountAccounts struct {
	Account         types.Pubkey
	Sysvar          types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type EmptyAccount struct {
	Accounts EmptyAccountAccounts
}

func (EmptyAccount) IxName() string { return "EmptyAccount" }
func (EmptyAccount) isToken2022Ix() {}
func (EmptyAccount) isConfidentialTransferIx() {}

type ConfidentialDepositAccounts struct {
	Account         types.Pubkey
	Mint            types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type ConfidentialDeposit struct {
	Accounts ConfidentialDepositAccounts
}

func (ConfidentialDeposit) IxName() string { return "ConfidentialDeposit" }
func (ConfidentialDeposit) isToken2022Ix() {}
func (ConfidentialDeposit) isConfidentialTransferIx() {}

type ConfidentialWithdrawAccounts struct {
	SourceAccount   types.Pubkey
	Mint            types.Pubkey
	Destination     types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type ConfidentialWithdraw struct {
	Accounts ConfidentialWithdrawAccounts
}

func (ConfidentialWithdraw) IxName() string { return "ConfidentialWithdraw" }
func (ConfidentialWithdraw) isToken2022Ix() {}
func (ConfidentialWithdraw) isConfidentialTransferIx() {}

// ConfidentialTransferAccounts 的 ContextAccount 可能是 sysvar，也可能是 context state 账户。
type ConfidentialTransferAccounts struct {
	SourceAccount   types.Pubkey
	Mint            types.Pubkey
	Destination     types.Pubkey
	ContextAccount  types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type ConfidentialTransfer struct {
	Accounts ConfidentialTransferAccounts
}

func (ConfidentialTransfer) IxName() string { return "ConfidentialTransfer" }
func (ConfidentialTransfer) isToken2022Ix() {}
func (ConfidentialTransfer) isConfidentialTransferIx() {}

type ApplyPendingBalanceAccounts struct {
	Account         types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type ApplyPendingBalance struct {
	Accounts ApplyPendingBalanceAccounts
}

func (ApplyPendingBalance) IxName() string { return "ApplyPendingBalance" }
func (ApplyPendingBalance) isToken2022Ix() {}
func (ApplyPendingBalance) isConfidentialTransferIx() {}

type CreditsAccounts struct {
	Account         types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type EnableConfidentialCredits struct {
	Accounts CreditsAccounts
}

func (EnableConfidentialCredits) IxName() string { return "EnableConfidentialCredits" }
func (EnableConfidentialCredits) isToken2022Ix() {}
func (EnableConfidentialCredits) isConfidentialTransferIx() {}

type DisableConfidentialCredits struct {
	Accounts CreditsAccounts
}

func (DisableConfidentialCredits) IxName() string { return "DisableConfidentialCredits" }
func (DisableConfidentialCredits) isToken2022Ix() {}
func (DisableConfidentialCredits) isConfidentialTransferIx() {}

type EnableNonConfidentialCredits struct {
	Accounts CreditsAccounts
}

func (EnableNonConfidentialCredits) IxName() string { return "EnableNonConfidentialCredits" }
func (EnableNonConfidentialCredits) isToken2022Ix() {}
func (EnableNonConfidentialCredits) isConfidentialTransferIx() {}

type DisableNonConfidentialCredits struct {
	Accounts CreditsAccounts
}

func (DisableNonConfidentialCredits) IxName() string { return "DisableNonConfidentialCredits" }
func (DisableNonConfidentialCredits) isToken2022Ix() {}
func (DisableNonConfidentialCredits) isConfidentialTransferIx() {}

// TransferWithSplitProofsAccounts 的可选账户按观察到的账户数布局填充，
// 未出现的槽位保持 nil。
type TransferWithSplitProofsAccounts struct {
	SourceAccount types.Pubkey
	Mint          types.Pubkey
	Destination   types.Pubkey

	VerifyCiphertextCommitmentEqualityProof             types.Pubkey
	VerifyBatchedGroupedCiphertext2HandlesValidityProof types.Pubkey

	VerifyBatchedRangeProofU128                             *types.Pubkey
	VerifyBatchedRangeProofU256                             *types.Pubkey
	VerifyBatchedGroupedCiphertext2HandlesValidityProofNext *types.Pubkey
	VerifyFeeSigmaProof                                     *types.Pubkey
	DestinationAccountForLamports                           *types.Pubkey
	ContextStateAccountOwner                                *types.Pubkey
	ZkTokenProofProgram                                     *types.Pubkey
	Owner                                                   *types.Pubkey
}

type TransferWithSplitProofs struct {
	Accounts TransferWithSplitProofsAccounts
}

func (TransferWithSplitProofs) IxName() string { return "TransferWithSplitProofs" }
func (TransferWithSplitProofs) isToken2022Ix() {}
func (TransferWithSplitProofs) isConfidentialTransferIx() {}

// parseConfidentialTransfer 解析 ConfidentialTransferExtension 子指令。
func parseConfidentialTransfer(data []byte, accounts []types.Pubkey) (ConfidentialTransferIx, error) {
	if len(data) < 1 {
		return nil, decoder.NewShortPayload("confidential transfer sub-discriminant", 1, 0)
	}
	sub := data[0]
	accountsLen := len(accounts)

	switch sub {
	case ctInitializeMint:
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		return ConfidentialInitializeMint{
			Accounts: ConfidentialInitializeMintAccounts{Mint: accounts[0]},
		}, nil

	case ctUpdateMint:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		return ConfidentialUpdateMint{
			Accounts: ConfidentialUpdateMintAccounts{
				Mint:      accounts[0],
				Authority: accounts[1],
			},
		}, nil

	case ctConfigureAccount:
		if err := decoder.CheckMinAccounts(accountsLen, 4); err != nil {
			return nil, err
		}
		return ConfigureAccount{
			Accounts: ConfigureAccountAccounts{
				Account:         accounts[0],
				Mint:            accounts[1],
				Sysvar:          accounts[2],
				Owner:           accounts[3],
				MultisigSigners: decoder.SignerTail(accounts, 4),
			},
		}, nil

	case ctApproveAccount:
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		return ApproveAccount{
			Accounts: ApproveAccountAccounts{
				Account:   accounts[0],
				Mint:      accounts[1],
				Authority: accounts[2],
			},
		}, nil

	case ctEmptyAccount:
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		return EmptyAccount{
			Accounts: EmptyAccountAccounts{
				Account:         accounts[0],
				Sysvar:          accounts[1],
				Owner:           accounts[2],
				MultisigSigners: decoder.SignerTail(accounts, 3),
			},
		}, nil

	case ctDeposit:
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		return ConfidentialDeposit{
			Accounts: ConfidentialDepositAccounts{
				Account:         accounts[0],
				Mint:            accounts[1],
				Owner:           accounts[2],
				MultisigSigners: decoder.SignerTail(accounts, 3),
			},
		}, nil

	case ctWithdraw:
		if err := decoder.CheckMinAccounts(accountsLen, 4); err != nil {
			return nil, err
		}
		return ConfidentialWithdraw{
			Accounts: ConfidentialWithdrawAccounts{
				SourceAccount:   accounts[0],
				Mint:            accounts[1],
				Destination:     accounts[2],
				Owner:           accounts[3],
				MultisigSigners: decoder.SignerTail(accounts, 4),
			},
		}, nil

	case ctTransfer:
		if err := decoder.CheckMinAccounts(accountsLen, 5); err != nil {
			return nil, err
		}
		return ConfidentialTransfer{
			Accounts: ConfidentialTransferAccounts{
				SourceAccount:   accounts[0],
				Mint:            accounts[1],
				Destination:     accounts[2],
				ContextAccount:  accounts[3],
				Owner:           accounts[4],
				MultisigSigners: decoder.SignerTail(accounts, 5),
			},
		}, nil

	case ctApplyPendingBalance:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		return ApplyPendingBalance{
			Accounts: ApplyPendingBalanceAccounts{
				Account:         accounts[0],
				Owner:           accounts[1],
				MultisigSigners: decoder.SignerTail(accounts, 2),
			},
		}, nil

	case ctEnableConfidentialCredits, ctDisableConfidentialCredits,
		ctEnableNonConfidentialCredits, ctDisableNonConfidentialCredits:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		acc := CreditsAccounts{
			Account:         accounts[0],
			Owner:           accounts[1],
			MultisigSigners: decoder.SignerTail(accounts, 2),
		}
		switch sub {
		case ctEnableConfidentialCredits:
			return EnableConfidentialCredits{Accounts: acc}, nil
		case ctDisableConfidentialCredits:
			return DisableConfidentialCredits{Accounts: acc}, nil
		case ctEnableNonConfidentialCredits:
			return EnableNonConfidentialCredits{Accounts: acc}, nil
		default:
			return DisableNonConfidentialCredits{Accounts: acc}, nil
		}

	case ctTransferWithSplitProofs:
		return parseTransferWithSplitProofs(accounts)

	default:
		return nil, &decoder.UnknownVariantError{Discriminant: uint32(sub)}
	}
}

// parseTransferWithSplitProofs 按精确账户数区分布局：7 / 9 / 11。
// 9 个账户的两种布局用 accounts[8] 是否为 zk proof program 区分。
// 其余任何数量都是未覆盖 arity。
//
// 参考实现在分支前还有一个 min-13 下限检查，使三个分支永不可达；
// 这里按分支本身的语义放行（下限取最小分支 7），差异见 DESIGN.md。
func parseTransferWithSplitProofs(accounts []types.Pubkey) (ConfidentialTransferIx, error) {
	if err := decoder.CheckMinAccounts(len(accounts), 7); err != nil {
		return nil, err
	}

	switch len(accounts) {
	case 7:
		return TransferWithSplitProofs{
			Accounts: TransferWithSplitProofsAccounts{
				SourceAccount: accounts[0],
				Mint:          accounts[1],
				Destination:   accounts[2],
				VerifyCiphertextCommitmentEqualityProof:             accounts[3],
				VerifyBatchedGroupedCiphertext2HandlesValidityProof: accounts[4],
				VerifyBatchedRangeProofU128:                         &accounts[5],
				Owner:                                               &accounts[6],
			},
		}, nil

	case 9:
		if accounts[8] == consts.ZkTokenProofProgram {
			// context state 账户在独立指令中关闭，owner 不在账户列表里
			return TransferWithSplitProofs{
				Accounts: TransferWithSplitProofsAccounts{
					SourceAccount: accounts[0],
					Mint:          accounts[1],
					Destination:   accounts[2],
					VerifyCiphertextCommitmentEqualityProof:             accounts[3],
					VerifyBatchedGroupedCiphertext2HandlesValidityProof: accounts[4],
					VerifyBatchedRangeProofU128:                         &accounts[5],
					DestinationAccountForLamports:                       &accounts[6],
					ContextStateAccountOwner:                            &accounts[7],
					ZkTokenProofProgram:                                 &accounts[8],
				},
			}, nil
		}
		return TransferWithSplitProofs{
			Accounts: TransferWithSplitProofsAccounts{
				SourceAccount: accounts[0],
				Mint:          accounts[1],
				Destination:   accounts[2],
				VerifyCiphertextCommitmentEqualityProof:             accounts[3],
				VerifyBatchedGroupedCiphertext2HandlesValidityProof: accounts[4],
				VerifyFeeSigmaProof:                                 &accounts[5],
				VerifyBatchedRangeProofU256:                         &accounts[6],
				VerifyBatchedGroupedCiphertext2HandlesValidityProofNext: &accounts[7],
				Owner: &accounts[8],
			},
		}, nil

	case 11:
		return TransferWithSplitProofs{
			Accounts: TransferWithSplitProofsAccounts{
				SourceAccount: accounts[0],
				Mint:          accounts[1],
				Destination:   accounts[2],
				VerifyCiphertextCommitmentEqualityProof:             accounts[3],
				VerifyBatchedGroupedCiphertext2HandlesValidityProof: accounts[4],
				VerifyBatchedRangeProofU256:                         &accounts[5],
				VerifyBatchedGroupedCiphertext2HandlesValidityProofNext: &accounts[6],
				VerifyFeeSigmaProof:           &accounts[7],
				DestinationAccountForLamports: &accounts[8],
				ContextStateAccountOwner:      &accounts[9],
				ZkTokenProofProgram:           &accounts[10],
			},
		}, nil

	default:
		return nil, &decoder.UnknownArityError{
			Variant:  "TransferWithSplitProofs",
			Accounts: len(accounts),
		}
	}
}
