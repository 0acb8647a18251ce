package token2022

import (
	sdktoken "github.com/blocto/solana-go-sdk/program/token"
	"github.com/near/borsh-go"

	"sol-ix-decoder/internal/consts"
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/decoder/token"
	"sol-ix-decoder/internal/instruction"
	"sol-ix-decoder/internal/types"
)

// token-2022 独有 discriminant（classic 区间 0..=24 之后）。
const (
	ixInitializeMintCloseAuthority uint8 = 25 + iota
	ixTransferFeeExtension
	ixConfidentialTransferExtension
	ixDefaultAccountStateExtension
	ixReallocate
	ixMemoTransferExtension
	ixCreateNativeMint
	ixInitializeNonTransferableMint
	ixInterestBearingMintExtension
	ixCpiGuardExtension
	ixInitializePermanentDelegate
	ixTransferHookExtension
	ixConfidentialTransferFeeExtension
	ixWithdrawExcessLamports
	ixMetadataPointerExtension
	ixGroupPointerExtension
	ixGroupMemberPointerExtension
)

// Decoder 解码 token-2022（Tokenz）指令：classic 兼容区间复用 token 包的
// 解码核心，扩展族分派到各自的子解析器。
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) ID() string {
	return "token_2022_program"
}

func (d *Decoder) ProgramID() types.Pubkey {
	return consts.TokenProgram2022
}

func (d *Decoder) Prefilter() decoder.Prefilter {
	return decoder.NewPrefilter().
		TransactionAccounts(consts.TokenProgram2022).
		Build()
}

func (d *Decoder) Decode(ix *instruction.Instruction) (decoder.DecodedIx, error) {
	if ix.Program != consts.TokenProgram2022 {
		return nil, decoder.ErrFiltered
	}
	return parse(ix)
}

func parse(ix *instruction.Instruction) (decoder.DecodedIx, error) {
	if len(ix.Data) < 1 {
		return nil, decoder.NewShortPayload("discriminant", 1, 0)
	}
	disc := ix.Data[0]
	rest := ix.Data[1:]
	accounts := ix.Accounts
	accountsLen := len(accounts)

	// SetAuthority 的 AuthorityType 在 2022 下有扩展取值，单独建模；
	// 其余 classic 区间与 Tokenkeg 布局完全一致。
	if disc <= byte(sdktoken.InstructionUiAmountToAmount) {
		if disc == byte(sdktoken.InstructionSetAuthority) {
			if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
				return nil, err
			}
			var data token.SetAuthorityData
			if err := borsh.Deserialize(&data, rest); err != nil {
				return nil, decoder.NewShortPayload("set authority args", 2, len(rest))
			}
			return SetAuthority{
				Accounts: token.SetAuthorityAccounts{
					Account:          accounts[0],
					CurrentAuthority: accounts[1],
					MultisigSigners:  decoder.SignerTail(accounts, 2),
				},
				Data: data,
			}, nil
		}
		inner, err := token.Parse(ix)
		if err != nil {
			return nil, err
		}
		return Classic{Ix: inner}, nil
	}

	switch disc {
	case ixInitializeMintCloseAuthority:
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		var data InitializeMintCloseAuthorityData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("close authority", 1, len(rest))
		}
		return InitializeMintCloseAuthority{
			Accounts: InitializeMintCloseAuthorityAccounts{Mint: accounts[0]},
			Data:     data,
		}, nil

	case ixTransferFeeExtension:
		return parseTransferFee(rest, accounts)

	case ixConfidentialTransferExtension:
		return parseConfidentialTransfer(rest, accounts)

	case ixDefaultAccountStateExtension:
		sub, err := parseMintExtension(rest, accounts)
		if err != nil {
			return nil, err
		}
		return DefaultAccountState{Ix: sub}, nil

	case ixReallocate:
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		var data ReallocateData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("extension types", 4, len(rest))
		}
		return Reallocate{
			Accounts: ReallocateAccounts{
				Account:         accounts[0],
				Payer:           accounts[1],
				Owner:           accounts[2],
				MultisigSigners: decoder.SignerTail(accounts, 3),
			},
			Data: data,
		}, nil

	case ixMemoTransferExtension:
		sub, err := parseToggleExtension(rest, accounts)
		if err != nil {
			return nil, err
		}
		return MemoTransfer{Ix: sub}, nil

	case ixCreateNativeMint:
		if err := decoder.CheckMinAccounts(accountsLen, 2); err != nil {
			return nil, err
		}
		return CreateNativeMint{
			Accounts: CreateNativeMintAccounts{
				FundingAccount: accounts[0],
				Mint:           accounts[1],
			},
		}, nil

	case ixInitializeNonTransferableMint:
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		return InitializeNonTransferableMint{
			Accounts: InitializeNonTransferableMintAccounts{Mint: accounts[0]},
		}, nil

	case ixInterestBearingMintExtension:
		sub, err := parseMintExtension(rest, accounts)
		if err != nil {
			return nil, err
		}
		return InterestBearingMint{Ix: sub}, nil

	case ixCpiGuardExtension:
		sub, err := parseToggleExtension(rest, accounts)
		if err != nil {
			return nil, err
		}
		return CpiGuard{Ix: sub}, nil

	case ixInitializePermanentDelegate:
		if err := decoder.CheckMinAccounts(accountsLen, 1); err != nil {
			return nil, err
		}
		var data InitializePermanentDelegateData
		if err := borsh.Deserialize(&data, rest); err != nil {
			return nil, decoder.NewShortPayload("delegate", 32, len(rest))
		}
		return InitializePermanentDelegate{
			Accounts: InitializePermanentDelegateAccounts{Account: accounts[0]},
			Data:     data,
		}, nil

	case ixTransferHookExtension:
		sub, err := parseMintExtension(rest, accounts)
		if err != nil {
			return nil, err
		}
		return TransferHook{Ix: sub}, nil

	case ixConfidentialTransferFeeExtension:
		return parseConfidentialTransferFee(rest, accounts)

	case ixWithdrawExcessLamports:
		if err := decoder.CheckMinAccounts(accountsLen, 3); err != nil {
			return nil, err
		}
		return WithdrawExcessLamports{
			Accounts: WithdrawExcessLamportsAccounts{
				SourceAccount:      accounts[0],
				DestinationAccount: accounts[1],
				Authority:          accounts[2],
				MultisigSigners:    decoder.SignerTail(accounts, 3),
			},
		}, nil

	case ixMetadataPointerExtension:
		sub, err := parseMintExtension(rest, accounts)
		if err != nil {
			return nil, err
		}
		return MetadataPointer{Ix: sub}, nil

	case ixGroupPointerExtension:
		sub, err := parseMintExtension(rest, accounts)
		if err != nil {
			return nil, err
		}
		return GroupPointer{Ix: sub}, nil

	case ixGroupMemberPointerExtension:
		sub, err := parseMintExtension(rest, accounts)
		if err != nil {
			return nil, err
		}
		return GroupMemberPointer{Ix: sub}, nil

	default:
		return nil, &decoder.UnknownVariantError{Discriminant: uint32(disc)}
	}
}
