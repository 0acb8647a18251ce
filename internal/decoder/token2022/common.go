package token2022

import (
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/types"
)

// CommonExtIx 覆盖共享同一账户形状的扩展族：
// mint 型扩展为 Initialize / Update（DefaultAccountState、InterestBearingMint、
// TransferHook、MetadataPointer、GroupPointer、GroupMemberPointer），
// 账户开关型扩展为 Enable / Disable（MemoTransfer、CpiGuard）。
type CommonExtIx interface {
	IxName() string
	isCommonExtIx()
}

type InitializeExtensionAccounts struct {
	Mint types.Pubkey
}

type InitializeExtension struct {
	Accounts InitializeExtensionAccounts
}

func (InitializeExtension) IxName() string { return "Initialize" }
func (InitializeExtension) isCommonExtIx() {}

type UpdateExtensionAccounts struct {
	Mint            types.Pubkey
	Authority       types.Pubkey
	MultisigSigners []types.Pubkey
}

type UpdateExtension struct {
	Accounts UpdateExtensionAccounts
}

func (UpdateExtension) IxName() string { return "Update" }
func (UpdateExtension) isCommonExtIx() {}

type ToggleExtensionAccounts struct {
	Account         types.Pubkey
	Owner           types.Pubkey
	MultisigSigners []types.Pubkey
}

type EnableExtension struct {
	Accounts ToggleExtensionAccounts
}

func (EnableExtension) IxName() string { return "Enable" }
func (EnableExtension) isCommonExtIx() {}

type DisableExtension struct {
	Accounts ToggleExtensionAccounts
}

func (DisableExtension) IxName() string { return "Disable" }
func (DisableExtension) isCommonExtIx() {}

// 子 discriminant：mint 型扩展 0=Initialize 1=Update，开关型扩展 0=Enable 1=Disable。
const (
	extSubInitialize uint8 = 0
	extSubUpdate     uint8 = 1
	extSubEnable     uint8 = 0
	extSubDisable    uint8 = 1
)

// parseMintExtension 解析 Initialize/Update 形状的扩展子指令。
// data 从子 discriminant 起；Initialize 的扩展参数不展开，账户即语义。
func parseMintExtension(data []byte, accounts []types.Pubkey) (CommonExtIx, error) {
	if len(data) < 1 {
		return nil, decoder.NewShortPayload("extension sub-discriminant", 1, 0)
	}
	switch data[0] {
	case extSubInitialize:
		if err := decoder.CheckMinAccounts(len(accounts), 1); err != nil {
			return nil, err
		}
		return InitializeExtension{
			Accounts: InitializeExtensionAccounts{Mint: accounts[0]},
		}, nil
	case extSubUpdate:
		if err := decoder.CheckMinAccounts(len(accounts), 2); err != nil {
			return nil, err
		}
		return UpdateExtension{
			Accounts: UpdateExtensionAccounts{
				Mint:            accounts[0],
				Authority:       accounts[1],
				MultisigSigners: decoder.SignerTail(accounts, 2),
			},
		}, nil
	default:
		return nil, &decoder.UnknownVariantError{Discriminant: uint32(data[0])}
	}
}

// parseToggleExtension 解析 Enable/Disable 形状的扩展子指令。
func parseToggleExtension(data []byte, accounts []types.Pubkey) (CommonExtIx, error) {
	if len(data) < 1 {
		return nil, decoder.NewShortPayload("extension sub-discriminant", 1, 0)
	}
	switch data[0] {
	case extSubEnable, extSubDisable:
		if err := decoder.CheckMinAccounts(len(accounts), 2); err != nil {
			return nil, err
		}
		acc := ToggleExtensionAccounts{
			Account:         accounts[0],
			Owner:           accounts[1],
			MultisigSigners: decoder.SignerTail(accounts, 2),
		}
		if data[0] == extSubEnable {
			return EnableExtension{Accounts: acc}, nil
		}
		return DisableExtension{Accounts: acc}, nil
	default:
		return nil, &decoder.UnknownVariantError{Discriminant: uint32(data[0])}
	}
}

// 扩展族包装：一族一个 arm，IxName 为「族名 + 子指令名」。

type DefaultAccountState struct{ Ix CommonExtIx }

func (x DefaultAccountState) IxName() string { return "DefaultAccountState" + x.Ix.IxName() }
func (DefaultAccountState) isToken2022Ix() {}

type MemoTransfer struct{ Ix CommonExtIx }

func (x MemoTransfer) IxName() string { return "MemoTransfer" + x.Ix.IxName() }
func (MemoTransfer) isToken2022Ix() {}

type InterestBearingMint struct{ Ix CommonExtIx }

func (x InterestBearingMint) IxName() string { return "InterestBearingMint" + x.Ix.IxName() }
func (InterestBearingMint) isToken2022Ix() {}

type CpiGuard struct{ Ix CommonExtIx }

func (x CpiGuard) IxName() string { return "CpiGuard" + x.Ix.IxName() }
func (CpiGuard) isToken2022Ix() {}

type TransferHook struct{ Ix CommonExtIx }

func (x TransferHook) IxName() string { return "TransferHook" + x.Ix.IxName() }
func (TransferHook) isToken2022Ix() {}

type MetadataPointer struct{ Ix CommonExtIx }

func (x MetadataPointer) IxName() string { return "MetadataPointer" + x.Ix.IxName() }
func (MetadataPointer) isToken2022Ix() {}

type GroupPointer struct{ Ix CommonExtIx }

func (x GroupPointer) IxName() string { return "GroupPointer" + x.Ix.IxName() }
func (GroupPointer) isToken2022Ix() {}

type GroupMemberPointer struct{ Ix CommonExtIx }

func (x GroupMemberPointer) IxName() string { return "GroupMemberPointer" + x.Ix.IxName() }
func (GroupMemberPointer) isToken2022Ix() {}
