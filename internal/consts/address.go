package consts

import "sol-ix-decoder/internal/types"

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	// Programs
	SystemProgramStr          = "11111111111111111111111111111111"
	TokenProgramStr           = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	TokenProgram2022Str       = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
	AssociatedTokenProgramStr = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	ComputeBudgetProgramStr   = "ComputeBudget111111111111111111111111111111"
	MemoProgramStr            = "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr"
	MemoLegacyProgramStr      = "Memo1UhkJRfHyvLMcVucJwxXeuD728EqVDDwQDxFMNo"
	VoteProgramStr            = "Vote111111111111111111111111111111111111111"

	// Token-2022 机密转账扩展用的零知识证明程序
	ZkTokenProofProgramStr = "ZkTokenProof1111111111111111111111111111111"

	// Sysvars
	SysvarInstructionsStr = "Sysvar1nstructions1111111111111111111111111"
	SysvarRentStr         = "SysvarRent111111111111111111111111111111111"
)

var (
	// Programs
	SystemProgram          = types.PubkeyFromBase58(SystemProgramStr)
	TokenProgram           = types.PubkeyFromBase58(TokenProgramStr)
	TokenProgram2022       = types.PubkeyFromBase58(TokenProgram2022Str)
	AssociatedTokenProgram = types.PubkeyFromBase58(AssociatedTokenProgramStr)
	ComputeBudgetProgram   = types.PubkeyFromBase58(ComputeBudgetProgramStr)
	MemoProgram            = types.PubkeyFromBase58(MemoProgramStr)
	MemoLegacyProgram      = types.PubkeyFromBase58(MemoLegacyProgramStr)
	VoteProgram            = types.PubkeyFromBase58(VoteProgramStr)
	ZkTokenProofProgram    = types.PubkeyFromBase58(ZkTokenProofProgramStr)

	// Sysvars
	SysvarInstructions = types.PubkeyFromBase58(SysvarInstructionsStr)
	SysvarRent         = types.PubkeyFromBase58(SysvarRentStr)
)
