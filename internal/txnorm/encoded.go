package txnorm

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"

	"sol-ix-decoder/internal/decoder"
)

// EncodedConfirmedTransactionWithStatusMeta 镜像 RPC getTransaction 的 JSON 结构。
type EncodedConfirmedTransactionWithStatusMeta struct {
	Slot        uint64                           `json:"slot"`
	BlockTime   Optional[int64]                  `json:"blockTime"`
	Transaction EncodedTransactionWithStatusMeta `json:"transaction"`
}

type EncodedTransactionWithStatusMeta struct {
	Transaction EncodedTransaction       `json:"transaction"`
	Meta        *UiTransactionStatusMeta `json:"meta"`
}

// EncodedTransaction 覆盖交易本体的三种外层形态：
// 裸字符串（legacy base58）、[data, encoding] 二元组、JSON 对象（parsed 形式）。
// parsed 形式无法还原出原始字节，Decode 时整体失败。
type EncodedTransaction struct {
	Raw      string
	Encoding string
	IsJSON   bool
}

func (e *EncodedTransaction) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("empty encoded transaction")
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		e.Raw = s
		e.Encoding = "base58"
		return nil
	case '[':
		var tuple []string
		if err := json.Unmarshal(b, &tuple); err != nil {
			return err
		}
		if len(tuple) != 2 {
			return fmt.Errorf("encoded transaction tuple: want 2 elements, got %d", len(tuple))
		}
		e.Raw = tuple[0]
		e.Encoding = tuple[1]
		return nil
	case '{':
		e.IsJSON = true
		return nil
	default:
		return fmt.Errorf("unrecognized encoded transaction form")
	}
}

// Decode 把编码交易还原为原始字节。不支持的外层形态是交易级 DecodeError。
func (e *EncodedTransaction) Decode() ([]byte, error) {
	if e.IsJSON {
		return nil, &decoder.DecodeError{Reason: "json-encoded transaction cannot be canonicalized"}
	}
	switch e.Encoding {
	case "base58":
		raw, err := base58.Decode(e.Raw)
		if err != nil {
			return nil, &decoder.DecodeError{Reason: "base58 transaction", Err: err}
		}
		return raw, nil
	case "base64":
		raw, err := base64.StdEncoding.DecodeString(e.Raw)
		if err != nil {
			return nil, &decoder.DecodeError{Reason: "base64 transaction", Err: err}
		}
		return raw, nil
	default:
		return nil, &decoder.DecodeError{
			Reason: fmt.Sprintf("unsupported transaction encoding %q", e.Encoding),
		}
	}
}

// UiTransactionStatusMeta 镜像 RPC meta 段。列表/标量字段均有三种 wire 状态，
// 统一用 Optional 表达。
type UiTransactionStatusMeta struct {
	Err                  Optional[json.RawMessage]             `json:"err"`
	Fee                  uint64                                `json:"fee"`
	PreBalances          []uint64                              `json:"preBalances"`
	PostBalances         []uint64                              `json:"postBalances"`
	InnerInstructions    Optional[[]UiInnerInstructions]       `json:"innerInstructions"`
	LogMessages          Optional[[]string]                    `json:"logMessages"`
	PreTokenBalances     Optional[[]UiTransactionTokenBalance] `json:"preTokenBalances"`
	PostTokenBalances    Optional[[]UiTransactionTokenBalance] `json:"postTokenBalances"`
	Rewards              Optional[[]UiReward]                  `json:"rewards"`
	LoadedAddresses      Optional[UiLoadedAddresses]           `json:"loadedAddresses"`
	ReturnData           Optional[UiReturnData]                `json:"returnData"`
	ComputeUnitsConsumed Optional[uint64]                      `json:"computeUnitsConsumed"`
}

type UiInnerInstructions struct {
	Index        uint32          `json:"index"`
	Instructions []UiInstruction `json:"instructions"`
}

// UiInstruction 同时容纳 compiled 与 parsed 两种形式：
// compiled 有 programIdIndex，parsed 有 parsed 字段。只有 compiled 会被保留。
type UiInstruction struct {
	ProgramIDIndex *uint32         `json:"programIdIndex"`
	Accounts       []uint32        `json:"accounts"`
	Data           string          `json:"data"`
	StackHeight    *uint32         `json:"stackHeight"`
	Parsed         json.RawMessage `json:"parsed"`
}

func (u *UiInstruction) isCompiled() bool {
	return u.ProgramIDIndex != nil && len(u.Parsed) == 0
}

type UiTransactionTokenBalance struct {
	AccountIndex  uint32           `json:"accountIndex"`
	Mint          string           `json:"mint"`
	UiTokenAmount UiTokenAmount    `json:"uiTokenAmount"`
	Owner         Optional[string] `json:"owner"`
	ProgramID     Optional[string] `json:"programId"`
}

type UiTokenAmount struct {
	UiAmount       Optional[float64] `json:"uiAmount"`
	Decimals       uint32            `json:"decimals"`
	Amount         string            `json:"amount"`
	UiAmountString string            `json:"uiAmountString"`
}

type UiReward struct {
	Pubkey      string           `json:"pubkey"`
	Lamports    int64            `json:"lamports"`
	PostBalance uint64           `json:"postBalance"`
	RewardType  Optional[string] `json:"rewardType"`
	Commission  Optional[uint8]  `json:"commission"`
}

type UiLoadedAddresses struct {
	Writable []string `json:"writable"`
	Readonly []string `json:"readonly"`
}

type UiReturnData struct {
	ProgramID string    `json:"programId"`
	Data      [2]string `json:"data"`
}
