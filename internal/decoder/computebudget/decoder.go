package computebudget

import (
	"sol-ix-decoder/internal/consts"
	"sol-ix-decoder/internal/decoder"
	"sol-ix-decoder/internal/instruction"
	"sol-ix-decoder/internal/types"
)

// Ix 是 compute budget program 指令联合体。该程序不读账户，只有数据参数。
type Ix interface {
	IxName() string
	isComputeBudgetIx()
}

const (
	ixRequestUnitsDeprecated uint8 = iota
	ixRequestHeapFrame
	ixSetComputeUnitLimit
	ixSetComputeUnitPrice
	ixSetLoadedAccountsDataSizeLimit
)

type RequestUnitsDeprecatedData struct {
	Units         uint32
	AdditionalFee uint32
}

type RequestUnitsDeprecated struct {
	Data RequestUnitsDeprecatedData
}

func (RequestUnitsDeprecated) IxName() string { return "RequestUnitsDeprecated" }
func (RequestUnitsDeprecated) isComputeBudgetIx() {}

type RequestHeapFrameData struct {
	Bytes uint32
}

type RequestHeapFrame struct {
	Data RequestHeapFrameData
}

func (RequestHeapFrame) IxName() string { return "RequestHeapFrame" }
func (RequestHeapFrame) isComputeBudgetIx() {}

type SetComputeUnitLimitData struct {
	Units uint32
}

type SetComputeUnitLimit struct {
	Data SetComputeUnitLimitData
}

func (SetComputeUnitLimit) IxName() string { return "SetComputeUnitLimit" }
func (SetComputeUnitLimit) isComputeBudgetIx() {}

type SetComputeUnitPriceData struct {
	MicroLamports uint64
}

type SetComputeUnitPrice struct {
	Data SetComputeUnitPriceData
}

func (SetComputeUnitPrice) IxName() string { return "SetComputeUnitPrice" }
func (SetComputeUnitPrice) isComputeBudgetIx() {}

type SetLoadedAccountsDataSizeLimitData struct {
	Bytes uint32
}

type SetLoadedAccountsDataSizeLimit struct {
	Data SetLoadedAccountsDataSizeLimitData
}

func (SetLoadedAccountsDataSizeLimit) IxName() string { return "SetLoadedAccountsDataSizeLimit" }
func (SetLoadedAccountsDataSizeLimit) isComputeBudgetIx() {}

// Decoder 解码 compute budget program 指令。
// 每个 variant 的参数长度固定，多余或缺失字节都按 malformed 处理。
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) ID() string {
	return "compute_budget_program"
}

func (d *Decoder) ProgramID() types.Pubkey {
	return consts.ComputeBudgetProgram
}

func (d *Decoder) Prefilter() decoder.Prefilter {
	return decoder.NewPrefilter().
		TransactionAccounts(consts.ComputeBudgetProgram).
		Build()
}

func (d *Decoder) Decode(ix *instruction.Instruction) (decoder.DecodedIx, error) {
	if ix.Program != consts.ComputeBudgetProgram {
		return nil, decoder.ErrFiltered
	}
	return parse(ix)
}

func parse(ix *instruction.Instruction) (decoder.DecodedIx, error) {
	if len(ix.Data) < 1 {
		return nil, decoder.NewShortPayload("discriminant", 1, 0)
	}
	disc := ix.Data[0]
	data := ix.Data[1:]

	switch disc {
	case ixRequestUnitsDeprecated:
		r, err := exactReader("request units args", data, 8)
		if err != nil {
			return nil, err
		}
		units, _ := r.ReadUint32("units")
		additionalFee, _ := r.ReadUint32("additional fee")
		return RequestUnitsDeprecated{
			Data: RequestUnitsDeprecatedData{Units: units, AdditionalFee: additionalFee},
		}, nil

	case ixRequestHeapFrame:
		r, err := exactReader("heap frame bytes", data, 4)
		if err != nil {
			return nil, err
		}
		bytes, _ := r.ReadUint32("bytes")
		return RequestHeapFrame{Data: RequestHeapFrameData{Bytes: bytes}}, nil

	case ixSetComputeUnitLimit:
		r, err := exactReader("compute unit limit", data, 4)
		if err != nil {
			return nil, err
		}
		units, _ := r.ReadUint32("units")
		return SetComputeUnitLimit{Data: SetComputeUnitLimitData{Units: units}}, nil

	case ixSetComputeUnitPrice:
		r, err := exactReader("compute unit price", data, 8)
		if err != nil {
			return nil, err
		}
		microLamports, _ := r.ReadUint64("micro lamports")
		return SetComputeUnitPrice{Data: SetComputeUnitPriceData{MicroLamports: microLamports}}, nil

	case ixSetLoadedAccountsDataSizeLimit:
		r, err := exactReader("loaded accounts data size limit", data, 4)
		if err != nil {
			return nil, err
		}
		bytes, _ := r.ReadUint32("bytes")
		return SetLoadedAccountsDataSizeLimit{
			Data: SetLoadedAccountsDataSizeLimitData{Bytes: bytes},
		}, nil

	default:
		return nil, &decoder.UnknownVariantError{Discriminant: uint32(disc)}
	}
}

func exactReader(field string, data []byte, want int) (*decoder.DataReader, error) {
	if len(data) != want {
		return nil, decoder.NewShortPayload(field, want, len(data))
	}
	return decoder.NewDataReader(data), nil
}
