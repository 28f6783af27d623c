package adapter

import (
	"gov-ix-sol/internal/schema"
	"gov-ix-sol/internal/types"

	"github.com/blocto/solana-go-sdk/common"
	sdktypes "github.com/blocto/solana-go-sdk/types"
)

// SDKInstruction 让 solana-go-sdk 构造出的指令满足 Native
type SDKInstruction struct {
	Ix sdktypes.Instruction
}

func WrapSDK(ix sdktypes.Instruction) SDKInstruction {
	return SDKInstruction{Ix: ix}
}

func (s SDKInstruction) ProgramID() types.Pubkey {
	return types.Pubkey(s.Ix.ProgramID)
}

func (s SDKInstruction) Metas() []Meta {
	metas := make([]Meta, 0, len(s.Ix.Accounts))
	for _, a := range s.Ix.Accounts {
		metas = append(metas, Meta{
			Pubkey:     types.Pubkey(a.PubKey),
			IsSigner:   a.IsSigner,
			IsWritable: a.IsWritable,
		})
	}
	return metas
}

func (s SDKInstruction) Data() []byte {
	return s.Ix.Data
}

// FromSDK 将 SDK 指令转为规范记录
func FromSDK(ix sdktypes.Instruction) schema.InstructionRecord {
	return FromNative(WrapSDK(ix))
}

// ToSDK 将规范记录还原为 SDK 指令
func ToSDK(rec schema.InstructionRecord) sdktypes.Instruction {
	ix := sdktypes.Instruction{
		ProgramID: common.PublicKey(rec.ProcessorID),
		Accounts:  make([]sdktypes.AccountMeta, 0, len(rec.Accounts)),
		Data:      append([]byte{}, rec.Payload...),
	}
	for _, a := range rec.Accounts {
		ix.Accounts = append(ix.Accounts, sdktypes.AccountMeta{
			PubKey:     common.PublicKey(a.Address),
			IsSigner:   a.IsSigner,
			IsWritable: a.IsWritable,
		})
	}
	return ix
}
