package adapter

import (
	"bytes"

	"gov-ix-sol/internal/schema"
	"gov-ix-sol/internal/types"
)

// Meta 是指令构造方给出的账户描述
type Meta struct {
	Pubkey     types.Pubkey
	IsSigner   bool
	IsWritable bool
}

// Native 是指令构造方需要提供的唯一能力：处理程序 ID、有序账户列表、不透明数据。
// 任何链 / SDK 的指令类型只要实现它即可接入编解码流程。
type Native interface {
	ProgramID() types.Pubkey
	Metas() []Meta
	Data() []byte
}

// Instruction 是仓库内的原生指令值，ToNative 的返回类型
type Instruction struct {
	Program  types.Pubkey
	Accounts []Meta
	Payload  []byte
}

func (ix *Instruction) ProgramID() types.Pubkey { return ix.Program }
func (ix *Instruction) Metas() []Meta           { return ix.Accounts }
func (ix *Instruction) Data() []byte            { return ix.Payload }

// FromNative 结构化拷贝，不解释 payload，也不判断哪些账户是“必需”的
func FromNative(n Native) schema.InstructionRecord {
	metas := n.Metas()
	rec := schema.InstructionRecord{
		ProcessorID: n.ProgramID(),
		Accounts:    make([]schema.AccountRef, 0, len(metas)),
	}
	for _, m := range metas {
		rec.Accounts = append(rec.Accounts, schema.AccountRef{
			Address:    m.Pubkey,
			IsSigner:   m.IsSigner,
			IsWritable: m.IsWritable,
		})
	}
	rec.Payload = append([]byte{}, n.Data()...)
	return rec
}

// ToNative 是 FromNative 的逆映射，逐字段拷贝
func ToNative(rec schema.InstructionRecord) *Instruction {
	ix := &Instruction{
		Program:  rec.ProcessorID,
		Accounts: make([]Meta, 0, len(rec.Accounts)),
		Payload:  append([]byte{}, rec.Payload...),
	}
	for _, a := range rec.Accounts {
		ix.Accounts = append(ix.Accounts, Meta{
			Pubkey:     a.Address,
			IsSigner:   a.IsSigner,
			IsWritable: a.IsWritable,
		})
	}
	return ix
}

// Equal 比较两个原生指令：程序 ID、账户（含顺序与标记）、数据逐字节一致
func Equal(a, b Native) bool {
	if a.ProgramID() != b.ProgramID() {
		return false
	}
	am, bm := a.Metas(), b.Metas()
	if len(am) != len(bm) {
		return false
	}
	for i := range am {
		if am[i] != bm[i] {
			return false
		}
	}
	return bytes.Equal(a.Data(), b.Data())
}
