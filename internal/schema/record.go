package schema

import (
	"bytes"

	"gov-ix-sol/internal/types"
)

// AccountRef 描述指令引用的一个账户及其权限标记。
// 字段声明顺序即二进制布局顺序，不要调整。
type AccountRef struct {
	Address    types.Pubkey // 账户地址
	IsSigner   bool         // 消费该指令的交易是否必须带有该地址的签名
	IsWritable bool         // 处理程序是否可以修改该账户
}

func (a AccountRef) Equal(other AccountRef) bool {
	return a == other
}

// InstructionRecord 是指令的规范记录：处理程序 ID、有序账户列表、不透明 payload。
// 账户按位置解释，顺序在任何转换中都必须保持不变。
type InstructionRecord struct {
	ProcessorID types.Pubkey
	Accounts    []AccountRef
	Payload     []byte
}

// Equal 逐字段比较，账户顺序敏感；nil 与空切片视为相同
func (r InstructionRecord) Equal(other InstructionRecord) bool {
	if r.ProcessorID != other.ProcessorID {
		return false
	}
	if len(r.Accounts) != len(other.Accounts) {
		return false
	}
	for i := range r.Accounts {
		if !r.Accounts[i].Equal(other.Accounts[i]) {
			return false
		}
	}
	return bytes.Equal(r.Payload, other.Payload)
}

// Clone 返回不与原记录共享底层数组的副本
func (r InstructionRecord) Clone() InstructionRecord {
	out := InstructionRecord{ProcessorID: r.ProcessorID}
	if r.Accounts != nil {
		out.Accounts = make([]AccountRef, len(r.Accounts))
		copy(out.Accounts, r.Accounts)
	}
	if r.Payload != nil {
		out.Payload = make([]byte, len(r.Payload))
		copy(out.Payload, r.Payload)
	}
	return out
}
