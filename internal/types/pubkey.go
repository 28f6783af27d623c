package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// PubkeySize 固定 32 字节，程序 ID 与账户地址共用
const PubkeySize = 32

// Pubkey 是不透明的 32 字节标识，编解码层不解释其内部结构
type Pubkey [PubkeySize]byte

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// TryPubkeyFromBase58 解析 base58 字符串为 Pubkey，失败时返回 error（用于命令行 / manifest 等不可信输入）
func TryPubkeyFromBase58(s string) (Pubkey, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("failed to decode base58 pubkey %q: %w", s, err)
	}
	return TryPubkeyFromBytes(data)
}

// TryPubkeyFromBytes 从原始字节构造 Pubkey，长度必须恰好为 32
func TryPubkeyFromBytes(data []byte) (Pubkey, error) {
	if len(data) != PubkeySize {
		return Pubkey{}, fmt.Errorf("invalid pubkey length: got %d, want %d", len(data), PubkeySize)
	}
	var p Pubkey
	copy(p[:], data)
	return p, nil
}

// PubkeyFromBase58 仅用于编译期已知的常量地址，解析失败直接 panic
func PubkeyFromBase58(s string) Pubkey {
	p, err := TryPubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return p
}
