package builder

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"gov-ix-sol/internal/logic/adapter"
	"gov-ix-sol/internal/types"

	"gopkg.in/yaml.v3"
)

var ErrInvalidManifest = errors.New("invalid manifest")

// ManifestAccount 对应 manifest 中的一个账户
type ManifestAccount struct {
	Pubkey   string `yaml:"pubkey"`   // base58 地址
	Signer   bool   `yaml:"signer"`   // 是否需要签名
	Writable bool   `yaml:"writable"` // 是否可写
}

// Manifest 以 YAML 描述任意一条指令，data_hex 与 data_base64 二选一（都为空表示空 payload）
//
//	program_id: BPFLoaderUpgradeab1e11111111111111111111111
//	accounts:
//	  - pubkey: 6HsGPCjA4GxQCGSL1eTBSkXoah9hVooMBAkPEsmuPepn
//	    writable: true
//	data_hex: "03000000"
type Manifest struct {
	ProgramID  string            `yaml:"program_id"`
	Accounts   []ManifestAccount `yaml:"accounts"`
	DataHex    string            `yaml:"data_hex"`
	DataBase64 string            `yaml:"data_base64"`
}

// LoadManifest 读取并解析 manifest 文件
func LoadManifest(path string) (*adapter.Instruction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest 解析 YAML，未知字段视为错误
func ParseManifest(data []byte) (*adapter.Instruction, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidManifest)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return m.Instruction()
}

// Instruction 把 manifest 转成原生指令
func (m *Manifest) Instruction() (*adapter.Instruction, error) {
	if m.ProgramID == "" {
		return nil, fmt.Errorf("%w: program_id is required", ErrInvalidManifest)
	}
	program, err := types.TryPubkeyFromBase58(m.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("%w: program_id: %v", ErrInvalidManifest, err)
	}

	ix := &adapter.Instruction{
		Program:  program,
		Accounts: make([]adapter.Meta, 0, len(m.Accounts)),
	}
	for i, a := range m.Accounts {
		pk, err := types.TryPubkeyFromBase58(a.Pubkey)
		if err != nil {
			return nil, fmt.Errorf("%w: accounts[%d]: %v", ErrInvalidManifest, i, err)
		}
		ix.Accounts = append(ix.Accounts, adapter.Meta{Pubkey: pk, IsSigner: a.Signer, IsWritable: a.Writable})
	}

	switch {
	case m.DataHex != "" && m.DataBase64 != "":
		return nil, fmt.Errorf("%w: data_hex and data_base64 are mutually exclusive", ErrInvalidManifest)
	case m.DataHex != "":
		ix.Payload, err = hex.DecodeString(m.DataHex)
		if err != nil {
			return nil, fmt.Errorf("%w: data_hex: %v", ErrInvalidManifest, err)
		}
	case m.DataBase64 != "":
		ix.Payload, err = base64.StdEncoding.DecodeString(m.DataBase64)
		if err != nil {
			return nil, fmt.Errorf("%w: data_base64: %v", ErrInvalidManifest, err)
		}
	default:
		ix.Payload = []byte{}
	}
	return ix, nil
}
