package builder

import (
	"encoding/binary"
	"errors"
	"fmt"

	"gov-ix-sol/internal/consts"
	"gov-ix-sol/internal/types"

	"github.com/blocto/solana-go-sdk/common"
	sdktypes "github.com/blocto/solana-go-sdk/types"
)

// BPF upgradeable loader 指令编号（u32 小端）
const (
	loaderIxUpgrade      uint32 = 3
	loaderIxSetAuthority uint32 = 4
)

var ErrMissingAddress = errors.New("missing address")

// ProgramDataAddress 推导程序对应的 ProgramData 账户：PDA([program], loader)
func ProgramDataAddress(program types.Pubkey) (types.Pubkey, error) {
	pda, _, err := common.FindProgramAddress(
		[][]byte{program[:]},
		common.PublicKey(consts.BPFLoaderUpgradeable),
	)
	if err != nil {
		return types.Pubkey{}, fmt.Errorf("derive programdata for %s: %w", program, err)
	}
	return types.Pubkey(pda), nil
}

// Upgrade 用 buffer 中的字节码升级 program，剩余 lamports 退回 spill。
//
// 账户布局：
//
// #0 - ProgramData（可写）
// #1 - Program（可写）
// #2 - Buffer（可写）
// #3 - Spill（可写）
// #4 - Rent sysvar
// #5 - Clock sysvar
// #6 - Upgrade authority（签名）
func Upgrade(program, buffer, authority, spill types.Pubkey) (sdktypes.Instruction, error) {
	if err := requireAddresses(map[string]types.Pubkey{
		"program": program, "buffer": buffer, "authority": authority, "spill": spill,
	}); err != nil {
		return sdktypes.Instruction{}, err
	}

	programData, err := ProgramDataAddress(program)
	if err != nil {
		return sdktypes.Instruction{}, err
	}

	return sdktypes.Instruction{
		ProgramID: common.PublicKey(consts.BPFLoaderUpgradeable),
		Accounts: []sdktypes.AccountMeta{
			writable(programData),
			writable(program),
			writable(buffer),
			writable(spill),
			readonly(consts.SysvarRent),
			readonly(consts.SysvarClock),
			{PubKey: common.PublicKey(authority), IsSigner: true, IsWritable: false},
		},
		Data: loaderData(loaderIxUpgrade),
	}, nil
}

// SetUpgradeAuthority 修改 program 的升级权限；next 为 nil 时程序变为不可升级。
//
// #0 - ProgramData（可写）
// #1 - 当前 authority（签名）
// #2 - 新 authority（可选）
func SetUpgradeAuthority(program, current types.Pubkey, next *types.Pubkey) (sdktypes.Instruction, error) {
	if err := requireAddresses(map[string]types.Pubkey{
		"program": program, "current authority": current,
	}); err != nil {
		return sdktypes.Instruction{}, err
	}

	programData, err := ProgramDataAddress(program)
	if err != nil {
		return sdktypes.Instruction{}, err
	}

	accounts := []sdktypes.AccountMeta{
		writable(programData),
		{PubKey: common.PublicKey(current), IsSigner: true, IsWritable: false},
	}
	if next != nil {
		accounts = append(accounts, readonly(*next))
	}

	return sdktypes.Instruction{
		ProgramID: common.PublicKey(consts.BPFLoaderUpgradeable),
		Accounts:  accounts,
		Data:      loaderData(loaderIxSetAuthority),
	}, nil
}

func loaderData(tag uint32) []byte {
	return binary.LittleEndian.AppendUint32(make([]byte, 0, 4), tag)
}

func writable(p types.Pubkey) sdktypes.AccountMeta {
	return sdktypes.AccountMeta{PubKey: common.PublicKey(p), IsSigner: false, IsWritable: true}
}

func readonly(p types.Pubkey) sdktypes.AccountMeta {
	return sdktypes.AccountMeta{PubKey: common.PublicKey(p), IsSigner: false, IsWritable: false}
}

// 全零地址等于 System Program，作为参数出现只可能是漏填
func requireAddresses(addrs map[string]types.Pubkey) error {
	for name, p := range addrs {
		if p == consts.SystemProgram {
			return fmt.Errorf("%w: %s", ErrMissingAddress, name)
		}
	}
	return nil
}
