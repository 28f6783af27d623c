package consts

import "gov-ix-sol/internal/types"

// 公钥形式的地址常量（types.Pubkey），构造指令时直接使用
var (
	SystemProgram        = types.PubkeyFromBase58(SystemProgramStr)
	BPFLoaderUpgradeable = types.PubkeyFromBase58(BPFLoaderUpgradeableStr)

	SysvarRent  = types.PubkeyFromBase58(SysvarRentStr)
	SysvarClock = types.PubkeyFromBase58(SysvarClockStr)
)
