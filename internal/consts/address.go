package consts

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	// Programs
	SystemProgramStr        = "11111111111111111111111111111111"
	BPFLoaderUpgradeableStr = "BPFLoaderUpgradeab1e11111111111111111111111"

	// Sysvars
	SysvarRentStr  = "SysvarRent111111111111111111111111111111111"
	SysvarClockStr = "SysvarC1ock11111111111111111111111111111111"
)
