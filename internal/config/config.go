package config

import (
	"time"

	"gov-ix-sol/pkg/logger"
)

type LogConfig struct {
	Format   string `json:"format,default=console"` // 日志格式，支持 "console" 或 "json"
	LogDir   string `json:"log_dir,optional"`       // 日志目录，为空时只输出到 stderr
	Level    string `json:"level,default=info"`     // 日志级别：debug / info / warn / error
	Compress bool   `json:"compress,optional"`      // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// RedisSinkConfig 将编码结果写入 Redis，供审批面板读取
type RedisSinkConfig struct {
	Enabled bool   `json:"enabled,optional"`
	Addr    string `json:"addr,optional"`         // Redis 地址，例如 127.0.0.1:6379
	Key     string `json:"key,default=gov-ix"`    // 写入的 key，实际 key 会追加 processor id
	TTLSec  int    `json:"ttl_sec,default=86400"` // 过期时间（秒），<=0 表示不过期
}

// KafkaSinkConfig 将编码结果投递到 Kafka topic
type KafkaSinkConfig struct {
	Enabled    bool   `json:"enabled,optional"`
	Brokers    string `json:"brokers,optional"`        // Kafka broker 地址，多个用英文逗号分隔
	Topic      string `json:"topic,default=gov-ix"`    // 目标 topic
	Partitions int    `json:"partitions,default=1"`    // topic 不存在时创建的分区数
	TimeoutMs  int    `json:"timeout_ms,default=5000"` // 单条消息等待 ack 的超时时间
}

// OutputConfig 决定编码结果交付到哪些地方
type OutputConfig struct {
	Stdout bool            `json:"stdout,default=true"`
	Redis  RedisSinkConfig `json:"redis,optional"`
	Kafka  KafkaSinkConfig `json:"kafka,optional"`
}

// Config 是命令行工具的主配置
type Config struct {
	Log        LogConfig    `json:"logger,optional"`
	Output     OutputConfig `json:"output,optional"`
	EmitTimeMs int          `json:"emit_timeout_ms,default=10000"` // 所有 sink 投递的总超时（毫秒）
}

func (c *Config) EmitTimeout() time.Duration {
	if c.EmitTimeMs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.EmitTimeMs) * time.Millisecond
}

// Default 在没有配置文件时使用：只输出到 stdout
func Default() Config {
	return Config{
		Log:        LogConfig{Format: "console", Level: "info"},
		Output:     OutputConfig{Stdout: true},
		EmitTimeMs: 10000,
	}
}
