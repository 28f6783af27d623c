package pipeline

import (
	"errors"
	"fmt"

	"gov-ix-sol/internal/codec"
	"gov-ix-sol/internal/logic/adapter"
	"gov-ix-sol/internal/schema"
	"gov-ix-sol/pkg/logger"
)

// ErrRoundTripMismatch 解码结果与原始指令不一致，说明 schema 或编解码有 bug，不是用户输入问题
var ErrRoundTripMismatch = errors.New("round-trip mismatch")

// Encoded 保存各阶段的产物，Text 是唯一对外交付的内容
type Encoded struct {
	Record schema.InstructionRecord
	Binary []byte
	Text   string
}

// Encode 原生指令 → 记录 → 二进制 → 文本，并在返回前完整回环自检。
// 自检失败时不返回任何文本。
func Encode(n adapter.Native) (*Encoded, error) {
	rec := adapter.FromNative(n)

	bin, err := codec.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode instruction: %w", err)
	}
	text := codec.ToText(bin)

	if err := Verify(text, n); err != nil {
		logger.Errorf("[Pipeline] self-check failed: program=%s, accounts=%d, payload=%d bytes, err=%v",
			rec.ProcessorID, len(rec.Accounts), len(rec.Payload), err)
		return nil, err
	}

	logger.Debugf("[Pipeline] encoded instruction: program=%s, accounts=%d, binary=%d bytes, text=%d chars",
		rec.ProcessorID, len(rec.Accounts), len(bin), len(text))
	return &Encoded{Record: rec, Binary: bin, Text: text}, nil
}

// DecodeRecord 文本 → 二进制 → 记录
func DecodeRecord(text string) (schema.InstructionRecord, error) {
	bin, err := codec.FromText(text)
	if err != nil {
		return schema.InstructionRecord{}, fmt.Errorf("decode text: %w", err)
	}
	rec, err := codec.Unmarshal(bin)
	if err != nil {
		return schema.InstructionRecord{}, fmt.Errorf("decode binary: %w", err)
	}
	return rec, nil
}

// Decode 消费方向：文本还原为原生指令
func Decode(text string) (*adapter.Instruction, error) {
	rec, err := DecodeRecord(text)
	if err != nil {
		return nil, err
	}
	return adapter.ToNative(rec), nil
}

// Verify 解码 text 并与期望指令做结构化比较
func Verify(text string, want adapter.Native) error {
	got, err := Decode(text)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRoundTripMismatch, err)
	}
	if !adapter.Equal(want, got) {
		return fmt.Errorf("%w: decoded instruction differs from original", ErrRoundTripMismatch)
	}
	return nil
}
