package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"gov-ix-sol/internal/schema"
	"gov-ix-sol/internal/types"

	"github.com/near/borsh-go"
)

const (
	lenPrefixSize  = 4                       // u32 小端长度前缀
	flagSize       = 1                       // 布尔字段占 1 字节
	accountRefSize = types.PubkeySize + 2*flagSize
	// MinRecordSize 零账户、空 payload 时的编码长度
	MinRecordSize = types.PubkeySize + 2*lenPrefixSize
)

// EncodedLen 返回记录编码后的精确字节数
func EncodedLen(rec schema.InstructionRecord) int {
	return MinRecordSize + len(rec.Accounts)*accountRefSize + len(rec.Payload)
}

// Marshal 按 borsh 布局编码记录：
//
//	processor_id  [32]byte
//	accounts      u32 LE 数量 + N × (address [32]byte, is_signer u8, is_writable u8)
//	payload       u32 LE 长度 + 原始字节
func Marshal(rec schema.InstructionRecord) ([]byte, error) {
	if uint64(len(rec.Accounts)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d accounts", ErrFieldTooLarge, len(rec.Accounts))
	}
	if uint64(len(rec.Payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrFieldTooLarge, len(rec.Payload))
	}

	// borsh 会把指针当作 Option 处理，这里必须传值
	data, err := borsh.Serialize(rec)
	if err != nil {
		return nil, fmt.Errorf("Marshal: borsh serialize: %w", err)
	}
	if len(data) != EncodedLen(rec) {
		return nil, fmt.Errorf("Marshal: unexpected layout, got %d bytes, want %d", len(data), EncodedLen(rec))
	}
	return data, nil
}

// Unmarshal 解码 Marshal 的输出。
// 先做一遍只读的边界扫描，长度字段在对应字节确认存在之前不会驱动任何分配；
// 扫描通过后再交给 borsh 反序列化。
func Unmarshal(data []byte) (schema.InstructionRecord, error) {
	if err := scan(data); err != nil {
		return schema.InstructionRecord{}, err
	}

	var rec schema.InstructionRecord
	if err := borsh.Deserialize(&rec, data); err != nil {
		return schema.InstructionRecord{}, fmt.Errorf("Unmarshal: borsh deserialize: %w", err)
	}
	return rec, nil
}

// reader 只向前移动，不回溯
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) take(n int, field string) ([]byte, error) {
	if r.remaining() < n {
		return nil, fmt.Errorf("%w: %s needs %d bytes at offset %d, %d remain",
			ErrTruncatedInput, field, n, r.off, r.remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u32(field string) (uint32, error) {
	b, err := r.take(lenPrefixSize, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) flag(field string) error {
	b, err := r.take(flagSize, field)
	if err != nil {
		return err
	}
	if b[0] > 1 {
		return fmt.Errorf("%w: %s=0x%02x at offset %d", ErrInvalidFlag, field, b[0], r.off-1)
	}
	return nil
}

func scan(data []byte) error {
	r := &reader{buf: data}

	if _, err := r.take(types.PubkeySize, "processor_id"); err != nil {
		return err
	}

	count, err := r.u32("accounts.len")
	if err != nil {
		return err
	}
	// 声明数量不可信：先整体校验字节是否足够
	if need := uint64(count) * accountRefSize; need > uint64(r.remaining()) {
		return fmt.Errorf("%w: %d accounts need %d bytes at offset %d, %d remain",
			ErrTruncatedInput, count, need, r.off, r.remaining())
	}
	for i := uint32(0); i < count; i++ {
		if _, err := r.take(types.PubkeySize, fmt.Sprintf("accounts[%d].address", i)); err != nil {
			return err
		}
		if err := r.flag(fmt.Sprintf("accounts[%d].is_signer", i)); err != nil {
			return err
		}
		if err := r.flag(fmt.Sprintf("accounts[%d].is_writable", i)); err != nil {
			return err
		}
	}

	size, err := r.u32("payload.len")
	if err != nil {
		return err
	}
	if uint64(size) > uint64(r.remaining()) {
		return fmt.Errorf("%w: payload needs %d bytes at offset %d, %d remain",
			ErrTruncatedInput, size, r.off, r.remaining())
	}
	r.off += int(size)

	if r.remaining() > 0 {
		return fmt.Errorf("%w: %d bytes after offset %d", ErrTrailingBytes, r.remaining(), r.off)
	}
	return nil
}
