package codec

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// 标准字母表、无填充；Strict 拒绝末尾非零的冗余比特，保证文本与字节一一对应
var textEncoding = base64.RawStdEncoding.Strict()

// ToText 把二进制编码转成可复制的文本，不换行、不填充
func ToText(data []byte) string {
	return textEncoding.EncodeToString(data)
}

// FromText 是 ToText 的逆操作
func FromText(s string) ([]byte, error) {
	// 标准库解码器会静默跳过 \r \n，这里显式拒绝
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return nil, fmt.Errorf("%w: line break at offset %d", ErrInvalidEncoding, i)
	}
	data, err := textEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return data, nil
}
