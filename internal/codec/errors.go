package codec

import "errors"

var (
	// ErrTruncatedInput 字段声明的长度超过了剩余字节数
	ErrTruncatedInput = errors.New("truncated input")
	// ErrTrailingBytes payload 读取完毕后仍有未消费的字节
	ErrTrailingBytes = errors.New("trailing bytes")
	// ErrInvalidFlag 布尔字段只接受 0 或 1
	ErrInvalidFlag = errors.New("invalid flag byte")
	// ErrFieldTooLarge 变长字段超出 u32 长度前缀可表示的范围
	ErrFieldTooLarge = errors.New("field too large")
	// ErrInvalidEncoding 文本不是合法的无填充 base64
	ErrInvalidEncoding = errors.New("invalid encoding")
)
