package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ErrorCodeKind error_code字段的实际类型
type ErrorCodeKind int

const (
	// ErrorCodeAbsent 字段缺失或为null
	ErrorCodeAbsent ErrorCodeKind = iota
	// ErrorCodeInt 整数
	ErrorCodeInt
	// ErrorCodeString 字符串
	ErrorCodeString
)

// ErrorCode 百度接口返回的错误码
//
// 同一个字段在不同接口里可能缺失、是整数或是字符串（文档统计接口成功时返回0，失败时返回"xxxx"）。
type ErrorCode struct {
	Kind ErrorCodeKind
	Int  int64
	Str  string
}

// IntCode 构造整数错误码
func IntCode(code int64) ErrorCode {
	return ErrorCode{Kind: ErrorCodeInt, Int: code}
}

// StringCode 构造字符串错误码
func StringCode(code string) ErrorCode {
	return ErrorCode{Kind: ErrorCodeString, Str: code}
}

// String 错误码的文本形式，缺失时为空串
func (c ErrorCode) String() string {
	switch c.Kind {
	case ErrorCodeInt:
		return strconv.FormatInt(c.Int, 10)
	case ErrorCodeString:
		return c.Str
	default:
		return ""
	}
}

// IsError 是否表示调用失败
//
// 缺失、空串、0和52000都是成功。
func (c ErrorCode) IsError() bool {
	switch c.String() {
	case "", "0", "52000":
		return false
	default:
		return true
	}
}

// UnmarshalJSON 实现json.Unmarshaler
func (c *ErrorCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ErrorCode{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = StringCode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("error_code既不是数字也不是字符串: %s", string(data))
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("error_code不是整数: %s", string(data))
	}
	*c = IntCode(i)
	return nil
}

// MarshalJSON 实现json.Marshaler
func (c ErrorCode) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ErrorCodeInt:
		return []byte(strconv.FormatInt(c.Int, 10)), nil
	case ErrorCodeString:
		return json.Marshal(c.Str)
	default:
		return []byte("null"), nil
	}
}
