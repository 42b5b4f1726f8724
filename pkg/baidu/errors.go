package baidu

import (
	"errors"
	"fmt"

	"github.com/iBreaker/baidu-trans/pkg/types"
)

// 请求参数错误，在签名前返回
var (
	ErrInvalidLang   = errors.New("无效的语种")
	ErrInvalidDomain = errors.New("无效的领域")
)

// TransportError 网络或HTTP层失败
type TransportError struct {
	Endpoint   Endpoint
	StatusCode int // 未收到响应时为0
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s 请求失败: HTTP %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s 请求失败: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DeserializationError 响应体与预期结构不符
type DeserializationError struct {
	Endpoint Endpoint
	Body     []byte
	Err      error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("%s 解析响应失败: %v", e.Endpoint, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// VendorError 百度接口返回了错误码
type VendorError struct {
	Endpoint Endpoint
	Code     types.ErrorCode
	Message  string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("%s 接口返回错误 %s: %s", e.Endpoint, e.Code, e.Message)
}
