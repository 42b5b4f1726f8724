package baidu

import (
	"bytes"
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"github.com/iBreaker/baidu-trans/pkg/form"
)

// Transport 发送已签名的表单并返回原始响应体
type Transport interface {
	PostForm(ctx context.Context, url string, params form.Params) ([]byte, error)
	PostMultipart(ctx context.Context, url string, mp *form.Multipart) ([]byte, error)
}

// StatusError 非2xx响应
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s; body: %s", e.Status, abbreviate(string(e.Body), 512))
}

// RestyTransport 基于resty的默认传输层
type RestyTransport struct {
	http *resty.Client
}

// NewRestyTransport 创建resty传输层，timeout<=0时使用30秒
func NewRestyTransport(timeout time.Duration) *RestyTransport {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RestyTransport{http: resty.New().SetTimeout(timeout)}
}

// PostForm 以application/x-www-form-urlencoded发送
func (t *RestyTransport) PostForm(ctx context.Context, url string, params form.Params) ([]byte, error) {
	resp, err := t.http.R().
		SetContext(ctx).
		SetFormData(params).
		Post(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Status: resp.Status(), Body: resp.Body()}
	}
	return resp.Body(), nil
}

// PostMultipart 以multipart/form-data发送
func (t *RestyTransport) PostMultipart(ctx context.Context, url string, mp *form.Multipart) ([]byte, error) {
	resp, err := t.http.R().
		SetContext(ctx).
		SetMultipartFormData(mp.Fields).
		SetFileReader(mp.File.Field, mp.File.Name, bytes.NewReader(mp.File.Data)).
		Post(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Status: resp.Status(), Body: resp.Body()}
	}
	return resp.Body(), nil
}

// abbreviate 截断到n字节以内，不拆开多字节字符
func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	suffix := "..."
	if n <= len(suffix) {
		suffix = ""
	}
	cut := n - len(suffix)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + suffix
}
