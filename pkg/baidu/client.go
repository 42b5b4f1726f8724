// Package baidu 百度翻译开放平台客户端
//
// 签名和表单构建在调用方goroutine内同步完成，只有网络请求会阻塞。
// 客户端配置不加锁：修改语种或功能开关需要与正在进行的翻译调用串行。
package baidu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iBreaker/baidu-trans/pkg/debug"
	"github.com/iBreaker/baidu-trans/pkg/form"
	"github.com/iBreaker/baidu-trans/pkg/logger"
	"github.com/iBreaker/baidu-trans/pkg/types"
)

// Observer 接收每次请求的结果，用于指标统计
type Observer interface {
	Observe(endpoint Endpoint, duration time.Duration, err error)
}

// Client 百度翻译客户端
type Client struct {
	config    types.ClientConfig
	transport Transport
	endpoints Endpoints
	now       func() time.Time
	observer  Observer
}

// Option 客户端选项
type Option func(*Client)

// WithTransport 替换传输层
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithEndpoints 替换接口地址
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) {
		c.endpoints = e
	}
}

// WithClock 替换生成salt用的时钟
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithObserver 设置请求观察者
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// New 创建客户端
func New(cfg types.ClientConfig, opts ...Option) *Client {
	c := &Client{
		config:    cfg,
		endpoints: DefaultEndpoints(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewRestyTransport(0)
	}
	return c
}

// Config 返回当前配置的副本
func (c *Client) Config() types.ClientConfig {
	return c.config
}

// SetSourceLanguage 设置源语言
func (c *Client) SetSourceLanguage(from types.Lang) {
	c.config.SetFrom(from)
}

// SetTargetLanguage 设置目标语言
func (c *Client) SetTargetLanguage(to types.Lang) {
	c.config.SetTo(to)
}

// Lang 同时设置源语言和目标语言
func (c *Client) Lang(from, to types.Lang) {
	c.config.SetFrom(from)
	c.config.SetTo(to)
}

// SetOpenDict 设置是否开通词典
func (c *Client) SetOpenDict(open bool) {
	c.config.OpenDict = open
}

// SetOpenTTS 设置是否开通TTS
func (c *Client) SetOpenTTS(open bool) {
	c.config.OpenTTS = open
}

// SetOpenAction 设置是否开通"我的术语"
func (c *Client) SetOpenAction(open bool) {
	c.config.OpenAction = open
}

// WithLang 返回使用指定语种的副本，与原客户端共享传输层
//
// 副本的配置独立，可在并发请求中各自使用。
func (c *Client) WithLang(from, to types.Lang) *Client {
	cp := *c
	cp.config.From = from
	cp.config.To = to
	return &cp
}

// Translate 通用翻译
//
// 返回VendorError时结果仍会一并返回，便于查看完整响应。
func (c *Client) Translate(ctx context.Context, q string) (*types.TextResult, error) {
	req, err := c.textRequest(q)
	if err != nil {
		return nil, err
	}
	var result types.TextResult
	if err := c.send(ctx, req, &result); err != nil {
		return resultOnVendorError(&result, err)
	}
	return &result, nil
}

// DomainTranslate 垂直领域翻译
func (c *Client) DomainTranslate(ctx context.Context, q string, domain types.Domain) (*types.DomainResult, error) {
	req, err := c.domainRequest(q, domain)
	if err != nil {
		return nil, err
	}
	var result types.DomainResult
	if err := c.send(ctx, req, &result); err != nil {
		return resultOnVendorError(&result, err)
	}
	return &result, nil
}

// ImageTranslate 图片翻译，使用协议固定的cuid/mac/version
// - name: 文件名
// - data: 图片数据
func (c *Client) ImageTranslate(ctx context.Context, name string, data []byte) (*types.ImageResult, error) {
	return c.ImageTranslateWithOptions(ctx, name, data, form.ImageOptions{})
}

// ImageTranslateWithOptions 图片翻译
func (c *Client) ImageTranslateWithOptions(ctx context.Context, name string, data []byte, opts form.ImageOptions) (*types.ImageResult, error) {
	req, err := c.imageRequest(name, data, opts)
	if err != nil {
		return nil, err
	}
	var result types.ImageResult
	if err := c.send(ctx, req, &result); err != nil {
		return resultOnVendorError(&result, err)
	}
	return &result, nil
}

// ImageTranslateFile 读取本地图片后翻译
func (c *Client) ImageTranslateFile(ctx context.Context, path string, opts form.ImageOptions) (*types.ImageResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片失败: %w", err)
	}
	return c.ImageTranslateWithOptions(ctx, filepath.Base(path), data, opts)
}

// DocCount 文档翻译统计校验
// - name: 文件名
// - data: 文件数据
// - ext: 文件扩展名
func (c *Client) DocCount(ctx context.Context, name string, data []byte, ext string) (*types.DocCountResult, error) {
	req, err := c.docCountRequest(name, data, ext)
	if err != nil {
		return nil, err
	}
	var result types.DocCountResult
	if err := c.send(ctx, req, &result); err != nil {
		return resultOnVendorError(&result, err)
	}
	return &result, nil
}

// DocCountFile 读取本地文件后做统计校验，扩展名取自文件名
func (c *Client) DocCountFile(ctx context.Context, path string) (*types.DocCountResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取文档失败: %w", err)
	}
	return c.DocCount(ctx, filepath.Base(path), data, fileExt(path))
}

// DocTranslate 文档翻译
// - outType: 输出文件类型
func (c *Client) DocTranslate(ctx context.Context, name string, data []byte, ext, outType string) (*types.DocResult, error) {
	req, err := c.docRequest(name, data, ext, outType)
	if err != nil {
		return nil, err
	}
	var result types.DocResult
	if err := c.send(ctx, req, &result); err != nil {
		return resultOnVendorError(&result, err)
	}
	return &result, nil
}

// DocTranslateFile 读取本地文件后翻译
func (c *Client) DocTranslateFile(ctx context.Context, path, outType string) (*types.DocResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取文档失败: %w", err)
	}
	return c.DocTranslate(ctx, filepath.Base(path), data, fileExt(path), outType)
}

// request 已签名、待发送的请求
type request struct {
	endpoint  Endpoint
	url       string
	params    form.Params
	multipart *form.Multipart
}

func (c *Client) salt() int64 {
	return c.now().Unix()
}

// checkLangs 未定义的语种不参与签名
func (c *Client) checkLangs() error {
	if !c.config.From.IsValid() {
		return fmt.Errorf("%w: from=%d", ErrInvalidLang, int(c.config.From))
	}
	if !c.config.To.IsValid() {
		return fmt.Errorf("%w: to=%d", ErrInvalidLang, int(c.config.To))
	}
	return nil
}

func (c *Client) textRequest(q string) (request, error) {
	if err := c.checkLangs(); err != nil {
		return request{}, err
	}
	return request{
		endpoint: EndpointText,
		url:      c.endpoints.url(EndpointText),
		params:   form.Text(&c.config, q, c.salt()),
	}, nil
}

func (c *Client) domainRequest(q string, domain types.Domain) (request, error) {
	if err := c.checkLangs(); err != nil {
		return request{}, err
	}
	if !domain.IsValid() {
		return request{}, fmt.Errorf("%w: %d", ErrInvalidDomain, int(domain))
	}
	return request{
		endpoint: EndpointDomain,
		url:      c.endpoints.url(EndpointDomain),
		params:   form.Domain(&c.config, q, domain, c.salt()),
	}, nil
}

func (c *Client) imageRequest(name string, data []byte, opts form.ImageOptions) (request, error) {
	if err := c.checkLangs(); err != nil {
		return request{}, err
	}
	return request{
		endpoint:  EndpointImage,
		url:       c.endpoints.url(EndpointImage),
		multipart: form.Image(&c.config, name, data, opts, c.salt()),
	}, nil
}

func (c *Client) docCountRequest(name string, data []byte, ext string) (request, error) {
	if err := c.checkLangs(); err != nil {
		return request{}, err
	}
	return request{
		endpoint:  EndpointDocCount,
		url:       c.endpoints.url(EndpointDocCount),
		multipart: form.DocCount(&c.config, name, data, ext, c.salt()),
	}, nil
}

func (c *Client) docRequest(name string, data []byte, ext, outType string) (request, error) {
	if err := c.checkLangs(); err != nil {
		return request{}, err
	}
	return request{
		endpoint:  EndpointDoc,
		url:       c.endpoints.url(EndpointDoc),
		multipart: form.Doc(&c.config, name, data, ext, outType, c.salt()),
	}, nil
}

// statusResult 各接口返回结构的公共部分
type statusResult interface {
	Status() (types.ErrorCode, string)
}

// send 发送请求并解析到out
func (c *Client) send(ctx context.Context, req request, out statusResult) error {
	start := time.Now()
	trace := debug.NewRequestTrace(string(req.endpoint), req.url)

	body, err := c.post(ctx, req, trace)
	if err == nil {
		err = decode(req.endpoint, body, out)
	}

	duration := time.Since(start)
	trace.SetResponse(body)
	trace.Finish(duration, err)
	trace.SaveAsync()

	if c.observer != nil {
		c.observer.Observe(req.endpoint, duration, err)
	}

	if err != nil {
		logger.Debug("%s 请求失败 (%v): %v", req.endpoint, duration, err)
	} else {
		logger.Debug("%s 请求完成 (%v)", req.endpoint, duration)
	}
	return err
}

func (c *Client) post(ctx context.Context, req request, trace *debug.RequestTrace) ([]byte, error) {
	var (
		body []byte
		err  error
	)

	if req.multipart != nil {
		trace.SetFields(req.multipart.Fields)
		trace.SetFile(req.multipart.File.Name, len(req.multipart.File.Data))
		logger.Debug("发送 %s 请求: %s (文件 %s, %d 字节)", req.endpoint, req.url, req.multipart.File.Name, len(req.multipart.File.Data))
		body, err = c.transport.PostMultipart(ctx, req.url, req.multipart)
	} else {
		trace.SetFields(req.params)
		logger.Debug("发送 %s 请求: %s", req.endpoint, req.url)
		body, err = c.transport.PostForm(ctx, req.url, req.params)
	}

	if err != nil {
		te := &TransportError{Endpoint: req.endpoint, Err: err}
		var se *StatusError
		if errors.As(err, &se) {
			te.StatusCode = se.StatusCode
			body = se.Body
		}
		return body, te
	}
	return body, nil
}

func decode(endpoint Endpoint, body []byte, out statusResult) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &DeserializationError{Endpoint: endpoint, Body: body, Err: err}
	}

	code, msg := out.Status()
	if code.IsError() {
		return &VendorError{Endpoint: endpoint, Code: code, Message: msg}
	}
	return nil
}

// resultOnVendorError 业务错误时同时返回已解析的结果，其他错误只返回错误
func resultOnVendorError[T any](result *T, err error) (*T, error) {
	var ve *VendorError
	if errors.As(err, &ve) {
		return result, err
	}
	return nil, err
}

func fileExt(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
