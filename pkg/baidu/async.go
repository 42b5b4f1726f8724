package baidu

import (
	"context"

	"github.com/iBreaker/baidu-trans/pkg/form"
	"github.com/iBreaker/baidu-trans/pkg/types"
)

// Future 异步请求的结果
type Future[T any] struct {
	done   chan struct{}
	result T
	err    error
}

func newFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.result, f.err = fn()
	}()
	return f
}

// failedFuture 已完成且只带错误的结果
func failedFuture[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Done 请求完成时关闭
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await 等待结果；ctx结束时返回ctx.Err()，请求本身仍受发起时的ctx控制
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AsyncClient 非阻塞客户端
//
// 表单在调用时按当前配置同步签名，之后修改配置不影响已发起的请求。
type AsyncClient struct {
	client *Client
}

// NewAsync 基于同步客户端创建异步客户端，二者共享配置
func NewAsync(c *Client) *AsyncClient {
	return &AsyncClient{client: c}
}

// Client 返回底层同步客户端
func (a *AsyncClient) Client() *Client {
	return a.client
}

// Translate 通用翻译
func (a *AsyncClient) Translate(ctx context.Context, q string) *Future[*types.TextResult] {
	req, err := a.client.textRequest(q)
	if err != nil {
		return failedFuture[*types.TextResult](err)
	}
	return newFuture(func() (*types.TextResult, error) {
		var result types.TextResult
		if err := a.client.send(ctx, req, &result); err != nil {
			return resultOnVendorError(&result, err)
		}
		return &result, nil
	})
}

// DomainTranslate 垂直领域翻译
func (a *AsyncClient) DomainTranslate(ctx context.Context, q string, domain types.Domain) *Future[*types.DomainResult] {
	req, err := a.client.domainRequest(q, domain)
	if err != nil {
		return failedFuture[*types.DomainResult](err)
	}
	return newFuture(func() (*types.DomainResult, error) {
		var result types.DomainResult
		if err := a.client.send(ctx, req, &result); err != nil {
			return resultOnVendorError(&result, err)
		}
		return &result, nil
	})
}

// ImageTranslate 图片翻译
func (a *AsyncClient) ImageTranslate(ctx context.Context, name string, data []byte, opts form.ImageOptions) *Future[*types.ImageResult] {
	req, err := a.client.imageRequest(name, data, opts)
	if err != nil {
		return failedFuture[*types.ImageResult](err)
	}
	return newFuture(func() (*types.ImageResult, error) {
		var result types.ImageResult
		if err := a.client.send(ctx, req, &result); err != nil {
			return resultOnVendorError(&result, err)
		}
		return &result, nil
	})
}

// DocCount 文档翻译统计校验
func (a *AsyncClient) DocCount(ctx context.Context, name string, data []byte, ext string) *Future[*types.DocCountResult] {
	req, err := a.client.docCountRequest(name, data, ext)
	if err != nil {
		return failedFuture[*types.DocCountResult](err)
	}
	return newFuture(func() (*types.DocCountResult, error) {
		var result types.DocCountResult
		if err := a.client.send(ctx, req, &result); err != nil {
			return resultOnVendorError(&result, err)
		}
		return &result, nil
	})
}

// DocTranslate 文档翻译
func (a *AsyncClient) DocTranslate(ctx context.Context, name string, data []byte, ext, outType string) *Future[*types.DocResult] {
	req, err := a.client.docRequest(name, data, ext, outType)
	if err != nil {
		return failedFuture[*types.DocResult](err)
	}
	return newFuture(func() (*types.DocResult, error) {
		var result types.DocResult
		if err := a.client.send(ctx, req, &result); err != nil {
			return resultOnVendorError(&result, err)
		}
		return &result, nil
	})
}
