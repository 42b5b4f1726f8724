package baidu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iBreaker/baidu-trans/pkg/form"
	"github.com/iBreaker/baidu-trans/pkg/types"
)

// blockingTransport 在release关闭前阻塞，记录收到的表单
type blockingTransport struct {
	release chan struct{}
	params  chan form.Params
}

func (b *blockingTransport) PostForm(ctx context.Context, _ string, params form.Params) ([]byte, error) {
	b.params <- params
	select {
	case <-b.release:
		return []byte(`{"trans_result":[{"src":"a","dst":"b"}]}`), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *blockingTransport) PostMultipart(ctx context.Context, url string, mp *form.Multipart) ([]byte, error) {
	return b.PostForm(ctx, url, mp.Fields)
}

func TestAsyncClient_Translate(t *testing.T) {
	fake := newFakeBaidu()
	fake.response[textPath] = `{"trans_result":[{"src":"hello","dst":"你好"}]}`
	async := NewAsync(newTestClient(t, fake))

	future := async.Translate(context.Background(), "hello")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := future.Await(ctx)
	if err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	if result.Text() != "你好" {
		t.Errorf("Text() = %q", result.Text())
	}

	select {
	case <-future.Done():
	default:
		t.Error("Done() not closed after Await returned")
	}
}

func TestAsyncClient_SignsWithConfigSnapshot(t *testing.T) {
	bt := &blockingTransport{release: make(chan struct{}), params: make(chan form.Params, 1)}
	client := New(types.NewClientConfig("123", "abc"), WithTransport(bt), WithClock(fixedClock))
	client.Lang(types.LangEn, types.LangZh)
	async := NewAsync(client)

	future := async.Translate(context.Background(), "hello")
	client.Lang(types.LangJp, types.LangKor)

	params := <-bt.params
	close(bt.release)

	if params["from"] != "en" || params["to"] != "zh" {
		t.Errorf("in-flight request used from=%q to=%q, want en/zh", params["from"], params["to"])
	}
	if _, err := future.Await(context.Background()); err != nil {
		t.Errorf("Await() error = %v", err)
	}
}

func TestFuture_AwaitContextDone(t *testing.T) {
	bt := &blockingTransport{release: make(chan struct{}), params: make(chan form.Params, 1)}
	defer close(bt.release)
	async := NewAsync(New(types.NewClientConfig("123", "abc"), WithTransport(bt)))

	future := async.DomainTranslate(context.Background(), "hello", types.DomainMedicine)
	<-bt.params

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := future.Await(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Await() error = %v, want context.Canceled", err)
	}
}

func TestAsyncClient_RequestContextCancel(t *testing.T) {
	bt := &blockingTransport{release: make(chan struct{}), params: make(chan form.Params, 1)}
	async := NewAsync(New(types.NewClientConfig("123", "abc"), WithTransport(bt)))

	ctx, cancel := context.WithCancel(context.Background())
	future := async.DocCount(ctx, "a.txt", []byte("abc"), "txt")
	<-bt.params
	cancel()

	_, err := future.Await(context.Background())
	var te *TransportError
	if !errors.As(err, &te) || !errors.Is(err, context.Canceled) {
		t.Errorf("Await() error = %v, want TransportError wrapping context.Canceled", err)
	}
}

func TestAsyncClient_RejectsUndefinedEnums(t *testing.T) {
	ft := &failingTransport{}
	client := New(types.NewClientConfig("123", "abc"), WithTransport(ft), WithClock(fixedClock))
	async := NewAsync(client)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := async.DomainTranslate(ctx, "hello", types.Domain(42)).Await(ctx); !errors.Is(err, ErrInvalidDomain) {
		t.Errorf("DomainTranslate() error = %v, want ErrInvalidDomain", err)
	}

	client.Lang(types.Lang(99), types.LangZh)
	future := async.Translate(ctx, "hello")
	// 参数错误时结果立即可用
	select {
	case <-future.Done():
	default:
		t.Fatal("Done() not closed for rejected request")
	}
	result, err := future.Await(ctx)
	if !errors.Is(err, ErrInvalidLang) || result != nil {
		t.Errorf("Await() = %v, %v; want nil, ErrInvalidLang", result, err)
	}
	if ft.calls != 0 {
		t.Errorf("transport called %d times, want 0", ft.calls)
	}
}
