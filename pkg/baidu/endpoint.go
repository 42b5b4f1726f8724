package baidu

import "github.com/iBreaker/baidu-trans/pkg/types"

// Endpoint 接口名称
type Endpoint string

const (
	EndpointText     Endpoint = "translate"
	EndpointImage    Endpoint = "image"
	EndpointDomain   Endpoint = "domain"
	EndpointDocCount Endpoint = "doc_count"
	EndpointDoc      Endpoint = "doc"
)

// 百度翻译开放平台接口地址
const (
	TextURL     = "https://fanyi-api.baidu.com/api/trans/vip/translate"
	ImageURL    = "https://fanyi-api.baidu.com/api/trans/sdk/picture"
	DomainURL   = "https://fanyi-api.baidu.com/api/trans/vip/fieldtranslate"
	DocCountURL = "https://fanyi-api.baidu.com/api/trans/vip/doccount"
	DocURL      = "https://fanyi-api.baidu.com/api/trans/vip/doctrans"
)

// Endpoints 各接口地址
type Endpoints struct {
	Text     string
	Image    string
	Domain   string
	DocCount string
	Doc      string
}

// DefaultEndpoints 官方接口地址
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Text:     TextURL,
		Image:    ImageURL,
		Domain:   DomainURL,
		DocCount: DocCountURL,
		Doc:      DocURL,
	}
}

// EndpointsFromConfig 用配置覆盖官方地址，空值保持默认
func EndpointsFromConfig(cfg types.EndpointConfig) Endpoints {
	e := DefaultEndpoints()
	if cfg.Text != "" {
		e.Text = cfg.Text
	}
	if cfg.Image != "" {
		e.Image = cfg.Image
	}
	if cfg.Domain != "" {
		e.Domain = cfg.Domain
	}
	if cfg.DocCount != "" {
		e.DocCount = cfg.DocCount
	}
	if cfg.Doc != "" {
		e.Doc = cfg.Doc
	}
	return e
}

// WithBase 把所有接口指向同一个主机（测试或反向代理），保留官方路径
func WithBase(base string) Endpoints {
	return Endpoints{
		Text:     base + "/api/trans/vip/translate",
		Image:    base + "/api/trans/sdk/picture",
		Domain:   base + "/api/trans/vip/fieldtranslate",
		DocCount: base + "/api/trans/vip/doccount",
		Doc:      base + "/api/trans/vip/doctrans",
	}
}

func (e Endpoints) url(ep Endpoint) string {
	switch ep {
	case EndpointText:
		return e.Text
	case EndpointImage:
		return e.Image
	case EndpointDomain:
		return e.Domain
	case EndpointDocCount:
		return e.DocCount
	default:
		return e.Doc
	}
}
