package types

import "fmt"

// Domain 垂直领域翻译支持范围
type Domain int

const (
	// DomainElectronics 电子科技领域，中文-->英语
	DomainElectronics Domain = iota
	// DomainFinance 金融财经领域，中英互译
	DomainFinance
	// DomainMechanics 水利机械领域，中文-->英语
	DomainMechanics
	// DomainMedicine 生物医药领域，中英互译
	DomainMedicine
	// DomainNovel 网络文学领域，中文-->英语
	DomainNovel
)

var domainNames = [...]string{
	DomainElectronics: "electronics",
	DomainFinance:     "finance",
	DomainMechanics:   "mechanics",
	DomainMedicine:    "medicine",
	DomainNovel:       "novel",
}

// AllDomains 返回全部垂直领域
func AllDomains() []Domain {
	domains := make([]Domain, len(domainNames))
	for i := range domainNames {
		domains[i] = Domain(i)
	}
	return domains
}

// String 返回领域名称，越界值回落为electronics
func (d Domain) String() string {
	if d < 0 || int(d) >= len(domainNames) {
		return domainNames[DomainElectronics]
	}
	return domainNames[d]
}

// IsValid 是否为已定义的领域
func (d Domain) IsValid() bool {
	return d >= 0 && int(d) < len(domainNames)
}

// ParseDomain 解析领域名称
func ParseDomain(name string) (Domain, error) {
	for i, n := range domainNames {
		if n == name {
			return Domain(i), nil
		}
	}
	return DomainElectronics, fmt.Errorf("暂不支持的垂直领域类型: %q", name)
}

// MarshalText 实现encoding.TextMarshaler
func (d Domain) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText 实现encoding.TextUnmarshaler
func (d *Domain) UnmarshalText(text []byte) error {
	parsed, err := ParseDomain(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Paste 图片贴合类型
type Paste int

const (
	// PasteOmit 不发送paste字段
	PasteOmit Paste = iota
	// PasteOff 关闭文字贴合
	PasteOff
	// PasteFull 返回整图贴合
	PasteFull
	// PasteBlock 返回块区贴合
	PasteBlock
)

// String 返回paste字段的取值，PasteOmit返回空串
func (p Paste) String() string {
	switch p {
	case PasteOff:
		return "0"
	case PasteFull:
		return "1"
	case PasteBlock:
		return "2"
	default:
		return ""
	}
}

// ParsePaste 解析paste取值，空串表示不发送
func ParsePaste(s string) (Paste, error) {
	switch s {
	case "":
		return PasteOmit, nil
	case "0":
		return PasteOff, nil
	case "1":
		return PasteFull, nil
	case "2":
		return PasteBlock, nil
	default:
		return PasteOmit, fmt.Errorf("无效的贴合类型: %q", s)
	}
}
