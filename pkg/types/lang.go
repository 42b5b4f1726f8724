package types

import "fmt"

// Lang 常见语种
type Lang int

const (
	LangAuto Lang = iota // 自动检测
	LangZh               // 中文
	LangEn               // 英语
	LangYue              // 粤语
	LangWyw              // 文言文
	LangJp               // 日语
	LangKor              // 韩语
	LangFra              // 法语
	LangSpa              // 西班牙语
	LangTh               // 泰语
	LangAra              // 阿拉伯语
	LangRu               // 俄语
	LangPt               // 葡萄牙语
	LangDe               // 德语
	LangIt               // 意大利语
	LangEl               // 希腊语
	LangNl               // 荷兰语
	LangPl               // 波兰语
	LangBul              // 保加利亚语
	LangEst              // 爱沙尼亚语
	LangDan              // 丹麦语
	LangFin              // 芬兰语
	LangCs               // 捷克语
	LangRom              // 罗马尼亚语
	LangSlo              // 斯洛文尼亚语
	LangSwe              // 瑞典语
	LangHu               // 匈牙利语
	LangCht              // 繁体中文
	LangVie              // 越南语
)

var langCodes = [...]string{
	LangAuto: "auto",
	LangZh:   "zh",
	LangEn:   "en",
	LangYue:  "yue",
	LangWyw:  "wyw",
	LangJp:   "jp",
	LangKor:  "kor",
	LangFra:  "fra",
	LangSpa:  "spa",
	LangTh:   "th",
	LangAra:  "ara",
	LangRu:   "ru",
	LangPt:   "pt",
	LangDe:   "de",
	LangIt:   "it",
	LangEl:   "el",
	LangNl:   "nl",
	LangPl:   "pl",
	LangBul:  "bul",
	LangEst:  "est",
	LangDan:  "dan",
	LangFin:  "fin",
	LangCs:   "cs",
	LangRom:  "rom",
	LangSlo:  "slo",
	LangSwe:  "swe",
	LangHu:   "hu",
	LangCht:  "cht",
	LangVie:  "vie",
}

// AllLangs 返回全部支持的语种
func AllLangs() []Lang {
	langs := make([]Lang, len(langCodes))
	for i := range langCodes {
		langs[i] = Lang(i)
	}
	return langs
}

// String 返回百度接口使用的语种代码，越界值回落为auto
func (l Lang) String() string {
	if l < 0 || int(l) >= len(langCodes) {
		return langCodes[LangAuto]
	}
	return langCodes[l]
}

// IsValid 是否为已定义的语种
func (l Lang) IsValid() bool {
	return l >= 0 && int(l) < len(langCodes)
}

// ParseLang 解析语种代码
func ParseLang(code string) (Lang, error) {
	for i, c := range langCodes {
		if c == code {
			return Lang(i), nil
		}
	}
	return LangAuto, fmt.Errorf("不支持的语种: %q", code)
}

// MarshalText 实现encoding.TextMarshaler
func (l Lang) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 实现encoding.TextUnmarshaler
func (l *Lang) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*l = LangAuto
		return nil
	}
	parsed, err := ParseLang(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML 实现yaml.Marshaler
func (l Lang) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// UnmarshalYAML 实现yaml.Unmarshaler
func (l *Lang) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var code string
	if err := unmarshal(&code); err != nil {
		return err
	}
	return l.UnmarshalText([]byte(code))
}
