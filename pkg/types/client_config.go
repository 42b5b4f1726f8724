package types

// ClientConfig 客户端配置
//
// 只归属于一个客户端实例，不加锁；修改语种需与正在进行的翻译调用串行。
type ClientConfig struct {
	AppID      string // APP ID
	SecretKey  string // 密钥
	From       Lang   // 源语言，默认auto
	To         Lang   // 目标语言，默认auto
	OpenDict   bool   // 是否开通词典
	OpenTTS    bool   // 是否开通TTS
	OpenAction bool   // 是否开通"我的术语"
}

// NewClientConfig 创建客户端配置
func NewClientConfig(appID, secretKey string) ClientConfig {
	return ClientConfig{
		AppID:     appID,
		SecretKey: secretKey,
		From:      LangAuto,
		To:        LangAuto,
	}
}

// SetFrom 设置源语言
func (c *ClientConfig) SetFrom(from Lang) {
	c.From = from
}

// SetTo 设置目标语言
func (c *ClientConfig) SetTo(to Lang) {
	c.To = to
}
