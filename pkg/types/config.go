package types

// Config - 全局配置
type Config struct {
	Account     AccountConfig     `yaml:"account"`
	Translate   TranslateConfig   `yaml:"translate"`
	Endpoints   EndpointConfig    `yaml:"endpoints"`
	HTTP        HTTPConfig        `yaml:"http"`
	Server      ServerConfig      `yaml:"server"`
	GatewayKeys []GatewayAPIKey   `yaml:"gateway_keys"`
	Logging     LoggingConfig     `yaml:"logging"`
	Environment EnvironmentConfig `yaml:"environment"`
}

// AccountConfig - 百度翻译开放平台账号
type AccountConfig struct {
	AppID     string `yaml:"app_id"`
	SecretKey string `yaml:"secret_key"`
}

// TranslateConfig - 翻译默认参数
type TranslateConfig struct {
	From       Lang `yaml:"from"`
	To         Lang `yaml:"to"`
	OpenDict   bool `yaml:"open_dict"`
	OpenTTS    bool `yaml:"open_tts"`
	OpenAction bool `yaml:"open_action"`
}

// EndpointConfig - 接口地址，留空使用官方地址
type EndpointConfig struct {
	Text     string `yaml:"text,omitempty"`
	Image    string `yaml:"image,omitempty"`
	Domain   string `yaml:"domain,omitempty"`
	DocCount string `yaml:"doc_count,omitempty"`
	Doc      string `yaml:"doc,omitempty"`
}

// HTTPConfig - 出站HTTP配置
type HTTPConfig struct {
	Timeout int `yaml:"timeout_seconds"`
}

// ServerConfig - 网关服务器配置
type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Timeout int    `yaml:"timeout_seconds"`
}

// LoggingConfig - 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// EnvironmentConfig - 环境变量配置
type EnvironmentConfig struct {
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// ClientConfig 由文件配置生成客户端配置
func (c *Config) ClientConfig() ClientConfig {
	cfg := NewClientConfig(c.Account.AppID, c.Account.SecretKey)
	cfg.From = c.Translate.From
	cfg.To = c.Translate.To
	cfg.OpenDict = c.Translate.OpenDict
	cfg.OpenTTS = c.Translate.OpenTTS
	cfg.OpenAction = c.Translate.OpenAction
	return cfg
}
