package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/iBreaker/baidu-trans/pkg/logger"
	"github.com/iBreaker/baidu-trans/pkg/types"
	yaml "gopkg.in/yaml.v2"
)

// 环境变量
const (
	EnvConfigPath = "BAIDU_TRANS_CONFIG"
	EnvAppID      = "BAIDU_APP_ID"
	EnvSecretKey  = "BAIDU_SECRET_KEY"
)

// DefaultPath 默认配置文件路径，可用BAIDU_TRANS_CONFIG覆盖
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".baidu-trans", "config.yaml")
	}
	return "./config.yaml"
}

// ConfigManager 配置管理器
type ConfigManager struct {
	configPath string
	config     *types.Config
	// fileAccount 配置文件中的账号，环境变量覆盖的值不写回文件
	fileAccount types.AccountConfig
	mutex       sync.RWMutex
}

// NewConfigManager 创建新的配置管理器
func NewConfigManager(configPath string) *ConfigManager {
	return &ConfigManager{
		configPath: configPath,
	}
}

// Load 加载配置文件
func (m *ConfigManager) Load() (*types.Config, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.loadUnsafe()
}

// loadUnsafe 不加锁的加载方法（内部使用）
func (m *ConfigManager) loadUnsafe() (*types.Config, error) {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		// 如果配置文件不存在，创建默认配置
		if os.IsNotExist(err) {
			config := m.createDefaultConfig()
			m.fileAccount = config.Account
			if err := m.saveUnsafe(config); err != nil {
				return nil, fmt.Errorf("创建默认配置文件失败: %w", err)
			}
			logger.Info("已创建默认配置文件: %s", m.configPath)
			m.applyEnvironmentConfig(config)
			return config, nil
		}
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := m.createDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	m.config = config
	m.fileAccount = config.Account

	// 应用环境变量配置
	m.applyEnvironmentConfig(config)

	return config, nil
}

// Save 保存配置到文件
func (m *ConfigManager) Save(config *types.Config) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.saveUnsafe(config)
}

// saveUnsafe 不加锁的保存方法（内部使用）
func (m *ConfigManager) saveUnsafe(config *types.Config) error {
	persisted := *config
	persisted.Account = m.persistedAccount(config.Account)

	data, err := yaml.Marshal(&persisted)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	// 确保目录存在
	if dir := filepath.Dir(m.configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建配置目录失败: %w", err)
		}
	}

	// 配置中有密钥，只允许当前用户读写
	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	m.config = config
	m.fileAccount = persisted.Account
	return nil
}

// persistedAccount 与环境变量相同的账号字段保留文件中的原值
func (m *ConfigManager) persistedAccount(account types.AccountConfig) types.AccountConfig {
	if env := os.Getenv(EnvAppID); env != "" && account.AppID == env {
		account.AppID = m.fileAccount.AppID
	}
	if env := os.Getenv(EnvSecretKey); env != "" && account.SecretKey == env {
		account.SecretKey = m.fileAccount.SecretKey
	}
	return account
}

// Get 获取当前配置
func (m *ConfigManager) Get() *types.Config {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.config
}

// GetConfigPath 获取配置文件路径
func (m *ConfigManager) GetConfigPath() string {
	return m.configPath
}

// Validate 验证配置有效性
func (m *ConfigManager) Validate() error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.config == nil {
		return fmt.Errorf("配置未加载")
	}

	if m.config.Server.Port <= 0 || m.config.Server.Port > 65535 {
		return fmt.Errorf("无效的端口号: %d", m.config.Server.Port)
	}

	if m.config.Server.Host == "" {
		return fmt.Errorf("服务器地址不能为空")
	}

	if m.config.HTTP.Timeout < 0 {
		return fmt.Errorf("无效的请求超时: %d", m.config.HTTP.Timeout)
	}

	if !m.config.Translate.From.IsValid() || !m.config.Translate.To.IsValid() {
		return fmt.Errorf("无效的默认语种: %d/%d", m.config.Translate.From, m.config.Translate.To)
	}

	if _, err := logger.ParseLevel(m.config.Logging.Level); err != nil {
		return err
	}

	for i, key := range m.config.GatewayKeys {
		if err := validateGatewayKey(&key, i); err != nil {
			return err
		}
	}

	return nil
}

// ValidateAccount 验证翻译账号已配置
func (m *ConfigManager) ValidateAccount() error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.config == nil {
		return fmt.Errorf("配置未加载")
	}
	if m.config.Account.AppID == "" {
		return fmt.Errorf("APP ID不能为空，请在 %s 中设置 account.app_id 或设置环境变量 %s", m.configPath, EnvAppID)
	}
	if m.config.Account.SecretKey == "" {
		return fmt.Errorf("密钥不能为空，请在 %s 中设置 account.secret_key 或设置环境变量 %s", m.configPath, EnvSecretKey)
	}
	return nil
}

// validateGatewayKey 验证网关API Key配置
func validateGatewayKey(key *types.GatewayAPIKey, index int) error {
	if key.ID == "" {
		return fmt.Errorf("gateway API Key[%d] ID不能为空", index)
	}

	if key.Name == "" {
		return fmt.Errorf("gateway API Key[%d] 名称不能为空", index)
	}

	if key.KeyHash == "" {
		return fmt.Errorf("gateway API Key[%d] 密钥哈希不能为空", index)
	}

	return nil
}

// createDefaultConfig 创建默认配置
func (m *ConfigManager) createDefaultConfig() *types.Config {
	return &types.Config{
		Translate: types.TranslateConfig{
			From: types.LangAuto,
			To:   types.LangZh,
		},
		HTTP: types.HTTPConfig{
			Timeout: 30,
		},
		Server: types.ServerConfig{
			Host:    "0.0.0.0",
			Port:    3848,
			Timeout: 60,
		},
		GatewayKeys: []types.GatewayAPIKey{},
		Logging: types.LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "",
		},
		Environment: types.EnvironmentConfig{
			NoProxy: "localhost,127.0.0.1,::1",
		},
	}
}

// Reload 重新读取配置文件，失败时保留当前配置
func (m *ConfigManager) Reload() (*types.Config, error) {
	return m.Load()
}

// ===== Gateway API Keys CRUD =====

// CreateGatewayKey 创建网关API Key
func (m *ConfigManager) CreateGatewayKey(key *types.GatewayAPIKey) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.config == nil {
		return fmt.Errorf("配置未加载")
	}

	for _, existingKey := range m.config.GatewayKeys {
		if existingKey.ID == key.ID {
			return fmt.Errorf("gateway API Key ID已存在: %s", key.ID)
		}
	}

	m.config.GatewayKeys = append(m.config.GatewayKeys, *key)

	// 自动保存到文件
	return m.saveUnsafe(m.config)
}

// ListGatewayKeys 列出所有网关API Key
func (m *ConfigManager) ListGatewayKeys() []*types.GatewayAPIKey {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.config == nil {
		return []*types.GatewayAPIKey{}
	}

	// 返回副本避免外部修改内部数据
	keys := make([]*types.GatewayAPIKey, len(m.config.GatewayKeys))
	for i, key := range m.config.GatewayKeys {
		keyCopy := key
		keys[i] = &keyCopy
	}

	return keys
}

// GetGatewayKey 获取指定网关API Key的副本
func (m *ConfigManager) GetGatewayKey(keyID string) (*types.GatewayAPIKey, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.config == nil {
		return nil, fmt.Errorf("配置未加载")
	}

	for _, key := range m.config.GatewayKeys {
		if key.ID == keyID {
			keyCopy := key
			return &keyCopy, nil
		}
	}

	return nil, fmt.Errorf("gateway API Key不存在: %s", keyID)
}

// UpdateGatewayKey 更新网关API Key
func (m *ConfigManager) UpdateGatewayKey(keyID string, updater func(*types.GatewayAPIKey) error) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.config == nil {
		return fmt.Errorf("配置未加载")
	}

	for i, key := range m.config.GatewayKeys {
		if key.ID == keyID {
			if err := updater(&m.config.GatewayKeys[i]); err != nil {
				return err
			}
			return m.saveUnsafe(m.config)
		}
	}

	return fmt.Errorf("gateway API Key不存在: %s", keyID)
}

// DeleteGatewayKey 删除网关API Key
func (m *ConfigManager) DeleteGatewayKey(keyID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.config == nil {
		return fmt.Errorf("配置未加载")
	}

	for i, key := range m.config.GatewayKeys {
		if key.ID == keyID {
			m.config.GatewayKeys = append(m.config.GatewayKeys[:i], m.config.GatewayKeys[i+1:]...)
			return m.saveUnsafe(m.config)
		}
	}

	return fmt.Errorf("gateway API Key不存在: %s", keyID)
}

// applyEnvironmentConfig 应用环境变量配置
func (m *ConfigManager) applyEnvironmentConfig(config *types.Config) {
	// 账号可由环境变量覆盖，避免把密钥写进文件
	if appID := os.Getenv(EnvAppID); appID != "" {
		config.Account.AppID = appID
	}
	if secret := os.Getenv(EnvSecretKey); secret != "" {
		config.Account.SecretKey = secret
	}

	// 设置HTTP代理环境变量
	if config.Environment.HTTPProxy != "" {
		_ = os.Setenv("HTTP_PROXY", config.Environment.HTTPProxy)
	}

	if config.Environment.HTTPSProxy != "" {
		_ = os.Setenv("HTTPS_PROXY", config.Environment.HTTPSProxy)
	}

	if config.Environment.NoProxy != "" {
		_ = os.Setenv("NO_PROXY", config.Environment.NoProxy)
	}
}
