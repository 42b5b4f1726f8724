// Package auth 管理访问翻译网关的API Key
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/iBreaker/baidu-trans/pkg/types"
)

// 密钥状态
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// KeyPrefix 原始密钥前缀
const KeyPrefix = "bt-"

// KeyStore 密钥持久化接口，由配置管理器实现
type KeyStore interface {
	CreateGatewayKey(key *types.GatewayAPIKey) error
	GetGatewayKey(keyID string) (*types.GatewayAPIKey, error)
	ListGatewayKeys() []*types.GatewayAPIKey
	UpdateGatewayKey(keyID string, updater func(*types.GatewayAPIKey) error) error
	DeleteGatewayKey(keyID string) error
}

// GatewayKeyManager Gateway API Key管理器
//
// 使用统计只在内存中累计，调用FlushUsage时才写入存储。
type GatewayKeyManager struct {
	store KeyStore
	now   func() time.Time
	usage map[string]*types.KeyUsageStats
	mutex sync.Mutex
}

// NewGatewayKeyManager 创建新的Gateway Key管理器
func NewGatewayKeyManager(store KeyStore) *GatewayKeyManager {
	return &GatewayKeyManager{
		store: store,
		now:   time.Now,
		usage: make(map[string]*types.KeyUsageStats),
	}
}

// CreateKey 创建新的Gateway API Key，原始密钥只在此时返回一次
func (m *GatewayKeyManager) CreateKey(name string) (*types.GatewayAPIKey, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", fmt.Errorf("密钥名称不能为空")
	}

	// 生成原始key
	rawKey, err := generateRandomKey(24)
	if err != nil {
		return nil, "", fmt.Errorf("生成密钥失败: %w", err)
	}
	rawKey = KeyPrefix + rawKey

	keyID, err := generateID("gw")
	if err != nil {
		return nil, "", fmt.Errorf("生成密钥ID失败: %w", err)
	}

	now := m.now()
	key := &types.GatewayAPIKey{
		ID:        keyID,
		Name:      name,
		KeyHash:   hashKey(rawKey),
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
		Usage:     &types.KeyUsageStats{},
	}

	if err := m.store.CreateGatewayKey(key); err != nil {
		return nil, "", err
	}
	return key, rawKey, nil
}

// ValidateKey 验证Gateway API Key
func (m *GatewayKeyManager) ValidateKey(rawKey string) (*types.GatewayAPIKey, error) {
	if rawKey == "" {
		return nil, fmt.Errorf("缺少API密钥")
	}

	keyHash := hashKey(rawKey)
	for _, key := range m.store.ListGatewayKeys() {
		if key.KeyHash == keyHash && key.Status == StatusActive {
			return key, nil
		}
	}

	return nil, fmt.Errorf("无效的API密钥")
}

// GetKey 获取指定的Gateway API Key，包含尚未写入的使用统计
func (m *GatewayKeyManager) GetKey(keyID string) (*types.GatewayAPIKey, error) {
	key, err := m.store.GetGatewayKey(keyID)
	if err != nil {
		return nil, err
	}
	return m.withUsage(key), nil
}

// ListKeys 列出所有Gateway API Key
func (m *GatewayKeyManager) ListKeys() []*types.GatewayAPIKey {
	keys := m.store.ListGatewayKeys()
	for i, key := range keys {
		keys[i] = m.withUsage(key)
	}
	return keys
}

// DeleteKey 删除Gateway API Key
func (m *GatewayKeyManager) DeleteKey(keyID string) error {
	if err := m.store.DeleteGatewayKey(keyID); err != nil {
		return err
	}

	m.mutex.Lock()
	delete(m.usage, keyID)
	m.mutex.Unlock()
	return nil
}

// UpdateKeyStatus 更新Gateway API Key状态
func (m *GatewayKeyManager) UpdateKeyStatus(keyID string, status string) error {
	if status != StatusActive && status != StatusDisabled {
		return fmt.Errorf("无效的密钥状态: %s", status)
	}
	return m.store.UpdateGatewayKey(keyID, func(key *types.GatewayAPIKey) error {
		key.Status = status
		key.UpdatedAt = m.now()
		return nil
	})
}

// UpdateKeyUsage 在内存中更新Gateway API Key使用统计
func (m *GatewayKeyManager) UpdateKeyUsage(keyID string, success bool, latency time.Duration) error {
	key, err := m.store.GetGatewayKey(keyID)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	usage, ok := m.usage[keyID]
	if !ok {
		usage = &types.KeyUsageStats{}
		if key.Usage != nil {
			*usage = *key.Usage
		}
		m.usage[keyID] = usage
	}

	now := m.now()
	usage.TotalRequests++
	if success {
		usage.SuccessfulRequests++
	} else {
		usage.ErrorRequests++
		usage.LastErrorAt = &now
	}
	usage.LastUsedAt = now

	// 滑动平均延迟(毫秒)
	n := float64(usage.TotalRequests)
	usage.AvgLatency = (usage.AvgLatency*(n-1) + float64(latency.Milliseconds())) / n
	return nil
}

// FlushUsage 把内存中的使用统计写入存储
func (m *GatewayKeyManager) FlushUsage() error {
	m.mutex.Lock()
	pending := make(map[string]types.KeyUsageStats, len(m.usage))
	for id, usage := range m.usage {
		pending[id] = *usage
	}
	m.mutex.Unlock()

	var firstErr error
	for id, usage := range pending {
		usage := usage
		err := m.store.UpdateGatewayKey(id, func(key *types.GatewayAPIKey) error {
			key.Usage = &usage
			return nil
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("保存密钥使用统计失败 %s: %w", id, err)
		}
	}
	return firstErr
}

// withUsage 用内存中的统计覆盖存储中的旧值
func (m *GatewayKeyManager) withUsage(key *types.GatewayAPIKey) *types.GatewayAPIKey {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if usage, ok := m.usage[key.ID]; ok {
		keyCopy := *key
		usageCopy := *usage
		keyCopy.Usage = &usageCopy
		return &keyCopy
	}
	return key
}

// generateRandomKey 生成随机密钥
func generateRandomKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// hashKey 计算密钥hash
func hashKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

// generateID 生成唯一ID
func generateID(prefix string) (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(bytes)), nil
}
