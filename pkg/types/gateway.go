package types

import "time"

// GatewayAPIKey - 网关API Key (用于客户端访问翻译网关)
type GatewayAPIKey struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	KeyHash   string         `json:"key_hash" yaml:"key_hash"`
	Status    string         `json:"status" yaml:"status"` // active, disabled
	Usage     *KeyUsageStats `json:"usage,omitempty" yaml:"usage,omitempty"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" yaml:"updated_at"`
}

// KeyUsageStats - 网关API Key使用统计
type KeyUsageStats struct {
	TotalRequests      int64      `json:"total_requests" yaml:"total_requests"`
	SuccessfulRequests int64      `json:"successful_requests" yaml:"successful_requests"`
	ErrorRequests      int64      `json:"error_requests" yaml:"error_requests"`
	LastUsedAt         time.Time  `json:"last_used_at" yaml:"last_used_at"`
	LastErrorAt        *time.Time `json:"last_error_at,omitempty" yaml:"last_error_at,omitempty"`
	AvgLatency         float64    `json:"avg_latency_ms" yaml:"avg_latency_ms"`
}
