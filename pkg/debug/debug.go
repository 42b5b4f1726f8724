package debug

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/iBreaker/baidu-trans/pkg/logger"
)

// DebugMode 调试模式状态
var (
	enabled bool
	mu      sync.RWMutex
	logDir  string
)

// RequestTrace 单次翻译请求的跟踪信息
type RequestTrace struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Endpoint  string    `json:"endpoint"`
	URL       string    `json:"url"`

	// 签名后的表单字段（不含密钥）
	Fields map[string]string `json:"fields"`

	// multipart文件
	FileName string `json:"file_name,omitempty"`
	FileSize int    `json:"file_size,omitempty"`

	// 原始响应
	RawResponse json.RawMessage `json:"raw_response,omitempty"`

	Duration time.Duration `json:"duration"`

	// 错误信息
	Error string `json:"error,omitempty"`
}

// Enable 启用调试模式，日志写入 ~/.baidu-trans/debug
func Enable() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("获取用户家目录失败: %w", err)
	}
	return EnableAt(filepath.Join(homeDir, ".baidu-trans", "debug"))
}

// EnableAt 启用调试模式，日志写入指定目录
func EnableAt(dir string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建调试日志目录失败: %w", err)
	}

	logDir = dir
	enabled = true

	logger.Debug("Debug模式已启用，日志目录: %s", dir)
	return nil
}

// Disable 禁用调试模式
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled 检查是否启用调试模式
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Dir 返回调试日志目录
func Dir() string {
	mu.RLock()
	defer mu.RUnlock()
	return logDir
}

// NewRequestTrace 创建新的请求跟踪，未启用时返回nil
func NewRequestTrace(endpoint, url string) *RequestTrace {
	if !IsEnabled() {
		return nil
	}

	return &RequestTrace{
		RequestID: newRequestID(),
		Timestamp: time.Now(),
		Endpoint:  endpoint,
		URL:       url,
	}
}

// SetFields 记录签名后的表单字段
func (t *RequestTrace) SetFields(fields map[string]string) {
	if t == nil {
		return
	}
	t.Fields = make(map[string]string, len(fields))
	for k, v := range fields {
		t.Fields[k] = v
	}
}

// SetFile 记录multipart文件信息
func (t *RequestTrace) SetFile(name string, size int) {
	if t == nil {
		return
	}
	t.FileName = name
	t.FileSize = size
}

// SetResponse 记录原始响应
func (t *RequestTrace) SetResponse(data []byte) {
	if t == nil || len(data) == 0 {
		return
	}

	// 非JSON响应转为JSON字符串保存
	if json.Valid(data) {
		t.RawResponse = json.RawMessage(data)
	} else {
		safeData, _ := json.Marshal(string(data))
		t.RawResponse = json.RawMessage(safeData)
	}
}

// Finish 记录耗时和错误
func (t *RequestTrace) Finish(duration time.Duration, err error) {
	if t == nil {
		return
	}
	t.Duration = duration
	if err != nil {
		t.Error = err.Error()
	}
}

// Save 保存请求跟踪信息到文件
func (t *RequestTrace) Save() error {
	if t == nil || !IsEnabled() {
		return nil
	}

	dir := Dir()

	// 按日期创建子目录
	dateDir := filepath.Join(dir, t.Timestamp.Format("2006-01-02"))
	if err := os.MkdirAll(dateDir, 0755); err != nil {
		return fmt.Errorf("创建日期目录失败: %w", err)
	}

	// 文件名格式: HHMMSS_microseconds_requestID.json 确保时间顺序
	filename := fmt.Sprintf("%s_%06d_%s.json",
		t.Timestamp.Format("150405"),
		t.Timestamp.Nanosecond()/1000,
		t.RequestID)

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化跟踪数据失败: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dateDir, filename), data, 0644); err != nil {
		return fmt.Errorf("写入调试文件失败: %w", err)
	}

	return nil
}

// SaveAsync 异步保存请求跟踪信息
func (t *RequestTrace) SaveAsync() {
	if t == nil || !IsEnabled() {
		return
	}

	go func() {
		if err := t.Save(); err != nil {
			logger.Warn("保存调试信息失败: %v", err)
		}
	}()
}

// EnableFromConfig 日志级别为debug时启用调试模式
func EnableFromConfig() error {
	if logger.IsDebugEnabled() {
		return Enable()
	}
	return nil
}

// CleanOldLogs 清理旧的调试日志（保留最近N天）
func CleanOldLogs(keepDays int) error {
	if !IsEnabled() {
		return nil
	}

	dir := Dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	cutoffTime := time.Now().AddDate(0, 0, -keepDays)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		// 解析日期目录名
		if date, err := time.Parse("2006-01-02", entry.Name()); err == nil {
			if date.Before(cutoffTime) {
				oldDir := filepath.Join(dir, entry.Name())
				if err := os.RemoveAll(oldDir); err != nil {
					logger.Warn("删除旧调试日志目录失败 %s: %v", oldDir, err)
				}
			}
		}
	}

	return nil
}

func newRequestID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
