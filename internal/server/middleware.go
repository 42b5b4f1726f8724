package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iBreaker/baidu-trans/internal/auth"
	"github.com/iBreaker/baidu-trans/internal/metrics"
	"github.com/iBreaker/baidu-trans/pkg/logger"
)

// 上下文中保存的网关密钥信息
const (
	ctxKeyID   = "gateway_key_id"
	ctxKeyName = "gateway_key_name"
)

// AuthMiddleware 认证中间件
type AuthMiddleware struct {
	gatewayKeyMgr *auth.GatewayKeyManager
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(gatewayKeyMgr *auth.GatewayKeyManager) *AuthMiddleware {
	return &AuthMiddleware{
		gatewayKeyMgr: gatewayKeyMgr,
	}
}

// Authenticate 校验Bearer token，请求结束后记录密钥使用统计
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "missing_authorization", "Authorization header is required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, http.StatusUnauthorized, "invalid_authorization_format", "Authorization header must be 'Bearer <token>'")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, "empty_token", "Authorization token cannot be empty")
			return
		}

		gatewayKey, err := m.gatewayKeyMgr.ValidateKey(token)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "invalid_token", "Invalid or disabled API key")
			return
		}

		c.Set(ctxKeyID, gatewayKey.ID)
		c.Set(ctxKeyName, gatewayKey.Name)

		start := time.Now()
		c.Next()

		success := c.Writer.Status() < http.StatusBadRequest
		if err := m.gatewayKeyMgr.UpdateKeyUsage(gatewayKey.ID, success, time.Since(start)); err != nil {
			logger.Warn("更新密钥使用统计失败 %s: %v", gatewayKey.ID, err)
		}
	}
}

// CORSMiddleware CORS中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// LoggingMiddleware 记录请求日志和HTTP指标
func LoggingMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		// 未匹配路由时FullPath为空，避免用原始路径制造高基数标签
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		if m != nil {
			m.ObserveHTTP(c.Request.Method, path, status, duration)
		}

		keyID := c.GetString(ctxKeyID)
		if keyID == "" {
			keyID = "anonymous"
		}
		logger.Info("%s %s %d %v key:%s", c.Request.Method, c.Request.URL.Path, status, duration, keyID)
	}
}

// abortWithError 写入错误响应并终止处理链
func abortWithError(c *gin.Context, statusCode int, errorType, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{
		Error: errorBody{
			Type:    errorType,
			Message: message,
		},
		Timestamp: time.Now().Unix(),
	})
}

// errorResponse 网关错误响应
type errorResponse struct {
	Error     errorBody `json:"error"`
	Timestamp int64     `json:"timestamp"`
}

type errorBody struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}
