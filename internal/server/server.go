// Package server 翻译网关HTTP服务
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iBreaker/baidu-trans/internal/auth"
	"github.com/iBreaker/baidu-trans/internal/metrics"
	"github.com/iBreaker/baidu-trans/pkg/baidu"
	"github.com/iBreaker/baidu-trans/pkg/logger"
	"github.com/iBreaker/baidu-trans/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServer HTTP服务器
type HTTPServer struct {
	engine    *gin.Engine
	config    *types.ServerConfig
	keyMgr    *auth.GatewayKeyManager
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	authMW    *AuthMiddleware
	translate *TranslateHandler
	server    *http.Server
}

// NewServer 创建新的HTTP服务器
func NewServer(
	config *types.ServerConfig,
	client *baidu.Client,
	keyMgr *auth.GatewayKeyManager,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
) *HTTPServer {
	if logger.IsDebugEnabled() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	timeout := time.Duration(config.Timeout) * time.Second
	s := &HTTPServer{
		engine:    gin.New(),
		config:    config,
		keyMgr:    keyMgr,
		metrics:   m,
		gatherer:  gatherer,
		authMW:    NewAuthMiddleware(keyMgr),
		translate: NewTranslateHandler(client),
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}

	s.setupRoutes()
	return s
}

// setupRoutes 设置路由
func (s *HTTPServer) setupRoutes() {
	s.engine.Use(gin.Recovery(), CORSMiddleware(), LoggingMiddleware(s.metrics))

	// 无需认证
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	// 翻译接口：CORS -> 日志 -> 认证 -> 处理器
	v1 := s.engine.Group("/v1", s.authMW.Authenticate())
	v1.POST("/translate", s.translate.HandleTranslate)
	v1.POST("/domain", s.translate.HandleDomain)
	v1.POST("/image", s.translate.HandleImage)
	v1.POST("/doc/count", s.translate.HandleDocCount)
	v1.POST("/doc/translate", s.translate.HandleDocTranslate)
}

// Handler 返回HTTP处理器
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Start 启动服务器，阻塞直到服务器关闭
func (s *HTTPServer) Start() error {
	if len(s.keyMgr.ListKeys()) == 0 {
		logger.Warn("尚未创建网关API Key，所有 /v1 请求都会被拒绝，请先执行 apikey add")
	}

	logger.Info("启动翻译网关服务器，地址: %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("服务器运行失败: %w", err)
	}
	return nil
}

// Stop 停止服务器，并写入内存中的密钥使用统计
func (s *HTTPServer) Stop(ctx context.Context) error {
	shutdownErr := s.server.Shutdown(ctx)
	if err := s.keyMgr.FlushUsage(); err != nil {
		logger.Error("保存密钥使用统计失败: %v", err)
		if shutdownErr == nil {
			return err
		}
	}
	return shutdownErr
}

// handleHealth 健康检查处理器
func (s *HTTPServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "baidu-trans",
	})
}
