// Package app 组装配置、客户端与网关服务
package app

import (
	"fmt"
	"time"

	"github.com/iBreaker/baidu-trans/internal/auth"
	"github.com/iBreaker/baidu-trans/internal/config"
	"github.com/iBreaker/baidu-trans/internal/metrics"
	"github.com/iBreaker/baidu-trans/internal/server"
	"github.com/iBreaker/baidu-trans/pkg/baidu"
	"github.com/iBreaker/baidu-trans/pkg/debug"
	"github.com/iBreaker/baidu-trans/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Application 应用程序上下文
type Application struct {
	Config        *config.ConfigManager
	GatewayKeyMgr *auth.GatewayKeyManager
	Metrics       *metrics.Metrics
	Registry      *prometheus.Registry
	Client        *baidu.Client
	Async         *baidu.AsyncClient
}

// NewApplication 创建新的应用程序实例
func NewApplication(configPath string) (*Application, error) {
	// 初始化配置管理器
	configMgr := config.NewConfigManager(configPath)

	// 加载配置
	cfg, err := configMgr.Load()
	if err != nil {
		return nil, err
	}
	if err := configMgr.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}

	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return nil, err
	}
	logger.EnableDebugFromEnv()
	if err := debug.EnableFromConfig(); err != nil {
		logger.Warn("启用请求调试记录失败: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(registry)

	transport := baidu.NewRestyTransport(time.Duration(cfg.HTTP.Timeout) * time.Second)
	client := baidu.New(cfg.ClientConfig(),
		baidu.WithTransport(transport),
		baidu.WithEndpoints(baidu.EndpointsFromConfig(cfg.Endpoints)),
		baidu.WithObserver(m),
	)

	app := &Application{
		Config:        configMgr,
		GatewayKeyMgr: auth.NewGatewayKeyManager(configMgr),
		Metrics:       m,
		Registry:      registry,
		Client:        client,
		Async:         baidu.NewAsync(client),
	}

	return app, nil
}

// RequireAccount 确认已配置百度翻译账号
func (a *Application) RequireAccount() error {
	return a.Config.ValidateAccount()
}

// NewServer 创建翻译网关服务器
func (a *Application) NewServer() (*server.HTTPServer, error) {
	if err := a.RequireAccount(); err != nil {
		return nil, err
	}
	cfg := a.Config.Get()
	return server.NewServer(&cfg.Server, a.Client, a.GatewayKeyMgr, a.Metrics, a.Registry), nil
}
