package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iBreaker/baidu-trans/internal/app"
	"github.com/iBreaker/baidu-trans/internal/auth"
	"github.com/iBreaker/baidu-trans/internal/config"
	"github.com/iBreaker/baidu-trans/pkg/baidu"
	"github.com/iBreaker/baidu-trans/pkg/form"
	"github.com/iBreaker/baidu-trans/pkg/types"
	yaml "gopkg.in/yaml.v2"
)

func main() {
	// 初始化应用程序
	application, err := app.NewApplication(config.DefaultPath())
	if err != nil {
		log.Printf("初始化应用失败: %v\n", err)
		os.Exit(1)
	}

	// 运行CLI
	if err := runCLI(os.Args, application); err != nil {
		log.Printf("错误: %v\n", err)
		os.Exit(1)
	}
}

func runCLI(args []string, app *app.Application) error {
	if len(args) < 2 {
		printUsage()
		return nil
	}

	command := args[1]
	switch command {
	case "translate":
		return handleTranslate(args[2:], app)
	case "domain":
		return handleDomain(args[2:], app)
	case "image":
		return handleImage(args[2:], app)
	case "doc":
		return handleDoc(args[2:], app)
	case "server":
		return handleServer(args[2:], app)
	case "apikey":
		return handleAPIKey(args[2:], app)
	case "config":
		return handleConfig(args[2:], app)
	case "langs":
		return handleLangs()
	default:
		fmt.Printf("未知命令: %s\n\n", command)
		printUsage()
		return fmt.Errorf("未知命令: %s", command)
	}
}

func printUsage() {
	fmt.Println("Baidu Trans - 百度翻译开放平台客户端与翻译网关")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  baidu-trans <command> [arguments]")
	fmt.Println()
	fmt.Println("可用命令:")
	fmt.Println("  translate  通用文本翻译")
	fmt.Println("  domain     垂直领域翻译")
	fmt.Println("  image      图片翻译")
	fmt.Println("  doc        文档翻译")
	fmt.Println("  server     翻译网关服务器")
	fmt.Println("  apikey     网关API Key管理")
	fmt.Println("  config     配置管理")
	fmt.Println("  langs      列出支持的语种和领域")
	fmt.Println()
	fmt.Println("使用 'baidu-trans <command> --help' 查看命令的详细帮助")
}

// langFlags 各翻译命令共用的语种参数
type langFlags struct {
	from   *string
	to     *string
	asJSON *bool
}

func addLangFlags(fs *flag.FlagSet, cfg types.ClientConfig) langFlags {
	return langFlags{
		from:   fs.String("from", cfg.From.String(), "源语言"),
		to:     fs.String("to", cfg.To.String(), "目标语言"),
		asJSON: fs.Bool("json", false, "输出完整JSON结果"),
	}
}

// client 按命令行语种返回客户端副本
func (f langFlags) client(app *app.Application) (*baidu.Client, error) {
	from, err := types.ParseLang(*f.from)
	if err != nil {
		return nil, err
	}
	to, err := types.ParseLang(*f.to)
	if err != nil {
		return nil, err
	}
	return app.Client.WithLang(from, to), nil
}

// ===== 翻译命令处理器 =====

func handleTranslate(args []string, app *app.Application) error {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	lf := addLangFlags(fs, app.Client.Config())
	dict := fs.Bool("dict", app.Client.Config().OpenDict, "返回词典和TTS结果")
	action := fs.Bool("action", app.Client.Config().OpenAction, "使用自定义术语")
	timeout := fs.Duration("timeout", time.Minute, "整体超时")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("缺少参数: <text>...")
	}
	if err := app.RequireAccount(); err != nil {
		return err
	}

	client, err := lf.client(app)
	if err != nil {
		return err
	}
	client.SetOpenDict(*dict)
	client.SetOpenAction(*action)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// 多段文本并发请求，按输入顺序输出
	async := baidu.NewAsync(client)
	futures := make([]*baidu.Future[*types.TextResult], fs.NArg())
	for i, q := range fs.Args() {
		futures[i] = async.Translate(ctx, q)
	}

	var firstErr error
	for i, future := range futures {
		result, err := future.Await(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%d] 翻译失败: %v\n", i+1, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if *lf.asJSON {
			if err := printJSON(result); err != nil {
				return err
			}
			continue
		}
		fmt.Println(result.Text())
	}

	return firstErr
}

func handleDomain(args []string, app *app.Application) error {
	fs := flag.NewFlagSet("domain", flag.ContinueOnError)
	lf := addLangFlags(fs, app.Client.Config())
	domainName := fs.String("domain", "", "领域: electronics, finance, mechanics, medicine, novel")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("缺少参数: <text>")
	}
	if *domainName == "" {
		return fmt.Errorf("缺少必要参数: --domain")
	}
	domain, err := types.ParseDomain(*domainName)
	if err != nil {
		return err
	}
	if err := app.RequireAccount(); err != nil {
		return err
	}

	client, err := lf.client(app)
	if err != nil {
		return err
	}

	result, err := client.DomainTranslate(context.Background(), strings.Join(fs.Args(), " "), domain)
	if err != nil {
		return err
	}
	if *lf.asJSON {
		return printJSON(result)
	}
	fmt.Println(result.Text())
	return nil
}

func handleImage(args []string, app *app.Application) error {
	fs := flag.NewFlagSet("image", flag.ContinueOnError)
	lf := addLangFlags(fs, app.Client.Config())
	paste := fs.String("paste", "", "贴合图片: 0 不贴合, 1 整屏贴合, 2 分块贴合")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("缺少参数: <image-file>")
	}
	pasteMode, err := types.ParsePaste(*paste)
	if err != nil {
		return err
	}
	if err := app.RequireAccount(); err != nil {
		return err
	}

	client, err := lf.client(app)
	if err != nil {
		return err
	}

	result, err := client.ImageTranslateFile(context.Background(), fs.Arg(0), form.ImageOptions{Paste: pasteMode})
	if err != nil {
		return err
	}
	if *lf.asJSON || result.Data == nil {
		return printJSON(result)
	}

	fmt.Printf("原文: %s\n", result.Data.SumSrc)
	fmt.Printf("译文: %s\n", result.Data.SumDst)
	for i, content := range result.Data.Content {
		fmt.Printf("  [%d] %s -> %s (%s)\n", i+1, content.Src, content.Dst, content.Rect)
	}
	return nil
}

// ===== 文档命令处理器 =====

func handleDoc(args []string, app *app.Application) error {
	if len(args) == 0 {
		printDocUsage()
		return nil
	}

	subcommand := args[0]
	switch subcommand {
	case "count":
		return handleDocCount(args[1:], app)
	case "translate":
		return handleDocTranslate(args[1:], app)
	default:
		fmt.Printf("未知的doc子命令: %s\n\n", subcommand)
		printDocUsage()
		return fmt.Errorf("未知的doc子命令: %s", subcommand)
	}
}

func printDocUsage() {
	fmt.Println("用法: baidu-trans doc <subcommand> [flags] <file>")
	fmt.Println("描述: 文档翻译")
	fmt.Println()
	fmt.Println("子命令:")
	fmt.Println("  count      统计字符数和费用")
	fmt.Println("  translate  提交文档翻译")
}

func handleDocCount(args []string, app *app.Application) error {
	fs := flag.NewFlagSet("doc count", flag.ContinueOnError)
	lf := addLangFlags(fs, app.Client.Config())

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("缺少参数: <file>")
	}
	if err := app.RequireAccount(); err != nil {
		return err
	}

	client, err := lf.client(app)
	if err != nil {
		return err
	}

	result, err := client.DocCountFile(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}
	if *lf.asJSON || result.Data == nil {
		return printJSON(result)
	}

	fmt.Printf("文件ID: %s\n", result.Data.FileID)
	fmt.Printf("字符数: %d\n", result.Data.CharCount)
	fmt.Printf("费用: %.2f 元\n", float64(result.Data.Amount)/100)
	return nil
}

func handleDocTranslate(args []string, app *app.Application) error {
	fs := flag.NewFlagSet("doc translate", flag.ContinueOnError)
	lf := addLangFlags(fs, app.Client.Config())
	outType := fs.String("out", "", "输出文件类型，如 pdf、docx，留空与原文件一致")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("缺少参数: <file>")
	}
	if err := app.RequireAccount(); err != nil {
		return err
	}

	client, err := lf.client(app)
	if err != nil {
		return err
	}

	result, err := client.DocTranslateFile(context.Background(), fs.Arg(0), *outType)
	if err != nil {
		return err
	}
	if *lf.asJSON || result.Data == nil {
		return printJSON(result)
	}

	fmt.Printf("文档翻译已提交，文件ID: %s\n", result.Data.FileID)
	return nil
}

func handleLangs() error {
	fmt.Println("支持的语种:")
	for _, lang := range types.AllLangs() {
		fmt.Printf("  %s\n", lang)
	}
	fmt.Println()
	fmt.Println("支持的领域:")
	for _, domain := range types.AllDomains() {
		fmt.Printf("  %s\n", domain)
	}
	return nil
}

// ===== 服务器命令处理器 =====

func handleServer(args []string, app *app.Application) error {
	if len(args) == 0 {
		printServerUsage()
		return nil
	}

	subcommand := args[0]
	switch subcommand {
	case "start":
		return handleServerStart(args[1:], app)
	case "status":
		return handleServerStatus(args[1:], app)
	default:
		fmt.Printf("未知的server子命令: %s\n\n", subcommand)
		printServerUsage()
		return fmt.Errorf("未知的server子命令: %s", subcommand)
	}
}

func printServerUsage() {
	fmt.Println("用法: baidu-trans server <subcommand>")
	fmt.Println("描述: 翻译网关服务器")
	fmt.Println()
	fmt.Println("子命令:")
	fmt.Println("  start      启动HTTP服务器")
	fmt.Println("  status     查看服务器配置")
}

func handleServerStart(args []string, app *app.Application) error {
	srv, err := app.NewServer()
	if err != nil {
		return err
	}

	config := app.Config.Get()
	fmt.Printf("启动翻译网关HTTP服务器...\n")
	fmt.Printf("监听地址: %s:%d\n", config.Server.Host, config.Server.Port)
	fmt.Printf("请求超时: %d秒\n", config.Server.Timeout)
	fmt.Printf("Gateway API Keys: %d个\n", len(app.GatewayKeyMgr.ListKeys()))
	fmt.Println()
	fmt.Println("服务器启动中，按 Ctrl+C 停止...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	fmt.Println("正在停止服务器...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("停止服务器失败: %w", err)
	}
	return <-errCh
}

func handleServerStatus(args []string, app *app.Application) error {
	config := app.Config.Get()

	fmt.Println("翻译网关配置:")
	fmt.Printf("配置文件: %s\n", app.Config.GetConfigPath())
	fmt.Printf("监听地址: %s:%d\n", config.Server.Host, config.Server.Port)
	fmt.Printf("请求超时: %d秒\n", config.Server.Timeout)

	gatewayKeys := app.GatewayKeyMgr.ListKeys()
	activeKeys := 0
	for _, key := range gatewayKeys {
		if key.Status == auth.StatusActive {
			activeKeys++
		}
	}

	fmt.Printf("\nGateway API Keys:\n")
	fmt.Printf("  总数: %d个\n", len(gatewayKeys))
	fmt.Printf("  活跃: %d个\n", activeKeys)

	if err := app.RequireAccount(); err != nil {
		fmt.Printf("\n翻译账号: 未配置 (%v)\n", err)
	} else {
		fmt.Printf("\n翻译账号: %s\n", config.Account.AppID)
	}
	return nil
}

// ===== API Key 命令处理器 =====

func handleAPIKey(args []string, app *app.Application) error {
	if len(args) == 0 {
		printAPIKeyUsage()
		return nil
	}

	subcommand := args[0]
	switch subcommand {
	case "add":
		return handleAPIKeyAdd(args[1:], app)
	case "list":
		return handleAPIKeyList(args[1:], app)
	case "show":
		return handleAPIKeyShow(args[1:], app)
	case "remove":
		return handleAPIKeyRemove(args[1:], app)
	case "disable":
		return handleAPIKeyStatus(args[1:], app, auth.StatusDisabled)
	case "enable":
		return handleAPIKeyStatus(args[1:], app, auth.StatusActive)
	default:
		fmt.Printf("未知的apikey子命令: %s\n\n", subcommand)
		printAPIKeyUsage()
		return fmt.Errorf("未知的apikey子命令: %s", subcommand)
	}
}

func printAPIKeyUsage() {
	fmt.Println("用法: baidu-trans apikey <subcommand>")
	fmt.Println("描述: 网关API Key管理")
	fmt.Println()
	fmt.Println("子命令:")
	fmt.Println("  add        添加新的API Key")
	fmt.Println("  list       列出所有API Key")
	fmt.Println("  show       显示API Key详情")
	fmt.Println("  remove     删除API Key")
	fmt.Println("  disable    禁用API Key")
	fmt.Println("  enable     启用API Key")
}

func handleAPIKeyAdd(args []string, app *app.Application) error {
	fs := flag.NewFlagSet("apikey add", flag.ContinueOnError)
	name := fs.String("name", "", "API Key名称")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		return fmt.Errorf("缺少必要参数: --name")
	}

	key, rawKey, err := app.GatewayKeyMgr.CreateKey(*name)
	if err != nil {
		return fmt.Errorf("创建API Key失败: %w", err)
	}

	fmt.Printf("成功创建Gateway API Key:\n")
	fmt.Printf("  ID: %s\n", key.ID)
	fmt.Printf("  名称: %s\n", key.Name)
	fmt.Printf("  密钥: %s\n", rawKey)
	fmt.Printf("  状态: %s\n", key.Status)
	fmt.Println()
	fmt.Println("请妥善保存上述密钥，系统不会再次显示！")

	return nil
}

func handleAPIKeyList(args []string, app *app.Application) error {
	keys := app.GatewayKeyMgr.ListKeys()

	if len(keys) == 0 {
		fmt.Println("没有找到Gateway API Key")
		return nil
	}

	fmt.Printf("Gateway API Key列表 (共%d个):\n\n", len(keys))

	for _, key := range keys {
		fmt.Printf("ID: %s\n", key.ID)
		fmt.Printf("  名称: %s\n", key.Name)
		fmt.Printf("  状态: %s\n", key.Status)
		fmt.Printf("  创建时间: %s\n", key.CreatedAt.Format("2006-01-02 15:04:05"))

		if key.Usage != nil && key.Usage.TotalRequests > 0 {
			fmt.Printf("  总请求数: %d\n", key.Usage.TotalRequests)
			fmt.Printf("  成功请求: %d\n", key.Usage.SuccessfulRequests)
			fmt.Printf("  最后使用: %s\n", key.Usage.LastUsedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Println()
	}

	return nil
}

func handleAPIKeyShow(args []string, app *app.Application) error {
	if len(args) == 0 {
		return fmt.Errorf("缺少参数: <key-id>")
	}

	key, err := app.GatewayKeyMgr.GetKey(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Gateway API Key详情:\n\n")
	fmt.Printf("ID: %s\n", key.ID)
	fmt.Printf("名称: %s\n", key.Name)
	fmt.Printf("状态: %s\n", key.Status)
	fmt.Printf("创建时间: %s\n", key.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("更新时间: %s\n", key.UpdatedAt.Format("2006-01-02 15:04:05"))

	if key.Usage != nil {
		fmt.Println("\n使用统计:")
		fmt.Printf("  总请求数: %d\n", key.Usage.TotalRequests)
		fmt.Printf("  成功请求: %d\n", key.Usage.SuccessfulRequests)
		fmt.Printf("  错误请求: %d\n", key.Usage.ErrorRequests)
		fmt.Printf("  平均延迟: %.2f ms\n", key.Usage.AvgLatency)
		if !key.Usage.LastUsedAt.IsZero() {
			fmt.Printf("  最后使用: %s\n", key.Usage.LastUsedAt.Format("2006-01-02 15:04:05"))
		}
		if key.Usage.LastErrorAt != nil {
			fmt.Printf("  最后错误: %s\n", key.Usage.LastErrorAt.Format("2006-01-02 15:04:05"))
		}
	}

	return nil
}

func handleAPIKeyRemove(args []string, app *app.Application) error {
	if len(args) == 0 {
		return fmt.Errorf("缺少参数: <key-id>")
	}

	keyID := args[0]
	if err := app.GatewayKeyMgr.DeleteKey(keyID); err != nil {
		return fmt.Errorf("删除API Key失败: %w", err)
	}

	fmt.Printf("成功删除Gateway API Key: %s\n", keyID)
	return nil
}

func handleAPIKeyStatus(args []string, app *app.Application, status string) error {
	if len(args) == 0 {
		return fmt.Errorf("缺少参数: <key-id>")
	}

	keyID := args[0]
	if err := app.GatewayKeyMgr.UpdateKeyStatus(keyID, status); err != nil {
		return fmt.Errorf("更新API Key状态失败: %w", err)
	}

	fmt.Printf("Gateway API Key %s 状态已更新为 %s\n", keyID, status)
	return nil
}

// ===== 配置命令处理器 =====

func handleConfig(args []string, app *app.Application) error {
	if len(args) == 0 {
		fmt.Println("用法: baidu-trans config <show|path|validate|set-account>")
		return nil
	}

	switch args[0] {
	case "path":
		fmt.Println(app.Config.GetConfigPath())
		return nil
	case "show":
		return handleConfigShow(app)
	case "validate":
		return handleConfigValidate(app)
	case "set-account":
		return handleConfigSetAccount(args[1:], app)
	default:
		return fmt.Errorf("未知的config子命令: %s", args[0])
	}
}

func handleConfigShow(app *app.Application) error {
	cfg := *app.Config.Get()
	cfg.Account.SecretKey = maskSecret(cfg.Account.SecretKey)
	// 密钥哈希无需展示
	cfg.GatewayKeys = nil

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

// handleConfigValidate 重新读取配置文件并校验
func handleConfigValidate(app *app.Application) error {
	if _, err := app.Config.Reload(); err != nil {
		return err
	}
	if err := app.Config.Validate(); err != nil {
		return fmt.Errorf("配置无效: %w", err)
	}
	fmt.Printf("配置有效: %s\n", app.Config.GetConfigPath())
	return nil
}

func handleConfigSetAccount(args []string, app *app.Application) error {
	fs := flag.NewFlagSet("config set-account", flag.ContinueOnError)
	appID := fs.String("appid", "", "百度翻译开放平台APP ID")
	secret := fs.String("secret", "", "百度翻译开放平台密钥")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *appID == "" || *secret == "" {
		return errors.New("缺少必要参数: --appid 和 --secret")
	}

	cfg := *app.Config.Get()
	cfg.Account = types.AccountConfig{AppID: *appID, SecretKey: *secret}
	if err := app.Config.Save(&cfg); err != nil {
		return err
	}

	fmt.Printf("已保存翻译账号到 %s\n", app.Config.GetConfigPath())
	return nil
}

func maskSecret(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:2] + strings.Repeat("*", len(secret)-4) + secret[len(secret)-2:]
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化结果失败: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
