package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/clickmediapropy/traductor-app/internal/config"
	"github.com/clickmediapropy/traductor-app/internal/dao/store"
	"github.com/clickmediapropy/traductor-app/internal/gateway/telegram"
	"github.com/clickmediapropy/traductor-app/internal/handler"
	"github.com/clickmediapropy/traductor-app/internal/https_server"
	"github.com/clickmediapropy/traductor-app/internal/infrastructure/anthropic"
	"github.com/clickmediapropy/traductor-app/internal/infrastructure/logger"
	"github.com/clickmediapropy/traductor-app/internal/service"
	"github.com/clickmediapropy/traductor-app/internal/service/translate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	if conf.MainConfig.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. 初始化参数校验器的翻译器（错误提示使用西班牙语）
	if err := handler.InitTrans("es"); err != nil {
		zap.L().Fatal("校验翻译器初始化失败", zap.Error(err))
	}
	zap.L().Info("校验翻译器初始化成功")

	// 4. 初始化会话存储（按配置选择后端）
	sessionStore := newSessionStore(conf)
	zap.L().Info("会话存储初始化成功", zap.String("backend", conf.StorageConfig.Backend))

	// 5. 注入固定测试会话，方便网页端联调
	if err := store.SeedFixture(context.Background(), sessionStore); err != nil {
		zap.L().Warn("测试会话注入失败", zap.Error(err))
	}

	// 6. 初始化翻译后端和自定义指令
	instructions := translate.NewInstructions()
	backend := anthropic.NewTranslatorClient(&conf.AnthropicConfig, instructions)

	// 7. 初始化 Service 层 (依赖注入)
	services := service.NewServices(sessionStore, backend, conf.AnthropicConfig.TimeoutSeconds)
	zap.L().Info("Service 层初始化成功")

	// 8. 初始化 Telegram 发送端和入站适配器
	sender := newMessageSender(conf)
	adapter := telegram.NewAdapter(services.Session, sender)
	zap.L().Info("Telegram 适配器初始化成功")

	// 9. 初始化 HTTP 服务器
	handlers := handler.NewHandlers(services, adapter, instructions)
	engine := https_server.Init(handlers)
	zap.L().Info("HTTP 服务器初始化成功")

	// 10. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port

	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit

	zap.L().Info("关闭服务器...")
	zap.L().Info("服务器已关闭")
}

// newSessionStore 按配置选择会话存储后端
// 未识别的取值回退到进程内共享存储
func newSessionStore(conf *config.Config) store.SessionStore {
	switch conf.StorageConfig.Backend {
	case "redis":
		return store.NewRedisStore(store.NewRedisClient(&conf.RedisConfig))
	case "memory":
		return store.NewMemoryStore()
	default:
		return store.Shared()
	}
}

// newMessageSender 创建 Telegram 消息发送端
// 未启用或创建失败时退化为仅记录日志的实现
func newMessageSender(conf *config.Config) telegram.MessageSender {
	if !conf.TelegramConfig.Enabled {
		return telegram.NewLoggingSender()
	}
	sender, err := telegram.NewBotSender(&conf.TelegramConfig)
	if err != nil {
		zap.L().Warn("Telegram Bot 初始化失败，降级为日志模式", zap.Error(err))
		return telegram.NewLoggingSender()
	}
	return sender
}
