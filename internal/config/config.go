// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找
package config

import (
	"fmt"

	"github.com/BurntSushi/toml" // TOML 配置文件解析库
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName string `toml:"appName"` // 应用名称，用于日志标识等
	Host    string `toml:"host"`    // 服务器监听地址，如 "0.0.0.0"
	Port    int    `toml:"port"`    // 服务器监听端口，如 8000
	Mode    string `toml:"mode"`    // 运行模式："dev" 或 "release"
}

// StorageConfig 会话存储后端配置
// backend 可选值：
//   - "memory": 每个进程实例独立的内存存储（仅开发/测试）
//   - "global": 进程内共享的全局内存存储
//   - "redis":  外部持久化存储（生产推荐）
type StorageConfig struct {
	Backend string `toml:"backend"`
}

// RedisConfig Redis 连接配置（backend = "redis" 时生效）
type RedisConfig struct {
	Host     string `toml:"host"`     // Redis 服务器地址
	Port     int    `toml:"port"`     // Redis 端口，默认 6379
	Password string `toml:"password"` // Redis 密码，无密码留空
	Db       int    `toml:"db"`       // Redis 数据库编号，默认 0
}

// TelegramConfig Telegram Bot 配置
type TelegramConfig struct {
	BotToken string `toml:"botToken"` // BotFather 下发的 token
	Enabled  bool   `toml:"enabled"`  // 为 false 时仅记录日志不真正外发（本地调试）
}

// AnthropicConfig 翻译后端（Anthropic API）配置
type AnthropicConfig struct {
	ApiKey         string `toml:"apiKey"`         // API 密钥
	Model          string `toml:"model"`          // 模型名，如 "claude-sonnet-4-20250514"
	MaxTokens      int    `toml:"maxTokens"`      // 单次响应 token 上限
	TimeoutSeconds int    `toml:"timeoutSeconds"` // 单次调用超时（秒），0 取默认值
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // 日志级别：debug, info, warn, error
}

// TlsConfig TLS 重定向配置
// 由 Nginx 等反向代理处理 SSL 时保持关闭
type TlsConfig struct {
	RedirectEnabled bool `toml:"redirectEnabled"` // 是否启用 HTTP → HTTPS 重定向
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig      `toml:"mainConfig"`      // 主配置
	StorageConfig   `toml:"storageConfig"`   // 会话存储配置
	RedisConfig     `toml:"redisConfig"`     // Redis 配置
	TelegramConfig  `toml:"telegramConfig"`  // Telegram Bot 配置
	AnthropicConfig `toml:"anthropicConfig"` // 翻译后端配置
	LogConfig       `toml:"logConfig"`       // 日志配置
	TlsConfig       `toml:"tlsConfig"`       // TLS 配置
}

// config 全局配置单例，延迟加载
var config *Config

// LoadConfig 从多个候选路径加载配置文件
// 按顺序尝试加载，找到第一个可用的配置文件即停止
func LoadConfig() error {
	// 候选配置文件路径（优先加载本地配置）
	paths := []string{
		"configs/config_local.toml",       // 本地开发配置（优先）
		"configs/config.toml",             // 默认配置
		"../../configs/config_local.toml", // 从子目录运行时的路径
		"../../configs/config.toml",       // 从子目录运行时的路径
	}

	// 依次尝试加载配置文件
	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil // 加载成功
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig 获取全局配置实例（单例模式）
// 首次调用时会自动加载配置文件
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig() // 忽略加载错误，使用默认值
	}
	return config
}
