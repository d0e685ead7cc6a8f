package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/clickmediapropy/traductor-app/internal/config"
	"github.com/clickmediapropy/traductor-app/pkg/errorx"
)

// botSender 基于 Bot API 的真实发送实现
type botSender struct {
	bot *tgbotapi.BotAPI
}

// NewBotSender 创建真实的 Telegram 发送器
func NewBotSender(conf *config.TelegramConfig) (*botSender, error) {
	bot, err := tgbotapi.NewBotAPI(conf.BotToken)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "telegram bot init")
	}
	zap.L().Info("Telegram Bot 已连接", zap.String("username", bot.Self.UserName))
	return &botSender{bot: bot}, nil
}

// SendMessage 发送 Markdown 格式的文本确认
func (s *botSender) SendMessage(_ context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := s.bot.Send(msg); err != nil {
		return errorx.Wrapf(err, errorx.CodeServerBusy, "telegram send to %d", chatID)
	}
	return nil
}

// loggingSender 本地调试用发送实现：只记日志不真正外发
// telegramConfig.enabled = false 时启用
type loggingSender struct{}

// NewLoggingSender 创建日志发送器
func NewLoggingSender() *loggingSender {
	return &loggingSender{}
}

func (s *loggingSender) SendMessage(_ context.Context, chatID int64, text string) error {
	zap.L().Info("【MockTelegram】出站确认",
		zap.Int64("chat_id", chatID),
		zap.String("text", text),
	)
	return nil
}
