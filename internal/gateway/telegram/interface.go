// Package telegram 提供 Telegram Bot 采集网关
// 本文件定义出站确认消息的发送接口，遵循依赖倒置原则
package telegram

import "context"

// MessageSender 出站消息发送接口
// 抽象确认消息的发送，Adapter 依赖此接口而非具体实现
// （真实 Bot API / 本地日志 mock / 测试 stub）
//
// 发送是 fire-and-forget 语义：发送失败只记日志、不重试，
// 也不回滚触发它的状态变更（状态已落库，确认只是尽力通知）
type MessageSender interface {
	// SendMessage 向指定会话发送文本确认
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// 确保各实现满足 MessageSender 接口
var (
	_ MessageSender = (*botSender)(nil)
	_ MessageSender = (*loggingSender)(nil)
)
