// Package model 定义领域实体模型
// 本文件定义会话模型：机器人采集通道与 Web 取回端之间的关联记录
package model

import "time"

// Session 会话记录
// 以 6 位短码作为唯一关联键，桥接异步采集与取回
// 持久化形态（JSON）在三种存储后端间保持一致
type Session struct {
	// Code 会话码，6 位大写短码，取回端的唯一查询键
	Code string `json:"code"`

	// OriginID 来源通道标识（Telegram chat id）
	// 同一来源同一时刻最多存在一个活跃会话
	OriginID int64 `json:"originId"`

	// Messages 已采集的消息序列，插入顺序 = 到达顺序
	// 会话活跃期间只追加不修改
	Messages []MessageUnit `json:"messages"`

	// CreatedAt / ExpiresAt 生命周期时间戳
	// 默认生命周期为创建后 1 小时；预置冒烟会话除外
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`

	// Active 从创建到显式关闭为 true
	// 关闭后才允许被取回端读取
	Active bool `json:"active"`
}

// MessageUnit 会话内的单条已采集消息
type MessageUnit struct {
	// Text 消息原文
	Text string `json:"text"`

	// Attribution 原始转发者的显示名，未知时为 "Unknown"
	Attribution string `json:"attribution"`

	// Timestamp 来源上报的发送时间（Unix 秒）
	Timestamp int64 `json:"timestamp"`

	// OriginMessageID 来源分配的消息 ID
	// 仅用于排查问题，不做去重（传输层可能重投递，重复按独立消息接受）
	OriginMessageID int `json:"originMessageId"`
}
