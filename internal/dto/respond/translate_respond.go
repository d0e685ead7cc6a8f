package respond

import "github.com/clickmediapropy/traductor-app/internal/model"

// TranslateRespond 翻译响应：解析并翻译后的消息列表，顺序与原文一致
type TranslateRespond struct {
	MessageCount int                   `json:"messageCount"`
	Messages     []model.ParsedMessage `json:"messages"`
}

// InstructionsRespond 自定义翻译风格指令列表
type InstructionsRespond struct {
	Instructions []string `json:"instructions"`
}
