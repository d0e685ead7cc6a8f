package request

// TranslateRequest 翻译请求：粘贴的完整转写文本
type TranslateRequest struct {
	Text string `json:"text" binding:"required"` // 原始转写文本
}

// AddInstructionRequest 新增自定义翻译风格指令
type AddInstructionRequest struct {
	Instruction string `json:"instruction" binding:"required"` // 指令内容
}

// RemoveInstructionRequest 按序号删除自定义指令
type RemoveInstructionRequest struct {
	Index int `json:"index" binding:"min=0"` // 0 起始的指令序号
}
