// Package model 定义领域实体模型
// 本文件定义转写文本解析后的消息单元及其角色枚举
package model

import "fmt"

// Persona 消息角色的封闭枚举
// 在 ParsedMessage 构造时校验一次，下游代码不会观察到非法角色
type Persona string

const (
	PersonaProfessor Persona = "profesor"  // 教授：正式语体
	PersonaAssistant Persona = "asistente" // 助理：正式语体
	PersonaClient    Persona = "cliente"   // 客户：口语语体，带编号和性别
)

// Valid 校验角色取值是否合法
func (p Persona) Valid() bool {
	switch p {
	case PersonaProfessor, PersonaAssistant, PersonaClient:
		return true
	}
	return false
}

// Gender 客户性别，仅 Persona 为 cliente 时有意义
type Gender string

const (
	GenderMale   Gender = "hombre"
	GenderFemale Gender = "mujer"
)

// ParsedMessage 从粘贴的转写文本中切分出的一个对话回合
// 不变量：每条消息恰好有一个合法 Persona；
// ClientNumber/Gender 当且仅当角色为 cliente 时有值
type ParsedMessage struct {
	// ID 序号，按在转写文本中出现的顺序从 1 开始编号
	ID int `json:"id"`

	// Original 消息原文
	// 清洗后重新绑定为去掉角色前缀的正文（用于翻译）
	Original string `json:"original"`

	// OriginalWithFormat 含角色前缀的完整原文（用于界面展示）
	// 清洗阶段填充
	OriginalWithFormat string `json:"originalWithFormat,omitempty"`

	// Type 角色分类
	Type Persona `json:"type"`

	// ClientNumber 客户编号，从前缀解析（仅 cliente）
	ClientNumber int `json:"clientNumber,omitempty"`

	// Gender 客户性别，前缀无性别标记时默认男性（仅 cliente）
	Gender Gender `json:"gender,omitempty"`

	// LiteralTranslation 直译结果
	LiteralTranslation string `json:"literalTranslation,omitempty"`

	// Translation 按角色语体规则产出的最终译文
	Translation string `json:"translation,omitempty"`
}

// NewParsedMessage 构造解析消息并校验角色合法性
// 角色非法时返回错误，保证下游不出现未定义的 Persona
func NewParsedMessage(id int, original string, persona Persona) (ParsedMessage, error) {
	if !persona.Valid() {
		return ParsedMessage{}, fmt.Errorf("invalid persona type: %q", persona)
	}
	return ParsedMessage{
		ID:       id,
		Original: original,
		Type:     persona,
	}, nil
}
