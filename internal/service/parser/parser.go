// Package parser 提供转写文本的切分与角色分类
// 输入是从聊天客户端整段粘贴的原始文本，夹杂时间戳/频道横幅等元数据噪音；
// 输出是按出现顺序编号、带角色归属的离散对话回合
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/clickmediapropy/traductor-app/internal/model"
)

var (
	// metadataLineRe 聊天客户端的元数据行："名字/频道, [日期时间]" 且别无其他内容
	// 例如 "blues 周伯通工作室, [10 de oct de 2025 a las 15:02]"
	metadataLineRe = regexp.MustCompile(`^[^,]+,\s*\[[^\]]+\]\s*$`)

	// clientStartRe 客户消息起始行：数字编号 + 可选性别标记 + 冒号
	// 括号和冒号均兼容半角/全角，如 "30(女):"、"32："
	clientStartRe = regexp.MustCompile(`^(\d+)(\(女\)|（女）)?[:：]`)

	// 清洗用：去掉首行的角色前缀（大小写不敏感，仅作用于第一行）
	professorPrefixRe = regexp.MustCompile(`(?i)^(教授|Professor)[:：]\s*`)
	assistantPrefixRe = regexp.MustCompile(`(?i)^(助理|Assistant)[:：]\s*`)
)

// Segment 将原始转写文本切分为带角色归属的消息序列
//
// 算法：
//  1. 先整行剔除元数据噪音
//  2. 逐个非空行判断是否为新消息的起始行；
//     判定优先级为 教授 > 助理 > 客户，每行只取第一个命中的标记
//  3. 起始行收束并产出上一条消息，开启新消息
//  4. 非起始行按多行续行拼接到当前消息；没有当前消息时静默丢弃（无从归属）
//  5. 编号按产出顺序从 1 开始
//
// 已知局限：形似起始行的续行（如客户谈及另一位客户的编号）无法区分，
// 会被错误切分——按设计记录，不做特判
func Segment(rawText string) []model.ParsedMessage {
	if strings.TrimSpace(rawText) == "" {
		return nil
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(rawText, "\n") {
		if metadataLineRe.MatchString(strings.TrimSpace(line)) {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	var messages []model.ParsedMessage
	var current *model.ParsedMessage
	counter := 0

	for _, line := range lines {
		persona, clientNumber, gender, ok := classifyStartLine(line)
		if !ok {
			// 续行：拼接到当前消息；无当前消息则丢弃
			if current != nil {
				current.Original += "\n" + line
			}
			continue
		}

		if current != nil {
			messages = append(messages, *current)
		}
		counter++

		msg, err := model.NewParsedMessage(counter, line, persona)
		if err != nil {
			// classifyStartLine 只产出合法角色，此分支不可达
			continue
		}
		if persona == model.PersonaClient {
			msg.ClientNumber = clientNumber
			msg.Gender = gender
		}
		current = &msg
	}

	if current != nil {
		messages = append(messages, *current)
	}
	return messages
}

// classifyStartLine 判断一行是否为新消息的起始行
// 命中时返回角色；客户行同时返回编号与性别（无性别标记默认男性）
func classifyStartLine(line string) (model.Persona, int, model.Gender, bool) {
	hasColon := strings.Contains(line, ":") || strings.Contains(line, "：")
	lower := strings.ToLower(line)

	// 优先级：教授 > 助理 > 客户，先命中先得
	if (strings.Contains(line, "教授") && hasColon) || strings.Contains(lower, "professor:") {
		return model.PersonaProfessor, 0, "", true
	}
	if (strings.Contains(line, "助理") && hasColon) || strings.Contains(lower, "assistant:") {
		return model.PersonaAssistant, 0, "", true
	}
	if m := clientStartRe.FindStringSubmatch(line); m != nil {
		number, err := strconv.Atoi(m[1])
		if err != nil {
			return "", 0, "", false
		}
		gender := model.GenderMale
		if m[2] != "" {
			gender = model.GenderFemale
		}
		return model.PersonaClient, number, gender, true
	}
	return "", 0, "", false
}

// CleanOriginalText 去掉消息首行的角色前缀，产出送翻译的干净正文
// 仅处理第一行，续行原样保留；对已清洗文本再次调用是 no-op（幂等）
func CleanOriginalText(text string, persona model.Persona, clientNumber int) string {
	switch persona {
	case model.PersonaProfessor:
		return strings.TrimSpace(stripFirstLine(text, professorPrefixRe))
	case model.PersonaAssistant:
		return strings.TrimSpace(stripFirstLine(text, assistantPrefixRe))
	case model.PersonaClient:
		// 前缀必须精确匹配该客户的编号，避免误删正文里的其他数字
		re := regexp.MustCompile(fmt.Sprintf(`(?i)^%d(（女）|\(女\))?[:：]\s*`, clientNumber))
		return strings.TrimSpace(stripFirstLine(text, re))
	}
	return strings.TrimSpace(text)
}

// stripFirstLine 仅对首行应用前缀剔除，其余行原样拼回
func stripFirstLine(text string, re *regexp.Regexp) string {
	firstLine, rest, found := strings.Cut(text, "\n")
	firstLine = re.ReplaceAllString(firstLine, "")
	if !found {
		return firstLine
	}
	return firstLine + "\n" + rest
}

// CleanAll 对整批消息执行清洗
// OriginalWithFormat 保留带前缀的完整原文供界面展示，
// Original 重新绑定为清洗后的正文供翻译模型使用
func CleanAll(messages []model.ParsedMessage) []model.ParsedMessage {
	cleaned := make([]model.ParsedMessage, len(messages))
	for i, msg := range messages {
		msg.OriginalWithFormat = msg.Original
		msg.Original = CleanOriginalText(msg.Original, msg.Type, msg.ClientNumber)
		cleaned[i] = msg
	}
	return cleaned
}
