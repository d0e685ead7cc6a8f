// Package anthropic 提供翻译后端的 Anthropic API 实现
// translate.Backend 的具体实现，Service 层只依赖接口，
// 便于测试时替换为 stub 后端
package anthropic

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/clickmediapropy/traductor-app/internal/config"
	"github.com/clickmediapropy/traductor-app/internal/model"
	"github.com/clickmediapropy/traductor-app/internal/service/translate"
	"github.com/clickmediapropy/traductor-app/pkg/errorx"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 2000
)

// translatorClient 官方 SDK 封装
type translatorClient struct {
	client       *anthropic.Client
	model        anthropic.Model
	maxTokens    int64
	instructions *translate.Instructions // 自定义风格指令，每次语体化调用时读取
}

// 确保 translatorClient 实现了 translate.Backend 接口
var _ translate.Backend = (*translatorClient)(nil)

// NewTranslatorClient 创建翻译后端实例
// instructions 可为 nil，表示不使用自定义指令
func NewTranslatorClient(conf *config.AnthropicConfig, instructions *translate.Instructions) *translatorClient {
	client := anthropic.NewClient(
		option.WithAPIKey(conf.ApiKey),
	)

	modelName := conf.Model
	if modelName == "" {
		modelName = defaultModel
	}
	maxTokens := int64(conf.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &translatorClient{
		client:       &client,
		model:        anthropic.Model(modelName),
		maxTokens:    maxTokens,
		instructions: instructions,
	}
}

// TranslateLiteral 直译调用
func (c *translatorClient) TranslateLiteral(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, buildLiteralPrompt(text))
}

// TranslateStyled 语体化翻译调用，按角色与性别构建提示词
func (c *translatorClient) TranslateStyled(ctx context.Context, persona model.Persona, gender model.Gender, text string) (string, error) {
	var custom []string
	if c.instructions != nil {
		custom = c.instructions.List()
	}
	return c.complete(ctx, buildStyledPrompt(persona, gender, text, custom))
}

// complete 发起一次 Messages 调用并提取纯文本结果
func (c *translatorClient) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeTranslateError, "anthropic messages call")
	}
	if len(resp.Content) == 0 {
		return "", errorx.New(errorx.CodeTranslateError, "anthropic returned empty content")
	}
	return strings.TrimSpace(resp.Content[0].Text), nil
}
