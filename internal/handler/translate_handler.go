// Package handler 提供 HTTP 请求处理器
// 本文件处理转写文本的解析翻译请求和自定义风格指令的维护
package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clickmediapropy/traductor-app/internal/dto/request"
	"github.com/clickmediapropy/traductor-app/internal/dto/respond"
	"github.com/clickmediapropy/traductor-app/internal/service"
	"github.com/clickmediapropy/traductor-app/internal/service/parser"
	"github.com/clickmediapropy/traductor-app/internal/service/translate"
	"github.com/clickmediapropy/traductor-app/pkg/errorx"
)

// TranslateHandler 翻译请求处理器
type TranslateHandler struct {
	translateSvc service.TranslateService
	instructions *translate.Instructions
}

// NewTranslateHandler 创建翻译处理器实例
func NewTranslateHandler(translateSvc service.TranslateService, instructions *translate.Instructions) *TranslateHandler {
	return &TranslateHandler{
		translateSvc: translateSvc,
		instructions: instructions,
	}
}

// Translate 解析并翻译整段转写文本
// POST /api/translate  请求体: {"text": "..."}
// 流程：切分 → 清洗前缀 → 批量翻译；输出顺序与原文出现顺序一致
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req request.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	messages := parser.Segment(req.Text)
	if len(messages) == 0 {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "No se detectaron mensajes válidos"))
		return
	}

	cleaned := parser.CleanAll(messages)
	translated := h.translateSvc.TranslateAll(c.Request.Context(), cleaned)

	HandleSuccess(c, respond.TranslateRespond{
		MessageCount: len(translated),
		Messages:     translated,
	})
}

// ListInstructions 列举自定义风格指令
// GET /api/instructions
func (h *TranslateHandler) ListInstructions(c *gin.Context) {
	HandleSuccess(c, respond.InstructionsRespond{
		Instructions: h.instructions.List(),
	})
}

// AddInstruction 追加一条自定义风格指令
// POST /api/instructions  请求体: {"instruction": "..."}
func (h *TranslateHandler) AddInstruction(c *gin.Context) {
	var req request.AddInstructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	instruction := strings.TrimSpace(req.Instruction)
	if instruction == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "La instrucción no puede estar vacía"))
		return
	}
	h.instructions.Add(instruction)
	HandleSuccess(c, respond.InstructionsRespond{
		Instructions: h.instructions.List(),
	})
}

// RemoveInstruction 删除自定义指令
// DELETE /api/instructions?index=N 删除指定序号；不带 index 清空全部
func (h *TranslateHandler) RemoveInstruction(c *gin.Context) {
	raw, ok := c.GetQuery("index")
	if !ok {
		h.instructions.Clear()
		HandleSuccess(c, respond.InstructionsRespond{Instructions: nil})
		return
	}

	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "índice inválido"))
		return
	}
	h.instructions.Remove(index)
	HandleSuccess(c, respond.InstructionsRespond{
		Instructions: h.instructions.List(),
	})
}
