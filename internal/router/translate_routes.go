// Package router 提供 HTTP 路由注册
// 本文件定义翻译相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterTranslateRoutes 注册翻译相关路由
// 包括转写文本的批量翻译和自定义翻译指令的管理
func (rt *Router) RegisterTranslateRoutes(rg *gin.RouterGroup) {
	translateGroup := rg.Group("")
	{
		translateGroup.POST("/translate", rt.handlers.Translate.Translate) // 解析转写文本并批量翻译
	}
	instructionGroup := rg.Group("/instructions")
	{
		instructionGroup.GET("", rt.handlers.Translate.ListInstructions)      // 获取自定义指令列表
		instructionGroup.POST("", rt.handlers.Translate.AddInstruction)       // 添加自定义指令
		instructionGroup.DELETE("", rt.handlers.Translate.RemoveInstruction)  // 删除指定指令或清空全部
	}
}
