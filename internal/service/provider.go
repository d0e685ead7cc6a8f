// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"github.com/clickmediapropy/traductor-app/internal/dao/store"
	"github.com/clickmediapropy/traductor-app/internal/service/session"
	"github.com/clickmediapropy/traductor-app/internal/service/translate"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 与 Gateway 层通过此结构访问各个 Service
type Services struct {
	Session   SessionService   // 会话 Service
	Translate TranslateService // 翻译 Service
}

// NewServices 创建并注入所有 Service 实例
// st: 所选的会话存储后端
// backend: 翻译后端协作方
// translateTimeoutSeconds: 单次翻译调用超时，0 取默认值
func NewServices(st store.SessionStore, backend translate.Backend, translateTimeoutSeconds int) *Services {
	return &Services{
		Session:   session.NewSessionService(st),
		Translate: translate.NewTranslateService(backend, translateTimeoutSeconds),
	}
}
