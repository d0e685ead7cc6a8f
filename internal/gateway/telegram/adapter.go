// Package telegram 提供 Telegram Bot 采集网关
// 本文件实现采集适配器：把入站事件映射为会话管理操作，并产出确认消息
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clickmediapropy/traductor-app/internal/model"
	"github.com/clickmediapropy/traductor-app/internal/service"
)

// 出站确认文案（业务素材，面向机器人用户，保持西语）
const (
	textHelp = `🤖 *ElizabethAI Translator Bot*

Bienvenido! Este bot te ayuda a enviar mensajes de Telegram a la app de traducción.

*Cómo usar:*
1️⃣ Envía /new para crear una nueva sesión
2️⃣ Reenvía (forward) los mensajes que quieras traducir
3️⃣ Envía /done cuando termines
4️⃣ Usá el código en la web app

*Comandos:*
/new - Crear nueva sesión
/done - Finalizar sesión actual
/cancel - Cancelar sesión actual
/help - Ver esta ayuda`

	textUnknownCommand = "Comando no reconocido. Enviá /help para ver los comandos disponibles."
	textNoActive       = "⚠️ No tenés ninguna sesión activa.\n\nEnviá /new para crear una nueva."
	textNoActiveShort  = "⚠️ No tenés ninguna sesión activa."
	textCancelled      = "❌ Sesión cancelada."
	textCreateFirst    = "⚠️ Primero creá una sesión con /new"
	textForwardOnly    = "⚠️ Por favor, reenvía (forward) mensajes en lugar de copiarlos.\n\nO enviá /help para ver los comandos disponibles."
	textAppendFailed   = "❌ Error al agregar mensaje. La sesión puede estar cerrada o expirada."
	textInternalError  = "❌ Error interno. Intentá de nuevo."
)

// Adapter 采集适配器
// 将入站聊天事件映射为会话管理操作：
// 命令 1:1 对应 创建/关闭；转发消息对应追加；普通文本被拒收
//
// 这是一道硬边界：任何内部失败都在此记日志吞掉，绝不向传输层抛出
// （传输层要求无条件成功响应，防止上游重试风暴）
type Adapter struct {
	sessionSvc service.SessionService
	sender     MessageSender
}

// NewAdapter 创建采集适配器
func NewAdapter(sessionSvc service.SessionService, sender MessageSender) *Adapter {
	return &Adapter{
		sessionSvc: sessionSvc,
		sender:     sender,
	}
}

// HandleUpdate 处理一条入站事件
// 每条可识别的事件恰好产出一条出站确认；缺少可识别消息体的畸形
// 事件不产出任何确认。一次只处理一条事件直到完成，保证同一来源
// 流内的追加顺序等于到达顺序
func (a *Adapter) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("[Recovery] 采集适配器 panic", zap.Any("recover", rec))
		}
	}()

	if update == nil || update.Message == nil {
		return // 畸形事件：没有可识别的消息体，不确认
	}

	msg := update.Message
	chatID := msg.Chat.ID
	traceID := uuid.NewString()
	zap.L().Debug("入站事件",
		zap.String("trace_id", traceID),
		zap.Int64("chat_id", chatID),
		zap.Int("message_id", msg.MessageID),
	)

	switch {
	case msg.IsCommand():
		a.handleCommand(ctx, chatID, msg.Command())
	case msg.ForwardFrom != nil || msg.ForwardFromChat != nil:
		// 只有带转发痕迹的消息才允许进入会话：这是有意的信任边界，
		// 翻译链路默认"转发 = 真实的转写内容"
		a.handleForwarded(ctx, chatID, msg)
	default:
		// 普通文本：拒收并提示改用转发
		a.reply(ctx, chatID, textForwardOnly)
	}
}

// handleCommand 命令事件分发
func (a *Adapter) handleCommand(ctx context.Context, chatID int64, command string) {
	switch command {
	case "start", "help":
		a.reply(ctx, chatID, textHelp)
	case "new":
		a.handleNew(ctx, chatID)
	case "done":
		a.handleDone(ctx, chatID)
	case "cancel":
		a.handleCancel(ctx, chatID)
	default:
		a.reply(ctx, chatID, textUnknownCommand)
	}
}

// handleNew 创建会话
// 来源已有活跃会话时不新建，提示现有会话码
func (a *Adapter) handleNew(ctx context.Context, chatID int64) {
	code, existed, err := a.sessionSvc.CreateSession(ctx, chatID)
	if err != nil {
		zap.L().Error("创建会话失败", zap.Int64("chat_id", chatID), zap.Error(err))
		a.reply(ctx, chatID, textInternalError)
		return
	}
	if existed {
		a.reply(ctx, chatID, fmt.Sprintf(
			"⚠️ Ya tenés una sesión activa con código: `%s`\n\nEnviá /done para finalizarla o /cancel para cancelarla.",
			code,
		))
		return
	}
	a.reply(ctx, chatID, fmt.Sprintf(`✅ *Sesión creada!*

Tu código es: `+"`%s`"+`

Ahora podés:
1️⃣ Reenviar (forward) los mensajes que querés traducir
2️⃣ Cuando termines, enviá /done
3️⃣ Ingresá el código `+"`%s`"+` en la web app

El código expira en 1 hora.`, code, code))
}

// handleDone 正常结束会话：关闭并报告采集到的消息数
func (a *Adapter) handleDone(ctx context.Context, chatID int64) {
	code, err := a.sessionSvc.ActiveSessionCode(ctx, chatID)
	if err != nil {
		a.reply(ctx, chatID, textInternalError)
		return
	}
	if code == "" {
		a.reply(ctx, chatID, textNoActive)
		return
	}

	sess, err := a.sessionSvc.CloseSession(ctx, code)
	if err != nil {
		zap.L().Error("关闭会话失败", zap.String("code", code), zap.Error(err))
		a.reply(ctx, chatID, textInternalError)
		return
	}
	a.reply(ctx, chatID, fmt.Sprintf(`✅ *Sesión finalizada!*

Código: `+"`%s`"+`
Mensajes recibidos: %d

Ahora ingresá el código en la web app.`, code, len(sess.Messages)))
}

// handleCancel 取消会话
// 与 /done 是同一条状态转移（ACTIVE → CLOSED），只是确认文案不同：
// 语义上是废弃而非定稿
func (a *Adapter) handleCancel(ctx context.Context, chatID int64) {
	code, err := a.sessionSvc.ActiveSessionCode(ctx, chatID)
	if err != nil {
		a.reply(ctx, chatID, textInternalError)
		return
	}
	if code == "" {
		a.reply(ctx, chatID, textNoActiveShort)
		return
	}
	if _, err := a.sessionSvc.CloseSession(ctx, code); err != nil {
		zap.L().Error("取消会话失败", zap.String("code", code), zap.Error(err))
		a.reply(ctx, chatID, textInternalError)
		return
	}
	a.reply(ctx, chatID, textCancelled)
}

// handleForwarded 转发消息入库
func (a *Adapter) handleForwarded(ctx context.Context, chatID int64, msg *tgbotapi.Message) {
	code, err := a.sessionSvc.ActiveSessionCode(ctx, chatID)
	if err != nil {
		a.reply(ctx, chatID, textInternalError)
		return
	}
	if code == "" {
		a.reply(ctx, chatID, textCreateFirst)
		return
	}

	unit := model.MessageUnit{
		Text:            msg.Text,
		Attribution:     forwardAttribution(msg),
		Timestamp:       int64(msg.Date),
		OriginMessageID: msg.MessageID,
	}
	ok, count, err := a.sessionSvc.AppendMessage(ctx, code, unit)
	if err != nil {
		a.reply(ctx, chatID, textInternalError)
		return
	}
	if !ok {
		a.reply(ctx, chatID, textAppendFailed)
		return
	}
	a.reply(ctx, chatID, fmt.Sprintf(
		"✅ Mensaje agregado (%d total)\n\nReenviá más mensajes o enviá /done para finalizar.",
		count,
	))
}

// forwardAttribution 尽力还原原始转发者的显示名
// 拿不到时使用哨兵值 "Unknown"
func forwardAttribution(msg *tgbotapi.Message) string {
	if msg.ForwardFrom != nil {
		if msg.ForwardFrom.FirstName != "" {
			return msg.ForwardFrom.FirstName
		}
		if msg.ForwardFrom.UserName != "" {
			return msg.ForwardFrom.UserName
		}
	}
	if msg.ForwardFromChat != nil && msg.ForwardFromChat.Title != "" {
		return msg.ForwardFromChat.Title
	}
	return "Unknown"
}

// reply 发送出站确认
// 发送失败只记日志：状态变更已经发生，确认是尽力而为的通知
func (a *Adapter) reply(ctx context.Context, chatID int64, text string) {
	if err := a.sender.SendMessage(ctx, chatID, text); err != nil {
		zap.L().Error("发送确认消息失败",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
