package request

// GetMessagesRequest 取回端请求：按会话码读取已采集的消息
// 会话码大小写不敏感，查询前统一去空白并转大写；
// 长度和字符集在归一化之后由 Handler 校验，带空白的合法码不能被挡在绑定层
type GetMessagesRequest struct {
	Code string `form:"code" binding:"required"` // 6 位会话码
}
