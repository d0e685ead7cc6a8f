package constants

import "time"

const (
	CODE_LENGTH   = 6                                  // 会话码长度
	CODE_ALPHABET = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // 去掉易混淆字符 0/O/1/I
	SESSION_TTL   = time.Hour                          // 会话默认生命周期（1小时）

	TRANSLATE_BATCH_SIZE = 5  // 每批并发翻译的消息数，对齐后端限流
	TRANSLATE_TIMEOUT    = 60 // 单次翻译调用超时（秒），可被配置覆盖

	FIXTURE_CODE = "TEST99" // 预置冒烟测试会话码，永不过期
)
