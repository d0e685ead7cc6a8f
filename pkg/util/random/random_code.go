package random

import (
	"crypto/rand"
	"math/big"

	"github.com/clickmediapropy/traductor-app/pkg/constants"
)

// GenerateSessionCode 生成 6 位可手动输入的会话码
// 字符集为 32 个符号，排除了 0/O、1/I 等易混淆字符
// 理论上存在撞码可能，但在 1 小时生命周期 + 32^6 空间下概率可忽略，
// 设计上作为已接受的风险，不做唯一性校验
func GenerateSessionCode() string {
	return randomFromCharset(constants.CODE_ALPHABET, constants.CODE_LENGTH)
}

// randomFromCharset 使用 crypto/rand 从字符集中生成定长随机串
func randomFromCharset(charset string, length int) string {
	result := make([]byte, length)
	charsetLen := big.NewInt(int64(len(charset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			result[i] = charset[0] // fallback
			continue
		}
		result[i] = charset[n.Int64()]
	}
	return string(result)
}
