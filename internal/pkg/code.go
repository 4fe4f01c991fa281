package pkg

import (
	cryptoRand "crypto/rand"
	"math/big"
	"strings"
)

func RandDigits(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + x.Int64()))
	}
	return b.String(), nil
}

// NormalizeEmail 邮箱归一化：去空白 + 小写，档案关联与限流 key 都用这个形式
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
