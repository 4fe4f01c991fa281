package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCodeBodyMentionsActionCodeAndTTL(t *testing.T) {
	body := codeBody("重置密码", "654321", 10*time.Minute)
	assert.Contains(t, body, "重置密码")
	assert.Contains(t, body, "654321")
	assert.Contains(t, body, "10 分钟内有效")
}
