package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailCodeTwoPhase(t *testing.T) {
	setupMiniredis(t)
	repo := &EmailRepository{}

	require.NoError(t, repo.SetCodePending(ScopeRegister, "a@b.com", "123456"))

	// pending 阶段取不到
	_, err := repo.GetConfirmedCode(ScopeRegister, "a@b.com")
	assert.ErrorIs(t, err, ErrEmailNotFound)

	require.NoError(t, repo.ConfirmCode(ScopeRegister, "a@b.com"))
	code, err := repo.GetConfirmedCode(ScopeRegister, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	// confirm 之后 pending 键已删，重复 confirm 报错
	assert.Error(t, repo.ConfirmCode(ScopeRegister, "a@b.com"))
}

func TestEmailCodeScopeIsolation(t *testing.T) {
	setupMiniredis(t)
	repo := &EmailRepository{}

	require.NoError(t, repo.SetCodePending(ScopeRegister, "a@b.com", "111111"))
	require.NoError(t, repo.SetCodePending(ScopeReset, "a@b.com", "222222"))
	require.NoError(t, repo.ConfirmCode(ScopeRegister, "a@b.com"))
	require.NoError(t, repo.ConfirmCode(ScopeReset, "a@b.com"))

	// 注册和重置的验证码互不串台
	code, err := repo.GetConfirmedCode(ScopeRegister, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "111111", code)
	code, err = repo.GetConfirmedCode(ScopeReset, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", code)
}

func TestEmailCodeOneTimeUse(t *testing.T) {
	setupMiniredis(t)
	repo := &EmailRepository{}

	require.NoError(t, repo.SetCodePending(ScopeReset, "a@b.com", "123456"))
	require.NoError(t, repo.ConfirmCode(ScopeReset, "a@b.com"))
	require.NoError(t, repo.DeleteConfirmedCode(ScopeReset, "a@b.com"))

	_, err := repo.GetConfirmedCode(ScopeReset, "a@b.com")
	assert.ErrorIs(t, err, ErrEmailNotFound)
}
