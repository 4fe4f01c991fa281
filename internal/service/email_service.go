package service

import (
	"context"
	"fmt"
	"time"

	"Orbit_Community/internal/pkg"
	"Orbit_Community/internal/repository/redis"
)

type EmailService struct {
	mailer *pkg.Mailer
	rds    *redis.EmailRepository
	rate   *redis.RateLimitRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{
		mailer: pkg.NewMailer(cfg),
		rds:    &redis.EmailRepository{},
		rate:   &redis.RateLimitRepository{},
	}
}

// RateLimitedError 限流拒绝，带下次可重试时间
type RateLimitedError struct {
	RetryAt time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAt.Format(time.RFC3339))
}

// SendRegisterCode 发送注册验证码：先写 pending，邮件发出后转 confirmed
func (s *EmailService) SendRegisterCode(email string) error {
	email = pkg.NormalizeEmail(email)
	return s.sendCode(redis.ScopeRegister, email, "注册验证")
}

// SendResetCode 重置密码验证码；按归一化邮箱限流，滚动一小时最多 3 次
func (s *EmailService) SendResetCode(ctx context.Context, email string) error {
	email = pkg.NormalizeEmail(email)
	ok, retryAt, err := s.rate.Allow(ctx, email, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return &RateLimitedError{RetryAt: retryAt}
	}
	return s.sendCode(redis.ScopeReset, email, "重置密码")
}

func (s *EmailService) sendCode(scope, email, action string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.rds.SetCodePending(scope, email, code); err != nil {
		return err
	}

	if err = s.mailer.SendCode(email, action, code, redis.DefaultEmailCodeTTL); err != nil {
		return err
	}

	// 邮件发出去了才转 confirmed；确认失败就清掉 pending
	if err = s.rds.ConfirmCode(scope, email); err != nil {
		_ = s.rds.DeleteCodePending(scope, email)
		return err
	}
	return nil
}

// VerifyCode 校验验证码并一次性作废
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetConfirmedCode(scope, email)
	if err != nil {
		// 不存在或已过期
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteConfirmedCode(scope, email); err != nil {
		return false, err
	}
	return true, nil
}
