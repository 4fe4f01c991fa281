package service

import (
	"errors"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"
	"Orbit_Community/internal/repository/mysql"
	"Orbit_Community/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	accounts *mysql.AccountRepository
	profiles *ProfileService
	rSession *redis.SessionRepository
	emailSvc *EmailService
}

func NewUserService(db *gorm.DB, emailSvc *EmailService) *UserService {
	return &UserService{
		accounts: mysql.NewAccountRepository(db),
		profiles: NewProfileService(db),
		rSession: &redis.SessionRepository{},
		emailSvc: emailSvc,
	}
}

// Register 验证邮箱验证码后建账号，并同步完成身份解析建档
func (s *UserService) Register(email, password, displayName, code string) error {
	email = pkg.NormalizeEmail(email)
	ok, err := s.emailSvc.VerifyCode(redis.ScopeRegister, email, code)
	if err != nil || !ok {
		return apperr.Validation("verification failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	acc := &model.Account{Email: email, Password: string(hash)}
	if err = s.accounts.Create(acc); err != nil {
		return err
	}

	_, err = s.profiles.Resolve(email, displayName)
	return err
}

func (s *UserService) Login(email, password string) (*pkg.Pair, error) {
	email = pkg.NormalizeEmail(email)
	acc, err := s.accounts.FindByEmail(email)
	if err != nil {
		return nil, apperr.Unauthenticated("user not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)) != nil {
		return nil, apperr.Unauthenticated("invalid password")
	}

	// 老账号可能还没有档案，登录时兜底解析一次
	if _, err = s.profiles.Resolve(email, ""); err != nil {
		return nil, err
	}

	token, err := pkg.GeneratePair(acc.ID, email)
	if err != nil {
		return nil, err
	}
	if err = s.rSession.AddUserToken(acc.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.rSession.DeleteUserToken(usrID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

// ChangePassword 登录态修改密码，成功后踢掉当前会话
func (s *UserService) ChangePassword(usrID uint64, oldPassword, newPassword string) error {
	acc, err := s.accounts.FindByID(usrID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(oldPassword)) != nil {
		return apperr.Validation("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err = s.accounts.UpdatePassword(acc, string(hash)); err != nil {
		return err
	}
	return s.Logout(usrID)
}

// ResetPassword 用邮箱验证码重置密码
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	email = pkg.NormalizeEmail(email)
	ok, err := s.emailSvc.VerifyCode(redis.ScopeReset, email, code)
	if err != nil || !ok {
		return apperr.Validation("verification failed")
	}

	acc, err := s.accounts.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("account", 0)
	}
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePassword(acc, string(hash))
}
