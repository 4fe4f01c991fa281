package pkg

import (
	"crypto/tls"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// SMTPConfig 邮件出口配置
type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 登录账号
	Password string // 授权码/密码
	From     string // 显示的发件人，形如 "Orbit <no-reply@...>"
}

// Mailer 站内邮件出口。目前只有验证码一种邮件，
// 主题统一挂 Orbit 前缀，正文在这里拼好，上层只关心动作名和验证码
type Mailer struct {
	cfg SMTPConfig
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendCode 发送验证码邮件，ttl 只用于正文里的有效期提示
func (m *Mailer) SendCode(to, action, code string, ttl time.Duration) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Orbit 社区 · %s", action))
	msg.SetBody("text/html", codeBody(action, code, ttl))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(msg)
}

func codeBody(action, code string, ttl time.Duration) string {
	return fmt.Sprintf(
		`<p>您好，</p><p>您正在 Orbit 社区进行<b>%s</b>，本次验证码：</p><p style="font-size:22px;letter-spacing:4px;"><b>%s</b></p><p>%d 分钟内有效，验证码只用一次，请勿转发他人。</p>`,
		action, code, int(ttl.Minutes()))
}
