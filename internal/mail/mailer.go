package mail

import (
	"context"
	"net/url"
	"strings"
	"time"

	"eloquentlog/internal/job"
)

// Mailer 处理发送邮件的任务
type Mailer struct {
	sender     Sender
	consoleURL string
	linkTTL    time.Duration
}

// NewMailer 创建邮件任务处理器，linkTTL 与链接签名在会话存储中的有效期一致
func NewMailer(sender Sender, consoleURL string, linkTTL time.Duration) *Mailer {
	return &Mailer{
		sender:     sender,
		consoleURL: strings.TrimRight(consoleURL, "/"),
		linkTTL:    linkTTL,
	}
}

// Register 在worker上注册邮件任务处理器
func (m *Mailer) Register(worker *job.Worker) {
	worker.Handle(job.KindUserActivationEmail, m.HandleUserActivation)
	worker.Handle(job.KindPasswordResetEmail, m.HandlePasswordReset)
}

type linkData struct {
	Name      string
	URL       string
	ExpiresAt string
}

// HandleUserActivation 发送账户激活邮件
func (m *Mailer) HandleUserActivation(ctx context.Context, envelope *job.Envelope) error {
	var payload job.UserActivationEmail
	if err := envelope.Decode(&payload); err != nil {
		return err
	}

	body, err := render(templateUserActivation, m.data(envelope, payload.Name, "/user/activate/", payload.SessionID, payload.Token))
	if err != nil {
		return err
	}
	return m.sender.SendText([]string{payload.Email}, "Activate your account", body)
}

// HandlePasswordReset 发送密码重置邮件
func (m *Mailer) HandlePasswordReset(ctx context.Context, envelope *job.Envelope) error {
	var payload job.PasswordResetEmail
	if err := envelope.Decode(&payload); err != nil {
		return err
	}

	body, err := render(templatePasswordReset, m.data(envelope, payload.Name, "/password/reset/", payload.SessionID, payload.Token))
	if err != nil {
		return err
	}
	return m.sender.SendText([]string{payload.Email}, "Reset your password", body)
}

func (m *Mailer) data(envelope *job.Envelope, name, path, sessionID, token string) *linkData {
	query := url.Values{"s": []string{token}}
	return &linkData{
		Name:      name,
		URL:       m.consoleURL + path + url.PathEscape(sessionID) + "?" + query.Encode(),
		ExpiresAt: envelope.EnqueuedAt.Add(m.linkTTL).UTC().Format(time.RFC1123),
	}
}
