package mail

import (
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"sort"
	"strings"
	"time"

	"eloquentlog/pkg/config"
	"eloquentlog/pkg/logger"
)

// Sender 邮件发送器接口
type Sender interface {
	// SendText 发送纯文本邮件
	SendText(to []string, subject string, content string) error
}

// SMTPSender SMTP邮件发送器
type SMTPSender struct {
	config *config.SMTPConfig
	auth   smtp.Auth
}

// NewSMTPSender 创建SMTP邮件发送器
func NewSMTPSender(config *config.SMTPConfig) *SMTPSender {
	var auth smtp.Auth
	if config.Username != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}
	return &SMTPSender{config: config, auth: auth}
}

// SendText 发送纯文本邮件
func (s *SMTPSender) SendText(to []string, subject string, content string) error {
	recipients := sanitizeEmails(to)
	if len(recipients) == 0 {
		return fmt.Errorf("no valid recipient in %v", to)
	}
	return s.send(recipients, buildMessage(s.config.FromName, s.config.FromEmail, recipients, subject, content))
}

// buildMessage 构建邮件内容，头部按名称排序以保证输出稳定，非ASCII主题按 RFC 2047 编码
func buildMessage(fromName, fromEmail string, to []string, subject, body string) []byte {
	from := (&mail.Address{Name: fromName, Address: fromEmail}).String()
	headers := map[string]string{
		"From":         from,
		"To":           strings.Join(to, ", "),
		"Subject":      mime.QEncoding.Encode("utf-8", subject),
		"MIME-Version": "1.0",
		"Content-Type": "text/plain; charset=UTF-8",
	}

	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %s\r\n", key, headers[key])
	}
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// sanitizeEmails 过滤无法解析的地址
func sanitizeEmails(emails []string) []string {
	var sanitized []string
	for _, email := range emails {
		if addr, err := mail.ParseAddress(email); err == nil {
			sanitized = append(sanitized, addr.Address)
		}
	}
	return sanitized
}

// dial 建立SMTP连接：465 端口直接TLS，587 端口STARTTLS
func (s *SMTPSender) dial(dialer *net.Dialer, addr string) (*smtp.Client, error) {
	tlsConfig := &tls.Config{
		ServerName:         s.config.Host,
		InsecureSkipVerify: s.config.InsecureSkipVerify,
	}

	var conn net.Conn
	var err error
	if s.config.Port == 465 {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsConfig)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if s.config.Port == 587 {
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return nil, fmt.Errorf("STARTTLS failed: %w", err)
		}
	}
	return client, nil
}

// send 发送邮件
func (s *SMTPSender) send(to []string, message []byte) error {
	timeout := time.Duration(s.config.ConnectTimeout) * time.Second
	dialer := &net.Dialer{Timeout: timeout, KeepAlive: timeout}
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	client, err := s.dial(dialer, addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.auth != nil {
		if err := client.Auth(s.auth); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}
	if err := client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", addr, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to create message writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}
	return client.Quit()
}

// LogSender 只打印日志的发送器（未配置SMTP时使用）
type LogSender struct{}

// SendText 打印邮件内容
func (LogSender) SendText(to []string, subject string, content string) error {
	logger.Info("Send email to %v, subject=%q\n%s", to, subject, content)
	return nil
}
