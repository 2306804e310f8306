package mailing

import (
	"io"
	"strconv"

	"foodgram-backend/internal/utils"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

type Attachment struct {
	Filename string
	Content  []byte
}

// Mailer sends a plain-text message with optional attachments.
type Mailer interface {
	Send(toEmail, subject, body string, attachments ...Attachment) error
}

type smtpMailer struct {
	config MailConfig
}

func NewMailer() Mailer {
	return &smtpMailer{config: LoadMailConfig()}
}

func BuildMessage(from, toEmail, subject, body string, attachments ...Attachment) *gomail.Message {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", from)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/plain", body)
	for _, a := range attachments {
		content := a.Content
		mailer.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}), gomail.SetHeader(map[string][]string{"Content-Type": {"text/plain; charset=utf-8"}}))
	}
	return mailer
}

func (m *smtpMailer) Send(toEmail, subject, body string, attachments ...Attachment) error {
	from := m.config.SMTPEmail
	if m.config.SMTPSender != "" {
		from = m.config.SMTPSender + " <" + m.config.SMTPEmail + ">"
	}
	message := BuildMessage(from, toEmail, subject, body, attachments...)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(message)
}
