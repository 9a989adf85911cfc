// Package mailer renders notification templates and delivers them over SMTP.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/srgjo27/healthbook/internal/core/domain"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	from      string
	templates *template.Template
	send      func(*gomail.Message) error
	logger    *zap.Logger
}

func NewSMTPMailer(cfg Config, logger *zap.Logger) (*SMTPMailer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	return &SMTPMailer{
		from:      cfg.From,
		templates: templates,
		send:      func(msg *gomail.Message) error { return dialer.DialAndSend(msg) },
		logger:    logger,
	}, nil
}

// Render executes the named template against the job data.
func (m *SMTPMailer) Render(job domain.NotificationJob) (string, error) {
	tmpl := m.templates.Lookup(job.Template + ".html")
	if tmpl == nil {
		return "", fmt.Errorf("unknown mail template %q", job.Template)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, job.Data); err != nil {
		return "", fmt.Errorf("render %s: %w", job.Template, err)
	}
	return buf.String(), nil
}

func (m *SMTPMailer) Send(ctx context.Context, job domain.NotificationJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := m.Render(job)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.from, "HealthBook"))
	msg.SetHeader("To", job.To)
	msg.SetHeader("Subject", job.Subject)
	msg.SetBody("text/html", body)

	if err := m.send(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", job.To, err)
	}

	m.logger.Info("Email sent", zap.String("to", job.To), zap.String("template", job.Template))
	return nil
}
