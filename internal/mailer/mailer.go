package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/learnity/backend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mailer renders named HTML templates and delivers them over SMTP.
type Mailer struct {
	client    *mail.Client
	templates *template.Template
	from      string
	logger    *zap.Logger
}

// New builds the SMTP client and parses the embedded templates.
func New(cfg config.SMTPConfig, logger *zap.Logger) (*Mailer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("mailer: parse templates: %w", err)
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mailer: smtp client: %w", err)
	}

	return &Mailer{
		client:    client,
		templates: templates,
		from:      cfg.From,
		logger:    logger,
	}, nil
}

// Send renders templateName with data and delivers it. A failure here
// never rolls back store writes already committed by the caller; it
// only surfaces through the immediate response.
func (m *Mailer) Send(ctx context.Context, to, subject, templateName string, data map[string]any) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, templateName+".html", data); err != nil {
		return fmt.Errorf("mailer: render %s: %w", templateName, err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Error("email delivery failed",
			zap.String("template", templateName),
			zap.Error(err))
		return fmt.Errorf("mailer: send %s: %w", templateName, err)
	}

	m.logger.Info("email sent", zap.String("template", templateName))
	return nil
}
