package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"
	"go.uber.org/zap"

	"internship-portal/internal/config"
	"internship-portal/internal/domain"
	"internship-portal/internal/pkg/i18n"
)

type Service interface {
	SendNotificationEmail(ctx context.Context, toEmail, recipientName string, notif *domain.Notification) error
	SendAdminCredentials(ctx context.Context, toEmail, name, username, password string) error
}

//go:embed templates/*.html
var templateFS embed.FS

// Sender is the slice of the Resend client used here.
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	sender Sender
	config *config.Config
	logger *zap.Logger
}

// NewService returns a Resend-backed mailer. Without an API key mail is logged
// and skipped.
func NewService(cfg *config.Config, logger *zap.Logger) Service {
	var sender Sender
	if cfg.ResendAPIKey != "" {
		sender = resend.NewClient(cfg.ResendAPIKey).Emails
	}
	return NewServiceWithSender(sender, cfg, logger)
}

func NewServiceWithSender(sender Sender, cfg *config.Config, logger *zap.Logger) Service {
	return &service{sender: sender, config: cfg, logger: logger}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	if s.sender == nil {
		s.logger.Debug("email disabled, skipping", zap.String("to", toEmail), zap.String("subject", subject))
		return nil
	}

	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Internship Portal <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.sender.Send(params)
	return err
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, recipientName string, notif *domain.Notification) error {
	link := ""
	if notif.Link != nil {
		link = fmt.Sprintf("https://%s%s", s.config.Domain, *notif.Link)
	}

	data := struct {
		Title   string
		Name    string
		Message string
		Link    string
	}{
		Title:   notif.Title,
		Name:    recipientName,
		Message: notif.Message,
		Link:    link,
	}
	subject := i18n.Format(i18n.DefaultLocale, "email.subject", i18n.Vars{"title": notif.Title})
	return s.sendEmail(toEmail, subject, "notification.html", data)
}

func (s *service) SendAdminCredentials(ctx context.Context, toEmail, name, username, password string) error {
	data := struct {
		Title    string
		Name     string
		Username string
		Password string
		Link     string
	}{
		Title:    "Welcome to the Internship Portal",
		Name:     name,
		Username: username,
		Password: password,
		Link:     fmt.Sprintf("https://%s/login", s.config.Domain),
	}
	subject := i18n.Translate(i18n.DefaultLocale, "email.admin_credentials.subject")
	return s.sendEmail(toEmail, subject, "admin_credentials.html", data)
}
