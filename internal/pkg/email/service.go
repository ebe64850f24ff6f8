// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-backend/internal/config"
)

// EmailService sends the storefront's transactional email
type EmailService struct {
	config    *config.Config
	log       *logrus.Logger
	templates map[EmailType]*template.Template
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config, log *logrus.Logger) *EmailService {
	return &EmailService{
		config: cfg,
		log:    log,
		templates: map[EmailType]*template.Template{
			EmailTypeOrderConfirmation: template.Must(template.New("order_confirmation").Parse(orderConfirmationTemplate)),
			EmailTypeOrderStatusUpdate: template.Must(template.New("order_status_update").Parse(orderStatusUpdateTemplate)),
		},
	}
}

// SendEmail sends an email using the configured provider
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	switch s.config.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	case "noop":
		s.log.WithFields(logrus.Fields{
			"to":      email.To,
			"subject": email.Subject,
			"type":    email.Type,
		}).Info("email sending disabled, dropping message")
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.Email.Provider)
	}
}

// SendOrderConfirmation sends the post-purchase confirmation email
func (s *EmailService) SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error {
	if data.UserEmail == "" {
		return nil
	}
	data.TemplateData = NewTemplateData(s.config.App.StoreName, data.UserName, data.UserEmail)

	htmlContent, err := s.render(EmailTypeOrderConfirmation, data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Order Confirmation - %s", data.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
	})
}

// SendOrderStatusUpdate notifies the customer of a fulfillment change
func (s *EmailService) SendOrderStatusUpdate(ctx context.Context, data OrderStatusUpdateData) error {
	if data.UserEmail == "" {
		return nil
	}
	data.TemplateData = NewTemplateData(s.config.App.StoreName, data.UserName, data.UserEmail)

	htmlContent, err := s.render(EmailTypeOrderStatusUpdate, data)
	if err != nil {
		return fmt.Errorf("failed to render status update: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Order Update - %s", data.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderStatusUpdate,
	})
}

func (s *EmailService) render(t EmailType, data interface{}) (string, error) {
	tmpl, ok := s.templates[t]
	if !ok {
		return "", fmt.Errorf("template %s not found", t)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", t, err)
	}
	return buf.String(), nil
}

const orderConfirmationTemplate = `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.StoreName}}</title></head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
    <h1 style="color: #333;">{{.StoreName}}</h1>
    <p>Hello {{.UserName}},</p>
    <p>Thank you for your order <strong>{{.OrderNumber}}</strong>.</p>
    <table style="width: 100%; border-collapse: collapse;">
      {{range .Lines}}
      <tr>
        <td style="padding: 6px 0;">{{.Name}} × {{.Quantity}}</td>
        <td style="padding: 6px 0; text-align: right;">₹{{.Subtotal}}</td>
      </tr>
      {{end}}
      <tr>
        <td style="padding: 10px 0; border-top: 1px solid #ddd;"><strong>Total</strong></td>
        <td style="padding: 10px 0; border-top: 1px solid #ddd; text-align: right;"><strong>₹{{.OrderTotal}}</strong></td>
      </tr>
    </table>
    <p>We will let you know when it is on its way.</p>
    <p>Best regards,<br>{{.StoreName}} Team</p>
    <hr>
    <p style="font-size: 12px; color: #666;">© {{.Year}} {{.StoreName}}. All rights reserved.</p>
  </div>
</body>
</html>`

const orderStatusUpdateTemplate = `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.StoreName}}</title></head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
    <h1 style="color: #333;">{{.StoreName}}</h1>
    <p>Hello {{.UserName}},</p>
    <p>Your order <strong>{{.OrderNumber}}</strong> is now <strong>{{.Status}}</strong>.</p>
    <p>Best regards,<br>{{.StoreName}} Team</p>
    <hr>
    <p style="font-size: 12px; color: #666;">© {{.Year}} {{.StoreName}}. All rights reserved.</p>
  </div>
</body>
</html>`
