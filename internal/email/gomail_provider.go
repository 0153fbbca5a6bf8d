package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// GomailProvider отправляет письма через SMTP (gomail)
type GomailProvider struct {
	config   *SMTPConfig
	dialer   *gomail.Dialer
	renderer TemplateRenderer
}

func NewGomailProvider(config *SMTPConfig, renderer TemplateRenderer) *GomailProvider {
	return &GomailProvider{
		config:   config,
		dialer:   gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		renderer: renderer,
	}
}

func (p *GomailProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := p.dialer.DialAndSend(p.buildMessage(email)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *GomailProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	if p.renderer == nil {
		return fmt.Errorf("template renderer is not configured")
	}
	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: htmlBody})
}

// Validate проверяет конфигурацию SMTP
func (p *GomailProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	if p.config.FromEmail == "" {
		return fmt.Errorf("sender address is required")
	}
	return nil
}

func (p *GomailProvider) buildMessage(email *Email) *gomail.Message {
	from := email.From
	if from == "" {
		from = p.config.From()
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.HTMLBody != "" && email.Body != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}
	return m
}
