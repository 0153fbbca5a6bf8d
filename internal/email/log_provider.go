package email

import (
	"sync"

	"dealflow_backend/internal/logger"
)

// LogProvider ничего не отправляет: пишет письмо в лог и хранит его в памяти.
// Используется в dev-окружении и в тестах.
type LogProvider struct {
	renderer TemplateRenderer

	mu   sync.Mutex
	sent []Email
}

func NewLogProvider(renderer TemplateRenderer) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(email *Email) error {
	p.mu.Lock()
	p.sent = append(p.sent, *email)
	p.mu.Unlock()

	logger.Info("📧 email (not sent, no SMTP configured)",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	msg := &Email{To: to, Subject: subject}
	if p.renderer != nil {
		body, err := p.renderer.Render(templateName, data)
		if err != nil {
			return err
		}
		msg.HTMLBody = body
	}
	return p.Send(msg)
}

// Sent возвращает копию отправленных писем
func (p *LogProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Email, len(p.sent))
	copy(out, p.sent)
	return out
}
