package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendTemplate отправляет email по шаблону
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}

// NewProvider: без SMTP-хоста письма только логируются
func NewProvider(cfg *SMTPConfig, renderer TemplateRenderer) Provider {
	if cfg == nil || cfg.Host == "" {
		return NewLogProvider(renderer)
	}
	return NewGomailProvider(cfg, renderer)
}
