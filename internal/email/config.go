package email

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func (c *SMTPConfig) From() string {
	if c.FromName == "" {
		return c.FromEmail
	}
	return c.FromName + " <" + c.FromEmail + ">"
}
