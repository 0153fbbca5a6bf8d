package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplates_MatchCreated(t *testing.T) {
	tm, err := NewDefaultTemplates()
	require.NoError(t, err)

	html, err := tm.Render(TemplateMatchCreated, TemplateData{
		"RecipientName":    "Dana",
		"CounterpartyName": "Northwind <Ventures>",
		"MutualScore":      60.0,
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Hi Dana")
	assert.Contains(t, html, "60%")
	// html/template экранирует
	assert.Contains(t, html, "Northwind &lt;Ventures&gt;")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)

	_, err = tm.Render(TemplateMatchCreated, TemplateData{"RecipientName": "Dana"})
	assert.Error(t, err, "missing keys must fail rendering")
}

func TestNewProvider_FallsBackToLog(t *testing.T) {
	tm, err := NewDefaultTemplates()
	require.NoError(t, err)

	p := NewProvider(&SMTPConfig{}, tm)
	lp, ok := p.(*LogProvider)
	require.True(t, ok)

	require.NoError(t, lp.SendTemplate([]string{"a@b.dev"}, "Match", TemplateMatchCreated, TemplateData{
		"RecipientName":    "A",
		"CounterpartyName": "B",
		"MutualScore":      70.71,
	}))
	sent := lp.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"a@b.dev"}, sent[0].To)
	assert.Contains(t, sent[0].HTMLBody, "71%")

	_, isGomail := NewProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "x@y.z"}, tm).(*GomailProvider)
	assert.True(t, isGomail)
}

func TestGomailProvider_Validate(t *testing.T) {
	p := NewGomailProvider(&SMTPConfig{Host: "smtp.example.com", Port: 0}, nil)
	assert.Error(t, p.Validate())

	p = NewGomailProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "noreply@example.com", FromName: "Dealflow"}, nil)
	assert.NoError(t, p.Validate())
	assert.Equal(t, "Dealflow <noreply@example.com>", p.config.From())

	assert.Error(t, p.SendTemplate([]string{"a@b.dev"}, "s", "x", nil), "no renderer configured")
}
