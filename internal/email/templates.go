package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const TemplateMatchCreated = "match_created"

const matchCreatedTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif;">
  <h2>It's a match!</h2>
  <p>Hi {{.RecipientName}},</p>
  <p>You and <strong>{{.CounterpartyName}}</strong> are interested in each other.</p>
  <p>Mutual compatibility: <strong>{{printf "%.0f" .MutualScore}}%</strong></p>
  <p>Open your matches to start the conversation.</p>
</body>
</html>`

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplates - менеджер со встроенными шаблонами
func NewDefaultTemplates() (*TemplateManager, error) {
	tm := NewTemplateManager()
	if err := tm.AddTemplate(TemplateMatchCreated, matchCreatedTemplate); err != nil {
		return nil, err
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
