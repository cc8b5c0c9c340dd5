package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Built-in templates. A shared layout keeps the messages consistent without a
// templates directory to deploy.
const baseTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>{{.Subject}}</h2>
  <p>Hello{{if .UserName}} {{.UserName}}{{end}},</p>
  <p>{{.Message}}</p>
  {{if .ActionURL}}
  <p><a href="{{.ActionURL}}" style="background:#4f46e5;color:#fff;padding:10px 20px;text-decoration:none;border-radius:4px;">{{.ActionText}}</a></p>
  <p>If the button does not work, copy this link into your browser:<br>{{.ActionURL}}</p>
  {{end}}
  <p>— The Collabra team</p>
</body>
</html>`

// TemplateManager renders named templates, guarded for concurrent use.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	// The base layout covers every current message; named registration stays
	// so a deployment can override individual templates later.
	_ = tm.AddTemplate("base", baseTemplate)
	return tm
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
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
