// Package mail renders survey invitation emails with Liquid templates and
// delivers them through AWS SES v2 or the user's own SMTP relay.
package mail

import (
	"fmt"
	"sync"

	"github.com/osteele/liquid"
)

// TemplateEngine renders Liquid templates with caching. Parsed templates are
// keyed by their source text, so repeated blasts of the same invitation only
// parse once.
type TemplateEngine struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

// NewTemplateEngine creates an engine with the personalization filters used
// by invitation templates.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{engine: liquid.NewEngine()}
	e.registerFilters()
	return e
}

func (e *TemplateEngine) registerFilters() {
	// {{ name | default: "cliente" }}
	e.engine.RegisterFilter("default", func(value interface{}, defaultVal string) interface{} {
		if value == nil {
			return defaultVal
		}
		s := fmt.Sprintf("%v", value)
		if s == "" || s == "<nil>" {
			return defaultVal
		}
		return value
	})

	// {{ name | first_name }} — "Maria Silva" becomes "Maria"
	e.engine.RegisterFilter("first_name", func(value interface{}) string {
		s := fmt.Sprintf("%v", value)
		for i, r := range s {
			if r == ' ' {
				return s[:i]
			}
		}
		return s
	})
}

// Render executes a template against the given bindings.
func (e *TemplateEngine) Render(source string, bindings map[string]interface{}) (string, error) {
	var tmpl *liquid.Template
	if cached, ok := e.cache.Load(source); ok {
		tmpl = cached.(*liquid.Template)
	} else {
		parsed, err := e.engine.ParseString(source)
		if err != nil {
			return "", fmt.Errorf("parse template: %w", err)
		}
		e.cache.Store(source, parsed)
		tmpl = parsed
	}

	out, err := tmpl.RenderString(bindings)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}

// DefaultInvitationTemplate is the built-in survey invitation body used when
// a campaign has no custom email template.
const DefaultInvitationTemplate = `<p>Olá {{ name | default: "cliente" | first_name }},</p>
<p>Gostaríamos de saber sua opinião. Responda nossa pesquisa rápida:</p>
<p><a href="{{ survey_url }}">{{ survey_title | default: "Responder pesquisa" }}</a></p>
<p>Obrigado!</p>`
