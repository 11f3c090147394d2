package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*
var templateFS embed.FS

// Template parses each embedded mail template once and keeps it for later sends.
type Template struct {
	mu    sync.Mutex
	cache map[string]*template.Template
}

func NewTemplate() *Template {
	return &Template{cache: make(map[string]*template.Template)}
}

func (tp *Template) lookup(name string) (*template.Template, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if t, ok := tp.cache[name]; ok {
		return t, nil
	}

	t, err := template.New("email").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("could not parse template %s: %w", name, err)
	}

	tp.cache[name] = t
	return t, nil
}

// ParseTemplate renders the subject, plainBody and htmlBody blocks of the named template with data.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, err := tp.lookup(name)
	if err != nil {
		return nil, nil, nil, err
	}

	parts := make([]*bytes.Buffer, 3)
	for i, block := range []string{"subject", "plainBody", "htmlBody"} {
		parts[i] = new(bytes.Buffer)
		if err := t.ExecuteTemplate(parts[i], block, data); err != nil {
			return nil, nil, nil, fmt.Errorf("could not render %s of %s: %w", block, name, err)
		}
	}

	return parts[0], parts[1], parts[2], nil
}
