package html

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// engine loads pongo2 templates from an fs.FS and caches parsed templates.
type engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

func newEngine(files fs.FS) (*engine, error) {
	if files == nil {
		return nil, errors.New("html: templates fs is nil")
	}
	registerDefaultFilters()
	return &engine{
		set:       pongo2.NewSet("contactform", pongo2.NewFSLoader(files)),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

func (e *engine) render(name string, data pongo2.Context) (string, error) {
	tmpl, err := e.template(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		return "", fmt.Errorf("html: execute template %q: %w", name, err)
	}
	return buf.String(), nil
}

func (e *engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("html: load template %q: %w", name, err)
	}
	e.templates[name] = tmpl
	return tmpl, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
