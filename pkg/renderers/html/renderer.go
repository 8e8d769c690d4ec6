package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/view"
)

// DefaultTitle is the page title when none is configured.
const DefaultTitle = "Contato"

// DefaultIntentField names the button value that tells lookups from submits.
const DefaultIntentField = "_intent"

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplatesFS replaces the embedded template bundle. The bundle must
// provide PageTemplate.
func WithTemplatesFS(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.templates = files
		}
	}
}

// WithFieldSpecs overrides how inputs are rendered.
func WithFieldSpecs(specs []FieldSpec) Option {
	return func(r *Renderer) {
		if len(specs) > 0 {
			r.specs = append([]FieldSpec(nil), specs...)
		}
	}
}

// WithThemeSelector resolves name and variant through selector on each render.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(r *Renderer) {
		r.selector = selector
		r.themeName = strings.TrimSpace(name)
		r.themeVariant = strings.TrimSpace(variant)
	}
}

// WithStylesheet sets a stylesheet URL used when no theme provides one.
func WithStylesheet(href string) Option {
	return func(r *Renderer) {
		r.stylesheet = strings.TrimSpace(href)
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			r.title = trimmed
		}
	}
}

// RenderOptions carries per request values.
type RenderOptions struct {
	// Action is the form's submission target.
	Action string
	// LookupPath is exposed as data-lookup for pages that call the postal
	// code endpoint directly.
	LookupPath  string
	Hidden      map[string]string
	IntentField string
}

// Renderer renders the contact page from a form view.
type Renderer struct {
	templates    fs.FS
	specs        []FieldSpec
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	stylesheet   string
	title        string
	engine       *engine
}

// New constructs a Renderer backed by the embedded templates unless overridden.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		templates: embeddedTemplates,
		specs:     DefaultFieldSpecs(),
		title:     DefaultTitle,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	eng, err := newEngine(r.templates)
	if err != nil {
		return nil, err
	}
	r.engine = eng
	return r, nil
}

// Name identifies the renderer.
func (r *Renderer) Name() string { return "html" }

// ContentType reports the MIME type of Render's output.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render produces the page for the current state of v.
func (r *Renderer) Render(ctx context.Context, v view.FormView, opts RenderOptions) ([]byte, error) {
	if r == nil || r.engine == nil {
		return nil, errors.New("html: renderer not initialised")
	}
	if v == nil {
		return nil, errors.New("html: form view is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	themeCtx, err := r.resolveTheme()
	if err != nil {
		return nil, err
	}

	page := r.buildPage(v, opts)
	page.Theme = themeCtx

	out, err := r.engine.render(PageTemplate, pongo2.Context{"page": page})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (r *Renderer) resolveTheme() (themeContext, error) {
	var ctx themeContext
	if r.selector != nil {
		selection, err := r.selector.Select(r.themeName, r.themeVariant)
		if err != nil {
			return themeContext{}, fmt.Errorf("html: select theme %q: %w", r.themeName, err)
		}
		ctx = buildThemeContext(selection)
	}
	if ctx.Stylesheet == "" {
		ctx.Stylesheet = r.stylesheet
	}
	return ctx, nil
}

type pageOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageField struct {
	Name      string
	Label     string
	Type      string
	Value     string
	Options   []pageOption
	MaxLength int
	Lookup    bool
	Errors    []string
}

type pageModel struct {
	Title       string
	Action      string
	LookupPath  string
	IntentField string
	Hidden      []render.HiddenField
	Fields      []pageField
	Feedback    string
	Successes   []string
	Theme       themeContext
}

type successLister interface {
	Successes() []string
}

func (r *Renderer) buildPage(v view.FormView, opts RenderOptions) pageModel {
	errs := make(map[string][]string)
	for _, fe := range v.Errors() {
		errs[fe.Field] = append(errs[fe.Field], fe.Message)
	}

	specs := specsFor(v.Names(), r.specs)
	fields := make([]pageField, 0, len(specs))
	for _, spec := range specs {
		value := v.Value(spec.Name)
		field := pageField{
			Name:      spec.Name,
			Label:     spec.Label,
			Type:      spec.Type,
			Value:     value,
			MaxLength: spec.MaxLength,
			Lookup:    spec.Lookup,
			Errors:    sanitizeMessages(errs[spec.Name]),
		}
		for _, option := range spec.Options {
			field.Options = append(field.Options, pageOption{
				Value:    option.Value,
				Label:    option.Label,
				Selected: option.Value == value,
			})
		}
		fields = append(fields, field)
	}

	page := pageModel{
		Title:       r.title,
		Action:      strings.TrimSpace(opts.Action),
		LookupPath:  strings.TrimSpace(opts.LookupPath),
		IntentField: strings.TrimSpace(opts.IntentField),
		Hidden:      render.SortedHiddenFields(opts.Hidden),
		Fields:      fields,
		Feedback:    sanitizeMessage(v.Feedback()),
	}
	if page.IntentField == "" {
		page.IntentField = DefaultIntentField
	}
	if lister, ok := v.(successLister); ok {
		page.Successes = sanitizeMessages(lister.Successes())
	}
	return page
}
