package html

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/view"
)

func TestRenderer_RendersFieldsValuesAndMessages(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	v := view.NewMemory("nome", "sexo", "cep", "mensagem")
	v.SetValue("nome", "Ana <b>Souza</b>")
	v.SetValue("sexo", "F")
	v.SetFeedback("CEP não encontrado!")
	v.AddError("mensagem", "Por favor, preencha o campo mensagem.")
	v.AppendSuccess("Mensagem enviada!")

	out, err := r.Render(context.Background(), v, RenderOptions{
		Action: "https://example.com/contact",
		Hidden: map[string]string{"_csrf": "token"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)

	for _, want := range []string{
		`<form data-form method="post" action="https://example.com/contact"`,
		`<input type="hidden" name="_csrf" value="token">`,
		`name="nome" type="text" value="Ana &lt;b&gt;Souza&lt;/b&gt;"`,
		`<option value="F" selected>Feminino</option>`,
		`<span class="mensagem">CEP não encontrado!</span>`,
		`<div class="error-message">Por favor, preencha o campo mensagem.</div>`,
		`<div class="success-message">Mensagem enviada!</div>`,
		`name="_intent" value="lookup"`,
		`data-button name="_intent" value="submit"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("rendered page missing %q\n%s", want, page)
		}
	}
	if strings.Contains(page, `name="cpf"`) {
		t.Errorf("page rendered an input the view does not declare")
	}
}

func TestRenderer_StripsMarkupFromMessages(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	v := view.NewMemory("mensagem")
	v.AddError("mensagem", `<script>alert(1)</script>Falhou`)

	out, err := r.Render(context.Background(), v, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "<script>") || strings.Contains(string(out), "alert(1)") {
		t.Fatalf("script survived sanitising:\n%s", out)
	}
	if !strings.Contains(string(out), `<div class="error-message">Falhou</div>`) {
		t.Fatalf("expected sanitised message, got:\n%s", out)
	}
}

func TestRenderer_ThemeTokensAndVariantStylesheet(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"primary": "#000", "--radius": "4px"},
		Assets: theme.Assets{
			Prefix: "/static/themes/acme",
			Files:  map[string]string{StylesheetAsset: "light.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"primary": "#fff"},
				Assets: theme.Assets{Files: map[string]string{StylesheetAsset: "dark.css"}},
			},
		},
	}
	r, err := New(WithThemeSelector(StaticTheme(manifest), "acme", "dark"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), view.NewMemory("nome"), RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	for _, want := range []string{
		`href="/static/themes/acme/dark.css"`,
		`--primary: #fff;`,
		`--radius: 4px;`,
		`data-theme="acme" data-theme-variant="dark"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q\n%s", want, page)
		}
	}
}

type failingSelector struct{}

func (failingSelector) Select(string, string, ...theme.QueryOption) (*theme.Selection, error) {
	return nil, errors.New("boom")
}

func TestRenderer_ThemeSelectionError(t *testing.T) {
	r, err := New(WithThemeSelector(failingSelector{}, "missing", ""))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), view.NewMemory("nome"), RenderOptions{}); err == nil {
		t.Fatal("expected theme selection error")
	}
}

func TestRenderer_CustomTemplatesFS(t *testing.T) {
	files := fstest.MapFS{
		PageTemplate: &fstest.MapFile{Data: []byte(`{% for field in page.Fields %}{{ field.Name }}={{ field.Value }};{% endfor %}`)},
	}
	r, err := New(WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	v := view.NewMemory("cep", "cidade")
	v.SetValue("cep", "01001000")
	v.SetValue("cidade", "São Paulo")

	out, err := r.Render(context.Background(), v, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("cep=01001000;cidade=São Paulo;", string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_CustomSelectSpec(t *testing.T) {
	opts := []Option{
		WithTitle("Fale conosco"),
		WithFieldSpecs([]FieldSpec{
			{Name: "assunto", Label: "Assunto", Type: "select", Options: []SelectOption{
				{Value: "duvida", Label: "Dúvida"},
				{Value: "elogio", Label: "Elogio"},
			}},
		}),
	}
	r, err := New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	v := view.NewMemory("assunto")
	v.SetValue("assunto", "elogio")

	out, err := r.Render(context.Background(), v, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	for _, want := range []string{
		`<title>Fale conosco</title>`,
		`<option value="duvida">Dúvida</option>`,
		`<option value="elogio" selected>Elogio</option>`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q\n%s", want, page)
		}
	}
}

func TestSpecsFor_FallsBackToTextInputs(t *testing.T) {
	got := specsFor([]string{"cep", "apelido_social"}, DefaultFieldSpecs())
	want := []FieldSpec{
		{Name: "cep", Label: "CEP", Type: "text", MaxLength: 8, Lookup: true},
		{Name: "apelido_social", Label: "Apelido social", Type: "text"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("specs mismatch (-want +got):\n%s", diff)
	}
}

func TestCSSVars_SortedAndPrefixed(t *testing.T) {
	got := cssVars(map[string]string{"b": "2", "--a": "1"})
	if diff := cmp.Diff("--a: 1; --b: 2;", got); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
}
