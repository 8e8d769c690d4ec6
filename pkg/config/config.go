// Package config loads the contact form settings from YAML. Every key is
// optional; missing keys fall back to Default.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/pkg/cep"
	"github.com/goliatone/go-contactform/pkg/submit"
)

// DefaultConfigFile is looked up in the working directory when no path is
// given.
const DefaultConfigFile = "contactform.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("config: configuration file not found")

// Config is the full set of contact form settings.
type Config struct {
	Lookup Lookup `yaml:"lookup"`
	Form   Form   `yaml:"form"`
	Server Server `yaml:"server"`
	Theme  Theme  `yaml:"theme"`
}

// Lookup configures the postal-code service.
type Lookup struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
}

// Form configures the submission flow. CSRFToken, when set, is sent as the
// hidden input named CSRFField.
type Form struct {
	Action          Action            `yaml:"action"`
	Fields          []string          `yaml:"fields"`
	Required        []string          `yaml:"required"`
	CPFField        string            `yaml:"cpf_field"`
	FeedbackField   string            `yaml:"feedback_field"`
	Navigate        *bool             `yaml:"navigate_on_success"`
	SurfaceFailures bool              `yaml:"surface_failures"`
	Hidden          map[string]string `yaml:"hidden"`
	CSRFField       string            `yaml:"csrf_field"`
	CSRFToken       string            `yaml:"csrf_token"`
	Messages        Messages          `yaml:"messages"`
}

// Action declares where the form posts to.
type Action struct {
	URL         string `yaml:"url"`
	OpenAPI     string `yaml:"openapi"`
	OperationID string `yaml:"operation_id"`
	Server      string `yaml:"server"`
}

// Messages overrides user facing texts.
type Messages struct {
	CEPInvalid  string `yaml:"cep_invalid"`
	CEPNotFound string `yaml:"cep_not_found"`
	CEPFailed   string `yaml:"cep_failed"`
	Required    string `yaml:"required"`
	CPF         string `yaml:"cpf"`
	Success     string `yaml:"success"`
	Failure     string `yaml:"failure"`
}

// Server configures the `serve` command.
type Server struct {
	Addr        string `yaml:"addr"`
	ContactPath string `yaml:"contact_path"`
	CEPBasePath string `yaml:"cep_base_path"`
	Metrics     bool   `yaml:"metrics"`
}

// Theme selects the page theme.
type Theme struct {
	Name       string            `yaml:"name"`
	Variant    string            `yaml:"variant"`
	Stylesheet string            `yaml:"stylesheet"`
	Tokens     map[string]string `yaml:"tokens"`
}

// DefaultFields lists the inputs of the contact page in form order.
func DefaultFields() []string {
	return []string{
		"nome", "cpf", "idade", "aniversario", "sexo", "email", "cep",
		"endereco", "numero", "bairro", "cidade", "estado", "mensagem",
	}
}

// Default returns the stock contact page configuration.
func Default() Config {
	navigate := true
	return Config{
		Lookup: Lookup{BaseURL: cep.DefaultBaseURL},
		Form: Form{
			Action:        Action{URL: "http://localhost:8080/contact"},
			Fields:        DefaultFields(),
			Required:      append([]string(nil), submit.DefaultRequiredFields...),
			CPFField:      "cpf",
			FeedbackField: "mensagem",
			Navigate:      &navigate,
			CSRFField:     "_csrf",
		},
		Server: Server{
			Addr:        ":8080",
			ContactPath: "/contact",
			CEPBasePath: "/api",
			Metrics:     true,
		},
	}
}

// Load reads path and overlays it on Default. A missing file yields
// ErrConfigNotFound.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, ErrConfigNotFound
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML and overlays it on Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve loads path when given, otherwise DefaultConfigFile when present,
// otherwise Default. An explicit path that does not exist is an error.
func Resolve(path string) (Config, error) {
	if strings.TrimSpace(path) != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultConfigFile)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// NavigateOnSuccess reports the effective navigation setting; unset means
// true.
func (f Form) NavigateOnSuccess() bool {
	return f.Navigate == nil || *f.Navigate
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if len(c.Form.Fields) == 0 {
		return errors.New("config: form.fields must not be empty")
	}
	declared := make(map[string]struct{}, len(c.Form.Fields))
	for _, name := range c.Form.Fields {
		declared[name] = struct{}{}
	}
	for _, name := range c.Form.Required {
		if _, ok := declared[name]; !ok {
			return fmt.Errorf("config: required field %q is not declared in form.fields", name)
		}
	}
	if c.Form.CPFField != "" {
		if _, ok := declared[c.Form.CPFField]; !ok {
			return fmt.Errorf("config: cpf_field %q is not declared in form.fields", c.Form.CPFField)
		}
	}
	if c.Form.Action.URL == "" && c.Form.Action.OpenAPI == "" {
		return errors.New("config: form.action needs url or openapi")
	}
	if c.Form.Action.OpenAPI != "" && c.Form.Action.URL == "" && c.Form.Action.OperationID == "" {
		return errors.New("config: form.action.operation_id is required with openapi")
	}
	return nil
}

func (c *Config) normalize() {
	c.Lookup.BaseURL = strings.TrimSpace(c.Lookup.BaseURL)
	if c.Lookup.BaseURL == "" {
		c.Lookup.BaseURL = cep.DefaultBaseURL
	}
	c.Form.Fields = trimAll(c.Form.Fields)
	c.Form.Required = trimAll(c.Form.Required)
	c.Form.CPFField = strings.TrimSpace(c.Form.CPFField)
	c.Form.FeedbackField = strings.TrimSpace(c.Form.FeedbackField)
	if c.Form.FeedbackField == "" {
		c.Form.FeedbackField = "mensagem"
	}
	c.Form.CSRFField = strings.TrimSpace(c.Form.CSRFField)
	if c.Form.CSRFField == "" {
		c.Form.CSRFField = "_csrf"
	}
	c.Form.Action.URL = strings.TrimSpace(c.Form.Action.URL)
	c.Form.Action.OpenAPI = strings.TrimSpace(c.Form.Action.OpenAPI)
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ContactPath == "" {
		c.Server.ContactPath = "/contact"
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
