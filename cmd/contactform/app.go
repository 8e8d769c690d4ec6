package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/internal/action"
	"github.com/goliatone/go-contactform/internal/metrics"
	"github.com/goliatone/go-contactform/pkg/autofill"
	"github.com/goliatone/go-contactform/pkg/cep"
	"github.com/goliatone/go-contactform/pkg/config"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/html"
	"github.com/goliatone/go-contactform/pkg/submit"
)

// app carries what every subcommand builds from the configuration.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func newApp(cmd *cobra.Command) (*app, error) {
	path := getStringFlag(cmd, "config")
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	logger := setupLogger(cmd.ErrOrStderr(), getBoolFlag(cmd, "verbose"))
	logger.Debug("configuration loaded", "path", path, "lookup", cfg.Lookup.BaseURL)
	return &app{cfg: cfg, logger: logger}, nil
}

// getBoolFlag reads a flag from the command or its root.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		value, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return value
}

func getStringFlag(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		value, err = cmd.Root().PersistentFlags().GetString(name)
		if err != nil {
			return ""
		}
	}
	return value
}

func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (a *app) lookup() *cep.Client {
	return cep.NewClient(
		cep.WithBaseURL(a.cfg.Lookup.BaseURL),
		cep.WithUserAgent(a.cfg.Lookup.UserAgent),
	)
}

func (a *app) autofiller(lookup cep.Lookuper) (*autofill.Autofiller, error) {
	msgs := a.cfg.Form.Messages
	return autofill.New(lookup,
		autofill.WithMessages(autofill.Messages{
			Invalid:  msgs.CEPInvalid,
			NotFound: msgs.CEPNotFound,
			Failed:   msgs.CEPFailed,
		}),
		autofill.WithLogger(a.logger),
		autofill.WithObserver(a.metrics.ObserveAutofill),
	)
}

// submitter resolves the form action, from the OpenAPI document when one is
// configured, and builds the submitter for it.
func (a *app) submitter(ctx context.Context) (*submit.Submitter, error) {
	form := a.cfg.Form
	target, err := action.Resolve(ctx, action.Source{
		URL:         form.Action.URL,
		OpenAPI:     form.Action.OpenAPI,
		OperationID: form.Action.OperationID,
		Server:      form.Action.Server,
	})
	if err != nil {
		return nil, err
	}
	a.logger.Debug("form action resolved", "url", target.URL, "operation", target.OperationID)

	msgs := form.Messages
	return submit.New(target.URL,
		submit.WithRequiredFields(form.Required...),
		submit.WithCPFField(form.CPFField),
		submit.WithFeedbackField(form.FeedbackField),
		submit.WithMessages(submit.Messages{
			Required: msgs.Required,
			CPF:      msgs.CPF,
			Success:  msgs.Success,
			Failure:  msgs.Failure,
		}),
		submit.WithHiddenFields(render.SortedHiddenFields(a.hidden())...),
		submit.WithNavigateOnSuccess(form.NavigateOnSuccess()),
		submit.WithSurfaceFailures(form.SurfaceFailures),
		submit.WithLogger(a.logger),
		submit.WithObserver(a.metrics.ObserveSubmit),
	)
}

// hidden returns the configured hidden inputs, with the CSRF token merged in
// when one is set.
func (a *app) hidden() map[string]string {
	form := a.cfg.Form
	if form.CSRFToken == "" {
		return form.Hidden
	}
	return render.MergeHiddenFields(form.Hidden, render.CSRFToken(form.CSRFField, form.CSRFToken))
}

func (a *app) renderer() (*html.Renderer, error) {
	opts := []html.Option{html.WithStylesheet(a.cfg.Theme.Stylesheet)}
	if a.cfg.Theme.Name != "" {
		manifest := &theme.Manifest{
			Name:    a.cfg.Theme.Name,
			Version: "0.0.0",
			Tokens:  a.cfg.Theme.Tokens,
		}
		if a.cfg.Theme.Stylesheet != "" {
			manifest.Assets = theme.Assets{Files: map[string]string{html.StylesheetAsset: a.cfg.Theme.Stylesheet}}
		}
		opts = append(opts, html.WithThemeSelector(html.StaticTheme(manifest), a.cfg.Theme.Name, a.cfg.Theme.Variant))
	}
	return html.New(opts...)
}
