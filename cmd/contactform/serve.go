package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/internal/metrics"
	"github.com/goliatone/go-contactform/internal/server"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contact page",
		Long: `Serve the contact page at /, the postal-code endpoint under the configured
base path, a JSON receiver for submissions and Prometheus metrics at /metrics.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}
	cmd.Flags().String("addr", "", "Listen address (default: server.addr from the configuration)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if a.cfg.Server.Metrics {
		a.metrics = metrics.New()
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lookup := a.lookup()
	filler, err := a.autofiller(lookup)
	if err != nil {
		return err
	}
	submitter, err := a.submitter(ctx)
	if err != nil {
		return err
	}
	renderer, err := a.renderer()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Dependencies{
		Renderer:  renderer,
		Autofill:  filler,
		Submitter: submitter,
		Lookup:    lookup,
		Metrics:   a.metrics,
	},
		server.WithLogger(a.logger),
		server.WithFields(a.cfg.Form.Fields...),
		server.WithHidden(a.hidden()),
		server.WithContactPath(a.cfg.Server.ContactPath),
		server.WithCEPBasePath(a.cfg.Server.CEPBasePath),
		server.WithMetricsEndpoint(a.cfg.Server.Metrics),
		server.WithSuccessMessage(a.cfg.Form.Messages.Success),
	)
	if err != nil {
		return err
	}
	handler, err := srv.Router()
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = a.cfg.Server.Addr
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(cmd.OutOrStdout(), "contactform listening on %s\n", addr)
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", addr, "action", submitter.Action())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.logger.Info("received shutdown signal, stopping server")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		return httpServer.Shutdown(shutdownCtx)
	}
}
