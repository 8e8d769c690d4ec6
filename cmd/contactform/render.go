package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/renderers/html"
	"github.com/goliatone/go-contactform/pkg/view"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the contact page as HTML",
		Args:  cobra.NoArgs,
		RunE:  runRenderCmd,
	}
	cmd.Flags().StringP("output", "o", "", "Write the page to this file instead of stdout")
	cmd.Flags().String("action", "", "Form action attribute (default: the configured action URL)")
	return cmd
}

func runRenderCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	renderer, err := a.renderer()
	if err != nil {
		return err
	}

	target, _ := cmd.Flags().GetString("action")
	if target == "" {
		target = a.cfg.Form.Action.URL
	}
	page, err := renderer.Render(cmd.Context(), view.NewMemory(a.cfg.Form.Fields...), html.RenderOptions{
		Action: target,
		Hidden: a.hidden(),
	})
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		file, err := os.Create(path) //nolint:gosec // user supplied output path
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer file.Close()
		out = file
	}
	_, err = out.Write(page)
	return err
}
