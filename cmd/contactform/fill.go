package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/submit"
	"github.com/goliatone/go-contactform/pkg/view"
)

// NewFillCmd creates the fill command.
func NewFillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill and submit the contact form in the terminal",
		Long: `Prompt for every field of the contact form. The address is filled from the
postal code as soon as it is answered, and fields that fail validation are
asked again before the form is posted.`,
		Args: cobra.NoArgs,
		RunE: runFillCmd,
	}
	cmd.Flags().Int("attempts", tui.DefaultMaxAttempts, "Maximum submission attempts")
	return cmd
}

func runFillCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	filler, err := a.autofiller(a.lookup())
	if err != nil {
		return err
	}
	submitter, err := a.submitter(ctx)
	if err != nil {
		return err
	}
	attempts, _ := cmd.Flags().GetInt("attempts")
	session, err := tui.NewSession(filler, submitter,
		tui.WithOutput(cmd.OutOrStdout()),
		tui.WithMaxAttempts(attempts),
		tui.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	result, err := session.Run(ctx, view.NewMemory(a.cfg.Form.Fields...))
	if errors.Is(err, tui.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	switch result.Outcome {
	case submit.OutcomeSent:
		return nil
	case submit.OutcomeFailed:
		return fmt.Errorf("submission failed: %w", result.Err)
	default:
		return fmt.Errorf("submission %s (status %d)", result.Outcome, result.StatusCode)
	}
}
