package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/cep"
)

// NewLookupCmd creates the lookup command.
func NewLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <cep>",
		Short: "Look up the address of a postal code",
		Long: `Look up the address of an 8 digit postal code (CEP) and print it as JSON.

Only the length is checked before the request, like the form does.`,
		Args: cobra.ExactArgs(1),
		RunE: runLookupCmd,
	}
}

func runLookupCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	code := args[0]
	if !cep.ValidLength(code) {
		return fmt.Errorf("CEP %q must have %d characters", code, cep.CodeLength)
	}

	addr, err := a.lookup().Lookup(cmd.Context(), code)
	if errors.Is(err, cep.ErrNotFound) {
		return fmt.Errorf("CEP %s not found", code)
	}
	if err != nil {
		a.logger.Debug("lookup failed", "category", cep.Category(err), "error", err)
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(addr)
}
