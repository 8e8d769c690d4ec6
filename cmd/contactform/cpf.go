package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/cpf"
)

// errInvalidCPF makes the process exit with status 1 once every ID is printed.
var errInvalidCPF = errors.New("one or more CPFs are invalid")

// NewCPFCmd creates the cpf command.
func NewCPFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cpf <id>...",
		Short: "Validate taxpayer IDs (CPF)",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCPFCmd,
	}
}

func runCPFCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	invalid := 0
	for _, raw := range args {
		if cpf.Valid(raw) {
			fmt.Fprintf(out, "%s\tvalid\n", cpf.Format(raw))
			continue
		}
		invalid++
		fmt.Fprintf(out, "%s\tinvalid\n", raw)
	}
	if invalid > 0 {
		return errInvalidCPF
	}
	return nil
}
