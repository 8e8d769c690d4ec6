package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/config"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contactform",
		Short: "Brazilian contact form with CEP autofill and CPF validation",
		Long: `contactform drives a contact form that fills the address from the postal
code (CEP), validates the taxpayer ID (CPF) and posts the fields as JSON.

It can look up postal codes, check CPFs, fill the form in the terminal, render
the HTML page, or serve the page with a same-origin CEP endpoint.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		fmt.Sprintf("Path to the YAML configuration (default %q when present)", config.DefaultConfigFile))
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewLookupCmd())
	cmd.AddCommand(NewCPFCmd())
	cmd.AddCommand(NewFillCmd())
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
