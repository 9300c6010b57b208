// Package main provides the CLI entry point for sheetbind.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schema"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schemafile"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by all subcommands.
type app struct {
	out       io.Writer
	errOut    io.Writer
	logLevel  string
	logFormat string
	logger    *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:   "sheetbind",
		Short: "Map xlsx sheets to typed records",
		Long: `sheetbind reads xlsx sheets into records described by a YAML schema,
flags every row that fails to parse or validate, and writes records or
empty templates back to xlsx.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = newLogger(a.logLevel, a.logFormat, a.errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log format: text, json")

	rootCmd.AddCommand(
		newValidateCmd(a),
		newTemplateCmd(a),
		newExportCmd(a),
	)
	return rootCmd
}

// loadSchema reads a schema file and builds its record schema.
func loadSchema(path string) (*schemafile.File, *schema.Schema[schemafile.Record], error) {
	if path == "" {
		return nil, nil, fmt.Errorf("--schema is required")
	}
	f, err := schemafile.LoadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load schema: %w", err)
	}
	s, err := f.Schema()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid schema: %w", err)
	}
	return f, s, nil
}

// baseOptions derives options from the schema file. Flags override them.
func (a *app) baseOptions(f *schemafile.File) sheetbind.Options {
	opts := sheetbind.DefaultOptions()
	if f.TimeLayout != "" {
		opts.TimeLayout = f.TimeLayout
	}
	opts.SkipBlankRows = f.SkipBlankRows
	opts.Logger = a.logger
	return opts
}
