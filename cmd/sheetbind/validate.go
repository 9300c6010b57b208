package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/models"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/output"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schemafile"
)

type validateFlags struct {
	schemaPath string
	sheetName  string
	timeLayout string
	outputPath string
	skipBlank  bool
	jsonOut    bool
	pretty     bool
	records    bool
	dump       bool
	strict     bool
}

func newValidateCmd(a *app) *cobra.Command {
	var fl validateFlags

	cmd := &cobra.Command{
		Use:   "validate [input.xlsx]",
		Short: "Parse a sheet against a schema and report rejected rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd, args[0], fl)
		},
	}

	cmd.Flags().StringVar(&fl.schemaPath, "schema", "", "Schema file (YAML)")
	cmd.Flags().StringVar(&fl.sheetName, "sheet", "", "Sheet to parse (default: first sheet)")
	cmd.Flags().StringVar(&fl.timeLayout, "time-layout", "", "Layout of temporal cells (overrides the schema file)")
	cmd.Flags().StringVarP(&fl.outputPath, "output", "o", "", "Write the annotated workbook to this path")
	cmd.Flags().BoolVar(&fl.skipBlank, "skip-blank", false, "Skip rows without any used cell")
	cmd.Flags().BoolVar(&fl.jsonOut, "json", false, "Print the summary as JSON")
	cmd.Flags().BoolVar(&fl.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&fl.records, "records", false, "Include valid records in JSON output")
	cmd.Flags().BoolVar(&fl.dump, "dump", false, "Dump valid records after the summary")
	cmd.Flags().BoolVar(&fl.strict, "strict", false, "Fail when any row is rejected")
	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, inputPath string, fl validateFlags) error {
	f, s, err := loadSchema(fl.schemaPath)
	if err != nil {
		return err
	}

	opts := a.baseOptions(f)
	opts.SheetName = fl.sheetName
	if cmd.Flags().Changed("time-layout") {
		opts.TimeLayout = fl.timeLayout
	}
	if cmd.Flags().Changed("skip-blank") {
		opts.SkipBlankRows = &fl.skipBlank
	}

	res, err := sheetbind.ParseFile(inputPath, s, f.Validator(), opts)
	if err != nil {
		return err
	}
	defer res.Close()
	a.logger.Info("sheet parsed", "input", inputPath, "sheet", res.SheetName,
		"total", res.TotalRecordCount, "invalid", res.InvalidCount())

	if fl.outputPath != "" {
		if err := res.Workbook.SaveAs(fl.outputPath); err != nil {
			return fmt.Errorf("failed to write annotated workbook: %w", err)
		}
	}

	if fl.jsonOut {
		data, err := output.ResultToJSON(&res.SheetResult, fl.records, fl.pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(a.out, string(data))
	} else {
		printSummary(a.out, &res.SheetResult)
	}

	if fl.dump {
		spew.Fdump(a.out, res.Valid)
	}

	if fl.strict && res.InvalidCount() > 0 {
		return fmt.Errorf("%d of %d rows rejected", res.InvalidCount(), res.TotalRecordCount)
	}
	return nil
}

func printSummary(w io.Writer, res *models.SheetResult[schemafile.Record]) {
	fmt.Fprintf(w, "sheet %s: %d rows, %d valid, %d invalid\n",
		res.SheetName, res.TotalRecordCount, res.ValidCount(), res.InvalidCount())
	for _, d := range res.Invalid {
		fmt.Fprintf(w, "  row %d: %s\n", d.Row, strings.Join(d.Messages, " "))
	}
}

