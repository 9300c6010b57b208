package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/coerce"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schemafile"
)

func newExportCmd(a *app) *cobra.Command {
	var schemaPath, outputPath, timeLayout string

	cmd := &cobra.Command{
		Use:   "export [records.json]",
		Short: "Write a JSON array of records to a new workbook",
		Long: `export reads a JSON array of objects keyed by field name, checks every
value against the schema, and writes the records to a sheet named
ListOf<schema name>. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, s, err := loadSchema(schemaPath)
			if err != nil {
				return err
			}
			if outputPath == "" {
				return fmt.Errorf("--output is required")
			}

			opts := a.baseOptions(f)
			if cmd.Flags().Changed("time-layout") {
				opts.TimeLayout = timeLayout
			}

			in := cmd.InOrStdin()
			if len(args) == 1 {
				fh, err := os.Open(args[0])
				if err != nil {
					if os.IsNotExist(err) {
						return fmt.Errorf("file not found: %s", args[0])
					}
					return err
				}
				defer fh.Close()
				in = fh
			}

			records, err := readRecords(in, f, coerce.New(opts.TimeLayout))
			if err != nil {
				return err
			}

			wb, err := sheetbind.ListToExcel(records, s, opts)
			if err != nil {
				return fmt.Errorf("failed to write records: %w", err)
			}
			defer wb.Close()

			if err := wb.SaveAs(outputPath); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			a.logger.Info("records exported", "output", outputPath, "records", len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (YAML)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output xlsx path")
	cmd.Flags().StringVar(&timeLayout, "time-layout", "", "Layout of temporal values (overrides the schema file)")
	return cmd
}

// readRecords decodes a JSON array of records and normalizes each one.
// Numbers are kept as decoded text so large integers survive.
func readRecords(r io.Reader, f *schemafile.File, engine *coerce.Engine) ([]schemafile.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []schemafile.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("record %d: not an object", i+1)
		}
		if err := f.Normalize(rec, engine); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return records, nil
}
