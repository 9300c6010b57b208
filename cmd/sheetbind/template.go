package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind"
)

func newTemplateCmd(a *app) *cobra.Command {
	var schemaPath, outputPath string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an empty workbook holding the schema's header row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := loadSchema(schemaPath)
			if err != nil {
				return err
			}
			if outputPath == "" {
				return fmt.Errorf("--output is required")
			}

			wb, err := sheetbind.BuildTemplate(s)
			if err != nil {
				return fmt.Errorf("failed to build template: %w", err)
			}
			defer wb.Close()

			if err := wb.SaveAs(outputPath); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			a.logger.Info("template written", "output", outputPath, "columns", len(s.Columns()))
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (YAML)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output xlsx path")
	return cmd
}
