package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"cloudToolkit/internal/profiling"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	defaultProfileInput  = "/listado_activos.xlsx"
	defaultProfileOutput = "reporte_listado_activos.html"
)

func newProfileCmd(_ *app) *cobra.Command {
	var (
		input        string
		output       string
		sheet        string
		title        string
		correlations bool
		interactions bool
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Write an HTML profiling report for an Excel sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			settings := profiling.DefaultSettings(name)
			if title != "" {
				settings.Title = title
			}
			settings.Correlations = correlations
			settings.Interactions = interactions

			report, err := profiling.GenerateReport(input, sheet, output, settings)
			if err != nil {
				return err
			}

			log.Info().
				Str("input", input).
				Str("output", output).
				Int("rows", report.Overview.Rows).
				Int("columns", report.Overview.Columns).
				Msg("profiling report written")
			fmt.Fprintln(cmd.OutOrStdout(), "Process finished.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", defaultProfileInput, "Excel workbook to profile")
	cmd.Flags().StringVarP(&output, "output", "o", defaultProfileOutput, "HTML report path, overwritten if present")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name; empty reads the first sheet")
	cmd.Flags().StringVar(&title, "title", "", `report title (default "Scan Inicial <input name>")`)
	cmd.Flags().BoolVar(&correlations, "correlations", false, "add a Pearson correlation matrix")
	cmd.Flags().BoolVar(&interactions, "interactions", false, "accepted for compatibility; interactions are not rendered")
	return cmd
}
