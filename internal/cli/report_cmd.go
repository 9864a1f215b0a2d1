package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/obradev/obra/internal/access"
	"github.com/obradev/obra/internal/report"
)

func newReportCmd(app *App) *cobra.Command {
	var asJSON bool
	var outPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a summary report for the selected project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireSection(ctx, app, access.SectionReports); err != nil {
				return err
			}
			if err := requireSelected(ctx, app); err != nil {
				return err
			}

			r := report.Build(app.Session.Selected(), time.Now().UTC())

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating report file: %w", err)
				}
				defer f.Close()
				out = f
			}

			var err error
			if asJSON {
				err = report.WriteJSON(out, r)
			} else {
				err = report.WriteText(out, r)
			}
			if err != nil {
				return err
			}

			if outPath != "" {
				fmt.Println(app.T("report.written", outPath))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	cmd.Flags().StringVar(&outPath, "out", "", "Write to a file instead of stdout")

	return cmd
}
