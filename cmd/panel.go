package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"guardias/core/reconcile"
	"guardias/core/utils"
	"guardias/feature/panel"
	"guardias/feature/sources"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	panelSource string
	panelDate   string
	panelJSON   bool
)

// panelCmd prints the reconciled panel of one source.
var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Print the coverage panel of a source",
	Long: `Loads one source, reconciles it and prints the seven periods with their
absences and available substitutes.

Examples:
  # Built-in sample data
  guardias panel --source sample

  # School database for a given day, as JSON
  guardias panel --source mysql --date 2025-01-10 --json`,
	RunE: runPanel,
}

func init() {
	panelCmd.Flags().StringVar(&panelSource, "source", "sample", "Source to load (csv, json, mongo, mysql, sample)")
	panelCmd.Flags().StringVar(&panelDate, "date", "", "Day to load (YYYY-MM-DD)")
	panelCmd.Flags().BoolVar(&panelJSON, "json", false, "Print the panel as JSON")

	RootCmd.AddCommand(panelCmd)
}

func runPanel(cmd *cobra.Command, args []string) error {
	if panelDate != "" && !utils.IsDate(panelDate) {
		return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", panelDate)
	}

	d, err := bootstrap()
	if err != nil {
		return err
	}
	defer d.logger.Sync()

	svc := panel.NewService(d.sources(), reconcile.NewMemoryStore(), d.logger)

	result, err := svc.Panel(commandContext(cmd), panelSource, sources.Query{Date: panelDate})
	if err != nil {
		return err
	}

	if panelJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printPanel(os.Stdout, result)
	return nil
}

// printPanel writes a human readable panel.
func printPanel(w io.Writer, r *panel.Result) {
	title := color.New(color.Bold)
	period := color.New(color.FgHiBlue, color.Bold)
	absent := color.New(color.FgRed)
	covered := color.New(color.FgGreen)
	free := color.New(color.FgCyan)
	dim := color.New(color.FgHiBlack)

	header := "Panel: " + r.Source
	if r.Date != "" {
		header += " (" + r.Date + ")"
	}
	title.Fprintln(w, header)

	for _, b := range r.Periods.List() {
		fmt.Fprintln(w)
		period.Fprintln(w, b.Period)

		if len(b.Absences) == 0 {
			dim.Fprintln(w, "  no absences")
		}
		for _, a := range b.Absences {
			if a.Covered && a.CoveredBy != nil {
				covered.Fprintf(w, "  ✓ %s [%s] covered by %s\n", a.Teacher, a.Classroom, *a.CoveredBy)
				continue
			}
			absent.Fprintf(w, "  ✗ %s [%s]\n", a.Teacher, a.Classroom)
		}

		switch {
		case b.Period.IsRecess():
			dim.Fprintln(w, "  no guards during recess")
		case len(b.Available) > 0:
			free.Fprintf(w, "  available: %s\n", strings.Join(b.Available, ", "))
		}
	}

	s := r.Summary
	fmt.Fprintln(w)
	title.Fprintf(w, "%d absences, %d covered, %d substitute slots\n", s.Absences, s.Covered, s.Available)
}
