package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/2x3systems/goaeon/libaeon/archive"
	"github.com/2x3systems/goaeon/libaeon/classify"
)

var showCmd = &cobra.Command{
	Use:   "show <archive-dir> [run-id]",
	Short: "List archived runs, or print one archived report",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ar, err := archive.Open(archive.Opts{
		DbPathName: args[0],
		ReadOnly:   true,
	})
	if err != nil {
		return err
	}
	defer ar.Close()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		runs, err := ar.List()
		if err != nil {
			return err
		}
		for _, rec := range runs {
			fmt.Fprintf(out, "%s  %s  %-30s %d classes, %d attractors\n", rec.RunId,
				time.Unix(rec.CreatedUnix, 0).Format(time.RFC3339), rec.Model, len(rec.Classes), len(rec.Attractors))
		}
		return nil
	}

	rec, err := ar.Get(args[1])
	if err != nil {
		return err
	}
	printRecord(out, rec)
	return nil
}

func printRecord(out io.Writer, rec *archive.ReportRecord) {
	fmt.Fprintf(out, "run %s (%s)\n", rec.RunId, rec.Model)
	fmt.Fprintf(out, "%d variables, %.0f colors, %.0f candidate states after reduction\n",
		rec.NumVars, rec.NumColors, rec.ReducedStates)
	if len(rec.Interrupted) > 0 {
		fmt.Fprintf(out, "(partial result: %s)\n", rec.Interrupted)
	}

	fmt.Fprintf(out, "\nclasses:\n")
	for _, cr := range rec.Classes {
		name := cr.Code
		if class, err := classify.ParseClass(cr.Code); err == nil {
			name = class.String()
		}
		if len(name) == 0 {
			name = "(no attractor)"
		}
		fmt.Fprintf(out, "  %-40s %.0f\n", name, cr.Colors)
	}

	fmt.Fprintf(out, "\nattractors:\n")
	for i, a := range rec.Attractors {
		fmt.Fprintf(out, "  %3d: %.0f states x %.0f colors (S:%.0f O:%.0f D:%.0f), e.g. %s\n", i+1,
			a.States, a.Colors, a.Stability, a.Oscillation, a.Disorder, a.Witness)
	}
}
