package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/2x3systems/goaeon/goaeon"
	"github.com/2x3systems/goaeon/libaeon"
)

var attractorsCmd = &cobra.Command{
	Use:   "attractors <model.aeon>",
	Short: "Find and classify every attractor of a model",
	Long: `Runs the full analysis: transition-guided reduction (unless skip_reduction is set),
bottom-SCC search, and behaviour classification of every color.

An interrupted run (SIGINT, --timeout, or max_symbolic_size) still prints and archives
whatever was found before it stopped.`,
	Args: cobra.ExactArgs(1),
	RunE: runAttractors,
}

func init() {
	rootCmd.AddCommand(attractorsCmd)
}

func runAttractors(cmd *cobra.Command, args []string) error {
	opts, err := loadOpts()
	if err != nil {
		return err
	}
	graph, err := loadGraph(args[0])
	if err != nil {
		return err
	}

	cancel, stop := interruptible()
	defer stop()

	report, err := libaeon.Analyze(graph, graph.UnitColoredVertices(), opts, cancel, startMonitor())
	if report == nil {
		return err
	}
	printReport(cmd.OutOrStdout(), report)

	if len(opts.ArchivePath) > 0 {
		runID, archiveErr := report.Archive(opts.ArchivePath, args[0])
		if archiveErr != nil {
			return archiveErr
		}
		fmt.Fprintf(cmd.OutOrStdout(), "archived as run %s\n", runID)
	}

	if _, interrupted := goaeon.IsInterrupted(err); interrupted {
		fmt.Fprintf(cmd.OutOrStdout(), "(partial result: %v)\n", err)
		return nil
	}
	return err
}

func printReport(out io.Writer, report *libaeon.Report) {
	graph := report.Graph
	fmt.Fprintf(out, "run %s\n", report.RunID)
	fmt.Fprintf(out, "%d variables, %v, %v candidate states after reduction\n",
		graph.NumVars(), graph.UnitColors(), report.Reduction.Universe)

	fmt.Fprintf(out, "\nclasses:\n")
	for _, cc := range report.Classes {
		name := cc.Class.String()
		if len(name) == 0 {
			name = "(no attractor)"
		}
		fmt.Fprintf(out, "  %-40s %v\n", name, cc.Colors)
	}

	fmt.Fprintf(out, "\nattractors:\n")
	for i, entry := range report.Attractors {
		fmt.Fprintf(out, "  %3d: %v states x %v colors, e.g. %s\n", i+1,
			entry.Set.Vertices().ApproxCardinality(), entry.Set.Colors().ApproxCardinality(),
			formatWitness(report, entry.Set.Vertices().First()))
	}
}

func formatWitness(report *libaeon.Report, state []bool) string {
	graph := report.Graph
	vars := graph.Variables()
	buf := make([]byte, 0, 8*len(state))
	for i, bit := range state {
		if i > 0 {
			buf = append(buf, ' ')
		}
		if !bit {
			buf = append(buf, '!')
		}
		buf = append(buf, graph.VariableName(vars[i])...)
	}
	return string(buf)
}
