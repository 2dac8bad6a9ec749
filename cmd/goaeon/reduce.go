package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2x3systems/goaeon/goaeon"
	"github.com/2x3systems/goaeon/libaeon/itgr"
)

var reduceCmd = &cobra.Command{
	Use:   "reduce <model.aeon>",
	Short: "Run transition-guided reduction only and report what remains",
	Args:  cobra.ExactArgs(1),
	RunE:  runReduce,
}

func init() {
	rootCmd.AddCommand(reduceCmd)
}

func runReduce(cmd *cobra.Command, args []string) error {
	opts, err := loadOpts()
	if err != nil {
		return err
	}
	graph, err := loadGraph(args[0])
	if err != nil {
		return err
	}

	vars := graph.Variables()
	if len(opts.ActiveVariables) > 0 {
		if vars, err = graph.Network().ResolveVariables(opts.ActiveVariables); err != nil {
			return err
		}
	}

	cancel, stop := interruptible()
	defer stop()

	unit := graph.UnitColoredVertices()
	reduced, err := itgr.Reduce(graph, unit, vars, itgr.Opts{
		Canceller:       opts.Canceller(cancel),
		MaxSymbolicSize: opts.MaxSymbolicSize,
		Monitor:         startMonitor(),
	})
	if err != nil {
		if _, interrupted := goaeon.IsInterrupted(err); !interrupted {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "(partial result: %v)\n", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "universe: %v of %v\n", reduced.Universe, unit)
	fmt.Fprintf(out, "active variables (%d of %d):", len(reduced.Variables), len(vars))
	for _, v := range reduced.Variables {
		fmt.Fprintf(out, " %s", graph.VariableName(v))
	}
	fmt.Fprintln(out)
	return nil
}
