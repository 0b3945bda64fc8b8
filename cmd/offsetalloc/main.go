// Command offsetalloc is a thin, out-of-core demonstration CLI over the
// offsetalloc library. It is not part of the allocator's contract — it
// exists to exercise the public API the way a real caller would, and to
// give the domain dependencies pulled in from the wider corpus (cobra,
// go-figure, uuid, sonnet, x/text) somewhere concrete to live.
package main

import (
	"fmt"
	"os"

	figure "github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

func init() {
	cobra.MousetrapHelpText = ""
}

func printBanner() {
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintln(os.Stderr, "banner error:", e)
		}
	}()
	figure.NewFigure("offsetalloc", "small", true).Print()
}

func main() {
	root := &cobra.Command{
		Use:   "offsetalloc",
		Short: "Drive an in-memory offset allocator from the command line",
		Long: "offsetalloc is a demo/reporting harness around the offsetalloc " +
			"library's two-level binned free-list allocator. It owns no " +
			"backing storage; every command below only exercises offsets.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
				printBanner()
			}
		},
	}
	root.PersistentFlags().Bool("quiet", false, "suppress the startup banner")

	root.AddCommand(newReportCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newDemoCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
