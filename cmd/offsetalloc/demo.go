package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpare/offsetalloc"
)

// newDemoCmd walks through a small scripted alloc/free sequence and prints
// the storage report after each step, so the bin bookkeeping is visible
// without reaching for a debugger.
func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a small scripted allocate/free walkthrough",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			a, err := offsetalloc.New[uint16](offsetalloc.Options[uint16]{MaxAllocs: 32})
			if err != nil {
				return err
			}
			if err := a.Reset(1024); err != nil {
				return err
			}
			fmt.Fprintln(out, "reset to 1024 units")

			var live []offsetalloc.Allocation
			step := func(want uint32) {
				alloc, err := a.Allocate(want)
				if err != nil {
					fmt.Fprintf(out, "allocate(%d): error: %v\n", want, err)
					return
				}
				if alloc.Failed() {
					fmt.Fprintf(out, "allocate(%d): no space\n", want)
					return
				}
				live = append(live, alloc)
				report := a.StorageReport()
				fmt.Fprintf(out, "allocate(%d): offset=%d total_free=%d largest_free=%d\n",
					want, alloc.Offset, report.TotalFreeSpace, report.LargestFreeRegion)
			}

			step(128)
			step(256)
			step(64)

			// free the middle allocation; both its neighbors are still in
			// use, so it does not coalesce, and the next allocate reuses
			// the hole it leaves.
			mid := live[1]
			a.Free(mid)
			live = append(live[:1], live[2:]...)
			report := a.StorageReport()
			fmt.Fprintf(out, "free(offset=%d): total_free=%d largest_free=%d\n",
				mid.Offset, report.TotalFreeSpace, report.LargestFreeRegion)

			step(200)

			if err := a.Validate(); err != nil {
				return fmt.Errorf("post-demo invariant check failed: %w", err)
			}
			fmt.Fprintln(out, "invariants hold")
			return nil
		},
	}
	return cmd
}
