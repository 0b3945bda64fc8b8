package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
	"github.com/sugawarayuuta/sonnet"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jpare/offsetalloc"
)

func newReportCmd() *cobra.Command {
	var size uint32
	var maxAllocs uint16
	var count int
	var minSize, maxSize uint32
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Allocate a batch of random-sized regions and print the resulting bin census",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := offsetalloc.New[uint16](offsetalloc.Options[uint16]{MaxAllocs: maxAllocs})
			if err != nil {
				return err
			}
			if err := a.Reset(size); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(1))
			var granted, failed int
			for i := 0; i < count; i++ {
				want := minSize + uint32(rng.Intn(int(maxSize-minSize+1)))
				alloc, err := a.Allocate(want)
				if err != nil {
					return err
				}
				if alloc.Failed() {
					failed++
					continue
				}
				granted++
			}

			full := a.StorageReportFull()
			if asJSON {
				enc, err := sonnet.Marshal(full)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(enc))
				return nil
			}

			p := message.NewPrinter(language.English)
			summary := a.StorageReport()
			p.Fprintf(cmd.OutOrStdout(), "granted=%d failed=%d total_free=%d largest_free=%d\n",
				granted, failed, summary.TotalFreeSpace, summary.LargestFreeRegion)
			for _, bin := range full.FreeRegions {
				if bin.Count == 0 {
					continue
				}
				p.Fprintf(cmd.OutOrStdout(), "  size>=%-12d count=%d\n", bin.Size, bin.Count)
			}
			return nil
		},
	}

	cmd.Flags().Uint32Var(&size, "size", 1<<20, "total address range")
	cmd.Flags().Uint16Var(&maxAllocs, "max-allocs", 4096, "node pool capacity")
	cmd.Flags().IntVar(&count, "count", 256, "number of allocation attempts")
	cmd.Flags().Uint32Var(&minSize, "min-size", 8, "minimum request size")
	cmd.Flags().Uint32Var(&maxSize, "max-size", 4096, "maximum request size")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the bin census as JSON instead of a table")
	return cmd
}
