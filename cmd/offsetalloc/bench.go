package main

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"

	"github.com/gofrs/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"

	"github.com/jpare/offsetalloc"
)

func newBenchCmd() *cobra.Command {
	var size uint32
	var maxAllocs uint16
	var ops int
	var fingerprint bool
	var verify bool

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a random alloc/free workload and report throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := uuid.NewV4()
			if err != nil {
				return err
			}

			a, err := offsetalloc.New[uint16](offsetalloc.Options[uint16]{MaxAllocs: maxAllocs})
			if err != nil {
				return err
			}
			if err := a.Reset(size); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(7))
			live := make([]offsetalloc.Allocation, 0, maxAllocs)

			start := time.Now()
			for i := 0; i < ops; i++ {
				if len(live) > 0 && rng.Intn(2) == 0 {
					j := rng.Intn(len(live))
					a.Free(live[j])
					live[j] = live[len(live)-1]
					live = live[:len(live)-1]
					continue
				}
				alloc, err := a.Allocate(uint32(1 + rng.Intn(4096)))
				if err != nil {
					return err
				}
				if !alloc.Failed() {
					live = append(live, alloc)
				}
			}
			elapsed := time.Since(start)

			if verify {
				if err := a.Validate(); err != nil {
					return fmt.Errorf("invariant check failed after %d ops: %w", ops, err)
				}
			}

			report := a.StorageReport()
			fmt.Fprintf(cmd.OutOrStdout(), "run=%s ops=%d elapsed=%s live=%d free=%d largest=%d\n",
				runID, ops, elapsed, len(live), report.TotalFreeSpace, report.LargestFreeRegion)

			if fingerprint {
				sum, err := fingerprintReport(a.StorageReportFull())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "fingerprint=%s\n", hex.EncodeToString(sum[:]))
			}
			return nil
		},
	}

	cmd.Flags().Uint32Var(&size, "size", 1<<24, "total address range")
	cmd.Flags().Uint16Var(&maxAllocs, "max-allocs", 8192, "node pool capacity")
	cmd.Flags().IntVar(&ops, "ops", 100_000, "number of alloc/free operations")
	cmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "print a stable digest of the final bin census")
	cmd.Flags().BoolVar(&verify, "verify", false, "run the full invariant check after the workload completes")
	return cmd
}

// fingerprintReport hashes a StorageReportFull into a stable digest, for
// pinning a demo run's outcome in a golden file across commits.
func fingerprintReport(full offsetalloc.StorageReportFull) ([blake2b.Size]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return [blake2b.Size]byte{}, err
	}
	var buf [8]byte
	for _, bin := range full.FreeRegions {
		binary.LittleEndian.PutUint32(buf[0:4], bin.Size)
		binary.LittleEndian.PutUint32(buf[4:8], bin.Count)
		h.Write(buf[:])
	}
	var out [blake2b.Size]byte
	copy(out[:], h.Sum(nil))
	return out, nil
}
