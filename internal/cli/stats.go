package cli

import (
	"fmt"
	"io"

	"github.com/abrunet/asynclab/internal/format"
	"github.com/abrunet/asynclab/internal/metrics"
	"github.com/abrunet/asynclab/internal/sysmon"
)

// DisplayMemoryStats prints a process memory and system usage footer for
// verbose runs.
func DisplayMemoryStats(out io.Writer) {
	snap := metrics.NewMemoryCollector().Snapshot()
	sys := sysmon.Sample()

	fmt.Fprintf(out, "\nResource Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Heap from OS:    %s\n", format.FormatBytes(snap.HeapSys))
	fmt.Fprintf(out, "  GC cycles:       %d\n", snap.NumGC)
	if snap.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(snap.PauseTotalNs)/1e6)
	}
	fmt.Fprintf(out, "  System CPU:      %.1f%%\n", sys.CPUPercent)
	fmt.Fprintf(out, "  System memory:   %.1f%%\n", sys.MemPercent)
}
