package mmu

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/pagesim/vm"
)

// FprintPageTable writes the page table of one process as a single line.
// Present pages show their referenced, modified, and swapped flags. Absent
// pages show "#" when a swap copy exists and "*" otherwise.
func FprintPageTable(w io.Writer, proc *vm.Process) {
	entries := make([]string, vm.MaxVPages)

	for i := range proc.PageTable {
		pte := proc.PageTable[i]

		switch {
		case pte.Present():
			entries[i] = fmt.Sprintf("%d:%s%s%s", i,
				flag(pte.Referenced(), "R"),
				flag(pte.Modified(), "M"),
				flag(pte.PagedOut(), "S"))
		case pte.PagedOut():
			entries[i] = "#"
		default:
			entries[i] = "*"
		}
	}

	fmt.Fprintf(w, "PT[%d]: %s\n", proc.PID, strings.Join(entries, " "))
}

// FprintPageTables writes the page table of every process.
func FprintPageTables(w io.Writer, procs []*vm.Process) {
	for _, proc := range procs {
		FprintPageTable(w, proc)
	}
}

// FprintFrameTable writes the frame table as a single line. Occupied frames
// show their owning pid:vpage pair; free frames show "*".
func FprintFrameTable(w io.Writer, frameTable []vm.FTE) {
	entries := make([]string, len(frameTable))

	for i := range frameTable {
		if frameTable[i].Occupied {
			entries[i] = fmt.Sprintf("%d:%d",
				frameTable[i].PID, frameTable[i].VPage)
		} else {
			entries[i] = "*"
		}
	}

	fmt.Fprintf(w, "FT: %s\n", strings.Join(entries, " "))
}

// FprintSummary writes one PROC line per process followed by the TOTALCOST
// line.
func FprintSummary(w io.Writer, procs []*vm.Process, sum Summary) {
	for _, proc := range procs {
		s := proc.Stats
		fmt.Fprintf(w,
			"PROC[%d]: U=%d M=%d I=%d O=%d FI=%d FO=%d Z=%d SV=%d SP=%d\n",
			proc.PID, s.Unmaps, s.Maps, s.Ins, s.Outs, s.Fins, s.Fouts,
			s.Zeros, s.Segv, s.Segprot)
	}

	fmt.Fprintf(w, "TOTALCOST %d %d %d %d %d\n",
		sum.InstCount, sum.CtxSwitches, sum.ProcessExits, sum.TotalCost,
		vm.PTESizeBytes())
}

func flag(set bool, letter string) string {
	if set {
		return letter
	}

	return "-"
}
