package mmu

import "io"

// A StateDumper is a hook that prints page table and frame table snapshots
// after every instruction. Snapshots appear in the order the option letters
// were given: 'x' the current process's page table, 'y' every page table,
// 'f' the frame table.
type StateDumper struct {
	w       io.Writer
	options []byte
}

// NewStateDumper creates a StateDumper that writes to w. Characters of
// options other than 'x', 'y', and 'f' are ignored.
func NewStateDumper(w io.Writer, options string) *StateDumper {
	d := &StateDumper{w: w}

	for i := 0; i < len(options); i++ {
		switch options[i] {
		case 'x', 'y', 'f':
			d.options = append(d.options, options[i])
		}
	}

	return d
}

// Func dumps the selected snapshots at the end of each instruction.
func (d *StateDumper) Func(ctx HookCtx) {
	if ctx.Pos != HookPosInstDone {
		return
	}

	c := ctx.Domain.(*Comp)

	for _, opt := range d.options {
		switch opt {
		case 'x':
			if c.current != nil {
				FprintPageTable(d.w, c.current)
			}
		case 'y':
			FprintPageTables(d.w, c.procs)
		case 'f':
			FprintFrameTable(d.w, c.frameTable)
		}
	}
}
