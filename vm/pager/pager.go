// Package pager provides the page replacement policies used by the paging
// simulator. All policies implement the Pager interface and only ever select
// frames that are currently mapped.
package pager

import (
	"fmt"
	"io"

	"github.com/sarchlab/pagesim/vm"
)

// A Pager selects victim frames for eviction. SelectVictim must only be
// called when the free frame pool is empty, so every frame it inspects is
// occupied.
//
// The remaining methods are hooks that the paging state machine calls
// unconditionally. Policies that do not need a hook inherit a no-op.
type Pager interface {
	// SelectVictim returns the occupied frame to evict next.
	SelectVictim(frameTable []vm.FTE) *vm.FTE

	// NotifyMapped is called right after a page is mapped into a frame.
	NotifyMapped(frame int, now uint64)

	// NotifyAccess is called on every successful memory access.
	NotifyAccess(frame int, now uint64)

	// Tick is called once per instruction with the number of completed
	// instructions.
	Tick(now uint64)

	// SetDebug enables or disables the policy's ASELECT trace.
	SetDebug(enable bool)
}

// A RandomSource yields nonnegative integers in a bounded range. The random
// policy draws victim indices from it.
type RandomSource interface {
	NextInRange(n int) int
}

// nopHooks provides no-op implementations of the optional Pager hooks.
type nopHooks struct{}

func (nopHooks) NotifyMapped(int, uint64) {}
func (nopHooks) NotifyAccess(int, uint64) {}
func (nopHooks) Tick(uint64)              {}

// debugSink writes ASELECT lines when debugging is enabled.
type debugSink struct {
	w       io.Writer
	enabled bool
}

// SetDebug enables or disables the ASELECT trace.
func (d *debugSink) SetDebug(enable bool) {
	d.enabled = enable
}

func (d *debugSink) debugf(format string, args ...any) {
	if !d.enabled || d.w == nil {
		return
	}

	fmt.Fprintf(d.w, format, args...)
}

// pteOf resolves the page table entry that owns an occupied frame.
func pteOf(procs []*vm.Process, f *vm.FTE) *vm.PTE {
	return &procs[f.PID].PageTable[f.VPage]
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
