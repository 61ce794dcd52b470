package datarecording

import (
	"github.com/sarchlab/pagesim/vm"
	"github.com/sarchlab/pagesim/vm/mmu"
)

// A PagingEvent is one row of the paging_events table. PID, VPage, and Frame
// are -1 when the event does not carry them.
type PagingEvent struct {
	InstIndex uint64
	Event     string
	PID       int
	VPage     int
	Frame     int
}

// A ProcessStats is one row of the process_stats table.
type ProcessStats struct {
	PID     int
	Unmaps  uint64
	Maps    uint64
	Ins     uint64
	Outs    uint64
	Fins    uint64
	Fouts   uint64
	Zeros   uint64
	Segv    uint64
	Segprot uint64
}

// A RunSummary is the single row of the run_summary table.
type RunSummary struct {
	Algorithm    string
	NumFrames    int
	InstCount    uint64
	CtxSwitches  uint64
	ProcessExits uint64
	TotalCost    uint64
}

// An EventRecorder is a hook that stores every paging event into the
// paging_events table of a DataRecorder.
type EventRecorder struct {
	recorder  DataRecorder
	instIndex uint64
}

// NewEventRecorder creates an EventRecorder and its backing table.
func NewEventRecorder(recorder DataRecorder) *EventRecorder {
	recorder.CreateTable("paging_events", PagingEvent{})

	return &EventRecorder{recorder: recorder}
}

// Func stores one row per paging event.
func (r *EventRecorder) Func(ctx mmu.HookCtx) {
	switch ctx.Pos {
	case mmu.HookPosInstStart:
		r.instIndex = ctx.Detail.(uint64)
	case mmu.HookPosUnmap:
		ref := ctx.Item.(mmu.PageRef)
		r.insert("UNMAP", ref.PID, ref.VPage, -1)
	case mmu.HookPosMap:
		r.insert("MAP", -1, -1, ctx.Item.(int))
	case mmu.HookPosIn:
		r.insert("IN", -1, -1, -1)
	case mmu.HookPosOut:
		r.insert("OUT", -1, -1, -1)
	case mmu.HookPosFin:
		r.insert("FIN", -1, -1, -1)
	case mmu.HookPosFout:
		r.insert("FOUT", -1, -1, -1)
	case mmu.HookPosZero:
		r.insert("ZERO", -1, -1, -1)
	case mmu.HookPosSegv:
		r.insert("SEGV", -1, -1, -1)
	case mmu.HookPosSegprot:
		r.insert("SEGPROT", -1, -1, -1)
	case mmu.HookPosExit:
		r.insert("EXIT", ctx.Item.(int), -1, -1)
	}
}

func (r *EventRecorder) insert(event string, pid, vpage, frame int) {
	r.recorder.InsertData("paging_events", PagingEvent{
		InstIndex: r.instIndex,
		Event:     event,
		PID:       pid,
		VPage:     vpage,
		Frame:     frame,
	})
}

// RecordOutcome stores the final per-process statistics and the run summary,
// then flushes the recorder.
func RecordOutcome(
	recorder DataRecorder,
	procs []*vm.Process,
	sum mmu.Summary,
	algorithm string,
	numFrames int,
) {
	recorder.CreateTable("process_stats", ProcessStats{})
	recorder.CreateTable("run_summary", RunSummary{})

	for _, proc := range procs {
		s := proc.Stats
		recorder.InsertData("process_stats", ProcessStats{
			PID:     proc.PID,
			Unmaps:  s.Unmaps,
			Maps:    s.Maps,
			Ins:     s.Ins,
			Outs:    s.Outs,
			Fins:    s.Fins,
			Fouts:   s.Fouts,
			Zeros:   s.Zeros,
			Segv:    s.Segv,
			Segprot: s.Segprot,
		})
	}

	recorder.InsertData("run_summary", RunSummary{
		Algorithm:    algorithm,
		NumFrames:    numFrames,
		InstCount:    sum.InstCount,
		CtxSwitches:  sum.CtxSwitches,
		ProcessExits: sum.ProcessExits,
		TotalCost:    sum.TotalCost,
	})

	recorder.Flush()
}
