package mmu

import (
	"fmt"
	"io"

	"github.com/sarchlab/pagesim/vm"
)

// A TraceLogger is a hook that prints one line per instruction and one
// indented line per paging event.
type TraceLogger struct {
	w io.Writer
}

// NewTraceLogger creates a TraceLogger that writes to w.
func NewTraceLogger(w io.Writer) *TraceLogger {
	return &TraceLogger{w: w}
}

// Func writes the trace line for the hooked event.
func (l *TraceLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosInstStart:
		inst := ctx.Item.(vm.Instruction)
		fmt.Fprintf(l.w, "%d: ==> %c %d\n",
			ctx.Detail.(uint64), inst.Op, inst.Value)
	case HookPosUnmap:
		ref := ctx.Item.(PageRef)
		fmt.Fprintf(l.w, " UNMAP %d:%d\n", ref.PID, ref.VPage)
	case HookPosMap:
		fmt.Fprintf(l.w, " MAP %d\n", ctx.Item.(int))
	case HookPosIn:
		fmt.Fprintln(l.w, " IN")
	case HookPosOut:
		fmt.Fprintln(l.w, " OUT")
	case HookPosFin:
		fmt.Fprintln(l.w, " FIN")
	case HookPosFout:
		fmt.Fprintln(l.w, " FOUT")
	case HookPosZero:
		fmt.Fprintln(l.w, " ZERO")
	case HookPosSegv:
		fmt.Fprintln(l.w, " SEGV")
	case HookPosSegprot:
		fmt.Fprintln(l.w, " SEGPROT")
	case HookPosExit:
		fmt.Fprintf(l.w, "EXIT current process %d\n", ctx.Item.(int))
	}
}
