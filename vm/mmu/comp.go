// Package mmu implements the paging state machine. The Comp consumes an
// instruction trace, resolves page faults with the help of a replacement
// policy, and charges every paging event to a running cost counter. Hooks
// observe the event stream without being part of the state machine.
package mmu

import (
	"log"

	"github.com/sarchlab/pagesim/vm"
	"github.com/sarchlab/pagesim/vm/pager"
)

// Per-event costs in cycles.
const (
	CostReadWrite     = 1
	CostContextSwitch = 130
	CostProcessExit   = 1230
	CostMap           = 350
	CostUnmap         = 410
	CostIn            = 3200
	CostOut           = 2750
	CostFin           = 2350
	CostFout          = 2800
	CostZero          = 150
	CostSegv          = 440
	CostSegprot       = 410
)

// A Summary aggregates the run-wide counters of one simulation.
type Summary struct {
	InstCount    uint64
	CtxSwitches  uint64
	ProcessExits uint64
	TotalCost    uint64
}

// Comp is the paging state machine. It owns the frame table and the free
// frame pool, and lends the frame table to the replacement policy when a
// victim is needed.
type Comp struct {
	HookableBase

	name string
	log  *log.Logger

	procs      []*vm.Process
	frameTable []vm.FTE
	freeFrames []*vm.FTE
	pager      pager.Pager

	currentPID int
	current    *vm.Process

	instCount    uint64
	ctxSwitches  uint64
	processExits uint64
	totalCost    uint64
}

// Name returns the name of the component.
func (c *Comp) Name() string {
	return c.name
}

// Processes returns the simulated processes.
func (c *Comp) Processes() []*vm.Process {
	return c.procs
}

// FrameTable returns the frame table.
func (c *Comp) FrameTable() []vm.FTE {
	return c.frameTable
}

// CurrentProcess returns the process selected by the last context switch, or
// nil before the first one.
func (c *Comp) CurrentProcess() *vm.Process {
	return c.current
}

// InstCount returns the number of executed instructions.
func (c *Comp) InstCount() uint64 {
	return c.instCount
}

// Summary returns the run-wide counters.
func (c *Comp) Summary() Summary {
	return Summary{
		InstCount:    c.instCount,
		CtxSwitches:  c.ctxSwitches,
		ProcessExits: c.processExits,
		TotalCost:    c.totalCost,
	}
}

// Run executes every instruction in trace order.
func (c *Comp) Run(instructions []vm.Instruction) {
	for _, inst := range instructions {
		c.Step(inst)
	}
}

// Step executes one instruction. Unknown operations are reported and
// skipped.
func (c *Comp) Step(inst vm.Instruction) {
	idx := c.instCount
	c.instCount++

	c.InvokeHook(HookCtx{
		Domain: c,
		Pos:    HookPosInstStart,
		Item:   inst,
		Detail: idx,
	})

	switch inst.Op {
	case 'c':
		c.contextSwitch(inst.Value)
	case 'r':
		c.access(inst.Value, false)
	case 'w':
		c.access(inst.Value, true)
	case 'e':
		c.exitProcess(inst.Value)
	default:
		c.log.Printf("unknown operation %q", inst.Op)
	}

	c.pager.Tick(c.instCount)

	c.InvokeHook(HookCtx{Domain: c, Pos: HookPosInstDone})
}

func (c *Comp) contextSwitch(pid int) {
	if c.currentPID != pid {
		c.ctxSwitches++
		c.totalCost += CostContextSwitch
	}

	c.currentPID = pid
	c.current = c.procs[pid]
}

func (c *Comp) access(vpage int, isWrite bool) {
	c.totalCost += CostReadWrite

	if vpage < 0 || vpage >= vm.MaxVPages {
		c.segv()
		return
	}

	pte := &c.current.PageTable[vpage]

	if !pte.Present() {
		c.pageFault(vpage)

		if !pte.Present() {
			return
		}
	}

	if isWrite && pte.WriteProtect() {
		c.InvokeHook(HookCtx{Domain: c, Pos: HookPosSegprot})

		pte.SetReferenced(true)
		c.current.Stats.Segprot++
		c.totalCost += CostSegprot

		return
	}

	pte.SetReferenced(true)
	if isWrite {
		pte.SetModified(true)
	}

	c.pager.NotifyAccess(pte.Frame(), c.instCount)
}

func (c *Comp) segv() {
	c.InvokeHook(HookCtx{Domain: c, Pos: HookPosSegv})

	c.current.Stats.Segv++
	c.totalCost += CostSegv
}

func (c *Comp) pageFault(vpage int) {
	if !c.current.VPageInfos[vpage].Valid {
		c.segv()
		return
	}

	frame := c.takeFrame()

	if frame.Occupied {
		c.evict(frame)
	}

	frame.Assign(c.currentPID, vpage)

	pte := &c.current.PageTable[vpage]
	pte.SetPresent(true)
	pte.SetFrame(frame.Index)

	if !pte.Initialized() {
		info := c.current.VPageInfos[vpage]
		pte.SetWriteProtect(info.WriteProtect)
		pte.SetFileMapped(info.FileMapped)
		pte.SetInitialized(true)
	}

	switch {
	case pte.FileMapped():
		c.InvokeHook(HookCtx{Domain: c, Pos: HookPosFin})

		c.current.Stats.Fins++
		c.totalCost += CostFin
	case pte.PagedOut():
		c.InvokeHook(HookCtx{Domain: c, Pos: HookPosIn})

		c.current.Stats.Ins++
		c.totalCost += CostIn
	default:
		c.InvokeHook(HookCtx{Domain: c, Pos: HookPosZero})

		c.current.Stats.Zeros++
		c.totalCost += CostZero
	}

	c.InvokeHook(HookCtx{Domain: c, Pos: HookPosMap, Item: frame.Index})

	c.current.Stats.Maps++
	c.totalCost += CostMap

	c.pager.NotifyMapped(frame.Index, c.instCount)
}

// takeFrame prefers the free pool and falls back to the replacement policy.
func (c *Comp) takeFrame() *vm.FTE {
	if len(c.freeFrames) > 0 {
		frame := c.freeFrames[0]
		c.freeFrames = c.freeFrames[1:]

		return frame
	}

	return c.pager.SelectVictim(c.frameTable)
}

func (c *Comp) evict(frame *vm.FTE) {
	owner := c.procs[frame.PID]
	pte := &owner.PageTable[frame.VPage]

	c.InvokeHook(HookCtx{
		Domain: c,
		Pos:    HookPosUnmap,
		Item:   PageRef{PID: frame.PID, VPage: frame.VPage},
	})

	owner.Stats.Unmaps++
	c.totalCost += CostUnmap

	if pte.Modified() {
		if pte.FileMapped() {
			c.InvokeHook(HookCtx{Domain: c, Pos: HookPosFout})

			owner.Stats.Fouts++
			c.totalCost += CostFout
		} else {
			c.InvokeHook(HookCtx{Domain: c, Pos: HookPosOut})

			owner.Stats.Outs++
			c.totalCost += CostOut

			pte.SetPagedOut(true)
		}

		pte.SetModified(false)
	}

	pte.SetPresent(false)
	pte.SetReferenced(false)
	pte.SetFrame(0)

	frame.Release()
}

// exitProcess tears down one process. Present pages are unmapped and their
// frames returned to the free pool. Dirty file-mapped pages are written back;
// dirty anonymous pages are simply discarded, and swap copies are forgotten.
func (c *Comp) exitProcess(pid int) {
	proc := c.procs[pid]

	c.InvokeHook(HookCtx{Domain: c, Pos: HookPosExit, Item: pid})

	for i := 0; i < vm.MaxVPages; i++ {
		pte := &proc.PageTable[i]

		if !pte.Present() {
			pte.SetPagedOut(false)
			continue
		}

		frame := &c.frameTable[pte.Frame()]

		c.InvokeHook(HookCtx{
			Domain: c,
			Pos:    HookPosUnmap,
			Item:   PageRef{PID: pid, VPage: i},
		})

		proc.Stats.Unmaps++
		c.totalCost += CostUnmap

		if pte.Modified() && pte.FileMapped() {
			c.InvokeHook(HookCtx{Domain: c, Pos: HookPosFout})

			proc.Stats.Fouts++
			c.totalCost += CostFout
		}

		frame.Release()
		c.freeFrames = append(c.freeFrames, frame)

		pte.SetPresent(false)
		pte.SetReferenced(false)
		pte.SetModified(false)
		pte.SetPagedOut(false)
		pte.SetFrame(0)
	}

	c.processExits++
	c.totalCost += CostProcessExit
}
