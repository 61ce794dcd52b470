package mmu

import (
	"bytes"
	"io"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/vm"
)

var _ = Describe("Reporting", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	It("should print page table entries with their flags", func() {
		proc := vm.NewProcess(1)

		pte := &proc.PageTable[0]
		pte.SetPresent(true)
		pte.SetReferenced(true)
		pte.SetModified(true)

		proc.PageTable[1].SetPagedOut(true)

		pteSwapped := &proc.PageTable[2]
		pteSwapped.SetPresent(true)
		pteSwapped.SetPagedOut(true)

		FprintPageTable(buf, proc)

		Expect(buf.String()).To(HavePrefix("PT[1]: 0:RM- # 2:--S *"))
		Expect(buf.String()).To(HaveSuffix("* *\n"))
	})

	It("should print occupied and free frames", func() {
		ft := vm.NewFrameTable(3)
		ft[0].Assign(2, 17)

		FprintFrameTable(buf, ft)

		Expect(buf.String()).To(Equal("FT: 2:17 * *\n"))
	})

	It("should print the per-process and total counters", func() {
		proc := vm.NewProcess(0)
		proc.Stats = vm.Stats{Unmaps: 3, Maps: 4, Ins: 1, Zeros: 3, Segv: 2}

		FprintSummary(buf, []*vm.Process{proc}, Summary{
			InstCount:    10,
			CtxSwitches:  2,
			ProcessExits: 1,
			TotalCost:    12345,
		})

		Expect(buf.String()).To(Equal(
			"PROC[0]: U=3 M=4 I=1 O=0 FI=0 FO=0 Z=3 SV=2 SP=0\n" +
				"TOTALCOST 10 2 1 12345 4\n"))
	})
})

var _ = Describe("StateDumper", func() {
	It("should dump the selected tables in option order", func() {
		proc := vm.NewProcess(0)
		proc.AddVMA(0, 63, false, false)

		comp := MakeBuilder().
			WithProcesses([]*vm.Process{proc}).
			WithNumFrames(2).
			WithPager(nopPager{}).
			Build("MMU")

		buf := &bytes.Buffer{}
		comp.AcceptHook(NewStateDumper(buf, "Ofx"))

		comp.Run([]vm.Instruction{{Op: 'c', Value: 0}})

		Expect(buf.String()).To(HavePrefix("FT: * *\nPT[0]: * *"))
	})

	It("should stay quiet before the first context switch", func() {
		proc := vm.NewProcess(0)

		comp := MakeBuilder().
			WithProcesses([]*vm.Process{proc}).
			WithNumFrames(2).
			WithPager(nopPager{}).
			WithLogger(log.New(io.Discard, "", 0)).
			Build("MMU")

		buf := &bytes.Buffer{}
		comp.AcceptHook(NewStateDumper(buf, "x"))

		comp.Run([]vm.Instruction{{Op: 'q', Value: 0}})

		Expect(buf.String()).To(BeEmpty())
	})
})

type nopPager struct{}

func (nopPager) SelectVictim(frameTable []vm.FTE) *vm.FTE { return &frameTable[0] }
func (nopPager) NotifyMapped(frame int, now uint64)       {}
func (nopPager) NotifyAccess(frame int, now uint64)       {}
func (nopPager) Tick(now uint64)                          {}
func (nopPager) SetDebug(enabled bool)                    {}
