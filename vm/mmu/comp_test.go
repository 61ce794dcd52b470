package mmu

import (
	"bytes"
	"io"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/pagesim/vm"
	"github.com/sarchlab/pagesim/vm/pager"
)

var _ = Describe("Comp", func() {
	var (
		mockCtrl  *gomock.Controller
		pagerMock *MockPager
		proc      *vm.Process
		comp      *Comp
	)

	makeComp := func(numFrames int) *Comp {
		return MakeBuilder().
			WithProcesses([]*vm.Process{proc}).
			WithNumFrames(numFrames).
			WithPager(pagerMock).
			Build("MMU")
	}

	step := func(c *Comp, trace ...vm.Instruction) {
		c.Run(trace)
	}

	inst := func(op byte, value int) vm.Instruction {
		return vm.Instruction{Op: op, Value: value}
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		pagerMock = NewMockPager(mockCtrl)
		pagerMock.EXPECT().Tick(gomock.Any()).AnyTimes()

		proc = vm.NewProcess(0)
		proc.AddVMA(0, 19, false, false)
		proc.AddVMA(20, 29, true, false)
		proc.AddVMA(30, 39, false, true)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should charge a context switch only when the process changes", func() {
		comp = makeComp(2)

		step(comp, inst('c', 0), inst('c', 0))

		Expect(comp.Summary()).To(Equal(Summary{
			InstCount:   2,
			CtxSwitches: 1,
			TotalCost:   CostContextSwitch,
		}))
	})

	It("should zero-fill and map a fresh page", func() {
		comp = makeComp(2)

		pagerMock.EXPECT().NotifyMapped(0, uint64(2))
		pagerMock.EXPECT().NotifyAccess(0, uint64(2))

		step(comp, inst('c', 0), inst('r', 3))

		pte := proc.PageTable[3]
		Expect(pte.Present()).To(BeTrue())
		Expect(pte.Referenced()).To(BeTrue())
		Expect(pte.Modified()).To(BeFalse())
		Expect(pte.Frame()).To(Equal(0))

		Expect(proc.Stats.Zeros).To(Equal(uint64(1)))
		Expect(proc.Stats.Maps).To(Equal(uint64(1)))
		Expect(comp.Summary().TotalCost).To(Equal(uint64(
			CostContextSwitch + CostReadWrite + CostZero + CostMap)))
	})

	It("should page a dirty page out and back in", func() {
		comp = makeComp(1)

		pagerMock.EXPECT().
			SelectVictim(gomock.Any()).
			Return(&comp.FrameTable()[0]).
			Times(2)
		pagerMock.EXPECT().NotifyMapped(0, gomock.Any()).Times(3)
		pagerMock.EXPECT().NotifyAccess(0, gomock.Any()).Times(3)

		step(comp,
			inst('c', 0),
			inst('w', 1),
			inst('r', 2),
			inst('r', 1))

		Expect(proc.Stats.Outs).To(Equal(uint64(1)))
		Expect(proc.Stats.Ins).To(Equal(uint64(1)))
		Expect(proc.Stats.Zeros).To(Equal(uint64(2)))
		Expect(proc.Stats.Unmaps).To(Equal(uint64(2)))
		Expect(proc.Stats.Maps).To(Equal(uint64(3)))

		// The swap copy of page 1 survives the page-in.
		pte := proc.PageTable[1]
		Expect(pte.Present()).To(BeTrue())
		Expect(pte.PagedOut()).To(BeTrue())
		Expect(pte.Modified()).To(BeFalse())
	})

	It("should read file-mapped pages from the file and write them back", func() {
		comp = makeComp(1)

		pagerMock.EXPECT().
			SelectVictim(gomock.Any()).
			Return(&comp.FrameTable()[0])
		pagerMock.EXPECT().NotifyMapped(0, gomock.Any()).Times(2)
		pagerMock.EXPECT().NotifyAccess(0, gomock.Any()).Times(2)

		step(comp, inst('c', 0), inst('w', 30), inst('r', 0))

		Expect(proc.Stats.Fins).To(Equal(uint64(1)))
		Expect(proc.Stats.Fouts).To(Equal(uint64(1)))
		Expect(proc.Stats.Zeros).To(Equal(uint64(1)))

		// File-mapped pages never go to swap.
		Expect(proc.PageTable[30].PagedOut()).To(BeFalse())
	})

	It("should raise SEGV on a page outside every area", func() {
		comp = makeComp(2)

		step(comp, inst('c', 0), inst('r', 45))

		Expect(proc.Stats.Segv).To(Equal(uint64(1)))
		Expect(comp.Summary().TotalCost).To(Equal(uint64(
			CostContextSwitch + CostReadWrite + CostSegv)))
	})

	It("should raise SEGV on a page beyond the address space", func() {
		comp = makeComp(2)

		step(comp, inst('c', 0), inst('r', vm.MaxVPages), inst('w', -1))

		Expect(proc.Stats.Segv).To(Equal(uint64(2)))
		Expect(comp.Summary().TotalCost).To(Equal(uint64(
			CostContextSwitch + 2*(CostReadWrite+CostSegv))))
	})

	It("should raise SEGPROT on writes to protected pages", func() {
		comp = makeComp(2)

		// The faulting map still happens; the write itself is refused
		// without an access notification.
		pagerMock.EXPECT().NotifyMapped(0, uint64(2))

		step(comp, inst('c', 0), inst('w', 20))

		Expect(proc.Stats.Segprot).To(Equal(uint64(1)))

		pte := proc.PageTable[20]
		Expect(pte.Referenced()).To(BeTrue())
		Expect(pte.Modified()).To(BeFalse())
		Expect(comp.Summary().TotalCost).To(Equal(uint64(
			CostContextSwitch + CostReadWrite + CostZero + CostMap +
				CostSegprot)))
	})

	It("should still allow reads of protected pages", func() {
		comp = makeComp(2)

		pagerMock.EXPECT().NotifyMapped(0, uint64(2))
		pagerMock.EXPECT().NotifyAccess(0, gomock.Any()).Times(2)

		step(comp, inst('c', 0), inst('r', 20), inst('r', 20))

		Expect(proc.Stats.Segprot).To(BeZero())
	})

	It("should return frames to the free pool on exit", func() {
		comp = makeComp(2)

		pagerMock.EXPECT().NotifyMapped(gomock.Any(), gomock.Any()).Times(3)
		pagerMock.EXPECT().NotifyAccess(gomock.Any(), gomock.Any()).Times(3)

		step(comp,
			inst('c', 0),
			inst('w', 1),
			inst('w', 30),
			inst('e', 0))

		Expect(proc.Stats.Unmaps).To(Equal(uint64(2)))
		Expect(proc.Stats.Fouts).To(Equal(uint64(1)))
		Expect(proc.Stats.Outs).To(BeZero())
		Expect(comp.Summary().ProcessExits).To(Equal(uint64(1)))

		pte := proc.PageTable[1]
		Expect(pte.Present()).To(BeFalse())
		Expect(pte.PagedOut()).To(BeFalse())
		Expect(pte.Modified()).To(BeFalse())

		// The freed frames are handed out again without an eviction.
		step(comp, inst('c', 0), inst('r', 2))

		Expect(comp.FrameTable()[0].Occupied).To(BeTrue())
		Expect(comp.FrameTable()[0].VPage).To(Equal(2))
	})

	It("should report unknown operations without dying", func() {
		var buf bytes.Buffer

		comp = MakeBuilder().
			WithProcesses([]*vm.Process{proc}).
			WithNumFrames(2).
			WithPager(pagerMock).
			WithLogger(log.New(&buf, "", 0)).
			Build("MMU")

		step(comp, inst('q', 0))

		Expect(comp.InstCount()).To(Equal(uint64(1)))
		Expect(buf.String()).To(ContainSubstring("unknown operation"))
	})
})

var _ = Describe("Comp with a FIFO policy", func() {
	It("should write the expected trace", func() {
		proc := vm.NewProcess(0)
		proc.AddVMA(0, 63, false, false)

		comp := MakeBuilder().
			WithProcesses([]*vm.Process{proc}).
			WithNumFrames(2).
			WithPager(pager.NewFIFO()).
			Build("MMU")

		buf := &bytes.Buffer{}
		comp.AcceptHook(NewTraceLogger(buf))

		comp.Run([]vm.Instruction{
			{Op: 'c', Value: 0},
			{Op: 'r', Value: 0},
			{Op: 'r', Value: 1},
			{Op: 'r', Value: 2},
		})

		Expect(buf.String()).To(Equal("0: ==> c 0\n" +
			"1: ==> r 0\n" +
			" ZERO\n" +
			" MAP 0\n" +
			"2: ==> r 1\n" +
			" ZERO\n" +
			" MAP 1\n" +
			"3: ==> r 2\n" +
			" UNMAP 0:0\n" +
			" ZERO\n" +
			" MAP 0\n"))

		Expect(comp.Summary()).To(Equal(Summary{
			InstCount:   4,
			CtxSwitches: 1,
			TotalCost:   2043,
		}))
	})

	It("should announce an exit before unmapping its pages", func() {
		proc := vm.NewProcess(0)
		proc.AddVMA(0, 63, false, false)

		comp := MakeBuilder().
			WithProcesses([]*vm.Process{proc}).
			WithNumFrames(2).
			WithPager(pager.NewFIFO()).
			Build("MMU")

		buf := &bytes.Buffer{}
		comp.AcceptHook(NewTraceLogger(buf))

		comp.Run([]vm.Instruction{
			{Op: 'c', Value: 0},
			{Op: 'r', Value: 5},
			{Op: 'e', Value: 0},
		})

		Expect(buf.String()).To(Equal("0: ==> c 0\n" +
			"1: ==> r 5\n" +
			" ZERO\n" +
			" MAP 0\n" +
			"2: ==> e 0\n" +
			"EXIT current process 0\n" +
			" UNMAP 0:5\n"))
	})
})

var _ = Describe("Comp policy notification", func() {
	It("should tell the policy about every completed instruction", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()

		pagerMock := NewMockPager(mockCtrl)

		proc := vm.NewProcess(0)
		proc.AddVMA(0, 63, false, false)

		comp := MakeBuilder().
			WithProcesses([]*vm.Process{proc}).
			WithNumFrames(2).
			WithPager(pagerMock).
			WithLogger(log.New(io.Discard, "", 0)).
			Build("MMU")

		gomock.InOrder(
			pagerMock.EXPECT().Tick(uint64(1)),
			pagerMock.EXPECT().Tick(uint64(2)),
		)

		comp.Run([]vm.Instruction{
			{Op: 'c', Value: 0},
			{Op: 'c', Value: 0},
		})
	})
})
