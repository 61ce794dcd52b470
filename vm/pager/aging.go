package pager

import "github.com/sarchlab/pagesim/vm"

// Aging approximates LRU with a 32-bit shift register per frame. Every
// selection scans the whole ring, shifting each counter right and feeding the
// referenced bit into the top. The victim is the frame with the smallest
// counter after shifting, first seen from the hand.
type Aging struct {
	nopHooks
	debugSink

	procs []*vm.Process
	ages  []uint32
	hand  int
}

// NewAging creates an Aging policy with all age counters at zero.
func NewAging(procs []*vm.Process, numFrames int) *Aging {
	return &Aging{
		procs: procs,
		ages:  make([]uint32, numFrames),
	}
}

// NotifyMapped restarts the age counter of a freshly mapped frame.
func (p *Aging) NotifyMapped(frame int, _ uint64) {
	p.ages[frame] = 0
}

// SelectVictim ages every frame once and returns the minimum-age frame.
func (p *Aging) SelectVictim(frameTable []vm.FTE) *vm.FTE {
	numFrames := len(frameTable)

	p.debugf("ASELECT %d-%d | ", p.hand, (p.hand+numFrames-1)%numFrames)

	var (
		victim *vm.FTE
		minAge uint32
	)

	for i := 0; i < numFrames; i++ {
		frame := &frameTable[p.hand]
		pte := pteOf(p.procs, frame)

		p.ages[p.hand] >>= 1
		if pte.Referenced() {
			p.ages[p.hand] |= 0x80000000
			pte.SetReferenced(false)
		}

		p.debugf("%d:%x ", p.hand, p.ages[p.hand])

		if victim == nil || p.ages[p.hand] < minAge {
			minAge = p.ages[p.hand]
			victim = frame
		}

		p.hand = (p.hand + 1) % numFrames
	}

	p.debugf("| %d\n", victim.Index)

	p.hand = (victim.Index + 1) % numFrames

	return victim
}
