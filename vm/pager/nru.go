package pager

import "github.com/sarchlab/pagesim/vm"

// nruResetPeriod is the number of instructions between full scans that clear
// the referenced bits.
const nruResetPeriod = 48

// NRU implements enhanced second chance. Frames are classified by
// 2*referenced + modified and the victim is the first frame found in the
// lowest occupied class. Every nruResetPeriod instructions the scan also
// clears the referenced bit of every frame it visits.
type NRU struct {
	nopHooks
	debugSink

	procs     []*vm.Process
	hand      int
	now       uint64
	lastReset uint64
}

// NewNRU creates an NRU policy over the given processes.
func NewNRU(procs []*vm.Process) *NRU {
	return &NRU{procs: procs}
}

// Tick records the number of completed instructions. The reset period is
// measured against this count.
func (p *NRU) Tick(now uint64) {
	p.now = now
}

// SelectVictim scans the ring from the hand, remembering the first frame seen
// in each class. Outside a reset scan it stops at the first class-0 frame.
func (p *NRU) SelectVictim(frameTable []vm.FTE) *vm.FTE {
	numFrames := len(frameTable)
	startHand := p.hand

	resetReferenced := false
	if p.now-p.lastReset >= nruResetPeriod {
		resetReferenced = true
		p.lastReset = p.now
	}

	var classFrames [4]*vm.FTE
	lowestClass := len(classFrames)

	for {
		frame := &frameTable[p.hand]
		pte := pteOf(p.procs, frame)

		class := 2*boolToInt(pte.Referenced()) + boolToInt(pte.Modified())
		if classFrames[class] == nil {
			classFrames[class] = frame
			if class < lowestClass {
				lowestClass = class
			}
		}

		if resetReferenced {
			pte.SetReferenced(false)
		}

		p.hand = (p.hand + 1) % numFrames

		if !resetReferenced && class == 0 {
			break
		}

		if p.hand == startHand {
			break
		}
	}

	victim := classFrames[lowestClass]
	p.hand = (victim.Index + 1) % numFrames

	p.debugf("ASELECT: %d %d | %d %d\n",
		startHand, boolToInt(resetReferenced), lowestClass, victim.Index)

	return victim
}
