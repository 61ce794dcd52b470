package pager

import "github.com/sarchlab/pagesim/vm"

// workingSetTau is the window, in instructions, that keeps a page inside its
// process's working set.
const workingSetTau = 50

// WorkingSet evicts the first frame whose page fell out of the working set,
// falling back to the least recently used frame when every page is still
// inside its window.
type WorkingSet struct {
	debugSink

	procs    []*vm.Process
	lastUsed []uint64
	hand     int
	now      uint64
}

// NewWorkingSet creates a WorkingSet policy with all last-used times at zero.
func NewWorkingSet(procs []*vm.Process, numFrames int) *WorkingSet {
	return &WorkingSet{
		procs:    procs,
		lastUsed: make([]uint64, numFrames),
	}
}

// NotifyMapped stamps the frame's last-used time at mapping.
func (p *WorkingSet) NotifyMapped(frame int, now uint64) {
	p.lastUsed[frame] = now
}

// NotifyAccess stamps the frame's last-used time on every access.
func (p *WorkingSet) NotifyAccess(frame int, now uint64) {
	p.lastUsed[frame] = now
}

// Tick records the number of completed instructions. Working set ages are
// measured against this count.
func (p *WorkingSet) Tick(now uint64) {
	p.now = now
}

// SelectVictim scans the ring from the hand. Referenced frames get their
// timestamp refreshed and stay; the first unreferenced frame older than the
// window is taken immediately. If the scan wraps, the frame with the oldest
// timestamp loses.
func (p *WorkingSet) SelectVictim(frameTable []vm.FTE) *vm.FTE {
	numFrames := len(frameTable)
	startHand := p.hand
	oldest := p.now

	var victim *vm.FTE

	p.debugf("ASELECT %d-%d | ", p.hand, (p.hand+numFrames-1)%numFrames)

	for {
		frame := &frameTable[p.hand]
		pte := pteOf(p.procs, frame)

		if pte.Referenced() {
			pte.SetReferenced(false)
			p.lastUsed[p.hand] = p.now
		} else if p.now-p.lastUsed[p.hand] >= workingSetTau {
			victim = frame

			p.debugf("%d(%d %d:%d %d) ", p.hand,
				boolToInt(pte.Referenced()), frame.PID, frame.VPage,
				p.lastUsed[p.hand])

			break
		}

		if victim == nil || p.lastUsed[p.hand] < oldest {
			oldest = p.lastUsed[p.hand]
			victim = frame
		}

		p.debugf("%d(%d %d:%d %d) ", p.hand,
			boolToInt(pte.Referenced()), frame.PID, frame.VPage,
			p.lastUsed[p.hand])

		p.hand = (p.hand + 1) % numFrames
		if p.hand == startHand {
			break
		}
	}

	p.debugf("| %d\n", victim.Index)

	p.hand = (victim.Index + 1) % numFrames

	return victim
}
