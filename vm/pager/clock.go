package pager

import "github.com/sarchlab/pagesim/vm"

// Clock gives every frame a second chance: the hand sweeps the frame table,
// clearing referenced bits, and evicts the first frame whose referenced bit
// is already clear. The sweep always terminates because clearing the bits
// makes every frame a candidate on the second lap.
type Clock struct {
	nopHooks
	debugSink

	procs []*vm.Process
	hand  int
}

// NewClock creates a Clock policy over the given processes.
func NewClock(procs []*vm.Process) *Clock {
	return &Clock{procs: procs}
}

// SelectVictim sweeps from the hand until it finds an unreferenced frame,
// then parks the hand just past the victim.
func (p *Clock) SelectVictim(frameTable []vm.FTE) *vm.FTE {
	numFrames := len(frameTable)

	for {
		frame := &frameTable[p.hand]
		pte := pteOf(p.procs, frame)

		if !pte.Referenced() {
			p.hand = (frame.Index + 1) % numFrames
			return frame
		}

		pte.SetReferenced(false)
		p.hand = (p.hand + 1) % numFrames
	}
}
