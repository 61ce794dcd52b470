package pager

import "github.com/sarchlab/pagesim/vm"

// FIFO evicts frames in the order they were filled, using a hand that sweeps
// the frame table circularly.
type FIFO struct {
	nopHooks
	debugSink

	hand int
}

// NewFIFO creates a FIFO policy with the hand at frame 0.
func NewFIFO() *FIFO {
	return &FIFO{}
}

// SelectVictim returns the frame under the hand and advances the hand.
func (p *FIFO) SelectVictim(frameTable []vm.FTE) *vm.FTE {
	victim := &frameTable[p.hand]
	p.hand = (p.hand + 1) % len(frameTable)

	return victim
}
