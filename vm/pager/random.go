package pager

import "github.com/sarchlab/pagesim/vm"

// Random evicts a frame drawn from a RandomSource.
type Random struct {
	nopHooks
	debugSink

	src RandomSource
}

// NewRandom creates a Random policy backed by src.
func NewRandom(src RandomSource) *Random {
	return &Random{src: src}
}

// SelectVictim draws an index in [0, len(frameTable)) from the source and
// returns that frame.
func (p *Random) SelectVictim(frameTable []vm.FTE) *vm.FTE {
	return &frameTable[p.src.NextInRange(len(frameTable))]
}
