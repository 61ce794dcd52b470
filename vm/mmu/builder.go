package mmu

import (
	"log"
	"os"

	"github.com/sarchlab/pagesim/vm"
	"github.com/sarchlab/pagesim/vm/pager"
)

// A Builder can build paging state machines.
type Builder struct {
	procs     []*vm.Process
	numFrames int
	pager     pager.Pager
	log       *log.Logger
}

// MakeBuilder creates a Builder with the maximum frame count and a default
// diagnostic logger.
func MakeBuilder() Builder {
	return Builder{
		numFrames: vm.MaxFrames,
		log:       log.New(os.Stderr, "", 0),
	}
}

// WithProcesses sets the processes to simulate.
func (b Builder) WithProcesses(procs []*vm.Process) Builder {
	b.procs = procs
	return b
}

// WithNumFrames sets the number of physical frames.
func (b Builder) WithNumFrames(n int) Builder {
	b.numFrames = n
	return b
}

// WithPager sets the replacement policy.
func (b Builder) WithPager(p pager.Pager) Builder {
	b.pager = p
	return b
}

// WithLogger sets the logger used for diagnostics.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.log = l
	return b
}

// Build creates a Comp with all frames free.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		name:       name,
		log:        b.log,
		procs:      b.procs,
		frameTable: vm.NewFrameTable(b.numFrames),
		pager:      b.pager,
		currentPID: -1,
	}

	c.freeFrames = make([]*vm.FTE, b.numFrames)
	for i := range c.frameTable {
		c.freeFrames[i] = &c.frameTable[i]
	}

	return c
}
