package pager

import (
	"fmt"
	"io"

	"github.com/sarchlab/pagesim/vm"
)

type debugWritable interface {
	setDebugWriter(w io.Writer)
}

func (d *debugSink) setDebugWriter(w io.Writer) {
	d.w = w
}

// A Builder creates replacement policies.
type Builder struct {
	procs       []*vm.Process
	numFrames   int
	randSrc     RandomSource
	debugWriter io.Writer
}

// MakeBuilder returns a Builder with the maximum frame count.
func MakeBuilder() Builder {
	return Builder{numFrames: vm.MaxFrames}
}

// WithProcesses sets the processes whose page tables the policies inspect.
func (b Builder) WithProcesses(procs []*vm.Process) Builder {
	b.procs = procs
	return b
}

// WithNumFrames sets the number of physical frames.
func (b Builder) WithNumFrames(n int) Builder {
	b.numFrames = n
	return b
}

// WithRandomSource sets the source of random victim indices. Required only
// by the random policy.
func (b Builder) WithRandomSource(src RandomSource) Builder {
	b.randSrc = src
	return b
}

// WithDebugWriter sets the destination of ASELECT trace lines.
func (b Builder) WithDebugWriter(w io.Writer) Builder {
	b.debugWriter = w
	return b
}

// Build creates the policy named by algo. The letters follow the command
// line: f FIFO, r Random, c Clock, e NRU, a Aging, w Working Set.
func (b Builder) Build(algo string) (Pager, error) {
	var p Pager

	switch algo {
	case "f":
		p = NewFIFO()
	case "r":
		if b.randSrc == nil {
			return nil, fmt.Errorf("random policy needs a random source")
		}

		p = NewRandom(b.randSrc)
	case "c":
		p = NewClock(b.procs)
	case "e":
		p = NewNRU(b.procs)
	case "a":
		p = NewAging(b.procs, b.numFrames)
	case "w":
		p = NewWorkingSet(b.procs, b.numFrames)
	default:
		return nil, fmt.Errorf("unknown replacement algorithm %q", algo)
	}

	if b.debugWriter != nil {
		p.(debugWritable).setDebugWriter(b.debugWriter)
		p.SetDebug(true)
	}

	return p, nil
}
