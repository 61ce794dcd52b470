package vm

// An FTE is a frame table entry. One FTE exists per physical frame for the
// lifetime of the simulation.
type FTE struct {
	Index    int
	PID      int
	VPage    int
	Occupied bool
}

// NewFrameTable creates numFrames frames in index order, all free.
func NewFrameTable(numFrames int) []FTE {
	if numFrames < 1 || numFrames > MaxFrames {
		panic("frame count out of range")
	}

	ft := make([]FTE, numFrames)
	for i := range ft {
		ft[i] = FTE{Index: i, PID: -1, VPage: -1}
	}

	return ft
}

// Assign marks the frame as occupied by the given (pid, vpage) pair.
func (f *FTE) Assign(pid, vpage int) {
	f.PID = pid
	f.VPage = vpage
	f.Occupied = true
}

// Release marks the frame as free.
func (f *FTE) Release() {
	f.PID = -1
	f.VPage = -1
	f.Occupied = false
}
