package vm

// A VMA is a contiguous range of virtual pages with uniform protection and
// backing-store attributes. Both ends of the range are inclusive.
type VMA struct {
	StartVPage   int
	EndVPage     int
	WriteProtect bool
	FileMapped   bool
}

// VPageInfo caches the VMA attributes of one virtual page. The cache is
// filled at VMA insertion time so that page faults resolve attributes with a
// single array lookup instead of a scan over the VMA list.
type VPageInfo struct {
	Valid        bool
	WriteProtect bool
	FileMapped   bool
}

// Stats counts the paging events charged to one process.
type Stats struct {
	Unmaps  uint64
	Maps    uint64
	Ins     uint64
	Outs    uint64
	Fins    uint64
	Fouts   uint64
	Zeros   uint64
	Segv    uint64
	Segprot uint64
}

// A Process describes one simulated process: its VMAs, its page table, and
// its event statistics.
type Process struct {
	PID        int
	VMAs       []VMA
	PageTable  [MaxVPages]PTE
	VPageInfos [MaxVPages]VPageInfo
	Stats      Stats
}

// NewProcess creates a process with an empty address space.
func NewProcess(pid int) *Process {
	return &Process{PID: pid}
}

// AddVMA registers a virtual memory area and fills the per-page attribute
// cache for every page the area covers. VMAs are trusted to be disjoint.
func (p *Process) AddVMA(start, end int, writeProtect, fileMapped bool) {
	if start < 0 || end >= MaxVPages || start > end {
		panic("VMA range out of bounds")
	}

	p.VMAs = append(p.VMAs, VMA{
		StartVPage:   start,
		EndVPage:     end,
		WriteProtect: writeProtect,
		FileMapped:   fileMapped,
	})

	for i := start; i <= end; i++ {
		p.VPageInfos[i] = VPageInfo{
			Valid:        true,
			WriteProtect: writeProtect,
			FileMapped:   fileMapped,
		}
	}
}
