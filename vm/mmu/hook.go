package mmu

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the register Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}

// HookPosInstStart triggers when an instruction is about to be executed.
// Item is the vm.Instruction and Detail is the instruction index.
var HookPosInstStart = &HookPos{Name: "InstStart"}

// HookPosInstDone triggers after an instruction has been executed.
var HookPosInstDone = &HookPos{Name: "InstDone"}

// HookPosUnmap triggers when a page is unmapped from a frame. Item is the
// PageRef being unmapped.
var HookPosUnmap = &HookPos{Name: "Unmap"}

// HookPosMap triggers when a page is mapped into a frame. Item is the frame
// index.
var HookPosMap = &HookPos{Name: "Map"}

// HookPosIn triggers when a page is read back from swap.
var HookPosIn = &HookPos{Name: "In"}

// HookPosOut triggers when a dirty anonymous page is written to swap.
var HookPosOut = &HookPos{Name: "Out"}

// HookPosFin triggers when a file-mapped page is read from its file.
var HookPosFin = &HookPos{Name: "Fin"}

// HookPosFout triggers when a dirty file-mapped page is written back.
var HookPosFout = &HookPos{Name: "Fout"}

// HookPosZero triggers when a freshly mapped page is zero-filled.
var HookPosZero = &HookPos{Name: "Zero"}

// HookPosSegv triggers on an access to a page outside every VMA.
var HookPosSegv = &HookPos{Name: "Segv"}

// HookPosSegprot triggers on a write to a write-protected page.
var HookPosSegprot = &HookPos{Name: "Segprot"}

// HookPosExit triggers when a process exits, before its pages are unmapped.
// Item is the process ID.
var HookPosExit = &HookPos{Name: "Exit"}

// A PageRef names one (process, virtual page) pair in a hook payload.
type PageRef struct {
	PID   int
	VPage int
}
