package sim

import (
	"sync"

	"mipssim/internal/word"
)

// adderUnit computes the branch target: PC+4 plus the sign-extended,
// already-shifted offset. Reuses the bit-serial adder from package
// word, same as the ALU's add path.
type adderUnit struct {
	mu sync.Mutex

	pc4Arrived    bool
	pc4           word.Word
	offsetArrived bool
	offset        word.Word
}

func newAdderUnit() *adderUnit {
	return &adderUnit{}
}

func (a *adderUnit) Receive(port PortID, w word.Word) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch port {
	case PortAdderPC4:
		a.pc4 = w
		a.pc4Arrived = true
	case PortAdderOffset:
		a.offset = w.Shl(2)
		a.offsetArrived = true
	}
}

func (a *adderUnit) Execute(eng *Engine) {
	a.mu.Lock()
	if !a.pc4Arrived || !a.offsetArrived {
		a.mu.Unlock()
		return
	}
	pc4, offset := a.pc4, a.offset
	a.pc4Arrived, a.offsetArrived = false, false
	a.mu.Unlock()

	sum, _, _ := word.AddBitSerial(pc4, offset)
	eng.branchMux.Receive(PortBranchIn1, sum)
}
