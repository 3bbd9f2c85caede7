package sim

import (
	"sync"

	"mipssim/internal/isa"
	"mipssim/internal/word"
)

// aluControlUnit derives the 5-bit ALU control vector from the
// Controller's 3-bit ALUOp and the instruction's funct field, using the
// decode table in internal/isa.
type aluControlUnit struct {
	mu sync.Mutex

	functArrived bool
	funct        word.Word
	opArrived    bool
	op           word.Word
}

func newALUControlUnit() *aluControlUnit {
	return &aluControlUnit{}
}

func (a *aluControlUnit) Receive(port PortID, w word.Word) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch port {
	case PortALUCtrlFunct:
		a.funct = w
		a.functArrived = true
	case PortALUCtrlOp:
		a.op = w
		a.opArrived = true
	}
}

func (a *aluControlUnit) Execute(eng *Engine) {
	a.mu.Lock()
	if !a.functArrived || !a.opArrived {
		a.mu.Unlock()
		return
	}
	funct := a.funct
	op := a.op
	a.functArrived, a.opArrived = false, false
	a.mu.Unlock()

	ctrl := isa.DecodeALUCtrl(isa.ALUOp(op.Uint32()), isa.Funct(funct.Uint32()))
	eng.alu.Receive(PortALUControl, word.FromUint32(uint32(ctrl)))
}
