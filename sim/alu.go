package sim

import (
	"sync"

	"mipssim/internal/isa"
	"mipssim/internal/word"
)

// aluUnit is the single combinational ALU. It gates on four inputs:
// both operands, the shamt (used only by the shifter ops), and the
// 5-bit control vector from aluControlUnit.
type aluUnit struct {
	mu sync.Mutex

	aArrived     bool
	a            word.Word
	bArrived     bool
	b            word.Word
	shamtArrived bool
	shamt        word.Word
	ctrlArrived  bool
	ctrl         word.Word
}

func newALUUnit() *aluUnit {
	return &aluUnit{}
}

func (u *aluUnit) Receive(port PortID, w word.Word) {
	u.mu.Lock()
	defer u.mu.Unlock()
	switch port {
	case PortALUInA:
		u.a = w
		u.aArrived = true
	case PortALUInB:
		u.b = w
		u.bArrived = true
	case PortALUShamt:
		u.shamt = w
		u.shamtArrived = true
	case PortALUControl:
		u.ctrl = w
		u.ctrlArrived = true
	}
}

func (u *aluUnit) Execute(eng *Engine) {
	u.mu.Lock()
	if !u.aArrived || !u.bArrived || !u.shamtArrived || !u.ctrlArrived {
		u.mu.Unlock()
		return
	}
	a, b, shamt := u.a, u.b, u.shamt
	ctrl := isa.ALUCtrl(u.ctrl.Uint32())
	u.aArrived, u.bArrived, u.shamtArrived, u.ctrlArrived = false, false, false, false
	u.mu.Unlock()

	var result word.Word
	var zero bool

	switch ctrl {
	case isa.ALUCtrlAnd:
		result = a.And(b)
	case isa.ALUCtrlOr:
		result = a.Or(b)
	case isa.ALUCtrlAdd:
		sum, _, z := word.AddBitSerial(a, b)
		result, zero = sum, z
	case isa.ALUCtrlSub:
		negB, _, _ := word.AddBitSerial(b.Not(), word.FromUint32(1))
		diff, _, z := word.AddBitSerial(a, negB)
		result, zero = diff, z
	case isa.ALUCtrlSlt:
		negB, _, _ := word.AddBitSerial(b.Not(), word.FromUint32(1))
		diff, _, _ := word.AddBitSerial(a, negB)
		if diff.Int32() < 0 {
			result = word.FromUint32(1)
		} else {
			result = word.FromUint32(0)
		}
	case isa.ALUCtrlNor:
		result = a.Nor(b)
	case isa.ALUCtrlSll:
		result = b.Shl(int(shamt.Uint32()))
	case isa.ALUCtrlSrl:
		result = b.Shr(int(shamt.Uint32()))
	case isa.ALUCtrlSra:
		result = b.Sar(int(shamt.Uint32()))
	default:
		sum, _, z := word.AddBitSerial(a, b)
		result, zero = sum, z
	}

	if ctrl != isa.ALUCtrlAdd && ctrl != isa.ALUCtrlSub {
		zero = result.Uint32() == 0
	}

	eng.dmem.Receive(PortDMemAddr, result)
	eng.memToRegMux.Receive(PortMemToRegIn0, result)
	eng.branchAnd.receiveZero(zero)
}
