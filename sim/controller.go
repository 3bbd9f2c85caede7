package sim

import (
	"sync"

	"mipssim/internal/isa"
	"mipssim/internal/word"
)

// controllerUnit is the central Controller. It decodes the opcode into
// the fixed control vector from internal/isa, and detects
// jr (R-type with funct 0x08) to drive the jr mux's select line
// separately from the vector's own fields, since jr is the only
// instruction whose PC source isn't determined by Branch/Jump alone.
type controllerUnit struct {
	mu sync.Mutex

	opcodeArrived bool
	opcode        word.Word
	functArrived  bool
	funct         word.Word
}

func newControllerUnit() *controllerUnit {
	return &controllerUnit{}
}

func (c *controllerUnit) Receive(port PortID, w word.Word) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch port {
	case PortControllerOpcode:
		c.opcode = w
		c.opcodeArrived = true
	case PortControllerFunct:
		c.funct = w
		c.functArrived = true
	}
}

func (c *controllerUnit) Execute(eng *Engine) {
	c.mu.Lock()
	if !c.opcodeArrived || !c.functArrived {
		c.mu.Unlock()
		return
	}
	opcode := isa.Opcode(c.opcode.Uint32())
	funct := isa.Funct(c.funct.Uint32())
	c.opcodeArrived, c.functArrived = false, false
	c.mu.Unlock()

	sig := isa.Decode(opcode)
	isJr := opcode == isa.OpRType && funct == isa.FunctJr

	eng.regDstMux.ReceiveSignal(SigRegDstSel, sig.RegDst)
	eng.aluSrcMux.ReceiveSignal(SigALUSrcSel, sig.ALUSrc)
	eng.memToRegMux.ReceiveSignal(SigMemToRegSel, sig.MemToReg)
	eng.regFile.ReceiveSignal(SigRegWrite, sig.RegWrite)
	eng.dmem.ReceiveSignal(SigMemRead, sig.MemRead)
	eng.dmem.ReceiveSignal(SigMemWrite, sig.MemWrite)
	eng.branchAnd.ReceiveSignal(SigBranchCond, sig.Branch)
	eng.jumpMux.ReceiveSignal(SigJumpSel, sig.Jump)
	eng.jrMux.ReceiveSignal(SigJrSel, isJr)

	eng.aluControl.Receive(PortALUCtrlOp, word.FromUint32(uint32(sig.ALUOp)))
}
