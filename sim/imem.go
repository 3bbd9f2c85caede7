package sim

import (
	"sync"

	"mipssim/internal/word"
)

// iMemUnit is the read-only Instruction Memory. It holds the
// machine-code image produced by package asm and, on Execute, slices
// the fetched word into every field the rest of the datapath needs.
type iMemUnit struct {
	mu sync.Mutex

	image []word.Word

	addrArrived bool
	addr        word.Word
}

func newIMemUnit(image []word.Word) *iMemUnit {
	return &iMemUnit{image: image}
}

func (m *iMemUnit) Receive(port PortID, w word.Word) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if port != PortIMemFetchAddr {
		return
	}
	m.addr = w
	m.addrArrived = true
}

// Execute fetches image[addr/4] and fans out every field of the
// instruction word. It panics if the PC ever points outside the loaded
// image, which the engine's run loop guards against by stopping before
// that can happen.
func (m *iMemUnit) Execute(eng *Engine) {
	m.mu.Lock()
	if !m.addrArrived {
		m.mu.Unlock()
		return
	}
	addr := m.addr
	m.addrArrived = false
	m.mu.Unlock()

	idx := int(addr.Uint32() / 4)
	instr := m.image[idx]

	opcode := instr.Bits(26, 31)
	rs := instr.Bits(21, 25)
	rt := instr.Bits(16, 20)
	rd := instr.Bits(11, 15)
	shamt := instr.Bits(6, 10)
	funct := instr.Bits(0, 5)
	imm16 := instr.Bits(0, 15)
	target26 := instr.Bits(0, 25)

	eng.controller.Receive(PortControllerOpcode, opcode)
	eng.controller.Receive(PortControllerFunct, funct)

	eng.regFile.Receive(PortRegRead1Index, rs)
	eng.regFile.Receive(PortRegRead2Index, rt)

	eng.regDstMux.Receive(PortRegDstIn0, rt)
	eng.regDstMux.Receive(PortRegDstIn1, rd)

	eng.alu.Receive(PortALUShamt, shamt)

	eng.aluControl.Receive(PortALUCtrlFunct, funct)

	eng.signExt.Receive(PortSignExtIn, imm16)

	eng.concater.Receive(PortConcaterTarget, target26.Shl(2))
}
