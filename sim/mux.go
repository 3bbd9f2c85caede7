package sim

import (
	"sync"

	"mipssim/internal/word"
)

// muxUnit is a generic 2-input, 1-select multiplexer, shared by all six
// named muxes (regDst, aluSrc, memToReg, branch, jump, jr). Each
// instance is wired at construction time to a fixed pair of ports and a
// single select signal, and forwards its output to a caller-supplied
// sink on Execute.
type muxUnit struct {
	mu sync.Mutex

	in0Port PortID
	in1Port PortID
	selSig  SignalID

	in0Arrived bool
	in0        word.Word
	in1Arrived bool
	in1        word.Word
	selArrived bool
	sel        bool

	sink func(eng *Engine, out word.Word)
}

func newMuxUnit(in0, in1 PortID, sel SignalID, sink func(eng *Engine, out word.Word)) *muxUnit {
	return &muxUnit{in0Port: in0, in1Port: in1, selSig: sel, sink: sink}
}

func (m *muxUnit) Receive(port PortID, w word.Word) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch port {
	case m.in0Port:
		m.in0 = w
		m.in0Arrived = true
	case m.in1Port:
		m.in1 = w
		m.in1Arrived = true
	}
}

func (m *muxUnit) ReceiveSignal(sig SignalID, asserted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sig != m.selSig {
		return
	}
	m.sel = asserted
	m.selArrived = true
}

func (m *muxUnit) Execute(eng *Engine) {
	m.mu.Lock()
	if !m.in0Arrived || !m.in1Arrived || !m.selArrived {
		m.mu.Unlock()
		return
	}
	in0, in1, sel := m.in0, m.in1, m.sel
	m.in0Arrived, m.in1Arrived, m.selArrived = false, false, false
	m.mu.Unlock()

	out := in0
	if sel {
		out = in1
	}
	m.sink(eng, out)
}
