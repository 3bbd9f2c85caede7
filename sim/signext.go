package sim

import (
	"sync"

	"mipssim/internal/word"
)

// signExtUnit sign-extends a 16-bit immediate to 32 bits
type signExtUnit struct {
	mu sync.Mutex

	arrived bool
	in      word.Word
}

func newSignExtUnit() *signExtUnit {
	return &signExtUnit{}
}

func (s *signExtUnit) Receive(port PortID, w word.Word) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if port != PortSignExtIn {
		return
	}
	s.in = w
	s.arrived = true
}

func (s *signExtUnit) Execute(eng *Engine) {
	s.mu.Lock()
	if !s.arrived {
		s.mu.Unlock()
		return
	}
	in := s.in
	s.arrived = false
	s.mu.Unlock()

	imm16 := int32(int16(in.Uint32()))
	out := word.FromInt32(imm16)

	eng.adder.Receive(PortAdderOffset, out)
	eng.aluSrcMux.Receive(PortALUSrcIn1, out)
}
