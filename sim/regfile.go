package sim

import (
	"sync"

	"mipssim/internal/word"
)

// regFileUnit is the 32-register Register File. Register 0 always
// reads as zero and silently discards writes. Reads are combinational:
// each fires independently as soon as its index arrives. The write
// port gates on all three of its inputs (index, data, RegWrite) having
// arrived — a write "fires" the reg_chain_completed half of the
// instruction-completion protocol whether or not RegWrite was actually
// asserted, since the datapath always produces write operands even for
// instructions (sw, beq, j) that discard them.
type regFileUnit struct {
	mu sync.Mutex

	regs [32]word.Word

	read1IdxArrived bool
	read1Idx        word.Word
	read2IdxArrived bool
	read2Idx        word.Word

	writeIdxArrived  bool
	writeIdx         word.Word
	writeDataArrived bool
	writeData        word.Word
	writeSigArrived  bool
	writeSig         bool

	// lastWriteIndex/lastWriteHappened record the most recent write-port
	// firing; the engine receives the same pair through
	// markRegChainCompleted for the GUI contract's changed-register
	// tracking.
	lastWriteIndex int
	lastWriteHappened bool
}

func newRegFileUnit() *regFileUnit {
	return &regFileUnit{}
}

func (r *regFileUnit) Receive(port PortID, w word.Word) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch port {
	case PortRegRead1Index:
		r.read1Idx = w
		r.read1IdxArrived = true
	case PortRegRead2Index:
		r.read2Idx = w
		r.read2IdxArrived = true
	case PortRegWriteIndex:
		r.writeIdx = w
		r.writeIdxArrived = true
	case PortRegWriteData:
		r.writeData = w
		r.writeDataArrived = true
	}
}

func (r *regFileUnit) ReceiveSignal(sig SignalID, asserted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sig != SigRegWrite {
		return
	}
	r.writeSig = asserted
	r.writeSigArrived = true
}

func (r *regFileUnit) Execute(eng *Engine) {
	r.mu.Lock()

	if r.read1IdxArrived {
		idx := int(r.read1Idx.Uint32()) & 0x1F
		val := r.regs[idx]
		r.read1IdxArrived = false
		r.mu.Unlock()
		eng.alu.Receive(PortALUInA, val)
		// jr's target register holds a word index; the jr mux needs a
		// byte address, so scale it by 4 on the way out.
		eng.jrMux.Receive(PortJrIn1, val.Shl(2))
		r.mu.Lock()
	}

	if r.read2IdxArrived {
		idx := int(r.read2Idx.Uint32()) & 0x1F
		val := r.regs[idx]
		r.read2IdxArrived = false
		r.mu.Unlock()
		eng.aluSrcMux.Receive(PortALUSrcIn0, val)
		eng.dmem.Receive(PortDMemWData, val)
		r.mu.Lock()
	}

	if r.writeIdxArrived && r.writeDataArrived && r.writeSigArrived {
		idx := int(r.writeIdx.Uint32()) & 0x1F
		data := r.writeData
		signal := r.writeSig

		r.writeIdxArrived, r.writeDataArrived, r.writeSigArrived = false, false, false

		happened := false
		if signal && idx != 0 {
			r.regs[idx] = data
			happened = true
		}
		r.lastWriteIndex = idx
		r.lastWriteHappened = happened
		r.mu.Unlock()

		eng.markRegChainCompleted(idx, happened)
		return
	}

	r.mu.Unlock()
}

func (r *regFileUnit) snapshot() [32]int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out [32]int32
	for i, w := range r.regs {
		out[i] = w.Int32()
	}
	return out
}
