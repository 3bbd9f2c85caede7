package sim

import (
	"fmt"
	"sync"

	"mipssim/internal/word"
)

// dmemSize is the word-addressable capacity of Data Memory.
const dmemSize = 250

// dmemUnit is Data Memory. It gates on the address always, and forwards
// a stable zero when MemRead is not asserted rather than stalling, so
// the MemToReg mux's other input always has something to select away
// from.
type dmemUnit struct {
	mu sync.Mutex

	words [dmemSize]word.Word

	addrArrived  bool
	addr         word.Word
	wdataArrived bool
	wdata        word.Word

	memReadArrived  bool
	memRead         bool
	memWriteArrived bool
	memWrite        bool
}

func newDMemUnit() *dmemUnit {
	return &dmemUnit{}
}

func (d *dmemUnit) Receive(port PortID, w word.Word) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch port {
	case PortDMemAddr:
		d.addr = w
		d.addrArrived = true
	case PortDMemWData:
		d.wdata = w
		d.wdataArrived = true
	}
}

func (d *dmemUnit) ReceiveSignal(sig SignalID, asserted bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch sig {
	case SigMemRead:
		d.memRead = asserted
		d.memReadArrived = true
	case SigMemWrite:
		d.memWrite = asserted
		d.memWriteArrived = true
	}
}

// index converts a byte address into a word index, panicking if it
// falls outside the memory's bounds: an out-of-range memory access is
// a fatal error, not a silently-wrapped one.
func (d *dmemUnit) index(addr word.Word) int {
	idx := int(addr.Uint32() / 4)
	if idx < 0 || idx >= dmemSize {
		panic(fmt.Sprintf("data memory access out of range: word index %d (addr 0x%08x)", idx, addr.Uint32()))
	}
	return idx
}

func (d *dmemUnit) Execute(eng *Engine) {
	d.mu.Lock()
	if !d.addrArrived || !d.wdataArrived || !d.memReadArrived || !d.memWriteArrived {
		d.mu.Unlock()
		return
	}
	addr, wdata := d.addr, d.wdata
	memRead, memWrite := d.memRead, d.memWrite
	d.addrArrived, d.wdataArrived, d.memReadArrived, d.memWriteArrived = false, false, false, false

	// addr carries the raw ALU result on every instruction, not just
	// loads/stores, so it's only a valid memory index when MemRead or
	// MemWrite is actually asserted. Indexing it unconditionally would
	// panic on, say, addi $t4,$zero,-4.
	var rdata word.Word
	idx := -1
	if memRead || memWrite {
		idx = d.index(addr)
		if memWrite {
			d.words[idx] = wdata
		}
		if memRead {
			rdata = d.words[idx]
		}
	}
	d.mu.Unlock()

	if idx >= 0 {
		eng.markDataUpdated(idx, memWrite)
	}
	eng.memToRegMux.Receive(PortMemToRegIn1, rdata)
}

func (d *dmemUnit) snapshot() []int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]int32, dmemSize)
	for i, w := range d.words {
		out[i] = w.Int32()
	}
	return out
}
