package sim

import (
	"sync"

	"mipssim/internal/word"
)

// pcUnit is the Program Counter. It is not scheduled on its own
// worker — the driver calls Execute directly, once per instruction, to
// kick off a new fetch.
type pcUnit struct {
	mu sync.Mutex

	address word.Word

	// freshAddress becomes true when Receive lands a new address,
	// marking the "pc_chain_completed" half of the instruction-
	// completion protocol. The driver clears it after observing it.
	freshAddress bool
}

func newPCUnit() *pcUnit {
	return &pcUnit{}
}

// Receive accepts a new address on PortPCNewAddress. Unlike the other
// units, the PC commits the value immediately rather than waiting for
// Execute — there is nothing else for it to wait on, since its only
// input is this single port.
func (p *pcUnit) Receive(port PortID, w word.Word) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if port != PortPCNewAddress {
		return
	}
	p.address = w
	p.freshAddress = true
}

// Execute fans the current address out to Instruction Memory and to
// every consumer of PC+4.
func (p *pcUnit) Execute(eng *Engine) {
	p.mu.Lock()
	addr := p.address
	p.mu.Unlock()

	pc4 := word.FromUint32(addr.Uint32() + 4)

	eng.imem.Receive(PortIMemFetchAddr, addr)
	eng.concater.Receive(PortConcaterPCHigh, pc4)
	eng.adder.Receive(PortAdderPC4, pc4)
	eng.branchMux.Receive(PortBranchIn0, pc4)
}

// takeFreshAddress reports and clears the pc_chain_completed flag.
func (p *pcUnit) takeFreshAddress() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	fresh := p.freshAddress
	p.freshAddress = false
	return fresh
}

func (p *pcUnit) currentAddress() word.Word {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.address
}
