package sim

import "sync"

// branchAndUnit gates the Controller's Branch signal with the ALU's
// zero flag: the branch mux only selects the adder's result when both
// are true.
type branchAndUnit struct {
	mu sync.Mutex

	branchArrived bool
	branch        bool
	zeroArrived   bool
	zero          bool
}

func newBranchAndUnit() *branchAndUnit {
	return &branchAndUnit{}
}

func (b *branchAndUnit) ReceiveSignal(sig SignalID, asserted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sig != SigBranchCond {
		return
	}
	b.branch = asserted
	b.branchArrived = true
}

func (b *branchAndUnit) receiveZero(asserted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.zero = asserted
	b.zeroArrived = true
}

func (b *branchAndUnit) Execute(eng *Engine) {
	b.mu.Lock()
	if !b.branchArrived || !b.zeroArrived {
		b.mu.Unlock()
		return
	}
	branch, zero := b.branch, b.zero
	b.branchArrived, b.zeroArrived = false, false
	b.mu.Unlock()

	eng.branchMux.ReceiveSignal(SigBranchSel, branch && zero)
}
