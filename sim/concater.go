package sim

import (
	"sync"

	"mipssim/internal/word"
)

// concaterUnit forms the jump target: target[25:0]<<2 concatenated
// with PC+4's top 4 bits.
type concaterUnit struct {
	mu sync.Mutex

	targetArrived bool
	target        word.Word
	pcHighArrived bool
	pcHigh        word.Word
}

func newConcaterUnit() *concaterUnit {
	return &concaterUnit{}
}

func (c *concaterUnit) Receive(port PortID, w word.Word) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch port {
	case PortConcaterTarget:
		c.target = w
		c.targetArrived = true
	case PortConcaterPCHigh:
		c.pcHigh = w
		c.pcHighArrived = true
	}
}

func (c *concaterUnit) Execute(eng *Engine) {
	c.mu.Lock()
	if !c.targetArrived || !c.pcHighArrived {
		c.mu.Unlock()
		return
	}
	target := c.target
	pcHigh := c.pcHigh
	c.targetArrived, c.pcHighArrived = false, false
	c.mu.Unlock()

	out := target.Or(pcHigh.Bits(28, 31).Shl(28))
	eng.jumpMux.Receive(PortJumpIn1, out)
}
