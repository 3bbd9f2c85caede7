package sim

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"mipssim/internal/word"
)

// ErrHalted is returned by Step/Run once the PC has reached an exit
// marker or run past the end of the loaded program.
var ErrHalted = errors.New("sim: program halted")

// Snapshot is the read-only view a front end polls between
// instructions: one GUI contract, independent of scheduling mode.
type Snapshot struct {
	Registers       [32]int32
	DataMemory      [250]int32
	PC              uint32
	Enable          bool
	ChangedRegIndex int
	ChangedDMIndex  int
	RegUpdated      bool
	DataUpdated     bool
	ExitLocations   []int
}

// Engine wires together one instance of every datapath unit and drives
// them through either scheduling mode. It is the sole exported entry
// point into package sim.
type Engine struct {
	mode   SchedulingMode
	speed  float64
	log    *zap.SugaredLogger
	image  []word.Word
	exitAt map[int]bool

	pc         *pcUnit
	imem       *iMemUnit
	regFile    *regFileUnit
	signExt    *signExtUnit
	concater   *concaterUnit
	aluControl *aluControlUnit
	alu        *aluUnit
	adder      *adderUnit
	branchAnd  *branchAndUnit
	dmem       *dmemUnit
	controller *controllerUnit

	regDstMux   *muxUnit
	aluSrcMux   *muxUnit
	memToRegMux *muxUnit
	branchMux   *muxUnit
	jumpMux     *muxUnit
	jrMux       *muxUnit

	mu              sync.Mutex
	regChainDone    bool
	pcChainLatched  bool
	changedRegIndex int
	regUpdated      bool
	changedDMIndex  int
	dataUpdated     bool
	stopRun         bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithScheduling selects Concurrent (default) or Cooperative mode.
func WithScheduling(mode SchedulingMode) Option {
	return func(e *Engine) { e.mode = mode }
}

// WithSpeed sets the speed value fed into the sleep-interval formula.
// Only meaningful in Concurrent mode.
func WithSpeed(speed float64) Option {
	return func(e *Engine) { e.speed = speed }
}

// WithLogger overrides the engine's logger; defaults to a no-op one.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine loads a machine-code image and wires every unit together
// to match the single-cycle datapath's connections.
func NewEngine(image []word.Word, exitPoints []int, opts ...Option) *Engine {
	e := &Engine{
		speed:  1,
		image:  image,
		exitAt: make(map[int]bool, len(exitPoints)),

		pc:         newPCUnit(),
		imem:       newIMemUnit(image),
		regFile:    newRegFileUnit(),
		signExt:    newSignExtUnit(),
		concater:   newConcaterUnit(),
		aluControl: newALUControlUnit(),
		alu:        newALUUnit(),
		adder:      newAdderUnit(),
		branchAnd:  newBranchAndUnit(),
		dmem:       newDMemUnit(),
		controller: newControllerUnit(),
	}
	for _, idx := range exitPoints {
		e.exitAt[idx] = true
	}

	e.regDstMux = newMuxUnit(PortRegDstIn0, PortRegDstIn1, SigRegDstSel, func(eng *Engine, out word.Word) {
		eng.regFile.Receive(PortRegWriteIndex, out)
	})
	e.aluSrcMux = newMuxUnit(PortALUSrcIn0, PortALUSrcIn1, SigALUSrcSel, func(eng *Engine, out word.Word) {
		eng.alu.Receive(PortALUInB, out)
	})
	e.memToRegMux = newMuxUnit(PortMemToRegIn0, PortMemToRegIn1, SigMemToRegSel, func(eng *Engine, out word.Word) {
		eng.regFile.Receive(PortRegWriteData, out)
	})
	e.branchMux = newMuxUnit(PortBranchIn0, PortBranchIn1, SigBranchSel, func(eng *Engine, out word.Word) {
		eng.jumpMux.Receive(PortJumpIn0, out)
	})
	e.jumpMux = newMuxUnit(PortJumpIn0, PortJumpIn1, SigJumpSel, func(eng *Engine, out word.Word) {
		eng.jrMux.Receive(PortJrIn0, out)
	})
	e.jrMux = newMuxUnit(PortJrIn0, PortJrIn1, SigJrSel, func(eng *Engine, out word.Word) {
		eng.pc.Receive(PortPCNewAddress, out)
	})

	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = zap.NewNop().Sugar()
	}
	return e
}

func (e *Engine) sleepInterval() time.Duration { return sleepInterval(e.speed) }

// markRegChainCompleted is called by the Register File once a write's
// three inputs have all arrived, satisfying the reg_chain_completed
// half of the instruction-completion protocol.
func (e *Engine) markRegChainCompleted(idx int, happened bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.regChainDone = true
	e.changedRegIndex = idx
	e.regUpdated = happened
}

// markDataUpdated is called by Data Memory after every load or store;
// happened is true only for a store.
func (e *Engine) markDataUpdated(idx int, happened bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.changedDMIndex = idx
	e.dataUpdated = happened
}

// cycleComplete reports whether both completion-protocol chains have
// fired for the instruction currently in flight, latching the PC
// chain's fresh-address flag (a one-shot signal) until the next cycle
// resets it.
func (e *Engine) cycleComplete() bool {
	if !e.pcChainLatchedSnapshot() && e.pc.takeFreshAddress() {
		e.mu.Lock()
		e.pcChainLatched = true
		e.mu.Unlock()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.regChainDone && e.pcChainLatched
}

func (e *Engine) pcChainLatchedSnapshot() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pcChainLatched
}

func (e *Engine) stopRequested() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopRun
}

// Stop requests cooperative cancellation of any in-flight Run loop.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.stopRun = true
	e.mu.Unlock()
}

func (e *Engine) currentInstrIndex() int {
	return int(e.pc.currentAddress().Uint32() / 4)
}

func (e *Engine) halted() bool {
	idx := e.currentInstrIndex()
	if idx < 0 || idx >= len(e.image) {
		return true
	}
	return e.exitAt[idx]
}

// Step drives exactly one instruction to completion and returns
// ErrHalted if the PC was already at an exit point or past the end of
// the image.
func (e *Engine) Step() error {
	if e.halted() {
		return ErrHalted
	}

	e.mu.Lock()
	e.regChainDone = false
	e.pcChainLatched = false
	e.regUpdated = false
	e.dataUpdated = false
	e.mu.Unlock()

	switch e.mode {
	case Cooperative:
		e.runCooperativeCycle()
	default:
		e.runConcurrentCycle()
	}
	e.log.Debugw("instruction retired", "pc", e.pc.currentAddress().Uint32())
	return nil
}

// Run steps until the program halts or Stop is called.
func (e *Engine) Run() error {
	for {
		if e.stopRequested() {
			return nil
		}
		if err := e.Step(); err != nil {
			return err
		}
	}
}

// Snapshot returns a self-contained copy of everything a front end
// needs to render: register file, data memory, PC, and the most
// recent change markers.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	s := Snapshot{
		PC:              e.pc.currentAddress().Uint32() / 4,
		Enable:          !e.halted(),
		ChangedRegIndex: e.changedRegIndex,
		ChangedDMIndex:  e.changedDMIndex,
		RegUpdated:      e.regUpdated,
		DataUpdated:     e.dataUpdated,
	}
	exits := make([]int, 0, len(e.exitAt))
	for idx := range e.exitAt {
		exits = append(exits, idx)
	}
	e.mu.Unlock()

	s.ExitLocations = exits
	s.Registers = e.regFile.snapshot()
	copy(s.DataMemory[:], e.dmem.snapshot())
	return s
}
