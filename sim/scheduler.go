package sim

import (
	"math"
	"time"
)

// SchedulingMode selects how an Engine drives its units through one
// instruction cycle. Both modes share the same unit Execute methods and
// wiring table; only the driver loop differs.
type SchedulingMode int

const (
	// Concurrent runs one goroutine per heavyweight unit plus one for
	// the six muxes, each holding its own unit's mutex only for the
	// duration of a single Execute call and sleeping the speed-derived
	// interval between iterations. This is the default: it mirrors
	// hardware's independent functional units.
	Concurrent SchedulingMode = iota

	// Cooperative drives every unit from a single goroutine, round-
	// robining Execute calls with no sleeping and no mutex contention.
	// Used by this package's own tests for deterministic interleaving.
	Cooperative
)

// sleepInterval implements the speed-derived per-iteration delay: a
// higher speed value yields a shorter sleep.
func sleepInterval(speed float64) time.Duration {
	if speed <= 0 {
		speed = 1
	}
	ms := 371.258 * math.Pow(speed, -1.42122)
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// heavyUnits lists the ten functional units that each get their own
// worker in Concurrent mode.
func (e *Engine) heavyUnits() []func(*Engine) {
	return []func(*Engine){
		e.imem.Execute,
		e.regFile.Execute,
		e.signExt.Execute,
		e.concater.Execute,
		e.aluControl.Execute,
		e.alu.Execute,
		e.adder.Execute,
		e.branchAnd.Execute,
		e.dmem.Execute,
		e.controller.Execute,
	}
}

// muxUnits lists the six multiplexers that share a single worker in
// Concurrent mode and are simply run in a fixed order each pass in
// Cooperative mode.
func (e *Engine) muxUnits() []func(*Engine) {
	return []func(*Engine){
		e.regDstMux.Execute,
		e.aluSrcMux.Execute,
		e.memToRegMux.Execute,
		e.branchMux.Execute,
		e.jumpMux.Execute,
		e.jrMux.Execute,
	}
}

// runConcurrentCycle drives one instruction through the datapath using
// one goroutine per heavyweight unit plus one for the muxes.
func (e *Engine) runConcurrentCycle() {
	done := make(chan struct{})
	stopMu := make(chan struct{})

	worker := func(fn func(*Engine)) {
		interval := e.sleepInterval()
		for {
			select {
			case <-stopMu:
				done <- struct{}{}
				return
			default:
			}
			fn(e)
			time.Sleep(interval)
		}
	}

	heavy := e.heavyUnits()
	for _, fn := range heavy {
		go worker(fn)
	}
	go func() {
		interval := e.sleepInterval()
		muxes := e.muxUnits()
		for {
			select {
			case <-stopMu:
				done <- struct{}{}
				return
			default:
			}
			for _, fn := range muxes {
				fn(e)
			}
			time.Sleep(interval)
		}
	}()

	e.pc.Execute(e)

	interval := e.sleepInterval()
	for !e.cycleComplete() {
		if e.stopRequested() {
			break
		}
		time.Sleep(interval)
	}

	close(stopMu)
	for i := 0; i < len(heavy)+1; i++ {
		<-done
	}
}

// runCooperativeCycle drives one instruction using a single goroutine
// round-robining every unit's Execute call, with no sleeping.
func (e *Engine) runCooperativeCycle() {
	e.pc.Execute(e)
	for !e.cycleComplete() {
		if e.stopRequested() {
			return
		}
		for _, fn := range e.heavyUnits() {
			fn(e)
		}
		for _, fn := range e.muxUnits() {
			fn(e)
		}
	}
}
