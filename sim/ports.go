// Package sim implements the single-cycle MIPS datapath: eleven
// functional units plus the Controller, driven by a cooperative
// scheduler. Every unit in this package exposes the same
// three-operation capability set — Receive(port, data),
// ReceiveSignal(signal, asserted), Execute(eng) — but each unit is a
// concrete Go type rather than an implementation of a shared
// interface: the scheduler dispatches through a closed list of
// concrete methods built once at wiring time, not through a vtable.
package sim

// PortID names a single data input across the whole datapath graph.
// Units ignore ports addressed to a different unit; this is the
// "typed ports" half of the uniform capability contract.
type PortID int

const (
	PortPCNewAddress PortID = iota // PC <- jr mux result

	PortIMemFetchAddr // Instruction Memory <- PC

	PortRegRead1Index // Register File <- IMem rs
	PortRegRead2Index // Register File <- IMem rt
	PortRegWriteIndex // Register File <- RegDst mux
	PortRegWriteData  // Register File <- MemToReg mux

	PortSignExtIn // Sign-Extend <- IMem imm[15:0]

	PortConcaterTarget // Concater <- IMem target[25:0]<<2
	PortConcaterPCHigh // Concater <- PC+4[31:28]

	PortALUCtrlFunct // ALU Control <- IMem funct
	PortALUCtrlOp    // ALU Control <- Controller (3-bit ALUOp)

	PortControllerOpcode // Controller <- IMem opcode
	PortControllerFunct  // Controller <- IMem funct (jr detection)

	PortALUShamt   // ALU <- IMem shamt
	PortALUInA     // ALU <- Register File read1
	PortALUInB     // ALU <- ALUSrc mux
	PortALUControl // ALU <- ALU Control (5-bit control vector)

	PortAdderPC4    // Adder <- PC+4 (computed by the PC's Execute)
	PortAdderOffset // Adder <- Sign-Extend

	PortDMemAddr  // Data Memory <- ALU result
	PortDMemWData // Data Memory <- Register File read2

	PortRegDstIn0 // RegDst mux <- IMem rt
	PortRegDstIn1 // RegDst mux <- IMem rd

	PortALUSrcIn0 // ALUSrc mux <- Register File read2
	PortALUSrcIn1 // ALUSrc mux <- Sign-Extend

	PortMemToRegIn0 // MemToReg mux <- ALU result
	PortMemToRegIn1 // MemToReg mux <- Data Memory read data

	PortBranchIn0 // Branch mux <- PC+4
	PortBranchIn1 // Branch mux <- Adder result

	PortJumpIn0 // Jump mux <- Branch mux result
	PortJumpIn1 // Jump mux <- Concater result

	PortJrIn0 // Jr mux <- Jump mux result
	PortJrIn1 // Jr mux <- Register File read1, scaled by 4 (word index -> byte address)
)

// SignalID names a single control line across the datapath graph.
type SignalID int

const (
	SigRegWrite SignalID = iota
	SigMemRead
	SigMemWrite
	SigRegDstSel
	SigALUSrcSel
	SigMemToRegSel
	SigBranchCond  // Controller's Branch output, into Branch-AND
	SigBranchSel   // Branch-AND's output, into the branch mux
	SigJumpSel     // Controller's Jump output, into the jump mux
	SigJrSel       // Controller's jr-detect output, into the jr mux
)
