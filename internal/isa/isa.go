// Package isa holds the instruction-field identifiers shared between the
// assembler and the datapath's Controller/ALU Control units: opcodes,
// R-type funct codes, the register-name table, and the ALU control
// decode table. Keeping these in one leaf package is what lets the
// assembler emit encodings the Controller can later decode without the
// two ever disagreeing about a bit pattern.
package isa

// Opcode is the 6-bit operation field in bits [31..26] of every
// instruction word.
type Opcode uint32

// Funct is the 6-bit function field of an R-type instruction.
type Funct uint32

const (
	OpRType Opcode = 0x00
	OpJ     Opcode = 0x02
	OpBeq   Opcode = 0x04
	OpAddi  Opcode = 0x08
	OpOri   Opcode = 0x0d
	OpLw    Opcode = 0x23
	OpSw    Opcode = 0x2b
)

const (
	FunctAdd Funct = 0x20
	FunctSub Funct = 0x22
	FunctAnd Funct = 0x24
	FunctOr  Funct = 0x25
	FunctNor Funct = 0x27
	FunctSlt Funct = 0x2a
	FunctSll Funct = 0x00
	FunctSrl Funct = 0x02
	FunctSra Funct = 0x03
	FunctJr  Funct = 0x08
)

// MnemonicOpcode maps an opcode-carrying mnemonic (anything that is not
// an R-type ALU op) to its fixed 6-bit opcode.
var MnemonicOpcode = map[string]Opcode{
	"addi": OpAddi,
	"ori":  OpOri,
	"lw":   OpLw,
	"sw":   OpSw,
	"beq":  OpBeq,
	"j":    OpJ,
}

// MnemonicFunct maps an R-type mnemonic (including jr) to its funct code.
var MnemonicFunct = map[string]Funct{
	"add": FunctAdd,
	"sub": FunctSub,
	"and": FunctAnd,
	"or":  FunctOr,
	"nor": FunctNor,
	"slt": FunctSlt,
	"sll": FunctSll,
	"srl": FunctSrl,
	"sra": FunctSra,
	"jr":  FunctJr,
}

// RegisterNames maps the fixed MIPS ABI register names to their index:
// zero, at, v0-v1, a0-a3, t0-t9, s0-s7, k0-k1, gp, sp, fp, ra.
var RegisterNames = map[string]int{
	"zero": 0, "at": 1,
	"v0": 2, "v1": 3,
	"a0": 4, "a1": 5, "a2": 6, "a3": 7,
	"t0": 8, "t1": 9, "t2": 10, "t3": 11, "t4": 12, "t5": 13, "t6": 14, "t7": 15,
	"s0": 16, "s1": 17, "s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23,
	"t8": 24, "t9": 25,
	"k0": 26, "k1": 27,
	"gp": 28, "sp": 29, "fp": 30, "ra": 31,
}

// ALUOp is the 3-bit control code the Controller emits to the ALU
// Control unit.
type ALUOp uint32

const (
	ALUOpAddi ALUOp = 0b000
	ALUOpBeq  ALUOp = 0b001
	ALUOpRTyp ALUOp = 0b010
	ALUOpOri  ALUOp = 0b100
)

// ALUCtrl is the 5-bit control vector the ALU Control unit emits to the
// ALU: bit 4 selects the shifter, bit 3 inverts input A, bit 2 inverts
// input B and sets the adder's carry-in, bits 1:0 select among
// add/and/or/slt.
type ALUCtrl uint32

const (
	ALUCtrlAnd ALUCtrl = 0b00000
	ALUCtrlOr  ALUCtrl = 0b00001
	ALUCtrlAdd ALUCtrl = 0b00010
	ALUCtrlSub ALUCtrl = 0b00110
	ALUCtrlSlt ALUCtrl = 0b00111
	ALUCtrlNor ALUCtrl = 0b01100
	ALUCtrlSll ALUCtrl = 0b10010
	ALUCtrlSrl ALUCtrl = 0b10000
	ALUCtrlSra ALUCtrl = 0b10001
)

// DecodeALUCtrl implements the ALU Control unit's decode table; funct is
// only consulted when aluOp selects the R-type path.
func DecodeALUCtrl(aluOp ALUOp, funct Funct) ALUCtrl {
	switch aluOp {
	case ALUOpRTyp:
		switch funct {
		case FunctAdd:
			return ALUCtrlAdd
		case FunctSub:
			return ALUCtrlSub
		case FunctAnd:
			return ALUCtrlAnd
		case FunctOr:
			return ALUCtrlOr
		case FunctSlt:
			return ALUCtrlSlt
		case FunctNor:
			return ALUCtrlNor
		case FunctSll:
			return ALUCtrlSll
		case FunctSrl:
			return ALUCtrlSrl
		case FunctSra:
			return ALUCtrlSra
		case FunctJr:
			return ALUCtrlAnd
		default:
			return ALUCtrlAdd
		}
	case ALUOpOri:
		return ALUCtrlOr
	case ALUOpAddi:
		return ALUCtrlAdd
	case ALUOpBeq:
		return ALUCtrlSub
	default:
		return ALUCtrlAdd
	}
}

// ControlSignals is the fixed vector the Controller emits per opcode.
type ControlSignals struct {
	RegDst   bool
	ALUSrc   bool
	MemToReg bool
	RegWrite bool
	MemRead  bool
	MemWrite bool
	Branch   bool
	Jump     bool
	ALUOp    ALUOp
}

// Decode implements the Controller's opcode decode table. Any opcode
// outside the table decodes as a nop: all signals false/zero.
func Decode(op Opcode) ControlSignals {
	switch op {
	case OpRType:
		return ControlSignals{RegDst: true, RegWrite: true, ALUOp: ALUOpRTyp}
	case OpLw:
		return ControlSignals{ALUSrc: true, MemToReg: true, RegWrite: true, MemRead: true}
	case OpSw:
		return ControlSignals{ALUSrc: true, MemWrite: true}
	case OpBeq:
		return ControlSignals{Branch: true, ALUOp: ALUOpBeq}
	case OpJ:
		return ControlSignals{Jump: true}
	case OpAddi:
		return ControlSignals{ALUSrc: true, RegWrite: true, ALUOp: ALUOpAddi}
	case OpOri:
		return ControlSignals{ALUSrc: true, RegWrite: true, ALUOp: ALUOpOri}
	default:
		return ControlSignals{}
	}
}
