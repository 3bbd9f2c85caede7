package asm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mipssim/internal/isa"
	"mipssim/internal/word"
)

// labelPattern matches a label definition at the start of a line:
// one or more alphanumerics followed by a colon.
var labelPattern = regexp.MustCompile(`^([A-Za-z0-9]+):\s*`)

// Each of these mirrors one of the instruction shapes, matched in the
// fixed order R1, R2, I1, I2, I3, J1, J2.
var (
	patternR1 = regexp.MustCompile(`^(add|sub|and|or|nor|slt)\s+\$(\w+)\s*,\s*\$(\w+)\s*,\s*\$(\w+)\s*$`)
	patternR2 = regexp.MustCompile(`^(sll|srl|sra)\s+\$(\w+)\s*,\s*\$(\w+)\s*,\s*(-?\w+)\s*$`)
	patternI1 = regexp.MustCompile(`^(addi|ori)\s+\$(\w+)\s*,\s*\$(\w+)\s*,\s*(-?\w+)\s*$`)
	patternI2 = regexp.MustCompile(`^(beq)\s+\$(\w+)\s*,\s*\$(\w+)\s*,\s*(\w+)\s*$`)
	patternI3 = regexp.MustCompile(`^(lw|sw)\s+\$(\w+)\s*,\s*(-?\w+)\s*\(\s*\$(\w+)\s*\)\s*$`)
	patternJ1 = regexp.MustCompile(`^(j)\s+(\w+)\s*$`)
	patternJ2 = regexp.MustCompile(`^(jr)\s+\$(\w+)\s*$`)
	patternNop  = regexp.MustCompile(`^nop\s*$`)
	patternExit = regexp.MustCompile(`^exit\s*$`)
)

// stripComment truncates a line at its first '#'.
func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// register resolves a register operand: either one of the fixed ABI
// names (t0, sp, ...) or a bare $N with 0 <= N <= 31.
func register(tok string) (int, error) {
	if idx, ok := isa.RegisterNames[tok]; ok {
		return idx, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("unknown register %q", tok)
	}
	if n < 0 || n > 31 {
		return 0, fmt.Errorf("register index %d out of range 0..31", n)
	}
	return n, nil
}

// immediate parses a decimal or 0x-prefixed hex integer literal,
// accepting a leading '-' for decimal literals.
func immediate(tok string) (int64, error) {
	base := 10
	negative := strings.HasPrefix(tok, "-")
	if negative {
		tok = tok[1:]
	}
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		base = 16
		tok = tok[2:]
	}
	v, err := strconv.ParseInt(tok, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", tok)
	}
	if negative {
		v = -v
	}
	return v, nil
}

func checkArithImmediate(v int64) error {
	if v < -32768 || v > 65535 {
		return fmt.Errorf("immediate %d out of range (must fit in 16 bits)", v)
	}
	return nil
}

func checkShamt(v int64) error {
	if v < 0 || v > 31 {
		return fmt.Errorf("shift amount %d out of range 0..31", v)
	}
	return nil
}

func encodeR(rs, rt, rd, shamt int, funct isa.Funct) word.Word {
	w := word.FromUint32(0)
	w = w.Or(word.FromUint32(uint32(rs)).Shl(21))
	w = w.Or(word.FromUint32(uint32(rt)).Shl(16))
	w = w.Or(word.FromUint32(uint32(rd)).Shl(11))
	w = w.Or(word.FromUint32(uint32(shamt)).Shl(6))
	w = w.Or(word.FromUint32(uint32(funct)))
	return w
}

func encodeI(op isa.Opcode, rs, rt int, imm16 uint32) word.Word {
	w := word.FromUint32(uint32(op)).Shl(26)
	w = w.Or(word.FromUint32(uint32(rs)).Shl(21))
	w = w.Or(word.FromUint32(uint32(rt)).Shl(16))
	w = w.Or(word.FromUint32(imm16 & 0xFFFF))
	return w
}

func encodeJ(op isa.Opcode, target26 uint32) word.Word {
	w := word.FromUint32(uint32(op)).Shl(26)
	return w.Or(word.FromUint32(target26 & 0x03FFFFFF))
}
