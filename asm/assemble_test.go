package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func codes(t *testing.T, r Result) []uint32 {
	t.Helper()
	out := make([]uint32, len(r.MachineCode))
	for i, w := range r.MachineCode {
		out[i] = w.Uint32()
	}
	return out
}

func TestImmediateLoadsScenario(t *testing.T) {
	src := " addi $t1,$zero,1\n addi $t2,$zero,2\n addi $t3,$zero,3\n addi $t4,$zero,-4\n"
	r := Assemble(src)
	require.False(t, r.HadErrors)
	require.Equal(t, []uint32{0x20090001, 0x200A0002, 0x200B0003, 0x200CFFFC}, codes(t, r))
}

func TestRTypeAddScenario(t *testing.T) {
	src := " addi $t1,$zero,5\n addi $t2,$zero,7\n add $t3,$t1,$t2\n"
	r := Assemble(src)
	require.False(t, r.HadErrors)
	require.Len(t, r.MachineCode, 3)
}

func TestBranchBackwardScenario(t *testing.T) {
	src := "L: addi $t1,$t1,1\n beq $zero,$zero,L\n"
	r := Assemble(src)
	require.False(t, r.HadErrors)
	require.Equal(t, 0, r.Labels["L"])
	// target_index=0, instr_index=1 -> offset = 0-1-1 = -2
	require.Equal(t, uint32(0xFFFE), r.MachineCode[1].Uint32()&0xFFFF)
}

func TestLoadStoreScenario(t *testing.T) {
	src := " addi $t1,$zero,42\n sw $t1,0($zero)\n lw $t2,0($zero)\n"
	r := Assemble(src)
	require.False(t, r.HadErrors)
	require.Len(t, r.MachineCode, 3)
}

func TestJumpScenario(t *testing.T) {
	src := " j END\n addi $t1,$zero,99\n END: addi $t2,$zero,1\n"
	r := Assemble(src)
	require.False(t, r.HadErrors)
	require.Equal(t, 2, r.Labels["END"])
	require.Equal(t, uint32(2), r.MachineCode[0].Uint32()&0x03FFFFFF)
}

func TestShiftScenario(t *testing.T) {
	src := " addi $t1,$zero,1\n sll $t2,$t1,4\n"
	r := Assemble(src)
	require.False(t, r.HadErrors)
	require.Len(t, r.MachineCode, 2)
}

func TestLabelRoundTripInvariant(t *testing.T) {
	src := " addi $t0,$zero,0\nLOOP: addi $t0,$t0,1\n beq $t0,$t0,LOOP\n"
	r := Assemble(src)
	require.False(t, r.HadErrors)
	idx, ok := r.Labels["LOOP"]
	require.True(t, ok)
	require.Equal(t, 1, idx)
}

func TestBranchOffsetLaw(t *testing.T) {
	src := "START: addi $t0,$zero,0\n addi $t0,$zero,0\n addi $t0,$zero,0\n beq $zero,$zero,START\n"
	r := Assemble(src)
	require.False(t, r.HadErrors)
	s, t_ := r.Labels["START"], 3
	want := uint32((s - t_ - 1) & 0xFFFF)
	require.Equal(t, want, r.MachineCode[3].Uint32()&0xFFFF)
}

func TestJumpEncodingLaw(t *testing.T) {
	src := " j TARGET\n addi $t0,$zero,0\n addi $t0,$zero,0\nTARGET: addi $t0,$zero,0\n"
	r := Assemble(src)
	require.False(t, r.HadErrors)
	target := r.Labels["TARGET"]
	require.Equal(t, uint32(target)&0x03FFFFFF, r.MachineCode[0].Uint32()&0x03FFFFFF)
}

func TestDuplicateLabelIsError(t *testing.T) {
	src := "L: addi $t0,$zero,0\nL: addi $t1,$zero,0\n"
	r := Assemble(src)
	require.True(t, r.HadErrors)
	require.Contains(t, r.Listing[1].Text, "duplicate label")
}

func TestAdjacentLabelsAlias(t *testing.T) {
	src := "A:\nB: addi $t0,$zero,0\n"
	r := Assemble(src)
	require.False(t, r.HadErrors)
	require.Equal(t, r.Labels["A"], r.Labels["B"])
}

func TestUndefinedLabelIsError(t *testing.T) {
	src := " beq $zero,$zero,NOWHERE\n"
	r := Assemble(src)
	require.True(t, r.HadErrors)
	require.True(t, strings.Contains(r.Listing[0].Text, "undefined label"))
}

func TestUnknownRegisterIsError(t *testing.T) {
	src := " addi $bogus,$zero,1\n"
	r := Assemble(src)
	require.True(t, r.HadErrors)
	require.Empty(t, r.MachineCode)
}

func TestOutOfRangeRegisterNumberIsError(t *testing.T) {
	src := " addi $32,$zero,1\n"
	r := Assemble(src)
	require.True(t, r.HadErrors)
}

func TestImmediateOutOfRangeIsError(t *testing.T) {
	src := " addi $t0,$zero,70000\n"
	r := Assemble(src)
	require.True(t, r.HadErrors)
}

func TestShiftAmountOutOfRangeIsError(t *testing.T) {
	src := " sll $t0,$t1,32\n"
	r := Assemble(src)
	require.True(t, r.HadErrors)
}

func TestExitIsMarkerOnly(t *testing.T) {
	src := " addi $t0,$zero,1\n exit\n addi $t1,$zero,2\n"
	r := Assemble(src)
	require.False(t, r.HadErrors)
	require.Len(t, r.MachineCode, 2)
	require.Equal(t, []int{1}, r.ExitPoints)
}

func TestNopEncodesZero(t *testing.T) {
	src := " nop\n"
	r := Assemble(src)
	require.False(t, r.HadErrors)
	require.Equal(t, uint32(0), r.MachineCode[0].Uint32())
}

func TestErrorsDoNotHaltAssembly(t *testing.T) {
	src := " addi $bogus,$zero,1\n addi $t0,$zero,2\n"
	r := Assemble(src)
	require.True(t, r.HadErrors)
	require.Len(t, r.MachineCode, 1)
}

func TestMachineCodeFileAppendsSymbolTable(t *testing.T) {
	src := "L: addi $t0,$zero,0\n"
	r := Assemble(src)
	out := r.MachineCodeFile()
	require.Contains(t, out, "0x20080000\n")
	require.Contains(t, out, "0x00000000  ; L\n")
}

func TestListingFilePadsNonCodeLines(t *testing.T) {
	src := " # just a comment\n addi $t0,$zero,0\n"
	r := Assemble(src)
	out := r.ListingFile()
	lines := strings.Split(out, "\n")
	require.True(t, strings.HasPrefix(lines[0], strings.Repeat(" ", 24)))
	require.True(t, strings.HasPrefix(lines[1], "0x00000000  0x"))
}
