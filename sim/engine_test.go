package sim

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"mipssim/asm"
)

func run(t *testing.T, src string, maxSteps int) (*Engine, Snapshot) {
	t.Helper()
	r := asm.Assemble(src)
	require.False(t, r.HadErrors, "assembly failed: %+v", r.Listing)

	eng := NewEngine(r.MachineCode, r.ExitPoints, WithScheduling(Cooperative))
	for i := 0; i < maxSteps; i++ {
		if err := eng.Step(); err != nil {
			break
		}
	}
	return eng, eng.Snapshot()
}

func TestImmediateLoadsEndToEnd(t *testing.T) {
	src := " addi $t1,$zero,1\n addi $t2,$zero,2\n addi $t3,$zero,3\n addi $t4,$zero,-4\n exit\n"
	_, snap := run(t, src, 10)
	require.Equal(t, int32(1), snap.Registers[9])
	require.Equal(t, int32(2), snap.Registers[10])
	require.Equal(t, int32(3), snap.Registers[11])
	require.Equal(t, int32(-4), snap.Registers[12])
}

func TestRTypeAddEndToEnd(t *testing.T) {
	src := " addi $t1,$zero,5\n addi $t2,$zero,7\n add $t3,$t1,$t2\n exit\n"
	_, snap := run(t, src, 10)
	require.Equal(t, int32(12), snap.Registers[11])
}

func TestBranchBackwardEndToEnd(t *testing.T) {
	src := " addi $t0,$zero,0\nLOOP: addi $t0,$t0,1\n addi $t3,$zero,2\n beq $t0,$t3,DONE\n beq $zero,$zero,LOOP\nDONE: addi $t2,$zero,99\n exit\n"
	_, snap := run(t, src, 20)
	require.Equal(t, int32(2), snap.Registers[8])
	require.Equal(t, int32(99), snap.Registers[10])
}

func TestLoadStoreEndToEnd(t *testing.T) {
	src := " addi $t1,$zero,42\n sw $t1,0($zero)\n lw $t2,0($zero)\n exit\n"
	_, snap := run(t, src, 10)
	require.Equal(t, int32(42), snap.Registers[10])
	require.Equal(t, int32(42), snap.DataMemory[0])
}

func TestJumpEndToEnd(t *testing.T) {
	src := " j END\n addi $t1,$zero,99\n END: addi $t2,$zero,1\n exit\n"
	_, snap := run(t, src, 10)
	require.Equal(t, int32(0), snap.Registers[9])
	require.Equal(t, int32(1), snap.Registers[10])
}

func TestShiftEndToEnd(t *testing.T) {
	src := " addi $t1,$zero,1\n sll $t2,$t1,4\n exit\n"
	_, snap := run(t, src, 10)
	require.Equal(t, int32(16), snap.Registers[10])
}

func TestJrEndToEnd(t *testing.T) {
	// $ra holds the target's word index (instruction 4); the jr mux
	// scales it up to a byte address before feeding the PC.
	src := " addi $ra,$zero,4\n addi $t0,$zero,1\n jr $ra\n addi $t0,$zero,99\n exit\n addi $t1,$zero,7\n exit\n"
	_, snap := run(t, src, 10)
	require.Equal(t, int32(1), snap.Registers[8])
	require.Equal(t, int32(7), snap.Registers[9])
}

func TestRegisterZeroStabilityInvariant(t *testing.T) {
	src := " addi $zero,$zero,5\n exit\n"
	_, snap := run(t, src, 10)
	require.Equal(t, int32(0), snap.Registers[0])
}

func TestPCAlignmentInvariant(t *testing.T) {
	src := " addi $t0,$zero,1\n addi $t1,$zero,2\n exit\n"
	eng, _ := run(t, src, 1)
	require.Equal(t, uint32(0), eng.pc.currentAddress().Uint32()%4)
}

func TestConcurrentModeLiveness(t *testing.T) {
	src := " addi $t1,$zero,1\n addi $t2,$zero,2\n add $t3,$t1,$t2\n exit\n"
	r := asm.Assemble(src)
	require.False(t, r.HadErrors)
	eng := NewEngine(r.MachineCode, r.ExitPoints, WithScheduling(Concurrent), WithSpeed(50))
	for i := 0; i < 10; i++ {
		if err := eng.Step(); err != nil {
			break
		}
	}
	require.Equal(t, int32(3), eng.Snapshot().Registers[11])
}

func TestRegisterFileSettlesToExactContents(t *testing.T) {
	src := " addi $t1,$zero,1\n addi $t2,$zero,2\n add $t3,$t1,$t2\n exit\n"
	_, snap := run(t, src, 10)

	var want [32]int32
	want[9], want[10], want[11] = 1, 2, 3

	if diff := cmp.Diff(want, snap.Registers); diff != "" {
		t.Errorf("register file mismatch (-want +got):\n%s", diff)
	}
}

func TestInstructionCompletionLiveness(t *testing.T) {
	src := " sw $zero,0($zero)\n exit\n"
	r := asm.Assemble(src)
	require.False(t, r.HadErrors)
	eng := NewEngine(r.MachineCode, r.ExitPoints, WithScheduling(Cooperative))
	require.NoError(t, eng.Step())
}
