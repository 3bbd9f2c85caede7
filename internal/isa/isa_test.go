package isa

import "testing"

func TestDecodeRType(t *testing.T) {
	sig := Decode(OpRType)
	if !sig.RegDst || !sig.RegWrite || sig.ALUOp != ALUOpRTyp {
		t.Fatalf("R-type control signals wrong: %+v", sig)
	}
	if sig.MemRead || sig.MemWrite || sig.Branch || sig.Jump {
		t.Fatalf("R-type should not assert mem/branch/jump: %+v", sig)
	}
}

func TestDecodeUnknownIsNop(t *testing.T) {
	sig := Decode(Opcode(0x3f))
	var zero ControlSignals
	if sig != zero {
		t.Fatalf("unknown opcode should decode as all-zero control, got %+v", sig)
	}
}

func TestALUControlTable(t *testing.T) {
	cases := []struct {
		op     ALUOp
		funct  Funct
		expect ALUCtrl
	}{
		{ALUOpRTyp, FunctAdd, ALUCtrlAdd},
		{ALUOpRTyp, FunctSub, ALUCtrlSub},
		{ALUOpRTyp, FunctAnd, ALUCtrlAnd},
		{ALUOpRTyp, FunctOr, ALUCtrlOr},
		{ALUOpRTyp, FunctSlt, ALUCtrlSlt},
		{ALUOpRTyp, FunctNor, ALUCtrlNor},
		{ALUOpRTyp, FunctSll, ALUCtrlSll},
		{ALUOpRTyp, FunctSrl, ALUCtrlSrl},
		{ALUOpRTyp, FunctSra, ALUCtrlSra},
		{ALUOpOri, 0, ALUCtrlOr},
		{ALUOpAddi, 0, ALUCtrlAdd},
		{ALUOpBeq, 0, ALUCtrlSub},
	}
	for _, c := range cases {
		if got := DecodeALUCtrl(c.op, c.funct); got != c.expect {
			t.Errorf("DecodeALUCtrl(%03b, %#x) = %05b, want %05b", c.op, c.funct, got, c.expect)
		}
	}
}

func TestRegisterNamesCoverAllThirtyTwo(t *testing.T) {
	seen := make(map[int]bool)
	for _, idx := range RegisterNames {
		seen[idx] = true
	}
	for i := 0; i < 32; i++ {
		if !seen[i] {
			t.Errorf("no register name maps to index %d", i)
		}
	}
}
