package word

import "testing"

func TestBits(t *testing.T) {
	w := FromUint32(0b1011_0000_0000_0000_0000_0000_0010_0110)
	if got := w.Bits(0, 5); got.Uint32() != 0b100110 {
		t.Fatalf("Bits(0,5) = %#x, want 0x26", got.Uint32())
	}
	if got := w.Bits(28, 31); got.Uint32() != 0b1011 {
		t.Fatalf("Bits(28,31) = %#x, want 0xb", got.Uint32())
	}
}

func TestShifts(t *testing.T) {
	w := FromInt32(-8) // 0xFFFFFFF8
	if got := w.Shr(1).Uint32(); got != 0x7FFFFFFC {
		t.Fatalf("Shr(1) = %#x, want 0x7ffffffc", got)
	}
	if got := w.Sar(1).Int32(); got != -4 {
		t.Fatalf("Sar(1) = %d, want -4", got)
	}
	if got := FromUint32(1).Shl(4).Uint32(); got != 16 {
		t.Fatalf("Shl(4) = %d, want 16", got)
	}
}

func TestLogical(t *testing.T) {
	a := FromUint32(0xF0F0F0F0)
	b := FromUint32(0x0F0F0F0F)
	if a.And(b) != 0 {
		t.Fatal("AND of disjoint masks should be 0")
	}
	if a.Or(b) != 0xFFFFFFFF {
		t.Fatal("OR of disjoint masks should be all ones")
	}
	if a.Nor(b) != 0 {
		t.Fatal("NOR of disjoint full masks should be 0")
	}
	if a.Not() != b {
		t.Fatal("NOT of a should equal b for complementary masks")
	}
}

func TestAddBitSerial(t *testing.T) {
	sum, overflow, zero := AddBitSerial(FromUint32(1), FromUint32(2))
	if sum.Uint32() != 3 || overflow || zero {
		t.Fatalf("1+2: sum=%d overflow=%v zero=%v", sum.Uint32(), overflow, zero)
	}

	sum, _, zero = AddBitSerial(FromInt32(5), FromInt32(-5))
	if sum.Uint32() != 0 || !zero {
		t.Fatalf("5+(-5): sum=%d zero=%v, want 0 true", sum.Uint32(), zero)
	}

	// INT32_MAX + 1 overflows into the sign bit.
	_, overflow, _ = AddBitSerial(FromInt32(0x7FFFFFFF), FromInt32(1))
	if !overflow {
		t.Fatal("expected signed overflow for INT32_MAX + 1")
	}
}
