package rng

import "testing"

func TestSameKeySameSequence(t *testing.T) {
	a := New("abc-quality-1-1")
	b := New("abc-quality-1-1")
	for i := 0; i < 100; i++ {
		if x, y := a.Int(0, 1000), b.Int(0, 1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestDifferentKeysDiverge(t *testing.T) {
	a := New(DeriveKey("abc", "quality", 1, 1))
	b := New(DeriveKey("abc", "observation", 1, 1))
	same := 0
	for i := 0; i < 32; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same == 32 {
		t.Fatalf("streams for different purposes produced identical output")
	}
}

func TestDeriveKeyFormat(t *testing.T) {
	got := DeriveKey("abc", "contact", 3, 2, "P1", "C7")
	if got != "abc-contact-3-2-P1-C7" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := DeriveKey("abc", "core", 1, 1); got != "abc-core-1-1" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestBounds(t *testing.T) {
	s := New("bounds")
	for i := 0; i < 1000; i++ {
		if v := s.Int(-3, 3); v < -3 || v > 3 {
			t.Fatalf("Int out of range: %d", v)
		}
		if v := s.Float(2, 5); v < 2 || v >= 5 {
			t.Fatalf("Float out of range: %f", v)
		}
	}
	if s.Int(4, 4) != 4 {
		t.Fatalf("degenerate range should return min")
	}
	if s.Chance(0) || !s.Chance(1) {
		t.Fatalf("Chance edge cases wrong")
	}
}

func TestPickAndShuffle(t *testing.T) {
	s := New("pick")
	if _, ok := Pick(s, []string{}); ok {
		t.Fatalf("Pick on empty slice should report !ok")
	}
	in := []int{1, 2, 3, 4, 5, 6}
	out := Shuffle(New("shuffle"), in)
	again := Shuffle(New("shuffle"), in)
	if len(out) != len(in) {
		t.Fatalf("shuffle changed length")
	}
	for i := range out {
		if out[i] != again[i] {
			t.Fatalf("shuffle not reproducible at %d", i)
		}
	}
	if in[0] != 1 || in[5] != 6 {
		t.Fatalf("shuffle mutated its input")
	}
}
