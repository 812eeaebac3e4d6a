package groth16verifier

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/tornadopool/core/pkg/types"
)

// TestParseProofLength (S4): a proof whose length isn't exactly 256 bytes
// must be rejected before any point parsing is attempted.
func TestParseProofLength(t *testing.T) {
	if _, err := ParseProof(make([]byte, 255)); err != types.ErrInvalidProofLength {
		t.Errorf("short proof: got %v, want ErrInvalidProofLength", err)
	}
	if _, err := ParseProof(make([]byte, 257)); err != types.ErrInvalidProofLength {
		t.Errorf("long proof: got %v, want ErrInvalidProofLength", err)
	}
	if _, err := ParseProof(make([]byte, 256)); err != nil {
		t.Errorf("256-byte proof should parse: %v", err)
	}
}

// TestParseProofSplitsComponents checks A/B/C land at the expected offsets.
func TestParseProofSplitsComponents(t *testing.T) {
	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = byte(i)
	}
	p, err := ParseProof(raw)
	if err != nil {
		t.Fatalf("ParseProof failed: %v", err)
	}
	if p.A[0] != 0 || p.A[63] != 63 {
		t.Error("A must be raw[0:64]")
	}
	if p.B[0] != 64 || p.B[127] != 191 {
		t.Error("B must be raw[64:192]")
	}
	if p.C[0] != 192 || p.C[63] != 255 {
		t.Error("C must be raw[192:256]")
	}
}

// wireA builds a valid wire-format A value: gnark-crypto's native
// big-endian Marshal output, the same bytes circom/snarkjs produce.
func wireA(t *testing.T, p *bn254.G1Affine) [64]byte {
	t.Helper()
	native := p.Marshal()
	var out [64]byte
	copy(out[:], native)
	return out
}

// TestNegateANegatesThePoint checks NegateA actually flips the point's sign.
func TestNegateANegatesThePoint(t *testing.T) {
	_, _, g1Gen, _ := bn254.Generators()

	a := wireA(t, &g1Gen)

	negated, err := NegateA(a)
	if err != nil {
		t.Fatalf("NegateA failed: %v", err)
	}

	var want bn254.G1Affine
	want.Neg(&g1Gen)
	expected := wireA(t, &want)

	if negated != expected {
		t.Error("NegateA did not produce the expected negated point bytes")
	}
}

// TestNegateAIdempotentOnFormat (P10): normalizing twice returns the
// original 64-byte wire representation.
func TestNegateAIdempotentOnFormat(t *testing.T) {
	_, _, g1Gen, _ := bn254.Generators()
	a := wireA(t, &g1Gen)

	once, err := NegateA(a)
	if err != nil {
		t.Fatalf("first NegateA failed: %v", err)
	}
	twice, err := NegateA(once)
	if err != nil {
		t.Fatalf("second NegateA failed: %v", err)
	}

	if twice != a {
		t.Error("negating twice must return the original wire bytes")
	}
}

// TestNegateARejectsGarbage checks malformed A bytes surface
// ErrInvalidProofFormat rather than panicking.
func TestNegateARejectsGarbage(t *testing.T) {
	var garbage [64]byte
	for i := range garbage {
		garbage[i] = 0xff
	}
	if _, err := NegateA(garbage); err == nil {
		t.Error("expected an error for non-curve-point bytes")
	}
}
