package groth16verifier

import (
	"testing"

	"github.com/tornadopool/core/pkg/types"
)

func validVKBytes() []byte {
	vk := &VerifyingKey{
		NrPublicInputs: types.PublicInputCount,
		IC:             make([][64]byte, types.PublicInputCount+1),
	}
	for i := range vk.AlphaG1 {
		vk.AlphaG1[i] = 1
	}
	for i := range vk.BetaG2 {
		vk.BetaG2[i] = 2
	}
	for i := range vk.GammaG2 {
		vk.GammaG2[i] = 3
	}
	for i := range vk.DeltaG2 {
		vk.DeltaG2[i] = 4
	}
	for i := range vk.IC {
		for j := range vk.IC[i] {
			vk.IC[i][j] = byte(i + 1)
		}
	}
	return vk.Bytes()
}

// TestParseVerifyingKeyRoundTrip checks a well-formed VK blob parses and
// re-serializes back to the same bytes.
func TestParseVerifyingKeyRoundTrip(t *testing.T) {
	raw := validVKBytes()
	vk, err := ParseVerifyingKey(raw)
	if err != nil {
		t.Fatalf("ParseVerifyingKey failed: %v", err)
	}
	if vk.NrPublicInputs != types.PublicInputCount {
		t.Errorf("NrPublicInputs = %d, want %d", vk.NrPublicInputs, types.PublicInputCount)
	}
	if len(vk.IC) != types.PublicInputCount+1 {
		t.Errorf("IC length = %d, want %d", len(vk.IC), types.PublicInputCount+1)
	}

	roundTripped := vk.Bytes()
	if len(roundTripped) != len(raw) {
		t.Fatalf("round-tripped length = %d, want %d", len(roundTripped), len(raw))
	}
	for i := range raw {
		if roundTripped[i] != raw[i] {
			t.Fatalf("round trip mismatch at byte %d", i)
		}
	}
}

// TestParseVerifyingKeyTooShort (I8/P11): a blob shorter than the fixed
// header must be rejected.
func TestParseVerifyingKeyTooShort(t *testing.T) {
	if _, err := ParseVerifyingKey(make([]byte, 10)); err != types.ErrInvalidVerifyingKey {
		t.Errorf("got %v, want ErrInvalidVerifyingKey", err)
	}
}

// TestParseVerifyingKeyWrongPublicInputCount (P11): nr_pubinputs not
// matching the circuit's fixed 8 must be rejected, not silently accepted.
func TestParseVerifyingKeyWrongPublicInputCount(t *testing.T) {
	raw := validVKBytes()
	// nr_pubinputs is the first 4 bytes, little-endian.
	raw[0] = 9

	if _, err := ParseVerifyingKey(raw); err != types.ErrInvalidVerifyingKey {
		t.Errorf("got %v, want ErrInvalidVerifyingKey", err)
	}
}

// TestParseVerifyingKeyZeroSentinel (P11): an all-zero placeholder VK
// (the kind original_source shipped before a real trusted setup existed)
// must be rejected, not silently accepted as valid.
func TestParseVerifyingKeyZeroSentinel(t *testing.T) {
	vk := &VerifyingKey{
		NrPublicInputs: types.PublicInputCount,
		IC:             make([][64]byte, types.PublicInputCount+1),
	}
	raw := vk.Bytes() // all curve-point fields left as zero value

	if _, err := ParseVerifyingKey(raw); err != types.ErrInvalidVerifyingKey {
		t.Errorf("got %v, want ErrInvalidVerifyingKey for all-zero VK", err)
	}
}

// TestParseVerifyingKeyTruncatedIC (P11): a length inconsistent with
// nr_pubinputs' implied IC array size must be rejected.
func TestParseVerifyingKeyTruncatedIC(t *testing.T) {
	raw := validVKBytes()
	truncated := raw[:len(raw)-64] // drop the last IC entry

	if _, err := ParseVerifyingKey(truncated); err != types.ErrInvalidVerifyingKey {
		t.Errorf("got %v, want ErrInvalidVerifyingKey", err)
	}
}

// TestParseVerifyingKeyExcessivePublicInputs (P11): nr_pubinputs beyond the
// sanity bound must be rejected before any allocation is attempted.
func TestParseVerifyingKeyExcessivePublicInputs(t *testing.T) {
	raw := validVKBytes()
	raw[0] = 0xff
	raw[1] = 0xff
	raw[2] = 0xff
	raw[3] = 0x7f

	if _, err := ParseVerifyingKey(raw); err != types.ErrInvalidVerifyingKey {
		t.Errorf("got %v, want ErrInvalidVerifyingKey", err)
	}
}
