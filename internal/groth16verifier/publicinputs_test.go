package groth16verifier

import (
	"testing"

	"github.com/tornadopool/core/pkg/types"
)

// TestSplitAddressRoundTrip (P7): splitting and reconstructing an address
// must be lossless.
func TestSplitAddressRoundTrip(t *testing.T) {
	var addr types.Address
	for i := range addr {
		addr[i] = byte(i + 1)
	}

	high, low := splitAddressToHighLow(addr)
	got := ReconstructAddress(high, low)
	if got != addr {
		t.Errorf("round trip mismatch: got %x, want %x", got, addr)
	}
}

// TestSplitAddressLayout checks the exact high/low byte layout spec.md
// §4.4 prescribes: zero-pad || first 16 bytes, zero-pad || last 16 bytes.
func TestSplitAddressLayout(t *testing.T) {
	var addr types.Address
	for i := range addr {
		addr[i] = byte(i)
	}

	high, low := splitAddressToHighLow(addr)

	for i := 0; i < 16; i++ {
		if high[i] != 0 {
			t.Fatalf("high[%d] = %d, want 0", i, high[i])
		}
	}
	for i := 0; i < 16; i++ {
		if high[16+i] != addr[i] {
			t.Fatalf("high[%d] = %d, want %d", 16+i, high[16+i], addr[i])
		}
	}
	for i := 0; i < 16; i++ {
		if low[i] != 0 {
			t.Fatalf("low[%d] = %d, want 0", i, low[i])
		}
	}
	for i := 0; i < 16; i++ {
		if low[16+i] != addr[16+i] {
			t.Fatalf("low[%d] = %d, want %d", 16+i, low[16+i], addr[16+i])
		}
	}
}

// TestEncodeU64RoundTrip (P8): for all u64 values, decoding the low 8
// bytes of encode_u64_to_32(x) must yield x, with the high 24 bytes zero.
func TestEncodeU64RoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 42, 1 << 32, ^uint64(0)}
	for _, v := range cases {
		out := encodeU64As32Bytes(v)
		for i := 0; i < 24; i++ {
			if out[i] != 0 {
				t.Fatalf("value %d: high byte %d is non-zero", v, i)
			}
		}
		var decoded uint64
		for i := 24; i < 32; i++ {
			decoded = decoded<<8 | uint64(out[i])
		}
		if decoded != v {
			t.Fatalf("value %d round-tripped to %d", v, decoded)
		}
	}
}

// TestEncodePublicInputsOrder checks the 8 public inputs appear in the
// exact order spec.md §4.4 specifies.
func TestEncodePublicInputsOrder(t *testing.T) {
	root := types.HashFromBytes([]byte{0xaa})
	nullifierHash := types.HashFromBytes([]byte{0xbb})
	var recipient, relayer types.Address
	recipient[0] = 1
	relayer[0] = 2

	inputs := EncodePublicInputs(root, nullifierHash, recipient, relayer, 100, 5)

	if inputs[0] != [32]byte(root) {
		t.Error("input 0 must be the root")
	}
	if inputs[1] != [32]byte(nullifierHash) {
		t.Error("input 1 must be the nullifier hash")
	}

	recipientHigh, recipientLow := splitAddressToHighLow(recipient)
	if inputs[2] != recipientHigh || inputs[3] != recipientLow {
		t.Error("inputs 2-3 must be the recipient high/low split")
	}

	relayerHigh, relayerLow := splitAddressToHighLow(relayer)
	if inputs[4] != relayerHigh || inputs[5] != relayerLow {
		t.Error("inputs 4-5 must be the relayer high/low split")
	}

	if inputs[6] != encodeU64As32Bytes(100) {
		t.Error("input 6 must be the fee")
	}
	if inputs[7] != encodeU64As32Bytes(5) {
		t.Error("input 7 must be the refund")
	}
}
