// Package common provides shared byte/codec utilities for the shielded pool.
package common

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
)

// Common errors
var (
	ErrInvalidHash    = errors.New("invalid hash")
	ErrInvalidAddress = errors.New("invalid address")
)

// HexToBytes converts a hex string to bytes, accepting an optional 0x prefix.
func HexToBytes(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return hex.DecodeString(s)
}

// BytesToHex converts bytes to a hex string with 0x prefix.
func BytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// Uint64ToBytes32 encodes v as the low 8 bytes of a 32-byte big-endian buffer.
func Uint64ToBytes32(v uint64) [32]byte {
	var out [32]byte
	binary.BigEndian.PutUint64(out[24:], v)
	return out
}

// Bytes32ToUint64 decodes the low 8 bytes of a 32-byte big-endian buffer.
// The high 24 bytes must be zero or ok is false.
func Bytes32ToUint64(b [32]byte) (v uint64, ok bool) {
	if !IsZeroBytes(b[:24]) {
		return 0, false
	}
	return binary.BigEndian.Uint64(b[24:]), true
}

// IsZeroBytes reports whether every byte in b is zero.
func IsZeroBytes(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// CopyBytes returns a copy of a byte slice.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
