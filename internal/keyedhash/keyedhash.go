// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keyedhash is the per-index hash primitive shared by the v1
// (HashX) and v2 (HashWX) oracle backends. Both backends key a BLAKE2b
// instance on the challenge-derived key and hash the little-endian
// index; they differ only in how that key is produced.
//
// Two independent BLAKE2b implementations stand in for the compiled
// and interpreted oracle backends named by the context flags: given
// the same key and output size both are standard-conformant and
// produce byte-identical digests, so H(i) is identical across modes
// by construction, matching the cross-backend determinism the solver
// and verifier rely on. This is a deliberate stand-in for the real
// HashX compiler/interpreter split, which spec places out of scope.
package keyedhash

import (
	"encoding/binary"
	"runtime"

	blake2simd "github.com/minio/blake2b-simd"
	"golang.org/x/crypto/blake2b"
)

// Mode selects which BLAKE2b implementation backs H(i).
type Mode uint8

const (
	// Interpreted uses the portable golang.org/x/crypto/blake2b
	// implementation.
	Interpreted Mode = iota
	// Compiled uses the SIMD-accelerated minio/blake2b-simd
	// implementation.
	Compiled
)

// DigestSize is the number of bytes requested from BLAKE2b for H(i);
// only a uint64 worth is ever needed.
const DigestSize = 8

// CompiledSupported reports whether the Compiled backend is available
// on the current platform. minio/blake2b-simd's vectorized path only
// pays off on architectures with a SIMD-friendly ABI; elsewhere it
// falls back to the same generic code as Interpreted, so requesting it
// there would be a pointless no-op rather than a real "compiled"
// backend.
func CompiledSupported() bool {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return true
	default:
		return false
	}
}

// Exec returns H(idx) for the given key and backend mode.
func Exec(mode Mode, key []byte, idx uint16) uint64 {
	var msg [2]byte
	binary.LittleEndian.PutUint16(msg[:], idx)

	var sum []byte
	switch mode {
	case Compiled:
		h, err := blake2simd.New(&blake2simd.Config{Key: key, Size: DigestSize})
		if err != nil {
			panic("keyedhash: compiled backend: " + err.Error())
		}
		h.Write(msg[:])
		sum = h.Sum(nil)
	default:
		h, err := blake2b.New(DigestSize, key)
		if err != nil {
			panic("keyedhash: interpreted backend: " + err.Error())
		}
		h.Write(msg[:])
		sum = h.Sum(nil)
	}
	return binary.LittleEndian.Uint64(sum)
}
