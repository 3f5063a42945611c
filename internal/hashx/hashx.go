// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashx implements the v1 per-index hash oracle: an
// arbitrary-length challenge is compressed into a fixed-size internal
// key, which then keys H(i) for every subsequent index.
package hashx

import (
	"errors"

	blake2simd "github.com/minio/blake2b-simd"

	"github.com/EXCCoin/equix/internal/keyedhash"
)

// Mode selects the oracle's execution backend.
type Mode = keyedhash.Mode

const (
	Interpreted = keyedhash.Interpreted
	Compiled    = keyedhash.Compiled
)

// KeySize is the length of the internal key derived from the
// challenge.
const KeySize = 32

// ErrNotSupported is returned by Alloc when Compiled is requested on a
// platform without a vectorized BLAKE2b path.
var ErrNotSupported = errors.New("hashx: compiled backend not supported on this platform")

// Ctx is a v1 hash oracle instance, bound to a challenge by Make and
// queried by Exec.
type Ctx struct {
	mode  Mode
	key   [KeySize]byte
	bound bool
}

// Alloc creates an unbound v1 oracle for the given backend mode.
func Alloc(mode Mode) (*Ctx, error) {
	if mode == Compiled && !keyedhash.CompiledSupported() {
		return nil, ErrNotSupported
	}
	return &Ctx{mode: mode}, nil
}

// Make binds the oracle to challenge, deriving the internal key via
// an unkeyed BLAKE2b digest so arbitrary-length challenges are
// accepted. It always succeeds for this backend.
func (c *Ctx) Make(challenge []byte) bool {
	h, err := blake2simd.New(&blake2simd.Config{Size: KeySize})
	if err != nil {
		return false
	}
	h.Write(challenge)
	copy(c.key[:], h.Sum(nil))
	c.bound = true
	return true
}

// Exec evaluates H(idx) under the current binding.
func (c *Ctx) Exec(idx uint16) uint64 {
	return keyedhash.Exec(c.mode, c.key[:], idx)
}

// Bound reports whether Make has been called successfully.
func (c *Ctx) Bound() bool {
	return c.bound
}

// Free releases oracle resources. The Go backend holds no external
// resources; Free exists for API parity with the alloc/free pairing
// the rest of this module follows.
func (c *Ctx) Free() {}
