// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashwx implements the v2 per-index hash oracle: it is bound
// directly to a fixed-size seed (already derived by the challenge
// binder via a keyed BLAKE2b compression of the raw challenge) rather
// than accepting the challenge itself.
package hashwx

import (
	"errors"

	"github.com/EXCCoin/equix/internal/keyedhash"
)

// Mode selects the oracle's execution backend.
type Mode = keyedhash.Mode

const (
	Interpreted = keyedhash.Interpreted
	Compiled    = keyedhash.Compiled
)

// SeedSize is HASHWX_SEED_SIZE: the fixed length of the seed Make
// accepts, and the digest length the challenge binder must produce.
const SeedSize = 32

// ErrNotSupported is returned by Alloc when Compiled is requested on a
// platform without a vectorized BLAKE2b path.
var ErrNotSupported = errors.New("hashwx: compiled backend not supported on this platform")

// Ctx is a v2 hash oracle instance.
type Ctx struct {
	mode  Mode
	seed  [SeedSize]byte
	bound bool
}

// Alloc creates an unbound v2 oracle for the given backend mode.
func Alloc(mode Mode) (*Ctx, error) {
	if mode == Compiled && !keyedhash.CompiledSupported() {
		return nil, ErrNotSupported
	}
	return &Ctx{mode: mode}, nil
}

// Make binds the oracle to a pre-derived seed. seed must be exactly
// SeedSize bytes; any other length fails the binding.
func (c *Ctx) Make(seed []byte) bool {
	if len(seed) != SeedSize {
		return false
	}
	copy(c.seed[:], seed)
	c.bound = true
	return true
}

// Exec evaluates H(idx) under the current binding.
func (c *Ctx) Exec(idx uint16) uint64 {
	return keyedhash.Exec(c.mode, c.seed[:], idx)
}

// Bound reports whether Make has been called successfully.
func (c *Ctx) Bound() bool {
	return c.bound
}

// Free releases oracle resources; see hashx.Ctx.Free.
func (c *Ctx) Free() {}
