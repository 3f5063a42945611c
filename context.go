// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package equix

import (
	"errors"

	"github.com/EXCCoin/equix/internal/hashwx"
	"github.com/EXCCoin/equix/internal/hashx"
	"github.com/EXCCoin/equix/internal/keyedhash"
	"github.com/EXCCoin/equix/internal/solver"
	"github.com/EXCCoin/equix/pagealloc"
)

// AllocFlags is a closed set of context options. It is modeled as a
// plain bitmask rather than a variable-length bitset type: the option
// set is small and fixed at compile time, which is exactly the case a
// typed uint8 mask idiom fits.
type AllocFlags uint8

const (
	// Solve allocates the solver's scratch heap, enabling Context.Solve.
	Solve AllocFlags = 1 << iota
	// Compile selects the vectorized BLAKE2b backend for the hash
	// oracle; falls back to ErrNotSupported if unavailable.
	Compile
	// HugePages requests huge-page-backed scratch memory for the
	// solver's hash cache. Unavailability never fails allocation: it
	// silently falls back to ordinary heap memory.
	HugePages
	// V2 selects the HashWX oracle (seed derived via keyed Blake2b)
	// instead of the default HashX oracle.
	V2
)

// hashOracle is the single dispatch point the solver and verifier use
// to evaluate H(i), regardless of which concrete oracle backs it.
// This replaces the function-pointer dispatch and tagged union of the
// C implementation with an interface satisfied by both v1 and v2
// oracle types.
type hashOracle interface {
	Make(seed []byte) bool
	Exec(idx uint16) uint64
	Free()
}

// Context owns a bound hash oracle and, if Solve was requested, the
// solver's scratch heap. A Context is not safe for concurrent use;
// create one Context per goroutine.
type Context struct {
	flags    AllocFlags
	oracle   hashOracle
	heap     *solver.Heap
	heapBuf  []byte
	heapFree func([]byte)
}

// Alloc creates a Context for the given flag combination. It returns
// ErrNotSupported if Compile was requested and no vectorized backend
// exists on this host, or an *AllocError for other allocation
// failures.
func Alloc(flags AllocFlags) (*Context, error) {
	mode := keyedhash.Interpreted
	if flags&Compile != 0 {
		mode = keyedhash.Compiled
	}

	oracle, err := newOracle(flags, mode)
	if err != nil {
		return nil, err
	}

	ctx := &Context{flags: flags, oracle: oracle}

	if flags&Solve != 0 {
		buf, free, err := allocHashCache(flags&HugePages != 0)
		if err != nil {
			oracle.Free()
			return nil, err
		}
		ctx.heap = solver.NewHeap(buf)
		ctx.heapBuf = buf
		ctx.heapFree = free
	}

	return ctx, nil
}

func newOracle(flags AllocFlags, mode keyedhash.Mode) (hashOracle, error) {
	if flags&V2 != 0 {
		c, err := hashwx.Alloc(mode)
		if err != nil {
			if errors.Is(err, hashwx.ErrNotSupported) {
				return nil, ErrNotSupported
			}
			return nil, err
		}
		return c, nil
	}
	c, err := hashx.Alloc(mode)
	if err != nil {
		if errors.Is(err, hashx.ErrNotSupported) {
			return nil, ErrNotSupported
		}
		return nil, err
	}
	return c, nil
}

func allocHashCache(wantHugePages bool) ([]byte, func([]byte), error) {
	if wantHugePages {
		buf, err := pagealloc.HugePages.Alloc(solver.HashCacheSize)
		if err == nil {
			return buf, pagealloc.HugePages.Free, nil
		}
		log.Debugf("huge-page allocation failed, falling back to heap: %v", err)
	}
	buf, err := pagealloc.Heap.Alloc(solver.HashCacheSize)
	if err != nil {
		return nil, nil, &AllocError{Kind: OutOfMemory}
	}
	return buf, pagealloc.Heap.Free, nil
}

// Free releases the context's scratch heap, if any. It is safe to
// call on a nil Context.
func (ctx *Context) Free() {
	if ctx == nil {
		return
	}
	if ctx.oracle != nil {
		ctx.oracle.Free()
	}
	if ctx.heapFree != nil {
		ctx.heapFree(ctx.heapBuf)
	}
	ctx.heap = nil
	ctx.heapBuf = nil
}

// bindChallenge prepares the hash oracle for the given challenge,
// deriving the v2 seed through the keyed Blake2b challenge binder
// first when the context uses HashWX.
func (ctx *Context) bindChallenge(challenge []byte) bool {
	if ctx.flags&V2 != 0 {
		seed := deriveV2Seed(challenge)
		return ctx.oracle.Make(seed[:])
	}
	return ctx.oracle.Make(challenge)
}
