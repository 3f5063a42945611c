// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package equix implements the Equi-X client-puzzle proof-of-work
// scheme: a bucketed meet-in-the-middle solver and a cheap verifier
// built over a keyed per-index hash oracle (HashX v1 or HashWX v2).
//
// A Context owns the hash oracle and, if solving is enabled, the
// solver's scratch heap:
//
//	ctx, err := equix.Alloc(equix.Solve | equix.Compile)
//	if err != nil {
//		// err is equix.ErrNotSupported or an allocation failure.
//	}
//	defer ctx.Free()
//
//	sols := ctx.Solve(challenge)
//	for _, sol := range sols {
//		if ctx.Verify(challenge, sol) != equix.ResultOK {
//			panic("solver emitted a solution that fails verification")
//		}
//	}
package equix
