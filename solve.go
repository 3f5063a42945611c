// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package equix

import (
	"time"

	"github.com/EXCCoin/equix/internal/solver"
)

// Solve runs the bucketed meet-in-the-middle search against challenge
// and returns every solution that survives post-processing, bounded
// to MaxSols. It returns nil if the context was not allocated with
// Solve, or if the challenge fails to bind the hash oracle.
func (ctx *Context) Solve(challenge []byte) []Solution {
	if ctx.flags&Solve == 0 {
		return nil
	}
	if !ctx.bindChallenge(challenge) {
		log.Warnf("equix: challenge binding failed, emitting 0 solutions")
		return nil
	}

	start := time.Now()
	raw := solver.Solve(ctx.oracle.Exec, ctx.heap)
	log.Tracef("equix: solve took %s, found %d solutions", time.Since(start), len(raw))

	if len(raw) == 0 {
		return nil
	}
	out := make([]Solution, len(raw))
	for i, s := range raw {
		out[i] = Solution(s)
	}
	return out
}
