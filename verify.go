// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package equix

import "github.com/EXCCoin/equix/internal/solver"

// Verify re-evaluates the tree of sums for a claimed solution and
// enforces ordering and uniqueness. Checks run in cheapest-first
// order with early exit, per the earliest-failing-check policy: tree
// ordering, then challenge binding, then index uniqueness, then the
// partial and final sums.
func (ctx *Context) Verify(challenge []byte, sol Solution) Result {
	if !solver.TreeOrdered(sol) {
		return ResultOrder
	}
	if !ctx.bindChallenge(challenge) {
		return ResultChallenge
	}
	if sol.hasDuplicates() {
		return ResultDuplicates
	}
	return ctx.verifySums(sol)
}

func (ctx *Context) verifySums(sol Solution) Result {
	h := ctx.oracle.Exec

	pair0 := h(sol[0]) + h(sol[1])
	if pair0&Stage1Mask != 0 {
		return ResultPartialSum
	}
	pair1 := h(sol[2]) + h(sol[3])
	if pair1&Stage1Mask != 0 {
		return ResultPartialSum
	}
	pair4 := pair0 + pair1
	if pair4&Stage2Mask != 0 {
		return ResultPartialSum
	}

	pair2 := h(sol[4]) + h(sol[5])
	if pair2&Stage1Mask != 0 {
		return ResultPartialSum
	}
	pair3 := h(sol[6]) + h(sol[7])
	if pair3&Stage1Mask != 0 {
		return ResultPartialSum
	}
	pair5 := pair2 + pair3
	if pair5&Stage2Mask != 0 {
		return ResultPartialSum
	}

	pair6 := pair4 + pair5
	if pair6&FullMask != 0 {
		return ResultFinalSum
	}
	return ResultOK
}
