// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package equix

import "github.com/EXCCoin/equix/internal/solver"

const (
	// NumIdx is the number of indices in a solution (EQUIX_NUM_IDX).
	NumIdx = solver.NumIdx

	// MaxSols is the maximum number of solutions solve can emit for a
	// single challenge (EQUIX_MAX_SOLS).
	MaxSols = solver.MaxSols

	// Stage1Mask selects the low 15 bits a stage-1 partial sum must
	// zero out.
	Stage1Mask = solver.Stage1Mask
	// Stage2Mask selects the low 30 bits a stage-2 partial sum must
	// zero out.
	Stage2Mask = solver.Stage2Mask
	// FullMask selects the low 60 bits the final sum must zero out.
	FullMask = solver.FullMask
)

// SolutionSize is the length in bytes of a solution's wire encoding:
// EQUIX_NUM_IDX little-endian uint16 indices.
const SolutionSize = NumIdx * 2
