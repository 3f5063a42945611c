// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package equix

import (
	"encoding/binary"
	"errors"
	"sort"
)

// Solution is an ordered 8-tuple of solver indices.
type Solution [NumIdx]uint16

// ErrWrongSize is returned by Solution.UnmarshalBinary when the input
// is not exactly SolutionSize bytes.
var ErrWrongSize = errors.New("equix: wrong solution encoding size")

// MarshalBinary encodes the solution as EQUIX_NUM_IDX little-endian
// uint16 indices, as accepted by verify implementations across the
// ecosystem.
func (s Solution) MarshalBinary() ([]byte, error) {
	out := make([]byte, SolutionSize)
	for i, idx := range s {
		binary.LittleEndian.PutUint16(out[i*2:], idx)
	}
	return out, nil
}

// UnmarshalBinary decodes a solution from its wire format.
func (s *Solution) UnmarshalBinary(b []byte) error {
	if len(b) != SolutionSize {
		return ErrWrongSize
	}
	for i := range s {
		s[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return nil
}

// hasDuplicates reports whether any two of the solution's indices
// coincide, by sorting a copy and scanning for equal neighbors.
func (s Solution) hasDuplicates() bool {
	sorted := append([]uint16(nil), s[:]...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return true
		}
	}
	return false
}
