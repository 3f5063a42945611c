// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package equix

// Result is the outcome of Verify.
type Result uint8

const (
	// ResultOK means the solution is valid.
	ResultOK Result = iota
	// ResultChallenge means the challenge failed to bind the hash
	// oracle.
	ResultChallenge
	// ResultOrder means the solution violates the tree-ordering rule.
	ResultOrder
	// ResultDuplicates means two or more of the solution's indices
	// coincide.
	ResultDuplicates
	// ResultPartialSum means an intermediate (stage-1 or stage-2) sum
	// has nonzero low bits.
	ResultPartialSum
	// ResultFinalSum means the full 8-hash sum has nonzero low 60
	// bits.
	ResultFinalSum
)

var resultNames = [...]string{
	ResultOK:         "OK",
	ResultChallenge:  "CHALLENGE",
	ResultOrder:      "ORDER",
	ResultDuplicates: "DUPLICATES",
	ResultPartialSum: "PARTIAL_SUM",
	ResultFinalSum:   "FINAL_SUM",
}

// String implements fmt.Stringer. Numeric ordering of the Result
// constants is part of the wire/ABI contract: tools that print result
// names by index rely on it.
func (r Result) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "UNKNOWN"
}
