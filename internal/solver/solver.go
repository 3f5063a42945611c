// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package solver implements the Equi-X bucketed meet-in-the-middle
// collision search and the tree-ordering invariants shared with the
// verifier.
package solver

import (
	"encoding/binary"
	"sort"
)

// Equi-X parameters. K is the bucket exponent (reference value 8); the
// solver buckets indices and intermediate items by the low K bits of
// a residue to narrow meet-in-the-middle pairing down from O(2^16) to
// roughly O(2^16 / 2^K) work per bucket pair.
const (
	NumIdx = 8
	MaxSols = 8

	Stage1Mask = (uint64(1) << 15) - 1
	Stage2Mask = (uint64(1) << 30) - 1
	FullMask   = (uint64(1) << 60) - 1

	K          = 8
	NumBuckets = 1 << K

	// Stage1BucketCap and Stage2BucketCap bound the per-bucket
	// occupancy of the two collision tables. Entries beyond the cap
	// are dropped silently: the verifier re-checks every emitted
	// tuple, so a dropped candidate can only cost recall, never
	// soundness.
	Stage1BucketCap = 1024
	Stage2BucketCap = 256

	numIndices = 1 << 16
)

// HashFunc evaluates the challenge-bound per-index hash oracle H(i).
type HashFunc func(idx uint16) uint64

// Solution is an ordered 8-tuple of solver indices.
type Solution [8]uint16

type stage1Item struct {
	idx [2]uint16
	sum uint64
}

type stage2Item struct {
	idx [4]uint16
	sum uint64
}

// hashCache holds H(i) for every i in [0, 2^16) in a flat byte arena,
// so it can be backed by huge-page memory without resorting to
// unsafe-pointer slice aliasing: callers hand in the backing buffer
// and this type only ever reads/writes through encoding/binary.
type hashCache struct {
	buf []byte
}

func newHashCache(buf []byte) *hashCache {
	if len(buf) < numIndices*8 {
		panic("solver: hash cache buffer too small")
	}
	return &hashCache{buf: buf}
}

func (c *hashCache) set(i int, v uint64) {
	binary.LittleEndian.PutUint64(c.buf[i*8:], v)
}

func (c *hashCache) get(i int) uint64 {
	return binary.LittleEndian.Uint64(c.buf[i*8:])
}

// Heap is the solver's reusable scratch region: the hash cache plus
// the stage-1 and stage-2 bucket tables. It carries no state between
// unrelated challenges other than its backing arrays' capacity.
type Heap struct {
	cache        *hashCache
	indexBuckets [NumBuckets][]uint16
	stage1       [NumBuckets][]stage1Item
	stage2       [NumBuckets][]stage2Item
}

// HashCacheSize is the number of bytes NewHeap requires in cacheBuf.
const HashCacheSize = numIndices * 8

// NewHeap builds a solver heap over the given hash-cache arena.
// cacheBuf must be at least HashCacheSize bytes; it is typically
// supplied by a page allocator so the hottest scratch table in the
// pipeline can be huge-page backed.
func NewHeap(cacheBuf []byte) *Heap {
	h := &Heap{cache: newHashCache(cacheBuf)}
	for b := 0; b < NumBuckets; b++ {
		h.indexBuckets[b] = make([]uint16, 0, numIndices/NumBuckets*2)
		h.stage1[b] = make([]stage1Item, 0, Stage1BucketCap)
		h.stage2[b] = make([]stage2Item, 0, Stage2BucketCap)
	}
	return h
}

func (h *Heap) reset() {
	for b := 0; b < NumBuckets; b++ {
		h.indexBuckets[b] = h.indexBuckets[b][:0]
		h.stage1[b] = h.stage1[b][:0]
		h.stage2[b] = h.stage2[b][:0]
	}
}

func bucketKey(residue uint64) int {
	return int(residue & (NumBuckets - 1))
}

func complement(b int) int {
	return (NumBuckets - b) % NumBuckets
}

// Solve runs the three-stage collision search against hash and
// returns every candidate solution that survives post-processing
// (duplicate rejection + tree-ordering canonicalization), bounded to
// MaxSols.
func Solve(hash HashFunc, heap *Heap) []Solution {
	heap.reset()
	populate(hash, heap)
	stage1(heap)
	stage2(heap)
	sols := stage3(heap)
	if len(sols) > MaxSols {
		sols = sols[:MaxSols]
	}
	return sols
}

func populate(hash HashFunc, heap *Heap) {
	for i := 0; i < numIndices; i++ {
		v := hash(uint16(i))
		heap.cache.set(i, v)
		k := bucketKey(v)
		heap.indexBuckets[k] = append(heap.indexBuckets[k], uint16(i))
	}
}

// stage1 finds all pairs (i, j) whose hash sum has its low 15 bits
// zero, using the bucket/complementary-bucket meet-in-the-middle
// scheme, and files survivors into the stage-1 item table, bucketed by
// the next K bits of the sum (bits 15 and up) for stage 2 to pair.
func stage1(heap *Heap) {
	for b := 0; b < NumBuckets; b++ {
		cb := complement(b)
		if b > cb {
			continue
		}
		left := heap.indexBuckets[b]
		if b == cb {
			for li := 0; li < len(left); li++ {
				i := left[li]
				hi := heap.cache.get(int(i))
				for lj := li + 1; lj < len(left); lj++ {
					j := left[lj]
					s := hi + heap.cache.get(int(j))
					if s&Stage1Mask == 0 {
						fileStage1(heap, i, j, s)
					}
				}
			}
			continue
		}
		right := heap.indexBuckets[cb]
		for _, i := range left {
			hi := heap.cache.get(int(i))
			for _, j := range right {
				s := hi + heap.cache.get(int(j))
				if s&Stage1Mask == 0 {
					fileStage1(heap, i, j, s)
				}
			}
		}
	}
}

func fileStage1(heap *Heap, i, j uint16, sum uint64) {
	key := bucketKey(sum >> 15)
	bucket := heap.stage1[key]
	if len(bucket) >= Stage1BucketCap {
		return
	}
	heap.stage1[key] = append(bucket, stage1Item{idx: [2]uint16{i, j}, sum: sum})
}

// stage2 finds pairs of stage-1 items whose combined residue has its
// low 30 bits zero, and files survivors (now 4-tuples) into the
// stage-2 bucket table.
func stage2(heap *Heap) {
	for b := 0; b < NumBuckets; b++ {
		cb := complement(b)
		if b > cb {
			continue
		}
		left := heap.stage1[b]
		if b == cb {
			for li := 0; li < len(left); li++ {
				x := left[li]
				for lj := li + 1; lj < len(left); lj++ {
					y := left[lj]
					joinStage1Pair(heap, x, y)
				}
			}
			continue
		}
		right := heap.stage1[cb]
		for _, x := range left {
			for _, y := range right {
				joinStage1Pair(heap, x, y)
			}
		}
	}
}

func joinStage1Pair(heap *Heap, x, y stage1Item) {
	if !disjoint2(x.idx, y.idx) {
		return
	}
	sum := x.sum + y.sum
	if sum&Stage2Mask != 0 {
		return
	}
	idx := [4]uint16{x.idx[0], x.idx[1], y.idx[0], y.idx[1]}
	key := bucketKey(sum >> 30)
	bucket := heap.stage2[key]
	if len(bucket) >= Stage2BucketCap {
		return
	}
	heap.stage2[key] = append(bucket, stage2Item{idx: idx, sum: sum})
}

// stage3 finds pairs of stage-2 items whose combined residue has its
// low 30 bits zero, i.e. its full 60-bit sum vanishes, assembles the
// 8-tuple and hands it to post-processing.
func stage3(heap *Heap) []Solution {
	var out []Solution
	for b := 0; b < NumBuckets; b++ {
		cb := complement(b)
		if b > cb {
			continue
		}
		left := heap.stage2[b]
		if b == cb {
			for li := 0; li < len(left); li++ {
				u := left[li]
				for lj := li + 1; lj < len(left); lj++ {
					v := left[lj]
					if s, ok := joinStage2Pair(u, v); ok {
						out = append(out, s)
					}
				}
			}
			continue
		}
		right := heap.stage2[cb]
		for _, u := range left {
			for _, v := range right {
				if s, ok := joinStage2Pair(u, v); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func joinStage2Pair(u, v stage2Item) (Solution, bool) {
	if !disjoint4(u.idx, v.idx) {
		return Solution{}, false
	}
	sum := u.sum + v.sum
	if sum&FullMask != 0 {
		return Solution{}, false
	}
	var candidate [8]uint16
	copy(candidate[:4], u.idx[:])
	copy(candidate[4:], v.idx[:])
	return canonicalize(candidate)
}

func disjoint2(a, b [2]uint16) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return false
			}
		}
	}
	return true
}

func disjoint4(a, b [4]uint16) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return false
			}
		}
	}
	return true
}

func hasDuplicateIdx(s [8]uint16) bool {
	sorted := s
	sort.Slice(sorted[:], func(i, j int) bool { return sorted[i] < sorted[j] })
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return true
		}
	}
	return false
}

// cmp2 compares the pairs (a,b) and (c,d) lexicographically: the left
// element decides, the right element breaks a tie.
func cmp2(a, b, c, d uint16) int {
	if a != c {
		if a < c {
			return -1
		}
		return 1
	}
	if b != d {
		if b < d {
			return -1
		}
		return 1
	}
	return 0
}

// cmp4 compares the left and right half of s elementwise.
func cmp4(s [8]uint16) int {
	for i := 0; i < 4; i++ {
		if s[i] != s[i+4] {
			if s[i] < s[i+4] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// TreeOrdered reports whether s satisfies the canonical tree-ordering
// rule: every internal node's left child is strictly less than its
// right sibling, compared elementwise with the left element deciding
// first. Equality at any level is not ordering, it is a duplicate.
func TreeOrdered(s [8]uint16) bool {
	if !(s[0] < s[1] && s[2] < s[3] && s[4] < s[5] && s[6] < s[7]) {
		return false
	}
	if cmp2(s[0], s[1], s[2], s[3]) >= 0 {
		return false
	}
	if cmp2(s[4], s[5], s[6], s[7]) >= 0 {
		return false
	}
	if cmp4(s) >= 0 {
		return false
	}
	return true
}

// canonicalize reorders siblings at each tree level so the ordering
// invariant holds, rejecting the candidate if any of the 8 indices
// coincide or if ordering still fails to hold afterward.
func canonicalize(s [8]uint16) (Solution, bool) {
	if hasDuplicateIdx(s) {
		return Solution{}, false
	}
	for _, p := range [4][2]int{{0, 1}, {2, 3}, {4, 5}, {6, 7}} {
		if s[p[0]] > s[p[1]] {
			s[p[0]], s[p[1]] = s[p[1]], s[p[0]]
		}
	}
	if cmp2(s[0], s[1], s[2], s[3]) > 0 {
		s[0], s[1], s[2], s[3] = s[2], s[3], s[0], s[1]
	}
	if cmp2(s[4], s[5], s[6], s[7]) > 0 {
		s[4], s[5], s[6], s[7] = s[6], s[7], s[4], s[5]
	}
	if cmp4(s) > 0 {
		var t [8]uint16
		copy(t[:4], s[4:])
		copy(t[4:], s[:4])
		s = t
	}
	if !TreeOrdered(s) {
		return Solution{}, false
	}
	return Solution(s), true
}
