// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package equix

import (
	blake2simd "github.com/minio/blake2b-simd"

	"github.com/EXCCoin/equix/internal/hashwx"
)

// v2Salt is the fixed Equi-X v2 challenge-binder salt.
var v2Salt = []byte("Equi-X v2")

// deriveV2Seed compresses an arbitrary-length challenge into the
// fixed HASHWX_SEED_SIZE seed that keys the v2 oracle, using the
// Blake2b parameter block from the challenge binder: a keyed digest
// with digest_length = HASHWX_SEED_SIZE, fanout = depth = 1 and the
// "Equi-X v2" salt, key and personalization left empty. This mirrors
// equihash.newHash's blake2b.Config-based construction.
func deriveV2Seed(challenge []byte) [hashwx.SeedSize]byte {
	h, err := blake2simd.New(&blake2simd.Config{
		Salt: v2Salt,
		Size: hashwx.SeedSize,
	})
	if err != nil {
		panic("equix: blake2b seed derivation: " + err.Error())
	}
	h.Write(challenge)

	var seed [hashwx.SeedSize]byte
	copy(seed[:], h.Sum(nil))
	return seed
}
