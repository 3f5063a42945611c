// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// equix-solve solves a single challenge and verifies every emitted
// solution, printing the wire-format encoding of each.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/EXCCoin/equix"
)

type options struct {
	Challenge string `long:"challenge" description:"hex-encoded challenge bytes"`
	V2        bool   `long:"v2" description:"use the HashWX (v2) oracle"`
	Interpret bool   `long:"interpret" description:"use the interpreted hash backend"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "equix-solve:", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	challenge, err := hex.DecodeString(opts.Challenge)
	if err != nil {
		return fmt.Errorf("decode --challenge: %w", err)
	}

	flagBits := equix.Solve
	if !opts.Interpret {
		flagBits |= equix.Compile
	}
	if opts.V2 {
		flagBits |= equix.V2
	}

	ctx, err := equix.Alloc(flagBits)
	if err != nil {
		return fmt.Errorf("alloc: %w", err)
	}
	defer ctx.Free()

	sols := ctx.Solve(challenge)
	fmt.Printf("%d solution(s)\n", len(sols))
	for _, sol := range sols {
		wire, _ := sol.MarshalBinary()
		res := ctx.Verify(challenge, sol)
		fmt.Printf("%s idx=%v verify=%s\n", hex.EncodeToString(wire), sol, res)
	}
	return nil
}
