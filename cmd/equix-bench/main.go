// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// equix-bench solves a range of nonces and reports solve and verify
// throughput, porting tevador/equix's src/bench.c nonce sweep onto
// goroutines in place of its hashx_thread worker pool.
package main

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/decred/slog"
	"github.com/jessevdk/go-flags"

	"github.com/EXCCoin/equix"
)

type options struct {
	Nonces    int  `long:"nonces" default:"500" description:"solve N nonces"`
	Start     int  `long:"start" default:"0" description:"start with nonce S"`
	Threads   int  `long:"threads" default:"1" description:"use T goroutines"`
	Interpret bool `long:"interpret" description:"use the interpreted hash backend"`
	HugePages bool `long:"hugepages" description:"use huge-page scratch memory"`
	V2        bool `long:"v2" description:"use the HashWX (v2) oracle"`
	PrintSols bool `long:"sols" description:"print all solutions"`
	Verbose   bool `long:"verbose" description:"enable debug logging"`
	LogFile   string `long:"logfile" default:"equix-bench.log" description:"log file path"`
}

type nonceResult struct {
	nonce int
	sols  []equix.Solution
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "equix-bench:", err)
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

	if err := initLogRotator(opts.LogFile); err != nil {
		return fmt.Errorf("init log rotator: %w", err)
	}
	if opts.Verbose {
		setLogLevel(slog.LevelDebug)
	} else {
		setLogLevel(slog.LevelInfo)
	}

	flagBits := equix.Solve
	if !opts.Interpret {
		flagBits |= equix.Compile
	}
	if opts.HugePages {
		flagBits |= equix.HugePages
	}
	if opts.V2 {
		flagBits |= equix.V2
	}

	if opts.Threads < 1 {
		opts.Threads = 1
	}

	ctxs := make([]*equix.Context, opts.Threads)
	for i := range ctxs {
		ctx, err := equix.Alloc(flagBits)
		if err != nil {
			return fmt.Errorf("alloc context %d: %w", i, err)
		}
		defer ctx.Free()
		ctxs[i] = ctx
	}

	log.Infof("solving nonces %d-%d (interpret: %v, hugepages: %v, threads: %d)",
		opts.Start, opts.Start+opts.Nonces-1, opts.Interpret, opts.HugePages, opts.Threads)

	results := make([]nonceResult, opts.Nonces)
	var wg sync.WaitGroup
	solveStart := time.Now()
	for t := 0; t < opts.Threads; t++ {
		wg.Add(1)
		go func(thread int) {
			defer wg.Done()
			ctx := ctxs[thread]
			for n := thread; n < opts.Nonces; n += opts.Threads {
				nonce := opts.Start + n
				var challenge [4]byte
				binary.LittleEndian.PutUint32(challenge[:], uint32(nonce))
				results[n] = nonceResult{nonce: nonce, sols: ctx.Solve(challenge[:])}
			}
		}(t)
	}
	wg.Wait()
	solveElapsed := time.Since(solveStart)

	totalSols := 0
	for _, r := range results {
		totalSols += len(r.sols)
	}
	fmt.Printf("%f solutions/nonce\n", float64(totalSols)/float64(opts.Nonces))
	fmt.Printf("%f solutions/sec. (%d thread(s))\n",
		float64(totalSols)/solveElapsed.Seconds(), opts.Threads)

	if opts.PrintSols {
		for _, r := range results {
			for _, sol := range r.sols {
				printSolution(r.nonce, sol)
			}
		}
	}

	verifyStart := time.Now()
	verifyCtx := ctxs[0]
	invalid := 0
	for _, r := range results {
		var challenge [4]byte
		binary.LittleEndian.PutUint32(challenge[:], uint32(r.nonce))
		for _, sol := range r.sols {
			if res := verifyCtx.Verify(challenge[:], sol); res != equix.ResultOK {
				invalid++
				fmt.Printf("invalid solution (%s):\n", res)
				printSolution(r.nonce, sol)
			}
		}
	}
	verifyElapsed := time.Since(verifyStart)
	fmt.Printf("%f verifications/sec. (1 thread)\n", float64(totalSols)/verifyElapsed.Seconds())
	if invalid > 0 {
		return fmt.Errorf("%d solutions failed verification", invalid)
	}
	return nil
}

func printSolution(nonce int, sol equix.Solution) {
	var nb [4]byte
	binary.LittleEndian.PutUint32(nb[:], uint32(nonce))
	fmt.Printf("%s : { ", hex.EncodeToString(nb[:]))
	for i, idx := range sol {
		sep := ", "
		if i == len(sol)-1 {
			sep = ""
		}
		fmt.Printf("%#06x%s", idx, sep)
	}
	fmt.Println(" }")
}
