// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"

	"github.com/EXCCoin/equix"
)

var (
	logRotator *rotator.Rotator

	backendLog = slog.NewBackend(logWriter{})
	log        = backendLog.Logger("BENC")
)

// logWriter mirrors the stdout+rotating-file fan-out every exccd/dcrd
// subsystem writes through.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

func initLogRotator(logFile string) error {
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

func setLogLevel(level slog.Level) {
	log.SetLevel(level)
	equxLog := backendLog.Logger("EQUX")
	equxLog.SetLevel(level)
	equix.UseLogger(equxLog)
}
