// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package equix

import "github.com/decred/slog"

// log is the package-wide subsystem logger. It is disabled by
// default so importing this module produces no output unless a
// caller wires a backend in via UseLogger, following the same
// convention as the rest of the exccd/dcrd subsystems.
var log = slog.Disabled

// DisableLog disables all library log output.
func DisableLog() {
	log = slog.Disabled
}

// UseLogger sets the subsystem logger used by this package.
func UseLogger(logger slog.Logger) {
	log = logger
}
