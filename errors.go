// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package equix

import "errors"

// ErrNotSupported is returned by Alloc when the requested combination
// of flags is not available on this host (EQUIX_NOTSUPP). Callers can
// retry with a different backend, e.g. dropping Compile.
var ErrNotSupported = errors.New("equix: requested configuration not supported on this host")

// AllocErrorKind classifies why Alloc failed.
type AllocErrorKind uint8

const (
	// Unsupported means the requested flag combination has no backend
	// on this host; equivalent to ErrNotSupported.
	Unsupported AllocErrorKind = iota
	// OutOfMemory means scratch-heap allocation failed outright. A Go
	// runtime rarely surfaces this as an error return rather than a
	// fatal allocation failure; it is retained for API parity with
	// the C allocator this module replaces. A failed huge-page mapping
	// never produces it: Alloc falls back to ordinary heap memory.
	OutOfMemory
)

// AllocError reports why Context allocation failed.
type AllocError struct {
	Kind AllocErrorKind
}

func (e *AllocError) Error() string {
	switch e.Kind {
	case Unsupported:
		return "equix: unsupported configuration"
	case OutOfMemory:
		return "equix: scratch heap allocation failed"
	default:
		return "equix: allocation failed"
	}
}
