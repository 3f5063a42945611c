// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !linux

package pagealloc

// HugePages falls back to ordinary heap memory on platforms without a
// huge-page mapping primitive wired up here. Requesting HUGEPAGES on
// these platforms is never a hard failure, only a missed optimization.
var HugePages Allocator = heapAllocator{}
