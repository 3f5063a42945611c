// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build linux

package pagealloc

import "golang.org/x/sys/unix"

type hugePageAllocator struct{}

func (hugePageAllocator) Alloc(size int) ([]byte, error) {
	buf, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_HUGETLB)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (hugePageAllocator) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	_ = unix.Munmap(buf)
}

// HugePages is the huge-page-backed allocator on platforms that
// support MAP_HUGETLB. Callers should treat any error from Alloc as a
// signal to fall back to Heap rather than a hard failure.
var HugePages Allocator = hugePageAllocator{}
