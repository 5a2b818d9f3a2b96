// Package garr implements fixed-length arrays of group elements and ring
// scalars with batched operations, the carrier-wide Array[G]/Array[Zq]
// abstraction of spec.md §4.2 generalized over any group.Group/group.Ring.
package garr

import (
	"runtime"
	"sync"
)

// forEachRange partitions [0, n) into runtime.GOMAXPROCS(0) contiguous
// ranges and runs f over each range in its own goroutine, joining before
// returning. Partitioning never changes the result: f must be safe to run
// over any contiguous [lo, hi) independently of how the range was chosen.
func forEachRange(n int, f func(lo, hi int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		f(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// rangesOf partitions [0, n) into runtime.GOMAXPROCS(0) contiguous
// [lo, hi) pairs for callers that need to run their own goroutines per
// range instead of going through forEachRange.
func rangesOf(n int) [][2]int {
	if n == 0 {
		return nil
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	var out [][2]int
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}

// forEachRangeErr is forEachRange for operations that can fail; it reports
// the first error encountered across all ranges (not necessarily the first
// index to fail, since ranges run concurrently).
func forEachRangeErr(n int, f func(lo, hi int) error) error {
	if n == 0 {
		return nil
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return f(0, n)
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	errs := make([]error, workers)
	idx := 0
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(i, lo, hi int) {
			defer wg.Done()
			errs[i] = f(lo, hi)
		}(idx, lo, hi)
		idx++
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
