// Package core implements the parallel SIMD scanning engine: the
// Verifier, the single-thread Scanner, and the Parallel Executor that
// partitions a region across worker goroutines and merges their results
// into one ordered, capped offset list.
package core

import (
	"errors"
	"runtime"
	"sync"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

var (
	// ErrOutOfMemory is returned when allocating a result buffer fails.
	ErrOutOfMemory = errors.New("core: allocation failure")

	// ErrInternal covers dispatch/join failures that are not otherwise
	// classified; workers themselves cannot fail a scan.
	ErrInternal = errors.New("core: internal dispatch failure")
)

// parallelThreshold is the data length below which Execute runs the
// Single-thread Scanner directly instead of paying goroutine dispatch
// overhead. 256 KiB, per the resolved parallel-threshold redesign flag.
const parallelThreshold = 256 * 1024

// Request is an immutable description of one scan.
type Request struct {
	Data       []byte
	Pattern    []byte
	Mask       []byte // nil or all-0xFF means exact match
	MaxMatches int
}

var log = logger.NewLogger(coloransi.Color(coloransi.Green, coloransi.ColorOrange, "executor"))

// Execute runs req.Data through the scanning core and returns ascending,
// deduplicated, capped absolute offsets.
func Execute(req Request) ([]uint64, error) {
	if req.MaxMatches <= 0 {
		return nil, nil
	}

	data := req.Data
	p := len(req.Pattern)

	if len(data) < parallelThreshold || p == 0 {
		log.Debugln("serial scan of", len(data), "bytes")
		return ScanRange(data, req.Pattern, req.Mask, req.MaxMatches), nil
	}

	w := max(1, runtime.NumCPU()-1)
	chunk := len(data) / w

	log.Infoln("parallel scan of", len(data), "bytes across", w, "workers")

	type workerResult struct {
		logicalStart uint64
		logicalEnd   uint64
		physicalBase uint64
		offsets      []uint64
	}

	results := make([]workerResult, w)
	var wg sync.WaitGroup

	for i := 0; i < w; i++ {
		logicalStart := uint64(i * chunk)
		var logicalEnd uint64
		if i == w-1 {
			logicalEnd = uint64(len(data))
		} else {
			logicalEnd = uint64((i + 1) * chunk)
		}

		physicalStart := int(logicalStart) - (p - 1)
		if physicalStart < 0 {
			physicalStart = 0
		}

		var physicalEnd int
		if i == w-1 {
			physicalEnd = len(data)
		} else {
			physicalEnd = int(logicalEnd) + (p - 1)
			if physicalEnd > len(data) {
				physicalEnd = len(data)
			}
		}

		results[i].logicalStart = logicalStart
		results[i].logicalEnd = logicalEnd
		results[i].physicalBase = uint64(physicalStart)

		if physicalStart >= physicalEnd {
			continue
		}

		wg.Add(1)
		go func(idx, start, end int) {
			defer wg.Done()
			local := ScanRange(data[start:end], req.Pattern, req.Mask, req.MaxMatches)
			results[idx].offsets = local
		}(i, physicalStart, physicalEnd)
	}

	wg.Wait()

	final := make([]uint64, 0, req.MaxMatches)
	for i := 0; i < w; i++ {
		r := results[i]
		for _, rel := range r.offsets {
			abs := r.physicalBase + rel
			if abs < r.logicalStart || abs >= r.logicalEnd {
				// Belongs to a neighboring worker's logical range;
				// it was only visible here because of seam overlap.
				continue
			}
			final = append(final, abs)
			if len(final) == req.MaxMatches {
				log.Infoln("parallel scan complete, truncated at", req.MaxMatches, "matches")
				return final, nil
			}
		}
	}

	log.Infoln("parallel scan complete,", len(final), "matches")
	return final, nil
}
