// Package bytescan locates every occurrence of a literal byte pattern
// within a file, memory-mapping it and scanning it in parallel when it
// is large enough to be worth the dispatch overhead. See SPEC_FULL.md
// for the full design.
package bytescan

import (
	"context"
	"errors"
	"fmt"

	"bytescan/core"
	"bytescan/region"
)

// Scan returns the ascending absolute byte offsets of every occurrence
// of pattern in the file at path, up to maxMatches occurrences.
func Scan(path string, pattern []byte, maxMatches int) ([]uint64, error) {
	return ScanAOB(path, pattern, nil, maxMatches)
}

// ScanAOB is Scan with an optional same-length mask: a zero byte in mask
// marks the corresponding pattern byte as a wildcard that matches any
// byte. A nil mask (or one of all 0xFF bytes) is an exact-match scan
// identical to Scan.
func ScanAOB(path string, pattern, mask []byte, maxMatches int) ([]uint64, error) {
	if err := validateArgs(path, pattern, mask, maxMatches); err != nil {
		return nil, err
	}

	reg, err := region.Open(path)
	if err != nil {
		return nil, translateRegionErr(err)
	}
	defer reg.Close()

	result, err := core.Execute(core.Request{
		Data:       reg.Bytes(),
		Pattern:    pattern,
		Mask:       mask,
		MaxMatches: maxMatches,
	})
	if err != nil {
		return nil, translateCoreErr(err)
	}

	return result, nil
}

// ScanOutcome is the single value ScanAsync ever sends.
type ScanOutcome struct {
	Matches []uint64
	Err     error
}

// ScanAsync runs ScanAOB on a separate goroutine and returns a buffered,
// size-1 channel that receives exactly one ScanOutcome and is then
// closed. If ctx is cancelled before the scan finishes, ScanAsync does
// not wait for it: it sends an outcome whose Err wraps ctx.Err()
// immediately and lets the in-flight scan finish in the background,
// discarding its result. This mirrors the core's own lack of mid-scan
// cancellation (see SPEC_FULL.md §5) while still letting a caller move
// on promptly.
func ScanAsync(ctx context.Context, path string, pattern, mask []byte, maxMatches int) <-chan ScanOutcome {
	out := make(chan ScanOutcome, 1)
	inner := make(chan ScanOutcome, 1)

	go func() {
		matches, err := ScanAOB(path, pattern, mask, maxMatches)
		inner <- ScanOutcome{Matches: matches, Err: err}
		close(inner)
	}()

	go func() {
		select {
		case res := <-inner:
			out <- res
		case <-ctx.Done():
			out <- ScanOutcome{Err: fmt.Errorf("%w: %w", ErrInternal, ctx.Err())}
		}
		close(out)
	}()

	return out
}

func validateArgs(path string, pattern, mask []byte, maxMatches int) error {
	if path == "" || len(path) > maxPathLen {
		return fmt.Errorf("%w: path length must be in (0, %d]", ErrInvalidArgument, maxPathLen)
	}
	if len(pattern) == 0 || len(pattern) > maxPatternLen {
		return fmt.Errorf("%w: pattern length must be in (0, %d]", ErrInvalidArgument, maxPatternLen)
	}
	if mask != nil && len(mask) != len(pattern) {
		return fmt.Errorf("%w: mask length (%d) must match pattern length (%d)", ErrInvalidArgument, len(mask), len(pattern))
	}
	if maxMatches <= 0 {
		return fmt.Errorf("%w: maxMatches must be positive", ErrInvalidArgument)
	}
	return nil
}

func translateRegionErr(err error) error {
	switch {
	case errors.Is(err, region.ErrOpenFailed):
		return fmt.Errorf("%w: %v", ErrOpenFailed, err)
	case errors.Is(err, region.ErrMapFailed):
		return fmt.Errorf("%w: %v", ErrMapFailed, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func translateCoreErr(err error) error {
	switch {
	case errors.Is(err, core.ErrOutOfMemory):
		return fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
