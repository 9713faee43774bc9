package bytescan

import "errors"

// Closed error taxonomy for the scan surface. Every failure returned by
// Scan, ScanAOB, or ScanAsync satisfies errors.Is against exactly one of
// these.
var (
	// ErrInvalidArgument marks a boundary violation: empty pattern,
	// mismatched mask length, non-positive max-matches, or an oversize
	// path.
	ErrInvalidArgument = errors.New("bytescan: invalid argument")

	// ErrOpenFailed marks a file that could not be opened for reading.
	ErrOpenFailed = errors.New("bytescan: open failed")

	// ErrMapFailed marks a file whose contents could not be mapped.
	ErrMapFailed = errors.New("bytescan: map failed")

	// ErrOutOfMemory marks an allocation failure anywhere in the scan.
	ErrOutOfMemory = errors.New("bytescan: out of memory")

	// ErrInternal marks an unanticipated dispatch or join failure.
	ErrInternal = errors.New("bytescan: internal error")
)

const (
	maxPatternLen = 4096
	maxPathLen    = 1023
)
