// Package region memory-maps a file read-only and exposes it as an
// immutable byte region with OS-level read-ahead hints.
package region

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

var (
	// ErrOpenFailed is returned when a path cannot be opened for reading
	// or its size cannot be obtained.
	ErrOpenFailed = errors.New("region: open failed")

	// ErrMapFailed is returned when the OS cannot map the file into the
	// process address space.
	ErrMapFailed = errors.New("region: map failed")

	// ErrOutOfBounds is returned by the typed accessors in accessor.go
	// when a read would fall outside the region.
	ErrOutOfBounds = errors.New("region: read out of bounds")
)

// Region is an immutable, contiguous, read-only view of a file's bytes.
// A zero-length file produces a valid Region with Len() == 0.
type Region struct {
	data   []byte
	file   *os.File
	mapped bool // true when data backs onto a real OS mapping, not a copy
	once   sync.Once

	log *logger.Logger
}

// Open maps path read-only and returns a Region. The Region must be
// released with Close once the caller is done with it.
func Open(path string) (*Region, error) {
	log := logger.NewLogger(coloransi.Color(coloransi.Blue, coloransi.ColorOrange, "region"))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}

	size := fi.Size()
	if size == 0 {
		log.Debugln("opened zero-length region for", path)
		return &Region{file: f, log: log}, nil
	}

	data, mapped, err := mapFile(f, size)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", ErrMapFailed, err)
	}

	adviseFile(f, data)

	log.Infoln("mapped region of", size, "bytes for", path, "(mapped=", mapped, ")")

	return &Region{data: data, file: f, mapped: mapped, log: log}, nil
}

// Len returns the region's length in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// Bytes returns the region's backing slice. Callers must not retain it
// past Close and must never write through it.
func (r *Region) Bytes() []byte {
	return r.data
}

// Close releases the region. It is idempotent: a second call is a no-op.
func (r *Region) Close() error {
	r.once.Do(func() {
		if r.data != nil {
			unmapFile(r.data, r.mapped)
		}
		if r.file != nil {
			_ = r.file.Close()
		}
		if r.log != nil {
			r.log.Debugln("region closed")
		}
	})
	return nil
}
