package region

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Blob returns a bounds-checked, zero-copy window into the region's
// backing slice. The returned slice aliases the region and must not be
// retained past Close.
func (r *Region) Blob(offset, size uint64) ([]byte, error) {
	end := offset + size
	if size == 0 {
		return nil, nil
	}
	if end < offset || end > uint64(len(r.data)) {
		return nil, fmt.Errorf("%w: offset %d size %d region length %d", ErrOutOfBounds, offset, size, len(r.data))
	}
	return r.data[offset:end], nil
}

func (r *Region) field(offset uint64, size int) ([]byte, error) {
	return r.Blob(offset, uint64(size))
}

// ReadUint8 reads an unsigned 8-bit integer at offset.
func (r *Region) ReadUint8(offset uint64) (uint8, error) {
	d, err := r.field(offset, 1)
	if err != nil {
		return 0, err
	}
	return d[0], nil
}

// ReadUint16 reads a little-endian unsigned 16-bit integer at offset.
func (r *Region) ReadUint16(offset uint64) (uint16, error) {
	d, err := r.field(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(d), nil
}

// ReadUint32 reads a little-endian unsigned 32-bit integer at offset.
func (r *Region) ReadUint32(offset uint64) (uint32, error) {
	d, err := r.field(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(d), nil
}

// ReadUint64 reads a little-endian unsigned 64-bit integer at offset.
func (r *Region) ReadUint64(offset uint64) (uint64, error) {
	d, err := r.field(offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(d), nil
}

// ReadInt8 reads a signed 8-bit integer at offset.
func (r *Region) ReadInt8(offset uint64) (int8, error) {
	v, err := r.ReadUint8(offset)
	return int8(v), err
}

// ReadInt16 reads a little-endian signed 16-bit integer at offset.
func (r *Region) ReadInt16(offset uint64) (int16, error) {
	v, err := r.ReadUint16(offset)
	return int16(v), err
}

// ReadInt32 reads a little-endian signed 32-bit integer at offset.
func (r *Region) ReadInt32(offset uint64) (int32, error) {
	v, err := r.ReadUint32(offset)
	return int32(v), err
}

// ReadInt64 reads a little-endian signed 64-bit integer at offset.
func (r *Region) ReadInt64(offset uint64) (int64, error) {
	v, err := r.ReadUint64(offset)
	return int64(v), err
}

// ReadFloat32 reads a little-endian IEEE-754 single-precision float at offset.
func (r *Region) ReadFloat32(offset uint64) (float32, error) {
	v, err := r.ReadUint32(offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads a little-endian IEEE-754 double-precision float at offset.
func (r *Region) ReadFloat64(offset uint64) (float64, error) {
	v, err := r.ReadUint64(offset)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadNTS reads a NUL-terminated string starting at offset, scanning at
// most maxLength bytes. If no NUL byte is found within maxLength bytes,
// the whole window is returned as the string.
func (r *Region) ReadNTS(offset uint64, maxLength uint64) (string, error) {
	if maxLength == 0 {
		return "", nil
	}
	d, err := r.Blob(offset, maxLength)
	if err != nil {
		return "", err
	}
	for i, b := range d {
		if b == 0 {
			return string(d[:i]), nil
		}
	}
	return string(d), nil
}
