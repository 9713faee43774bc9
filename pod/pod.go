// Package pod decodes POD (plain-old-data) Go structs directly out of a
// mapped region.Region, the same way the teacher repository decoded them
// out of a live process's address space, but retargeted at an immutable
// file region: "pointer" fields become byte offsets within the same
// region rather than addresses in a foreign address space.
package pod

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"unsafe"

	"bytescan/region"
)

// SizeOf returns the in-memory size of T, matching the layout ReadT and
// WriteT use.
func SizeOf[T any]() uint64 {
	var t T
	return uint64(unsafe.Sizeof(t))
}

// WriteT serializes a POD struct T into a raw byte slice using its
// in-memory layout. T must contain no pointers, slices, strings, maps,
// or interfaces for the bytes to be meaningful once copied elsewhere.
func WriteT[T any](v T) []byte {
	size := int(unsafe.Sizeof(v))
	if size == 0 {
		return []byte{}
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(&v)), size)
	out := make([]byte, size)
	copy(out, src)
	return out
}

// ReadT decodes a T starting at offset within r. Struct fields may carry
// a `pod:"char_array"` tag to NUL-clean a fixed-size byte array after
// decoding, or a `pod:"region_offset"` tag on a pointer field to follow
// a little-endian 32- or 64-bit offset elsewhere in the same region and
// recursively decode the pointed-to type there (append ",required" to
// turn a zero or out-of-bounds offset into an error instead of leaving
// the field nil).
func ReadT[T any](r *region.Region, offset uint64) (T, error) {
	var zero T
	size := SizeOf[T]()
	if size == 0 {
		return zero, errors.New("pod: size of T is zero")
	}

	data, err := r.Blob(offset, size)
	if err != nil {
		return zero, err
	}

	var out T
	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() != reflect.Struct {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(&out)), int(size))
		copy(dst, data)
		return out, nil
	}

	if err := decodeInto(r, data, rv); err != nil {
		return zero, err
	}
	return out, nil
}

// ReadSliceT decodes count contiguous, densely-packed Ts starting at offset.
func ReadSliceT[T any](r *region.Region, offset uint64, count int) ([]T, error) {
	if count < 0 {
		return nil, errors.New("pod: count must be non-negative")
	}
	size := SizeOf[T]()
	if size == 0 {
		return []T{}, nil
	}

	total := size * uint64(count)
	data, err := r.Blob(offset, total)
	if err != nil {
		return nil, err
	}

	out := make([]T, count)
	for i := 0; i < count; i++ {
		elemData := data[uint64(i)*size : uint64(i+1)*size]

		rv := reflect.ValueOf(&out[i]).Elem()
		if rv.Kind() != reflect.Struct {
			dst := unsafe.Slice((*byte)(unsafe.Pointer(&out[i])), int(size))
			copy(dst, elemData)
			continue
		}
		if err := decodeInto(r, elemData, rv); err != nil {
			return nil, fmt.Errorf("pod: element %d: %w", i, err)
		}
	}
	return out, nil
}

// decodeInto populates rv (a struct value) field-by-field from data,
// which must be at least as long as rv's type. Pointer fields tagged
// `pod:"region_offset"` are followed into r; all other pointer fields
// are left as their zero value since a raw foreign offset is never a
// meaningful Go pointer.
func decodeInto(r *region.Region, data []byte, rv reflect.Value) error {
	t := rv.Type()

	for i := 0; i < t.NumField(); i++ {
		field := rv.Field(i)
		ft := t.Field(i)
		if !field.CanSet() {
			continue
		}

		off := ft.Offset
		sz := ft.Type.Size()
		if off+sz > uintptr(len(data)) {
			return fmt.Errorf("pod: field %s out of bounds", ft.Name)
		}
		fd := data[off : off+sz]
		tag := ft.Tag.Get("pod")

		switch field.Kind() {
		case reflect.Ptr:
			if !strings.Contains(tag, "region_offset") {
				continue
			}
			if err := followRegionOffset(r, fd, field, ft, tag); err != nil {
				return err
			}

		case reflect.Struct:
			if err := decodeInto(r, fd, field); err != nil {
				return err
			}

		case reflect.Array:
			if field.Type().Elem().Kind() == reflect.Uint8 {
				reflect.Copy(field, reflect.ValueOf(fd))
				if strings.Contains(tag, "char_array") {
					cleanCharArray(field)
				}
			}

		case reflect.Uint8:
			field.SetUint(uint64(fd[0]))
		case reflect.Uint16:
			field.SetUint(uint64(binary.LittleEndian.Uint16(fd)))
		case reflect.Uint32:
			field.SetUint(uint64(binary.LittleEndian.Uint32(fd)))
		case reflect.Uint64:
			field.SetUint(binary.LittleEndian.Uint64(fd))
		case reflect.Int8:
			field.SetInt(int64(int8(fd[0])))
		case reflect.Int16:
			field.SetInt(int64(int16(binary.LittleEndian.Uint16(fd))))
		case reflect.Int32:
			field.SetInt(int64(int32(binary.LittleEndian.Uint32(fd))))
		case reflect.Int64:
			field.SetInt(int64(binary.LittleEndian.Uint64(fd)))
		case reflect.Float32:
			field.SetFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(fd))))
		case reflect.Float64:
			field.SetFloat(math.Float64frombits(binary.LittleEndian.Uint64(fd)))
		case reflect.Bool:
			field.SetBool(fd[0] != 0)
		default:
			// slices, strings, maps, interfaces, funcs, chans: not POD,
			// left at zero value. Platform-sized int/uint/uintptr and
			// complex fields also land here and are left at zero value.
		}
	}

	return nil
}

func followRegionOffset(r *region.Region, fd []byte, field reflect.Value, ft reflect.StructField, tag string) error {
	var off uint64
	switch len(fd) {
	case 4:
		off = uint64(binary.LittleEndian.Uint32(fd))
	case 8:
		off = binary.LittleEndian.Uint64(fd)
	default:
		return nil
	}

	required := strings.Contains(tag, "required")

	if off == 0 {
		if required {
			return fmt.Errorf("pod: required region_offset field %s is zero", ft.Name)
		}
		return nil
	}

	elemType := ft.Type.Elem()
	elemSize := uint64(elemType.Size())

	sub, err := r.Blob(off, elemSize)
	if err != nil {
		if required {
			return fmt.Errorf("pod: region_offset field %s: %w", ft.Name, err)
		}
		return nil
	}

	newObj := reflect.New(elemType)
	if elemType.Kind() == reflect.Struct {
		if err := decodeInto(r, sub, newObj.Elem()); err != nil {
			return fmt.Errorf("pod: region_offset field %s: %w", ft.Name, err)
		}
	} else {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(newObj.Pointer())), int(elemSize))
		copy(dst, sub)
	}

	field.Set(newObj)
	return nil
}

// cleanCharArray NUL-terminates a fixed-size byte array in place,
// zeroing everything after the first NUL byte.
func cleanCharArray(field reflect.Value) {
	if field.Kind() != reflect.Array || field.Type().Elem().Kind() != reflect.Uint8 {
		return
	}
	found := false
	for i := 0; i < field.Len(); i++ {
		if found {
			field.Index(i).SetUint(0)
		} else if field.Index(i).Uint() == 0 {
			found = true
		}
	}
}
