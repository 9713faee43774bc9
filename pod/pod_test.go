package pod

import (
	"os"
	"path/filepath"
	"testing"

	"bytescan/region"
)

type vector3 struct {
	X, Y, Z float32
}

type entity struct {
	ID      uint32
	Health  int32
	Pos     vector3
	Name    [8]byte `pod:"char_array"`
	LinkOff uint32
}

type link struct {
	Value uint64
}

func openRegion(t *testing.T, data []byte) *region.Region {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pod-test.bin")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	r, err := region.Open(path)
	if err != nil {
		t.Fatalf("region.Open: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestWriteTReadTRoundTrip(t *testing.T) {
	want := entity{ID: 7, Health: -3, Pos: vector3{1.5, 2.5, 3.5}}
	copy(want.Name[:], "hero")

	raw := WriteT(want)
	r := openRegion(t, raw)

	got, err := ReadT[entity](r, 0)
	if err != nil {
		t.Fatalf("ReadT: %v", err)
	}

	if got.ID != want.ID || got.Health != want.Health || got.Pos != want.Pos {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if string(got.Name[:4]) != "hero" {
		t.Fatalf("Name = %q", got.Name)
	}
	for i := 4; i < len(got.Name); i++ {
		if got.Name[i] != 0 {
			t.Fatalf("Name not NUL-cleaned past terminator: %v", got.Name)
		}
	}
}

func TestReadSliceT(t *testing.T) {
	vecs := []vector3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	var raw []byte
	for _, v := range vecs {
		raw = append(raw, WriteT(v)...)
	}
	r := openRegion(t, raw)

	got, err := ReadSliceT[vector3](r, 0, len(vecs))
	if err != nil {
		t.Fatalf("ReadSliceT: %v", err)
	}
	for i := range vecs {
		if got[i] != vecs[i] {
			t.Fatalf("element %d: got %+v, want %+v", i, got[i], vecs[i])
		}
	}
}

type withOffsetPointer struct {
	LinkOff *link `pod:"region_offset"`
}

type rawOffsetHeader struct {
	LinkOff uint64
}

func TestDecodeFollowsRegionOffset(t *testing.T) {
	// Lay out a header at offset 0 pointing at a link struct placed right
	// after it.
	headerSize := SizeOf[rawOffsetHeader]()
	linkBytes := WriteT(link{Value: 0xDEADBEEF})

	raw := append(WriteT(rawOffsetHeader{LinkOff: headerSize}), linkBytes...)
	r := openRegion(t, raw)

	got, err := ReadT[withOffsetPointer](r, 0)
	if err != nil {
		t.Fatalf("ReadT: %v", err)
	}
	if got.LinkOff == nil {
		t.Fatal("expected LinkOff to be resolved")
	}
	if got.LinkOff.Value != 0xDEADBEEF {
		t.Fatalf("LinkOff.Value = %#x", got.LinkOff.Value)
	}
}

func TestDecodeLeavesZeroOffsetNil(t *testing.T) {
	raw := WriteT(rawOffsetHeader{LinkOff: 0})
	r := openRegion(t, raw)

	got, err := ReadT[withOffsetPointer](r, 0)
	if err != nil {
		t.Fatalf("ReadT: %v", err)
	}
	if got.LinkOff != nil {
		t.Fatalf("expected nil LinkOff, got %+v", got.LinkOff)
	}
}
