package core

import (
	"reflect"
	"testing"
)

func TestScanRangeFindsEveryMatch(t *testing.T) {
	got := ScanRange([]byte("hello world hello"), []byte("hello"), nil, 10)
	want := []uint64{0, 12}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanRangeSelfOverlapping(t *testing.T) {
	got := ScanRange([]byte("AAAA"), []byte("AA"), nil, 10)
	want := []uint64{0, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanRangeCapTruncates(t *testing.T) {
	got := ScanRange([]byte("abcabcabc"), []byte("abc"), nil, 2)
	want := []uint64{0, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanRangeEmptyData(t *testing.T) {
	if got := ScanRange([]byte{}, []byte("x"), nil, 10); got != nil {
		t.Fatalf("expected nil for empty data, got %v", got)
	}
}

func TestScanRangePatternLongerThanData(t *testing.T) {
	if got := ScanRange([]byte("hi"), []byte("hello"), nil, 10); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestScanRangeWildcardFirstByteFallsBackToScalar(t *testing.T) {
	data := []byte{0x11, 0xAB, 0x22, 0xCD, 0xAB}
	pattern := []byte{0x00, 0xAB}
	mask := []byte{0x00, 0xFF}
	got := ScanRange(data, pattern, mask, 10)
	want := []uint64{0, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanRangeCrossesEightByteWordBoundary(t *testing.T) {
	data := make([]byte, 20)
	copy(data[6:], []byte("NEEDLE"))
	got := ScanRange(data, []byte("NEEDLE"), nil, 10)
	want := []uint64{6}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
