package core

import "bytescan/internal/swar"

// ScanRange locates all occurrences of pattern (under mask) within data,
// writing up to cap ascending offsets relative to the start of data. It
// never reports an offset o with o+len(pattern) > len(data).
//
// The prefilter only works cheaply when pattern[0] (and, for two-byte
// prefiltering, pattern[1]) are exact-match bytes under mask; if the
// first byte is a wildcard there is no cheap way to narrow candidates,
// so ScanRange falls back to verifying every position directly. Patterns
// with a wildcard first byte are rare in practice (an AOB pattern that
// starts "?? ..." gives the prefilter nothing to anchor on) and this
// keeps the common case fast without complicating the hot loop.
func ScanRange(data []byte, pattern, mask []byte, cap int) []uint64 {
	p := len(pattern)
	if cap <= 0 || p == 0 || len(data) < p {
		return nil
	}

	if mask != nil && mask[0] == 0 {
		return scanScalarFull(data, pattern, mask, cap)
	}

	out := make([]uint64, 0, min(cap, 4096))

	bc0 := swar.Broadcast8(pattern[0])
	usePair := p > 1 && !(mask != nil && mask[1] == 0)
	var bc1 uint64
	if usePair {
		bc1 = swar.Broadcast8(pattern[1])
	}

	limit := len(data) - p // last position where pattern could fit
	cursor := 0

	for cursor+8 <= len(data) {
		w0 := swar.LoadWord(data[cursor : cursor+8])
		m0 := swar.LaneMatchMask(w0, bc0)

		if usePair && cursor+9 <= len(data) {
			w1 := swar.LoadWord(data[cursor+1 : cursor+9])
			m1 := swar.LaneMatchMask(w1, bc1)
			m0 &= m1
		}

		for m0 != 0 {
			var lane int
			lane, m0 = swar.NextLane(m0)
			pos := cursor + lane
			if pos > limit {
				continue
			}
			if Verify(data, pos, pattern, mask) {
				out = append(out, uint64(pos))
				if len(out) == cap {
					return out
				}
			}
		}

		cursor += 8
	}

	// Scalar tail.
	for ; cursor <= limit; cursor++ {
		if data[cursor] != pattern[0] {
			continue
		}
		if usePair && data[cursor+1] != pattern[1] {
			continue
		}
		if Verify(data, cursor, pattern, mask) {
			out = append(out, uint64(cursor))
			if len(out) == cap {
				return out
			}
		}
	}

	return out
}

// scanScalarFull is the fallback used when the prefilter has no usable
// anchor byte (pattern[0] is a wildcard under mask).
func scanScalarFull(data []byte, pattern, mask []byte, cap int) []uint64 {
	p := len(pattern)
	limit := len(data) - p
	out := make([]uint64, 0, min(cap, 4096))
	for pos := 0; pos <= limit; pos++ {
		if Verify(data, pos, pattern, mask) {
			out = append(out, uint64(pos))
			if len(out) == cap {
				return out
			}
		}
	}
	return out
}
