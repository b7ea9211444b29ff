package chunker

import "math/bits"

// FastCDCStrategy implements FastCDC v2020 (Xia et al.): a gear-hash rolling
// checksum evaluated against two masks (strict below the normalization
// point, relaxed above it), processing two bytes per iteration as described
// in section 3.7 of the paper. Sizes and normalization level are fixed to
// match this repository's smallest-granularity chunking profile.
type FastCDCStrategy struct {
	minSize, avgSize, maxSize int
	maskSmall, maskLarge       uint64
	maskSmallShifted           uint64
	maskLargeShifted           uint64
}

const (
	fastMinSize       = 2 * 1024
	fastAvgSize       = 2 * 1024
	fastMaxSize       = 32 * 1024
	fastNormalization = 2
)

// NewFastCDCStrategy builds a FastCDC strategy at this package's fixed size
// profile (2KiB minimum/average, 32KiB maximum, normalization level 2).
func NewFastCDCStrategy() *FastCDCStrategy {
	log2Avg := bits.TrailingZeros(uint(fastAvgSize))
	smallBits := log2Avg + fastNormalization
	largeBits := log2Avg - fastNormalization

	maskS := fastMasks[smallBits]
	maskL := fastMasks[largeBits]

	return &FastCDCStrategy{
		minSize:          fastMinSize,
		avgSize:          fastAvgSize,
		maxSize:          fastMaxSize,
		maskSmall:        maskS,
		maskLarge:        maskL,
		maskSmallShifted: maskS << 1,
		maskLargeShifted: maskL << 1,
	}
}

// Sizes implements Strategy.
func (s *FastCDCStrategy) Sizes() Sizes {
	return Sizes{Min: s.minSize, Avg: s.avgSize, Max: s.maxSize}
}

// NextCut implements Strategy. It only attempts a cut once at least maxSize
// bytes of unscanned data are available, since FastCDC's cut() needs a
// contiguous view up to maxSize to guarantee forward progress; with less
// data available it defers to the driver, which will ask again once more
// bytes have been appended (or flush the residue at end of stream).
func (s *FastCDCStrategy) NextCut(buf *ChunkerBuf) (Range, bool) {
	start := buf.Pos()
	avail := buf.Len() - start
	if avail < s.maxSize {
		return Range{}, false
	}

	data := buf.Slice(start, buf.Len())
	length := s.cut(data)

	buf.SetPos(start + length)
	buf.SetChunkLen(length)
	return buf.InFlightRange(), true
}

func (s *FastCDCStrategy) cut(data []byte) int {
	dataLen := len(data)
	if dataLen <= s.minSize {
		return dataLen
	}

	maxBoundary := dataLen
	if maxBoundary > s.maxSize {
		maxBoundary = s.maxSize
	}
	normalizeBoundary := s.avgSize
	if maxBoundary < normalizeBoundary {
		normalizeBoundary = maxBoundary
	}

	scanStart := s.minSize &^ 1
	normalizeAt := normalizeBoundary &^ 1
	scanEnd := maxBoundary &^ 1

	var fp uint64

	for i := scanStart; i < normalizeAt; i += 2 {
		fp = (fp << 2) + gearShifted[data[i]]
		if fp&s.maskSmallShifted == 0 {
			return i
		}
		fp = fp + gear[data[i+1]]
		if fp&s.maskSmall == 0 {
			return i + 1
		}
	}

	for i := normalizeAt; i < scanEnd; i += 2 {
		fp = (fp << 2) + gearShifted[data[i]]
		if fp&s.maskLargeShifted == 0 {
			return i
		}
		fp = fp + gear[data[i+1]]
		if fp&s.maskLarge == 0 {
			return i + 1
		}
	}

	return maxBoundary
}

// gearShifted is gear with each value left-shifted by 1, used for the
// 2-byte-at-a-time rolling optimization shared by FastCDC and SuperCDC.
var gearShifted [256]uint64

func init() {
	for i := range gear {
		gearShifted[i] = gear[i] << 1
	}
}
