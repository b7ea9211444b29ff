package chunker

// SuperCDCStrategy is structurally the same gear-hash, two-mask scan as
// FastCDC, but deliberately diverges from it in two ways: it uses a
// separately salted gear table (gearSuper) so the two algorithms never
// degenerate to identical cut points on the same input, and it has a single
// normalization point rather than FastCDC's level-parameterised one.
type SuperCDCStrategy struct {
	minSize, normalSize, maxSize int
	maskSmall, maskLarge         uint64
	maskSmallShifted             uint64
	maskLargeShifted             uint64
}

const (
	superMinSize    = 2 * 1024
	superNormalSize = superMinSize + 8*1024
	superMaxSize    = 64 * 1024
)

// NewSuperCDCStrategy builds a SuperCDC strategy. The mask pair is chosen so
// the region below the normal point is harder to cut (favouring the target
// size) and the region above it is easier to cut (bounding the tail).
func NewSuperCDCStrategy() *SuperCDCStrategy {
	maskS := fastMasks[14] // 16KB-equivalent strictness
	maskL := fastMasks[11] // 2KB-equivalent looseness

	return &SuperCDCStrategy{
		minSize:          superMinSize,
		normalSize:       superNormalSize,
		maxSize:          superMaxSize,
		maskSmall:        maskS,
		maskLarge:        maskL,
		maskSmallShifted: maskS << 1,
		maskLargeShifted: maskL << 1,
	}
}

// Sizes implements Strategy.
func (s *SuperCDCStrategy) Sizes() Sizes {
	return Sizes{Min: s.minSize, Avg: s.normalSize, Max: s.maxSize}
}

// NextCut implements Strategy, following the same buffered-lookahead
// approach as FastCDCStrategy.
func (s *SuperCDCStrategy) NextCut(buf *ChunkerBuf) (Range, bool) {
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

func (s *SuperCDCStrategy) cut(data []byte) int {
	dataLen := len(data)
	if dataLen <= s.minSize {
		return dataLen
	}

	maxBoundary := dataLen
	if maxBoundary > s.maxSize {
		maxBoundary = s.maxSize
	}
	normalizeBoundary := s.normalSize
	if maxBoundary < normalizeBoundary {
		normalizeBoundary = maxBoundary
	}

	scanStart := s.minSize &^ 1
	normalizeAt := normalizeBoundary &^ 1
	scanEnd := maxBoundary &^ 1

	var fp uint64

	for i := scanStart; i < normalizeAt; i += 2 {
		fp = (fp << 2) + gearSuperShifted[data[i]]
		if fp&s.maskSmallShifted == 0 {
			return i
		}
		fp = fp + gearSuper[data[i+1]]
		if fp&s.maskSmall == 0 {
			return i + 1
		}
	}

	for i := normalizeAt; i < scanEnd; i += 2 {
		fp = (fp << 2) + gearSuperShifted[data[i]]
		if fp&s.maskLargeShifted == 0 {
			return i
		}
		fp = fp + gearSuper[data[i+1]]
		if fp&s.maskLarge == 0 {
			return i + 1
		}
	}

	return maxBoundary
}

// gearSuperShifted is gearSuper left-shifted by 1, for the same 2-byte
// rolling optimization FastCDC uses.
var gearSuperShifted [256]uint64

func init() {
	for i := range gearSuper {
		gearSuperShifted[i] = gearSuper[i] << 1
	}
}
