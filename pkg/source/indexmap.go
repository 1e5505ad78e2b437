package source

import "sort"

// IndexMapEntry is a single breakpoint of an IndexMap.
//
// Every cleaned offset at or after CleanOffset (and before the next
// breakpoint) maps to the source offset CleanOffset+Shift.
type IndexMapEntry struct {
	// CleanOffset is the byte offset in the preprocessed string where the
	// segment starts.
	CleanOffset int

	// Shift is the number of source bytes removed before this segment.
	Shift int
}

// IndexMap translates byte offsets in preprocessed text back to byte offsets
// in the original source.
//
// Entries are sorted by CleanOffset and shifts never decrease. An empty map
// is the identity.
type IndexMap []IndexMapEntry

// Apply maps a cleaned offset to the corresponding source offset.
// Offsets at or past the end of the cleaned text map past the last segment.
func (m IndexMap) Apply(offset int) int {
	idx := sort.Search(len(m), func(i int) bool {
		return m[i].CleanOffset > offset
	})
	if idx == 0 {
		return offset
	}
	return offset + m[idx-1].Shift
}

// Shift returns the accumulated shift that applies at the given cleaned offset.
func (m IndexMap) Shift(offset int) int {
	return m.Apply(offset) - offset
}

// Clone returns a copy of the map that shares no storage with m.
func (m IndexMap) Clone() IndexMap {
	if m == nil {
		return nil
	}
	out := make(IndexMap, len(m))
	copy(out, m)
	return out
}

// firstAtOrAfter returns the smallest offset o such that m.Apply(o) >= target.
func (m IndexMap) firstAtOrAfter(target int) int {
	// Segment starts in mapped coordinates (CleanOffset+Shift) strictly increase.
	idx := sort.Search(len(m), func(i int) bool {
		return m[i].CleanOffset+m[i].Shift > target
	})

	shift := 0
	if idx > 0 {
		shift = m[idx-1].Shift
	}

	offset := target - shift
	if idx < len(m) && offset > m[idx].CleanOffset {
		// Target falls inside a removed region; the next segment is the
		// first one that maps at or after it.
		offset = m[idx].CleanOffset
	}
	return offset
}

// Compose returns the map equivalent to applying outer first and then inner.
//
// outer translates offsets of the newest text into offsets of an intermediate
// text, inner translates intermediate offsets into source offsets.
func Compose(outer, inner IndexMap) IndexMap {
	if len(inner) == 0 {
		return outer.Clone()
	}
	if len(outer) == 0 {
		return inner.Clone()
	}

	candidates := make([]int, 0, len(outer)+len(inner))
	for _, entry := range outer {
		candidates = append(candidates, entry.CleanOffset)
	}
	for _, entry := range inner {
		candidates = append(candidates, outer.firstAtOrAfter(entry.CleanOffset))
	}
	sort.Ints(candidates)

	result := make(IndexMap, 0, len(candidates))
	lastShift := 0
	for i, offset := range candidates {
		if i > 0 && offset == candidates[i-1] {
			continue
		}
		shift := inner.Apply(outer.Apply(offset)) - offset
		if shift == lastShift {
			continue
		}
		result = append(result, IndexMapEntry{CleanOffset: offset, Shift: shift})
		lastShift = shift
	}
	return result
}
