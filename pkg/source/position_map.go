package source

import "sort"

// MapEntry anchors a processed offset to its raw origin.
// Text after the anchor, up to the next entry, was copied verbatim, so the
// raw offset and column of any later byte follow by adding the residual delta.
type MapEntry struct {
	// Processed is the offset into the preprocessed text.
	Processed int

	// Raw is the offset into the raw file text.
	Raw int

	// Line is the 1-based raw line at Raw.
	Line int

	// Column is the 1-based raw column at Raw.
	Column int
}

// PositionMap translates positions to raw line/column.
// Entries are strictly increasing by Processed and non-decreasing by Raw.
type PositionMap struct {
	entries []MapEntry
}

// initialEntryCapacity is a guess at the number of lines in a typical header.
const initialEntryCapacity = 128

// NewPositionMap creates a map holding the origin entry (0, 0, 1, 1).
func NewPositionMap() *PositionMap {
	entries := make([]MapEntry, 1, initialEntryCapacity)
	entries[0] = MapEntry{Processed: 0, Raw: 0, Line: 1, Column: 1}
	return &PositionMap{entries: entries}
}

// Add appends an entry. An entry sharing the last entry's processed offset
// replaces it, so the map never holds two entries for one processed offset.
// The origin entry is never replaced: processed offset 0 always resolves
// to line 1, column 1.
func (m *PositionMap) Add(processed, raw, line, column int) {
	entry := MapEntry{Processed: processed, Raw: raw, Line: line, Column: column}

	last := len(m.entries) - 1
	if m.entries[last].Processed == processed {
		if last > 0 {
			m.entries[last] = entry
		}
		return
	}

	m.entries = append(m.entries, entry)
}

// Len returns the number of entries.
func (m *PositionMap) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the entries.
func (m *PositionMap) Entries() []MapEntry {
	out := make([]MapEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Entry returns the closest entry at or before pos in pos's coordinate space.
func (m *PositionMap) Entry(pos Position) MapEntry {
	return m.entries[m.entryIndex(pos)]
}

// LineAndColumn resolves pos to a raw 1-based line and column.
func (m *PositionMap) LineAndColumn(pos Position) LineColumn {
	entry := m.Entry(pos)

	anchor := entry.Processed
	if pos.Space == SpaceRaw {
		anchor = entry.Raw
	}

	return LineColumn{
		Line:   entry.Line,
		Column: entry.Column + (pos.Offset - anchor),
	}
}

// RawOffset translates a processed position to its raw offset.
// Raw positions are returned unchanged.
func (m *PositionMap) RawOffset(pos Position) int {
	if pos.Space == SpaceRaw {
		return pos.Offset
	}

	entry := m.Entry(pos)
	return entry.Raw + (pos.Offset - entry.Processed)
}

// entryIndex finds the highest entry whose offset is <= pos.Offset.
func (m *PositionMap) entryIndex(pos Position) int {
	var idx int
	if pos.Space == SpaceRaw {
		idx = sort.Search(len(m.entries), func(i int) bool {
			return m.entries[i].Raw > pos.Offset
		})
	} else {
		idx = sort.Search(len(m.entries), func(i int) bool {
			return m.entries[i].Processed > pos.Offset
		})
	}

	// The origin entry sits at offset 0, so negative offsets clamp to it.
	if idx == 0 {
		return 0
	}
	return idx - 1
}
