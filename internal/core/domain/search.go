package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeQuery trims surrounding whitespace from a raw query.
// Case folding is left to the store's comparison. The empty string is a
// valid query that matches every record.
func NormalizeQuery(raw string) string {
	return strings.TrimSpace(raw)
}

// FoldCase returns s in Unicode case-folded form. Two strings that differ
// only in case fold to the same value, including non-ASCII letters such as
// "Ñ" and "ñ".
func FoldCase(s string) string {
	// A Caser is stateful, so one is built per call.
	return cases.Fold().String(s)
}

// SortColumn identifies a result column that can be sorted.
type SortColumn string

// Sortable columns.
const (
	SortByRegion   SortColumn = "region"
	SortBySite     SortColumn = "site"
	SortByDocument SortColumn = "document"
)

// AllSortColumns returns the sortable columns in display order.
func AllSortColumns() []SortColumn {
	return []SortColumn{SortByRegion, SortBySite, SortByDocument}
}

// ParseSortColumn converts a column name to a SortColumn.
func ParseSortColumn(s string) (SortColumn, error) {
	col := SortColumn(strings.ToLower(strings.TrimSpace(s)))
	if !col.IsValid() {
		return "", fmt.Errorf("%w: unknown sort column %q", ErrInvalidInput, s)
	}
	return col, nil
}

// IsValid returns true if the column is recognised.
func (c SortColumn) IsValid() bool {
	switch c {
	case SortByRegion, SortBySite, SortByDocument:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c SortColumn) String() string {
	return string(c)
}

// Value returns the record field this column sorts on.
func (c SortColumn) Value(r DocumentRecord) string {
	switch c {
	case SortByRegion:
		return r.RegionName
	case SortBySite:
		return r.SiteName
	case SortByDocument:
		return r.DocumentName
	default:
		return ""
	}
}

// SortDirection is the order of a sorted column.
type SortDirection int

const (
	// Ascending sorts A to Z.
	Ascending SortDirection = iota
	// Descending sorts Z to A.
	Descending
)

// String returns the string representation.
func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SortState remembers, per column, the direction of the last sort applied
// to it. The zero value has sorted nothing. SortState is a value: With
// returns a new state and never modifies the receiver.
type SortState struct {
	last    SortColumn
	applied map[SortColumn]SortDirection
}

// NewSortState returns an empty sort state.
func NewSortState() SortState {
	return SortState{}
}

// Direction returns the last direction applied to the column and whether
// the column has been sorted at all.
func (s SortState) Direction(col SortColumn) (SortDirection, bool) {
	dir, ok := s.applied[col]
	return dir, ok
}

// Next returns the direction the next sort of col should use: ascending on
// first use, then alternating.
func (s SortState) Next(col SortColumn) SortDirection {
	if dir, ok := s.applied[col]; ok {
		return dir.Toggle()
	}
	return Ascending
}

// Last returns the most recently sorted column, or "" if none.
func (s SortState) Last() SortColumn {
	return s.last
}

// With returns a copy of the state recording dir for col.
func (s SortState) With(col SortColumn, dir SortDirection) SortState {
	applied := make(map[SortColumn]SortDirection, len(s.applied)+1)
	for k, v := range s.applied {
		applied[k] = v
	}
	applied[col] = dir
	return SortState{last: col, applied: applied}
}
