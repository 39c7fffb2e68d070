package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/ports/driving"
)

// Ensure ResultSorter implements the interface.
var _ driving.ResultSorter = (*ResultSorter)(nil)

// ResultSorter re-orders fetched results in memory.
type ResultSorter struct{}

// NewResultSorter creates a new result sorter.
func NewResultSorter() *ResultSorter {
	return &ResultSorter{}
}

// Sort returns a copy of rs ordered by column. The first sort of a column
// is ascending and each later sort of the same column flips it. Keys are
// compared case-folded and ties keep their current relative order.
func (ResultSorter) Sort(
	rs domain.ResultSet,
	column domain.SortColumn,
	state domain.SortState,
) (domain.ResultSet, domain.SortState, error) {
	if !column.IsValid() {
		return nil, state, fmt.Errorf("%w: unknown sort column %q", domain.ErrInvalidInput, column)
	}

	dir := state.Next(column)

	type keyed struct {
		key    string
		record domain.DocumentRecord
	}
	rows := make([]keyed, len(rs))
	for i, r := range rs {
		rows[i] = keyed{key: domain.FoldCase(column.Value(r)), record: r}
	}

	slices.SortStableFunc(rows, func(a, b keyed) int {
		c := strings.Compare(a.key, b.key)
		if dir == domain.Descending {
			return -c
		}
		return c
	})

	out := make(domain.ResultSet, len(rows))
	for i, row := range rows {
		out[i] = row.record
	}
	return out, state.With(column, dir), nil
}
