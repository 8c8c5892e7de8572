package views

import (
	"net/url"
	"sort"
	"strconv"
)

// Column describes one table column. Accessor is nil for display-only
// columns such as row actions.
type Column[T any] struct {
	ID       string
	Header   string
	Accessor func(T) string
	Sortable bool
}

// Sorting is the active sort column and direction. The zero value keeps
// rows in backend order.
type Sorting struct {
	ColumnID string
	Desc     bool
}

// ParseSorting reads ?sort=<id>&desc=1 style query values
func ParseSorting(values url.Values) Sorting {
	s := Sorting{ColumnID: values.Get("sort")}
	if s.ColumnID == "" {
		return s
	}
	if desc, err := strconv.ParseBool(values.Get("desc")); err == nil {
		s.Desc = desc
	}
	return s
}

// Encode returns the query string for s, without the leading '?'
func (s Sorting) Encode() string {
	if s.ColumnID == "" {
		return ""
	}
	v := url.Values{}
	v.Set("sort", s.ColumnID)
	if s.Desc {
		v.Set("desc", "1")
	}
	return v.Encode()
}

// Next cycles a header click through ascending, descending and unsorted
func (s Sorting) Next(columnID string) Sorting {
	switch {
	case s.ColumnID != columnID:
		return Sorting{ColumnID: columnID}
	case !s.Desc:
		return Sorting{ColumnID: columnID, Desc: true}
	default:
		return Sorting{}
	}
}

// Table is a column set plus rows in display order
type Table[T any] struct {
	Columns []Column[T]
	Rows    []T
	Sorting Sorting
}

// NewTable copies rows and applies sorting. Unknown or unsortable columns
// leave the backend order untouched.
func NewTable[T any](columns []Column[T], rows []T, sorting Sorting) Table[T] {
	sorted := make([]T, len(rows))
	copy(sorted, rows)

	t := Table[T]{Columns: columns, Rows: sorted}

	col, ok := t.column(sorting.ColumnID)
	if !ok || !col.Sortable || col.Accessor == nil {
		return t
	}
	t.Sorting = sorting

	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, b := col.Accessor(t.Rows[i]), col.Accessor(t.Rows[j])
		if sorting.Desc {
			return a > b
		}
		return a < b
	})

	return t
}

func (t Table[T]) column(id string) (Column[T], bool) {
	if id == "" {
		return Column[T]{}, false
	}
	for _, c := range t.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column[T]{}, false
}

// HeaderCount is the number of header cells, used as the colspan of the empty row
func (t Table[T]) HeaderCount() int {
	return len(t.Columns)
}

// Empty reports whether there are no rows
func (t Table[T]) Empty() bool {
	return len(t.Rows) == 0
}

// SortLink is the query string a click on the column header navigates to
func (t Table[T]) SortLink(columnID string) string {
	return t.Sorting.Next(columnID).Encode()
}

// SortIndicator returns the arrow shown next to the sorted header
func (t Table[T]) SortIndicator(columnID string) string {
	if t.Sorting.ColumnID != columnID {
		return ""
	}
	if t.Sorting.Desc {
		return "▼"
	}
	return "▲"
}
