package dataset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrColumnNotFound is returned by every lookup of a column the table lacks.
var ErrColumnNotFound = errors.New("column not found")

var comparators = map[string]series.Comparator{
	"==": series.Eq,
	"!=": series.Neq,
	">":  series.Greater,
	">=": series.GreaterEq,
	"<":  series.Less,
	"<=": series.LessEq,
}

// Frame is the read-only transactions table. Every operation returns a new
// value and leaves the receiver untouched.
type Frame struct {
	df dataframe.DataFrame
}

// Empty returns a table with no rows and no columns.
func Empty() *Frame {
	return &Frame{}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.df.Nrow()
}

// Columns returns the column names in file order.
func (f *Frame) Columns() []string {
	return f.df.Names()
}

// HasColumn reports whether the table has a column called name.
func (f *Frame) HasColumn(name string) bool {
	return slices.Contains(f.df.Names(), name)
}

// Validate returns the expected columns missing from the table.
func (f *Frame) Validate() []string {
	var missing []string
	for _, name := range ExpectedColumns {
		if !f.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func (f *Frame) require(names ...string) error {
	for _, name := range names {
		if !f.HasColumn(name) {
			return fmt.Errorf("%w: %q (available: %v)", ErrColumnNotFound, name, f.Columns())
		}
	}
	return nil
}

// Col returns the named column.
func (f *Frame) Col(name string) (*Column, error) {
	if err := f.require(name); err != nil {
		return nil, err
	}
	return newColumn(name, f.df.Col(name)), nil
}

// Filter keeps the rows where col compares to value with op
// (==, !=, >, >=, <, <=).
func (f *Frame) Filter(col, op string, value any) (*Frame, error) {
	if err := f.require(col); err != nil {
		return nil, err
	}
	cmp, ok := comparators[op]
	if !ok {
		return nil, fmt.Errorf("unsupported comparison %q, use one of == != > >= < <=", op)
	}

	out := f.df.Filter(dataframe.F{Colname: col, Comparator: cmp, Comparando: value})
	if out.Err != nil {
		return nil, fmt.Errorf("filter %s %s %v: %w", col, op, value, out.Err)
	}
	return &Frame{df: out}, nil
}

// Where keeps the rows where col equals value.
func (f *Frame) Where(col string, value any) (*Frame, error) {
	return f.Filter(col, "==", value)
}

// Sort orders the rows by col, descending when desc is set.
func (f *Frame) Sort(col string, desc bool) (*Frame, error) {
	if err := f.require(col); err != nil {
		return nil, err
	}

	order := dataframe.Sort(col)
	if desc {
		order = dataframe.RevSort(col)
	}
	out := f.df.Arrange(order)
	if out.Err != nil {
		return nil, fmt.Errorf("sort by %s: %w", col, out.Err)
	}
	return &Frame{df: out}, nil
}

// Head returns the first n rows.
func (f *Frame) Head(n int) *Frame {
	return f.rows(0, min(max(n, 0), f.Len()))
}

// Tail returns the last n rows.
func (f *Frame) Tail(n int) *Frame {
	n = min(max(n, 0), f.Len())
	return f.rows(f.Len()-n, f.Len())
}

func (f *Frame) rows(from, to int) *Frame {
	if from >= to {
		return Empty()
	}
	if from == 0 && to == f.Len() {
		return f
	}

	idx := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		idx = append(idx, i)
	}
	return &Frame{df: f.df.Subset(idx)}
}

// GroupSum sums col for each distinct value of by.
func (f *Frame) GroupSum(by, col string) (*Groups, error) {
	if err := f.require(by, col); err != nil {
		return nil, err
	}
	values := newColumn(col, f.df.Col(col))
	if !values.numeric {
		return nil, fmt.Errorf("column %q is not numeric", col)
	}
	return groupBy(newColumn(by, f.df.Col(by)), values, col)
}

// GroupCount counts the rows for each distinct value of by.
func (f *Frame) GroupCount(by string) (*Groups, error) {
	if err := f.require(by); err != nil {
		return nil, err
	}
	return groupBy(newColumn(by, f.df.Col(by)), nil, "count")
}

func (f *Frame) String() string {
	if f.Len() == 0 {
		return fmt.Sprintf("empty table (columns: %v)", f.Columns())
	}
	return f.df.String()
}
