package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
)

// Column is one column of a Frame.
type Column struct {
	name    string
	numeric bool
	records []string
	values  []float64
}

func newColumn(name string, s series.Series) *Column {
	numeric := s.Type() == series.Float || s.Type() == series.Int
	col := &Column{
		name:    name,
		numeric: numeric,
		records: s.Records(),
	}
	if numeric {
		col.values = s.Float()
	}
	return col
}

// Name returns the column header.
func (c *Column) Name() string { return c.name }

// Len returns the number of cells, missing ones included.
func (c *Column) Len() int { return len(c.records) }

// Numeric reports whether the column holds numbers.
func (c *Column) Numeric() bool { return c.numeric }

// Values returns the cells as floats. Non-numeric columns yield an error.
func (c *Column) Values() ([]float64, error) {
	if !c.numeric {
		return nil, fmt.Errorf("column %q is not numeric", c.name)
	}
	out := make([]float64, len(c.values))
	copy(out, c.values)
	return out, nil
}

// Records returns the cells as text.
func (c *Column) Records() []string {
	out := make([]string, len(c.records))
	copy(out, c.records)
	return out
}

// Count returns the number of non-missing cells.
func (c *Column) Count() int {
	n := 0
	for i := range c.records {
		if !c.missing(i) {
			n++
		}
	}
	return n
}

func (c *Column) missing(i int) bool {
	if c.numeric {
		return math.IsNaN(c.values[i])
	}
	return c.records[i] == "" || c.records[i] == "NaN"
}

// Sum adds the numeric cells exactly and skips missing ones. An infinite
// cell is an error.
func (c *Column) Sum() (float64, error) {
	total, _, err := c.decimalSum()
	if err != nil {
		return 0, err
	}
	return total.InexactFloat64(), nil
}

// Mean returns the average of the non-missing cells.
func (c *Column) Mean() (float64, error) {
	total, n, err := c.decimalSum()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("column %q has no values", c.name)
	}
	return total.Div(decimal.NewFromInt(int64(n))).InexactFloat64(), nil
}

func (c *Column) decimalSum() (decimal.Decimal, int, error) {
	if !c.numeric {
		return decimal.Zero, 0, fmt.Errorf("column %q is not numeric", c.name)
	}
	total := decimal.Zero
	n := 0
	for i, v := range c.values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsInf(v, 0) {
			return decimal.Zero, 0, c.nonFinite(i)
		}
		total = total.Add(decimal.NewFromFloat(v))
		n++
	}
	return total, n, nil
}

func (c *Column) nonFinite(row int) error {
	return fmt.Errorf("column %q has a non-finite value %q in row %d", c.name, c.records[row], row)
}

// Min returns the smallest non-missing cell.
func (c *Column) Min() (float64, error) {
	return c.extreme(func(a, b float64) bool { return a < b })
}

// Max returns the largest non-missing cell.
func (c *Column) Max() (float64, error) {
	return c.extreme(func(a, b float64) bool { return a > b })
}

func (c *Column) extreme(better func(a, b float64) bool) (float64, error) {
	if !c.numeric {
		return 0, fmt.Errorf("column %q is not numeric", c.name)
	}
	found := false
	var best float64
	for _, v := range c.values {
		if math.IsNaN(v) {
			continue
		}
		if !found || better(v, best) {
			best = v
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("column %q has no values", c.name)
	}
	return best, nil
}

// Unique returns the distinct cells in order of first appearance.
func (c *Column) Unique() []string {
	seen := make(map[string]bool, len(c.records))
	var out []string
	for _, r := range c.records {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

func (c *Column) String() string {
	cells := c.records
	if c.numeric {
		cells = make([]string, len(c.values))
		for i, v := range c.values {
			cells[i] = FormatFloat(v)
		}
	}
	return fmt.Sprintf("%s: [%s]", c.name, strings.Join(cells, ", "))
}

// FormatFloat renders v without exponent or trailing zeros.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
