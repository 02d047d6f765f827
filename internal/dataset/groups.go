package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
)

// Groups holds one aggregate per distinct key, keys in ascending order.
type Groups struct {
	by     string
	of     string
	keys   []string
	totals []float64
}

// groupBy aggregates values per key. A nil values column counts rows instead.
// Missing values are skipped; infinite ones are an error.
func groupBy(keys, values *Column, of string) (*Groups, error) {
	sums := make(map[string]decimal.Decimal)
	for i, key := range keys.records {
		acc, seen := sums[key]
		if !seen {
			acc = decimal.Zero
		}
		switch {
		case values == nil:
			acc = acc.Add(decimal.NewFromInt(1))
		case math.IsInf(values.values[i], 0):
			return nil, values.nonFinite(i)
		case !math.IsNaN(values.values[i]):
			acc = acc.Add(decimal.NewFromFloat(values.values[i]))
		}
		sums[key] = acc
	}

	g := &Groups{by: keys.name, of: of}
	for key := range sums {
		g.keys = append(g.keys, key)
	}
	sortKeys(g.keys, keys.numeric)
	for _, key := range g.keys {
		g.totals = append(g.totals, sums[key].InexactFloat64())
	}
	return g, nil
}

// sortKeys orders numeric keys by value and text keys lexically.
func sortKeys(keys []string, numeric bool) {
	if !numeric {
		sort.Strings(keys)
		return
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, errA := strconv.ParseFloat(keys[i], 64)
		b, errB := strconv.ParseFloat(keys[j], 64)
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
}

// Len returns the number of groups.
func (g *Groups) Len() int { return len(g.keys) }

// Keys returns the group keys.
func (g *Groups) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Totals returns the aggregate of each group, aligned with Keys.
func (g *Groups) Totals() []float64 {
	out := make([]float64, len(g.totals))
	copy(out, g.totals)
	return out
}

// Total returns the sum over all groups.
func (g *Groups) Total() float64 {
	total := decimal.Zero
	for _, v := range g.totals {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// Get returns the aggregate for key.
func (g *Groups) Get(key string) (float64, error) {
	for i, k := range g.keys {
		if k == key {
			return g.totals[i], nil
		}
	}
	return 0, fmt.Errorf("no group %q in %s", key, g.by)
}

// Share returns the percentage of the overall total that key accounts for.
func (g *Groups) Share(key string) (float64, error) {
	v, err := g.Get(key)
	if err != nil {
		return 0, err
	}
	total := g.Total()
	if total == 0 {
		return 0, fmt.Errorf("groups of %s total zero", g.by)
	}
	return v * 100 / total, nil
}

// Top returns the n groups with the largest aggregates, largest first.
func (g *Groups) Top(n int) *Groups {
	idx := make([]int, len(g.keys))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return g.totals[idx[a]] > g.totals[idx[b]]
	})

	n = min(max(n, 0), len(idx))
	out := &Groups{by: g.by, of: g.of}
	for _, i := range idx[:n] {
		out.keys = append(out.keys, g.keys[i])
		out.totals = append(out.totals, g.totals[i])
	}
	return out
}

func (g *Groups) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", g.by, g.of)
	for i, key := range g.keys {
		fmt.Fprintf(w, "%s\t%s\n", key, FormatFloat(g.totals[i]))
	}
	w.Flush()
	return strings.TrimRight(sb.String(), "\n")
}
