package query

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Toolkit is bound as "pd" next to the table. It only offers numeric helpers
// that have no access to anything outside their arguments.
type Toolkit struct{}

// Round rounds x to places decimal places.
func (Toolkit) Round(x any, places int) (float64, error) {
	v, err := toFloat(x)
	if err != nil {
		return 0, err
	}
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale, nil
}

// Pct returns part as a percentage of total.
func (Toolkit) Pct(part, total any) (float64, error) {
	p, err := toFloat(part)
	if err != nil {
		return 0, err
	}
	t, err := toFloat(total)
	if err != nil {
		return 0, err
	}
	if t == 0 {
		return 0, fmt.Errorf("percentage of a zero total")
	}
	return p * 100 / t, nil
}

// Abs returns the absolute value of x.
func (Toolkit) Abs(x any) (float64, error) {
	v, err := toFloat(x)
	if err != nil {
		return 0, err
	}
	return math.Abs(v), nil
}

// Comma formats x with thousands separators, e.g. 15000 -> "15,000".
func (Toolkit) Comma(x any) (string, error) {
	v, err := toFloat(x)
	if err != nil {
		return "", err
	}
	return humanize.Commaf(v), nil
}

// Money formats x with two decimals and thousands separators.
func (Toolkit) Money(x any) (string, error) {
	v, err := toFloat(x)
	if err != nil {
		return "", err
	}
	return humanize.FormatFloat("#,###.##", v), nil
}

func toFloat(x any) (float64, error) {
	switch v := x.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case uint:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", x)
	}
}
