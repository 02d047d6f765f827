package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// StartAngle is where the first wedge begins, in degrees counter-clockwise
// from the positive x axis.
const StartAngle = 140.0

// Slice is one wedge of a pie chart. Angles are in radians.
type Slice struct {
	Label string
	Value float64
	Share float64
	Start float64
	Sweep float64
}

// ShareLabel formats the wedge's percentage with one decimal place.
func (s Slice) ShareLabel() string {
	return fmt.Sprintf("%.1f%%", s.Share)
}

// Slices lays out one wedge per value, in order, starting at startDeg and
// going counter-clockwise.
func Slices(labels []string, values []float64, startDeg float64) ([]Slice, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("nothing to plot")
	}
	if len(labels) != len(values) {
		return nil, fmt.Errorf("%d labels for %d values", len(labels), len(values))
	}

	total := 0.0
	for i, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("pie wedge %q has value %v, wedge sizes must be non-negative", labels[i], v)
		}
		total += v
	}
	if total == 0 {
		return nil, fmt.Errorf("pie values sum to zero")
	}

	angle := startDeg * math.Pi / 180
	slices := make([]Slice, len(values))
	for i, v := range values {
		sweep := v / total * 2 * math.Pi
		slices[i] = Slice{
			Label: labels[i],
			Value: v,
			Share: v * 100 / total,
			Start: angle,
			Sweep: sweep,
		}
		angle += sweep
	}
	return slices, nil
}

// pieChart draws Slices inside the plot's data area. It implements
// plot.Plotter.
type pieChart struct {
	slices []Slice
}

func (pc *pieChart) Plot(c draw.Canvas, plt *plot.Plot) {
	size := c.Size()
	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	radius := min(size.X, size.Y) / 2 * 0.8

	labelStyle := plt.Legend.TextStyle
	labelStyle.XAlign = draw.XCenter
	labelStyle.YAlign = draw.YCenter
	edge := draw.LineStyle{Color: color.White, Width: vg.Points(1)}

	for i, s := range pc.slices {
		wedge := wedgePoints(center, radius, s.Start, s.Sweep)
		c.FillPolygon(plotutil.Color(i), wedge)
		c.StrokeLines(edge, wedge)

		mid := s.Start + s.Sweep/2
		c.FillText(labelStyle, polar(center, radius*1.12, mid), s.Label)
		c.FillText(labelStyle, polar(center, radius*0.6, mid), s.ShareLabel())
	}
}

// wedgePoints approximates a wedge with a closed polygon, one vertex per
// degree of arc at most.
func wedgePoints(center vg.Point, radius vg.Length, start, sweep float64) []vg.Point {
	steps := max(2, int(math.Ceil(sweep/(math.Pi/180))))
	pts := make([]vg.Point, 0, steps+3)
	pts = append(pts, center)
	for i := 0; i <= steps; i++ {
		pts = append(pts, polar(center, radius, start+sweep*float64(i)/float64(steps)))
	}
	return append(pts, center)
}

func polar(center vg.Point, r vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(angle)),
		Y: center.Y + r*vg.Length(math.Sin(angle)),
	}
}
