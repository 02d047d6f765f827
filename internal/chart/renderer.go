package chart

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"Finsight/internal/dataset"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	Bar = "bar"
	Pie = "pie"

	OutputFolder = "graphics"
	FilePrefix   = "chart_"
	FileExt      = ".png"

	maxNameAttempts = 16
)

// ErrUnsupportedType is returned for chart types other than Bar and Pie.
var ErrUnsupportedType = errors.New("unsupported chart type")

// Request describes one chart. An empty Type means Bar.
type Request struct {
	X     string
	Y     string
	Title string
	Type  string
}

// Renderer writes charts as PNG files into OutputDir.
type Renderer struct {
	OutputDir string
	Width     vg.Length
	Height    vg.Length
}

// DefaultOutputDir returns root/graphics.
func DefaultOutputDir(root string) string {
	return filepath.Join(root, OutputFolder)
}

// NewRenderer returns a Renderer drawing 10x6 inch charts into dir.
func NewRenderer(dir string) *Renderer {
	return &Renderer{
		OutputDir: dir,
		Width:     10 * vg.Inch,
		Height:    6 * vg.Inch,
	}
}

// Supported reports whether chartType can be rendered.
func Supported(chartType string) bool {
	return chartType == "" || chartType == Bar || chartType == Pie
}

// Render draws req from frame and returns the path of the new file. Nothing
// is written when the request is rejected.
func (r *Renderer) Render(frame *dataset.Frame, req Request) (string, error) {
	var (
		p   *plot.Plot
		err error
	)
	switch req.Type {
	case "", Bar:
		p, err = barPlot(frame, req)
	case Pie:
		p, err = piePlot(frame, req)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, req.Type)
	}
	if err != nil {
		return "", err
	}
	p.Title.Text = req.Title

	if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path, err := r.nextPath()
	if err != nil {
		return "", err
	}

	if err := p.Save(r.Width, r.Height, path); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}
	return path, nil
}

// nextPath picks chart_<6 hex>.png, drawing again while the name is taken.
func (r *Renderer) nextPath() (string, error) {
	for i := 0; i < maxNameAttempts; i++ {
		path := filepath.Join(r.OutputDir, FilePrefix+randomSuffix()+FileExt)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
	}
	return "", fmt.Errorf("no free chart file name in %s", r.OutputDir)
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

// barPlot draws one bar per row, in table order.
func barPlot(frame *dataset.Frame, req Request) (*plot.Plot, error) {
	xcol, err := frame.Col(req.X)
	if err != nil {
		return nil, err
	}
	ycol, err := frame.Col(req.Y)
	if err != nil {
		return nil, err
	}
	heights, err := ycol.Values()
	if err != nil {
		return nil, err
	}
	if len(heights) == 0 {
		return nil, fmt.Errorf("no rows to plot")
	}

	bars, err := plotter.NewBarChart(plotter.Values(heights), barWidth(len(heights)))
	if err != nil {
		return nil, fmt.Errorf("failed to build bars from %s: %w", req.Y, err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = 0

	p := plot.New()
	p.Add(bars)
	p.NominalX(xcol.Records()...)
	p.X.Label.Text = req.X
	p.Y.Label.Text = req.Y
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

// barWidth keeps bars readable whether there are three rows or three hundred.
func barWidth(n int) vg.Length {
	return vg.Points(math.Max(2, math.Min(40, 560/float64(n))))
}

// piePlot sums y per distinct x and draws one wedge per group.
func piePlot(frame *dataset.Frame, req Request) (*plot.Plot, error) {
	groups, err := frame.GroupSum(req.X, req.Y)
	if err != nil {
		return nil, err
	}
	slices, err := Slices(groups.Keys(), groups.Totals(), StartAngle)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Add(&pieChart{slices: slices})
	p.HideAxes()
	return p, nil
}
