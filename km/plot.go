package km

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/uyouii/survival-algorithms/common"
	"github.com/uyouii/survival-algorithms/model"
)

// EstimatePlotter draws one or more fitted estimates as step functions.
type EstimatePlotter struct {
	plt    *plot.Plot
	labels []string
	lines  []*plotter.Line
	yLabel string

	width  vg.Length
	height vg.Length

	laidOut bool
}

// NewEstimatePlotter returns a plotter with default dimensions.
func NewEstimatePlotter() *EstimatePlotter {
	return &EstimatePlotter{
		plt:    plot.New(),
		width:  4 * vg.Inch,
		height: 4 * vg.Inch,
	}
}

// Width sets the plot width in inches.
func (p *EstimatePlotter) Width(w float64) *EstimatePlotter {
	p.width = vg.Length(w) * vg.Inch
	return p
}

// Height sets the plot height in inches.
func (p *EstimatePlotter) Height(h float64) *EstimatePlotter {
	p.height = vg.Length(h) * vg.Inch
	return p
}

// Add appends the step curve of a fitted estimate to the plot.
func (p *EstimatePlotter) Add(kmf *KaplanMeierFitter, label string) error {
	if !kmf.Fitted() {
		return common.ErrorInvalidValue
	}

	series := kmf.Estimate()

	start := 1.0
	if kmf.Kind() == model.CumulativeDensity {
		start = 0.0
		p.yLabel = "Cumulative density"
	} else if p.yLabel == "" {
		p.yLabel = "Proportion alive"
	}

	m := series.Len()
	pts := make(plotter.XYs, 0, 2*m+1)
	pts = append(pts, plotter.XY{X: 0, Y: start})

	prev := start
	for i := 0; i < m; i++ {
		pts = append(pts, plotter.XY{X: series.Times[i], Y: prev})
		pts = append(pts, plotter.XY{X: series.Times[i], Y: series.Values[i]})
		prev = series.Values[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(len(p.lines))

	p.lines = append(p.lines, line)
	p.labels = append(p.labels, label)
	return nil
}

// Plot lays out the axes and legend and returns the underlying plot
// structure for further customization.
func (p *EstimatePlotter) Plot() *plot.Plot {
	if p.laidOut {
		return p.plt
	}

	p.plt.Y.Min = 0
	p.plt.Y.Max = 1
	p.plt.X.Label.Text = "Time"
	p.plt.Y.Label.Text = p.yLabel

	for i := range p.lines {
		p.plt.Add(p.lines[i])
		p.plt.Legend.Add(p.labels[i], p.lines[i])
	}
	if len(p.lines) > 1 {
		p.plt.Legend.Top = false
		p.plt.Legend.Left = true
	}

	p.laidOut = true
	return p.plt
}

// Save renders the plot to a file, with the format taken from the
// extension.
func (p *EstimatePlotter) Save(path string) error {
	return p.Plot().Save(p.width, p.height, path)
}
