// internal/report/chart.go
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrEmptyChart reports that there is nothing to plot. Callers skip chart
// generation on it instead of rendering an empty axis.
var ErrEmptyChart = errors.New("report: no rows to chart")

// RenderChart builds the length chart for the filtered rows: one point per
// record sorted by descending length, accession labels on a nominal X axis
// rotated 90°, connected by a line with markers. The input slice is not
// reordered. The returned WriterTo emits PNG bytes.
func RenderChart(taxid string, rows []Row) (io.WriterTo, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyChart
	}

	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Length > sorted[j].Length })

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Sequence Lengths for TaxID %s", taxid)
	p.X.Label.Text = "Accession Number"
	p.Y.Label.Text = "Sequence Length"

	pts := make(plotter.XYs, len(sorted))
	labels := make([]string, len(sorted))
	for i, r := range sorted {
		pts[i].X = float64(i)
		pts[i].Y = float64(r.Length)
		labels[i] = r.Accession
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	p.Add(line, points)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return p.WriterTo(10*vg.Inch, 6*vg.Inch, "png")
}
