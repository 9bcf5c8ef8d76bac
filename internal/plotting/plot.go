// Package plotting renders the MSD series with the selected fit window on
// log-log axes. Purely presentational: it consumes the data and window and
// touches nothing in the analysis core.
package plotting

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kirchner-lab/msdiff/internal/domain"
)

// SaveFitPlot writes a log-log plot of the series to path (format chosen by
// extension, e.g. .pdf or .png). The full series is drawn faint, the fitted
// tail solid.
func SaveFitPlot(s domain.Series, w domain.Window, path string) error {
	p := plot.New()
	p.X.Label.Text = "τ / ps"
	p.Y.Label.Text = "MSD / pm²"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true

	// Skip the zero-time sample: log axes cannot hold it.
	full, err := plotter.NewLine(xys(s, 1, s.Len()-1))
	if err != nil {
		return err
	}
	full.Color = color.Gray{Y: 0xb0}

	fitted, err := plotter.NewLine(xys(s, w.First, w.Last))
	if err != nil {
		return err
	}
	fitted.Color = color.Black

	rule := windowRule(s, w)
	rule.Color = color.Gray{Y: 0x60}
	rule.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}

	p.Add(full, fitted, rule)
	p.Legend.Add("data", full)
	p.Legend.Add("used for fit", fitted)

	return p.Save(4.5*vg.Inch, 4.5*vg.Inch, path)
}

// windowRule is a vertical line marking the start of the fit window.
func windowRule(s domain.Series, w domain.Window) *plotter.Line {
	lo, hi := s.Value[1], s.Value[1]
	for _, v := range s.Value[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	rule, _ := plotter.NewLine(plotter.XYs{
		{X: s.Time[w.First], Y: lo},
		{X: s.Time[w.First], Y: hi},
	})
	return rule
}

func xys(s domain.Series, first, last int) plotter.XYs {
	pts := make(plotter.XYs, 0, last-first+1)
	for i := first; i <= last; i++ {
		pts = append(pts, plotter.XY{X: s.Time[i], Y: s.Value[i]})
	}
	return pts
}
