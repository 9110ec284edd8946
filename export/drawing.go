package export

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/soypat/pumpsdf/assembly"
	"github.com/soypat/pumpsdf/form3"
	"github.com/soypat/pumpsdf/internal/d3"
	"github.com/soypat/pumpsdf/scene"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// errNothingToDraw is returned by drawings with no content. The file is
// then skipped rather than failing the batch.
var errNothingToDraw = errors.New("nothing to draw")

type profile struct {
	name   string
	points [][2]float64
}

// lathes collects the profiles of every lathe solid below root.
func lathes(root *scene.PartNode) []profile {
	var out []profile
	root.Walk(func(n *scene.PartNode, _ d3.Transform) bool {
		for _, s := range n.Solids {
			if s.Primitive.Type != form3.TypeLathe {
				continue
			}
			pts, ok := s.Primitive.Params["points"].([][2]float64)
			if ok && len(pts) >= 2 {
				out = append(out, profile{name: s.Name, points: pts})
			}
		}
		return true
	})
	return out
}

// drawProfiles draws the half section of every lathe profile, mirrored
// about the axis, one cell per profile.
func drawProfiles(path string, root *scene.PartNode) error {
	profiles := lathes(root)
	if len(profiles) == 0 {
		return errNothingToDraw
	}
	const cell = 320
	cols := min(len(profiles), 4)
	rows := (len(profiles) + cols - 1) / cols
	dc := gg.NewContext(cols*cell, rows*cell)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	for i, p := range profiles {
		x0 := float64(i%cols) * cell
		y0 := float64(i/cols) * cell
		var rmax, ymin, ymax float64 = 0, math.Inf(1), math.Inf(-1)
		for _, pt := range p.points {
			rmax = max(rmax, pt[0])
			ymin = min(ymin, pt[1])
			ymax = max(ymax, pt[1])
		}
		span := max(2*rmax, ymax-ymin)
		if span <= 0 {
			continue
		}
		k := 0.8 * cell / span
		cx, cy := x0+cell/2, y0+cell/2+10
		ymid := (ymin + ymax) / 2
		for _, side := range []float64{1, -1} {
			dc.NewSubPath()
			for _, pt := range p.points {
				// Image Y grows downwards.
				dc.LineTo(cx+side*pt[0]*k, cy-(pt[1]-ymid)*k)
			}
			dc.ClosePath()
			dc.SetRGBA(0.27, 0.54, 0.4, 0.35)
			dc.FillPreserve()
			dc.SetRGB(0.1, 0.1, 0.1)
			dc.SetLineWidth(1.5)
			dc.Stroke()
		}
		dc.SetDash(6, 4)
		dc.SetRGB(0.6, 0.1, 0.1)
		dc.DrawLine(cx, y0+20, cx, y0+cell-5)
		dc.Stroke()
		dc.SetDash()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(p.name, x0+cell/2, y0+12, 0.5, 0.5)
	}
	return dc.SavePNG(path)
}

// drawLayout plots the axial position of every placement, nominal and
// exploded.
func drawLayout(path string, node *assembly.Node) error {
	if len(node.Placements) < 2 {
		return errNothingToDraw
	}
	p := plot.New()
	p.Title.Text = node.Name
	p.X.Label.Text = "placement"
	p.Y.Label.Text = "axial position"
	for _, series := range []struct {
		label    string
		exploded bool
	}{{"nominal", false}, {"exploded", true}} {
		n := node.Explode(series.exploded)
		pts := make(plotter.XYs, len(n.Placements))
		for i := range pts {
			pts[i].X = float64(i)
			pts[i].Y = n.Position(i).Y
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("layout %s: %w", series.label, err)
		}
		if series.exploded {
			s.GlyphStyle.Color = color.RGBA{R: 200, G: 40, B: 40, A: 255}
			s.GlyphStyle.Radius = vg.Points(2)
		}
		p.Add(s)
		p.Legend.Add(series.label, s)
	}
	p.Add(plotter.NewGrid())
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
