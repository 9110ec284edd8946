// Package view adapts assemblies to a frame driven render surface.
package view

import (
	"fmt"
	"path/filepath"

	"github.com/soypat/pumpsdf/asset"
	"github.com/soypat/pumpsdf/assembly"
	"github.com/soypat/pumpsdf/internal/logger"
	"github.com/soypat/pumpsdf/part"
	"github.com/soypat/pumpsdf/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// Frame is what the surface draws for one tick.
type Frame struct {
	Root   *scene.PartNode
	Config assembly.Config
	// Elapsed display time driving the spins.
	Elapsed float64
	// Rebuilt is set when parts were rebuilt for this frame, Relaid when
	// only their positions changed.
	Rebuilt, Relaid bool
	// Warnings are recoverable failures. The affected parts render empty.
	Warnings []error
}

// Surface holds what persists between frames. It is not safe for
// concurrent use.
type Surface struct {
	table    part.Table
	assets   *asset.Loader
	assetDir string
	log      *logger.Logger

	spinner Spinner
	built   bool
	cfg     assembly.Config
	node    *assembly.Node
	// buildErr holds part failures of the last rebuild.
	buildErr error
}

// Option configures a Surface.
type Option func(*Surface)

// WithAssetDir resolves relative asset paths against dir.
func WithAssetDir(dir string) Option { return func(s *Surface) { s.assetDir = dir } }

// WithLoader shares an asset loader between surfaces.
func WithLoader(l *asset.Loader) Option { return func(s *Surface) { s.assets = l } }

// WithLogger sets the surface logger.
func WithLogger(l *logger.Logger) Option { return func(s *Surface) { s.log = l } }

// NewSurface returns a surface drawing parts dimensioned by t.
func NewSurface(t part.Table, opts ...Option) *Surface {
	s := &Surface{table: t}
	for _, o := range opts {
		o(s)
	}
	s.log = logger.OrNop(s.log)
	if s.assets == nil {
		s.assets = asset.NewLoader(s.log)
	}
	return s
}

// SetTable replaces the dimension table. The next frame rebuilds.
func (s *Surface) SetTable(t part.Table) {
	s.table = t
	s.built = false
}

// Frame advances the surface by dt seconds and returns what to draw for
// cfg. Parts are rebuilt only when the wireframe flag, the selection or
// the layout change. Toggling the exploded view only moves them.
func (s *Surface) Frame(cfg assembly.Config, dt float64) (*Frame, error) {
	f := &Frame{Config: cfg}
	switch {
	case !s.built || cfg.Wireframe != s.cfg.Wireframe || cfg.Selected != s.cfg.Selected || cfg.Layout != s.cfg.Layout:
		node, err := assembly.Select(s.table, cfg)
		if node == nil {
			return nil, err
		}
		s.node, s.buildErr, s.built = node, err, true
		f.Rebuilt = true
		s.log.Debug("rebuilt", "selection", cfg.Selected.String(), "parts", len(node.Parts), "wireframe", cfg.Wireframe)
	case cfg.Exploded != s.cfg.Exploded:
		s.node = s.node.Explode(cfg.Exploded)
		f.Relaid = true
	}
	s.cfg = cfg
	if s.buildErr != nil {
		f.Warnings = append(f.Warnings, s.buildErr)
	}
	s.spinner.Advance(dt)
	f.Elapsed = s.spinner.Elapsed
	root := s.node.Tree()
	if w := s.attachAssets(root); w != nil {
		f.Warnings = append(f.Warnings, w)
	}
	f.Root = spun(root, s.spinner)
	return f, nil
}

// attachAssets swaps the parametric stud set for its asset bundle. The
// placement nodes of root are fresh from Tree, the parts below them are
// shared and only copied. On failure the studs are left empty and the
// error returned.
func (s *Surface) attachAssets(root *scene.PartNode) error {
	name := part.Name(part.GlandStudsAndNuts, 0)
	var holder *scene.PartNode
	at := -1
	for _, h := range root.Children {
		for i, c := range h.Children {
			if c.Name == name {
				holder, at = h, i
			}
		}
	}
	if holder == nil {
		return nil
	}
	studs := *holder.Children[at]
	studs.Solids = nil
	studs.Children = nil
	holder.Children[at] = &studs

	path := s.table.Studs.Asset
	if path != "" && !filepath.IsAbs(path) && s.assetDir != "" {
		path = filepath.Join(s.assetDir, path)
	}
	b, err := s.assets.Load(path)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	studs.Children = []*scene.PartNode{b.Node(name + "_Asset")}
	return nil
}

// spun returns n with every spinning node rotated to its current angle.
// Nodes are copied along the paths that change, the input is untouched.
func spun(n *scene.PartNode, sp Spinner) *scene.PartNode {
	var children []*scene.PartNode
	for i, c := range n.Children {
		sc := spun(c, sp)
		if sc != c && children == nil {
			children = append([]*scene.PartNode(nil), n.Children...)
		}
		if children != nil {
			children[i] = sc
		}
	}
	spins := n.Spin.Rate != 0 && n.Spin.Axis != (r3.Vec{})
	if !spins && children == nil {
		return n
	}
	out := *n
	if children != nil {
		out.Children = children
	}
	if spins {
		angle := sp.Angle(n.Spin.Rate)
		out.Pose.Rotation = r3.Add(out.Pose.Rotation, r3.Scale(angle, r3.Unit(n.Spin.Axis)))
	}
	return &out
}
