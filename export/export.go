// Package export writes selections of the pump to disk as scene JSON,
// meshes, previews and drawings, and records them in a manifest.
package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/pumpsdf"
	"github.com/soypat/pumpsdf/assembly"
	"github.com/soypat/pumpsdf/internal/logger"
	"github.com/soypat/pumpsdf/part"
	"github.com/soypat/pumpsdf/render"
	"github.com/soypat/pumpsdf/scene"
	"gopkg.in/yaml.v3"
)

// Format names an output kind.
type Format string

const (
	FormatJSON     Format = "json"
	FormatSTL      Format = "stl"
	FormatOBJ      Format = "obj"
	FormatPNG      Format = "png"
	FormatProfiles Format = "profiles"
	FormatLayout   Format = "layout"
)

// Formats lists every format in the order they are written.
func Formats() []Format {
	return []Format{FormatJSON, FormatSTL, FormatOBJ, FormatPNG, FormatProfiles, FormatLayout}
}

// ParseFormats parses a comma separated format list. "all" selects every
// format.
func ParseFormats(s string) ([]Format, error) {
	if strings.TrimSpace(s) == "all" {
		return Formats(), nil
	}
	var out []Format
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if !slices.Contains(Formats(), Format(f)) {
			return nil, fmt.Errorf("unknown export format %q", f)
		}
		if !slices.Contains(out, Format(f)) {
			out = append(out, Format(f))
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no export format given")
	}
	return out, nil
}

// Mesher names a meshing backend.
const (
	MesherOctree = "octree"
	MesherSDFX   = "sdfx"
)

// ManifestName is the manifest file written next to the exports.
const ManifestName = "manifest.yaml"

// Options configures an Exporter.
type Options struct {
	Dir     string
	Formats []Format
	// Cells along the longest side of each meshed solid.
	Cells int
	// Mesher is MesherOctree (default) or MesherSDFX.
	Mesher string
	View   render.View
}

// Manifest records what a run wrote.
type Manifest struct {
	Entries []Entry `yaml:"entries"`
}

// Entry lists the files written for one selection.
type Entry struct {
	Selection string `yaml:"selection"`
	Root      string `yaml:"root"`
	Parts     int    `yaml:"parts"`
	Files     []File `yaml:"files"`
	// Warnings are part failures that left the selection incomplete.
	Warnings []string `yaml:"warnings,omitempty"`
}

// File is one written file. Path is relative to the export directory.
type File struct {
	Path      string `yaml:"path"`
	Format    Format `yaml:"format"`
	Bytes     int64  `yaml:"bytes"`
	SHA256    string `yaml:"sha256"`
	Triangles int    `yaml:"triangles,omitempty"`
}

// Exporter writes selections of one dimension table.
type Exporter struct {
	table part.Table
	opts  Options
	log   *logger.Logger
}

// New returns an Exporter. Zero options take defaults: the current
// directory, JSON and STL, 64 cells and the octree mesher.
func New(t part.Table, opts Options, log *logger.Logger) (*Exporter, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []Format{FormatJSON, FormatSTL}
	}
	if opts.Cells == 0 {
		opts.Cells = 64
	}
	if opts.Cells < 2 {
		return nil, fmt.Errorf("mesh cells must be 2 or more, got %d", opts.Cells)
	}
	switch opts.Mesher {
	case "":
		opts.Mesher = MesherOctree
	case MesherOctree, MesherSDFX:
	default:
		return nil, fmt.Errorf("unknown mesher %q", opts.Mesher)
	}
	if opts.View == (render.View{}) {
		opts.View = render.DefaultView()
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Exporter{table: t, opts: opts, log: logger.OrNop(log)}, nil
}

// Export writes cfg.Selected and a manifest covering it.
func (e *Exporter) Export(ctx context.Context, cfg assembly.Config) (*Manifest, error) {
	return e.ExportSelections(ctx, cfg, cfg.Selected)
}

// ExportAll writes every selection and a manifest covering them all.
func (e *Exporter) ExportAll(ctx context.Context, cfg assembly.Config) (*Manifest, error) {
	return e.ExportSelections(ctx, cfg, assembly.Selections()...)
}

// ExportSelections writes sels in order and a manifest covering them. The
// first write failure aborts the run.
func (e *Exporter) ExportSelections(ctx context.Context, cfg assembly.Config, sels ...assembly.Selection) (*Manifest, error) {
	m := &Manifest{}
	for _, sel := range sels {
		cfg.Selected = sel
		if err := e.export(ctx, cfg, m); err != nil {
			return m, err
		}
	}
	return m, e.writeManifest(m)
}

func (e *Exporter) export(ctx context.Context, cfg assembly.Config, m *Manifest) error {
	if err := os.MkdirAll(e.opts.Dir, 0o755); err != nil {
		return err
	}
	node, err := assembly.Select(e.table, cfg)
	if node == nil {
		return fmt.Errorf("export %s: %w", cfg.Selected, err)
	}
	entry := Entry{Selection: cfg.Selected.String(), Root: node.Name, Parts: len(node.Parts)}
	if err != nil {
		e.log.Warn("incomplete selection", "selection", entry.Selection, "error", err)
		entry.Warnings = append(entry.Warnings, err.Error())
	}
	tree := node.Tree()
	var model []render.Triangle3
	for _, f := range e.opts.Formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		if (f == FormatSTL || f == FormatPNG) && model == nil {
			if model, err = e.mesh(tree.SDF()); err != nil {
				return fmt.Errorf("meshing %s: %w", node.Name, err)
			}
		}
		file, err := e.write(f, node, tree, model)
		if errors.Is(err, errNothingToDraw) || errors.Is(err, render.ErrEmptyMesh) {
			e.log.Debug("skipped", "root", node.Name, "format", f, "reason", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("export %s %s: %w", node.Name, f, err)
		}
		e.log.Info("exported", "file", file.Path, "bytes", file.Bytes, "triangles", file.Triangles)
		file.Path = filepath.Base(file.Path)
		entry.Files = append(entry.Files, file)
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

func (e *Exporter) write(f Format, node *assembly.Node, tree *scene.PartNode, model []render.Triangle3) (File, error) {
	base := filepath.Join(e.opts.Dir, node.Name)
	file := File{Format: f}
	var err error
	switch f {
	case FormatJSON:
		file.Path = base + ".json"
		err = create(file.Path, func(w io.Writer) error { return WriteSceneJSON(w, tree) })
	case FormatSTL:
		file.Path = base + ".stl"
		file.Triangles = len(model)
		err = create(file.Path, func(w io.Writer) error { return render.WriteSTL(w, model) })
	case FormatOBJ:
		file.Path = base + ".obj"
		var groups []render.OBJGroup
		if groups, err = e.groups(tree); err != nil {
			return file, err
		}
		err = create(file.Path, func(w io.Writer) error {
			stats, err := render.WriteOBJ(w, groups)
			file.Triangles = stats.Faces
			return err
		})
	case FormatPNG:
		file.Path = base + ".png"
		err = e.preview(file.Path, model)
	case FormatProfiles:
		file.Path = base + "_profiles.png"
		err = drawProfiles(file.Path, tree)
	case FormatLayout:
		file.Path = base + "_layout.png"
		err = drawLayout(file.Path, node)
	default:
		err = fmt.Errorf("unknown format %q", f)
	}
	if err != nil {
		return file, err
	}
	return file, stamp(&file)
}

func (e *Exporter) preview(path string, model []render.Triangle3) error {
	img, err := render.Preview(model, e.opts.View)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}

// groups meshes every part below its placement, in the world frame.
func (e *Exporter) groups(tree *scene.PartNode) ([]render.OBJGroup, error) {
	var groups []render.OBJGroup
	root := tree.Pose.Matrix()
	for _, holder := range tree.Children {
		frame := root.Mul(holder.Pose.Matrix())
		for _, p := range holder.Children {
			model, err := e.mesh(pumpsdf.Transform3D(p.SDF(), frame))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.Name, err)
			}
			groups = append(groups, render.OBJGroup{Name: p.Name, Triangles: model})
		}
	}
	return groups, nil
}

func (e *Exporter) mesh(s pumpsdf.SDF3) ([]render.Triangle3, error) {
	if pumpsdf.IsEmpty(s) {
		return nil, nil
	}
	var (
		r   render.Renderer
		err error
	)
	if e.opts.Mesher == MesherSDFX {
		r, err = render.NewSDFXRenderer(s, e.opts.Cells)
	} else {
		r, err = render.NewOctreeRenderer(s, e.opts.Cells)
	}
	if err != nil {
		return nil, err
	}
	return render.RenderAll(r)
}

func (e *Exporter) writeManifest(m *Manifest) error {
	path := filepath.Join(e.opts.Dir, ManifestName)
	return create(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	})
}

// create writes a file through fn, removing it if fn fails.
func create(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = fn(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// stamp records the size and digest of a written file.
func stamp(file *File) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return err
	}
	file.Bytes = n
	file.SHA256 = hex.EncodeToString(h.Sum(nil))
	return nil
}
