package export

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/soypat/pumpsdf/assembly"
	"github.com/soypat/pumpsdf/part"
	"github.com/soypat/pumpsdf/render"
	"gopkg.in/yaml.v3"
)

func shaftConfig() assembly.Config {
	return assembly.Config{Selected: assembly.PartSelection(part.PumpShaft)}
}

func TestExportPart(t *testing.T) {
	dir := t.TempDir()
	view := render.DefaultView()
	view.Width, view.Height = 120, 90
	e, err := New(part.DefaultTable(), Options{Dir: dir, Formats: Formats(), Cells: 16, View: view}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m, err := e.Export(context.Background(), shaftConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Entries) != 1 {
		t.Fatalf("%d entries", len(m.Entries))
	}
	entry := m.Entries[0]
	got := make(map[Format]File)
	for _, f := range entry.Files {
		got[f.Format] = f
	}
	// A single part has no layout to plot.
	for _, f := range []Format{FormatJSON, FormatSTL, FormatOBJ, FormatPNG, FormatProfiles} {
		if _, ok := got[f]; !ok {
			t.Errorf("no %s file written", f)
		}
	}
	if _, ok := got[FormatLayout]; ok {
		t.Error("layout drawn for a single part")
	}
	for _, f := range entry.Files {
		b, err := os.ReadFile(filepath.Join(dir, f.Path))
		if err != nil {
			t.Fatal(err)
		}
		sum := sha256.Sum256(b)
		if hex.EncodeToString(sum[:]) != f.SHA256 || int64(len(b)) != f.Bytes {
			t.Errorf("%s: manifest does not match file", f.Path)
		}
	}
	stl := got[FormatSTL]
	fp, err := os.Open(filepath.Join(dir, stl.Path))
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	model, err := render.ReadSTL(fp)
	if err != nil && len(model) == 0 {
		t.Fatal(err)
	}
	if len(model) != stl.Triangles || len(model) == 0 {
		t.Errorf("stl holds %d triangles, manifest says %d", len(model), stl.Triangles)
	}

	b, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	var back Manifest
	if err := yaml.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Entries) != 1 || back.Entries[0].Root != "PumpShaft_View" || len(back.Entries[0].Files) != len(entry.Files) {
		t.Errorf("manifest read back as %+v", back)
	}
}

func TestSceneJSONDeterministic(t *testing.T) {
	encode := func() []byte {
		node, err := assembly.Select(part.DefaultTable(), assembly.Config{Selected: assembly.SelectCartridge})
		if err != nil {
			t.Fatal(err)
		}
		var b bytes.Buffer
		if err := WriteSceneJSON(&b, node.Tree()); err != nil {
			t.Fatal(err)
		}
		return b.Bytes()
	}
	first := encode()
	if !bytes.Equal(first, encode()) {
		t.Fatal("scene JSON differs between identical builds")
	}
	var root struct {
		Name     string `json:"name"`
		UUID     string `json:"uuid"`
		Children []struct {
			Name     string     `json:"name"`
			UUID     string     `json:"uuid"`
			Position [3]float64 `json:"position"`
			Matrix   []float64  `json:"matrix"`
		} `json:"children"`
	}
	if err := json.Unmarshal(first, &root); err != nil {
		t.Fatal(err)
	}
	if want := uuid.NewSHA1(namespace, []byte("/"+assembly.CartridgeName)).String(); root.UUID != want {
		t.Errorf("root uuid %s, want %s", root.UUID, want)
	}
	seen := map[string]bool{root.UUID: true}
	for _, c := range root.Children {
		if seen[c.UUID] {
			t.Errorf("duplicate uuid on %s", c.Name)
		}
		seen[c.UUID] = true
		if len(c.Matrix) != 16 || c.Matrix[15] != 1 {
			t.Fatalf("%s: bad matrix %v", c.Name, c.Matrix)
		}
		for i := range c.Position {
			if math.Abs(c.Matrix[12+i]-c.Position[i]) > 1e-9 {
				t.Errorf("%s: matrix translation %v, position %v", c.Name, c.Matrix[12:15], c.Position)
			}
		}
	}
	if len(root.Children) != 67 {
		t.Errorf("%d placements encoded", len(root.Children))
	}
	var tree jsonNode
	if err := json.Unmarshal(first, &tree); err != nil {
		t.Fatal(err)
	}
	var solids int
	var check func(n *jsonNode)
	check = func(n *jsonNode) {
		if len(n.Matrix) != 16 {
			t.Errorf("%s: matrix of %d elements", n.Name, len(n.Matrix))
		}
		if n.Geometry != nil {
			solids++
		}
		for _, c := range n.Children {
			check(c)
		}
	}
	check(&tree)
	if solids == 0 {
		t.Error("no solid nodes encoded")
	}
}

func TestExportAllJSON(t *testing.T) {
	dir := t.TempDir()
	e, err := New(part.DefaultTable(), Options{Dir: dir, Formats: []Format{FormatJSON}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m, err := e.ExportAll(context.Background(), assembly.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Entries) != len(assembly.Selections()) {
		t.Fatalf("%d entries for %d selections", len(m.Entries), len(assembly.Selections()))
	}
	for _, name := range []string{assembly.FullName + ".json", "CouplingGuard_View.json", ManifestName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error(err)
		}
	}
}

func TestWriteFailureAborts(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := New(part.DefaultTable(), Options{Dir: filepath.Join(blocker, "out"), Formats: []Format{FormatJSON}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m, err := e.ExportAll(context.Background(), assembly.Config{})
	if err == nil {
		t.Fatal("export into a file succeeded")
	}
	if len(m.Entries) != 0 {
		t.Errorf("%d entries recorded after failure", len(m.Entries))
	}
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e, err := New(part.DefaultTable(), Options{Dir: t.TempDir()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Export(ctx, shaftConfig()); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestNewRejects(t *testing.T) {
	table := part.DefaultTable()
	if _, err := New(table, Options{Mesher: "voxels"}, nil); err == nil {
		t.Error("unknown mesher accepted")
	}
	if _, err := New(table, Options{Cells: 1}, nil); err == nil {
		t.Error("single cell accepted")
	}
	table.Shaft.Segments = 0
	if _, err := New(table, Options{}, nil); !errors.Is(err, part.ErrPrecondition) {
		t.Errorf("invalid table: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	for _, test := range []struct {
		in   string
		want int
		ok   bool
	}{
		{"json", 1, true},
		{"json, STL,json", 2, true},
		{"all", len(Formats()), true},
		{"gltf", 0, false},
		{" , ", 0, false},
	} {
		got, err := ParseFormats(test.in)
		if (err == nil) != test.ok || len(got) != test.want {
			t.Errorf("%q: got %v, %v", test.in, got, err)
		}
	}
}
