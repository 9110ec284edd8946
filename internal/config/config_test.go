package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/soypat/pumpsdf/assembly"
	"github.com/soypat/pumpsdf/export"
	"github.com/soypat/pumpsdf/part"
	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Table", cfg.Table, ""},
		{"AssetDir", cfg.AssetDir, "."},
		{"Selection", cfg.Selection, "assembly"},
		{"Wireframe", cfg.Wireframe, false},
		{"LogMode", cfg.LogMode, "dev"},
		{"Layout", cfg.Layout, assembly.DefaultLayout()},
		{"ExportDir", cfg.Export.Dir, "out"},
		{"ExportCells", cfg.Export.Cells, 64},
		{"ExportMesher", cfg.Export.Mesher, export.MesherOctree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "selection",
			envKey: "PUMPSDF_SELECTION",
			envVal: "guard",
			field:  func(c Config) any { return c.Selection },
			want:   "guard",
		},
		{
			name:   "exploded",
			envKey: "PUMPSDF_EXPLODED",
			envVal: "true",
			field:  func(c Config) any { return c.Exploded },
			want:   true,
		},
		{
			name:   "layout.stages",
			envKey: "PUMPSDF_LAYOUT_STAGES",
			envVal: "5",
			field:  func(c Config) any { return c.Layout.Stages },
			want:   5,
		},
		{
			name:   "export.cells",
			envKey: "PUMPSDF_EXPORT_CELLS",
			envVal: "32",
			field:  func(c Config) any { return c.Export.Cells },
			want:   32,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so PUMPSDF_* env vars map to config keys.
			viper.SetEnvPrefix("PUMPSDF")
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
			viper.AutomaticEnv()

			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	resetViper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".pumpsdf.yaml")
	data := "selection: cartridge\nlayout:\n  explode_step: 3\nexport:\n  formats: json,obj\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	acfg, err := cfg.Assembly()
	if err != nil {
		t.Fatal(err)
	}
	if acfg.Selected != assembly.SelectCartridge {
		t.Errorf("selection %v", acfg.Selected)
	}
	if acfg.Layout.ExplodeStep != 3 || acfg.Layout.Stages != 8 {
		t.Errorf("layout %+v", acfg.Layout)
	}
	opts, err := cfg.ExportOptions()
	if err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 2 || opts.Formats[1] != export.FormatOBJ {
		t.Errorf("formats %v", opts.Formats)
	}
}

func TestLoad_Invalid(t *testing.T) {
	resetViper()
	viper.Set("layout.stages", 0)
	if _, err := Load(); err == nil {
		t.Error("zero stages accepted")
	}

	resetViper()
	viper.Set("selection", "spaceship")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.Assembly(); err == nil {
		t.Error("unknown selection accepted")
	}
}

func TestDimensionTable(t *testing.T) {
	resetViper()
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	table, err := cfg.DimensionTable()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(table, part.DefaultTable()) {
		t.Error("empty table path did not give the built in table")
	}
	cfg.Table = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := cfg.DimensionTable(); err == nil {
		t.Error("missing table file accepted")
	}
}
