package config

import (
	"fmt"

	"github.com/soypat/pumpsdf/assembly"
	"github.com/soypat/pumpsdf/export"
	"github.com/soypat/pumpsdf/part"
	"github.com/spf13/viper"
)

// ExportConfig holds the batch export settings.
type ExportConfig struct {
	Dir     string `mapstructure:"dir"`
	Formats string `mapstructure:"formats"`
	Cells   int    `mapstructure:"cells"`
	Mesher  string `mapstructure:"mesher"`
}

// Config holds all runtime configuration for pumpsdf commands.
// Values are populated from .pumpsdf.yaml, PUMPSDF_* env vars, and CLI flags.
type Config struct {
	// Table is the TOML dimension table. Empty means the built in table.
	Table     string          `mapstructure:"table"`
	AssetDir  string          `mapstructure:"asset_dir"`
	Selection string          `mapstructure:"selection"`
	Wireframe bool            `mapstructure:"wireframe"`
	Exploded  bool            `mapstructure:"exploded"`
	LogMode   string          `mapstructure:"log_mode"`
	LogLevel  string          `mapstructure:"log_level"`
	Layout    assembly.Layout `mapstructure:"layout"`
	Export    ExportConfig    `mapstructure:"export"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	layout := assembly.DefaultLayout()
	viper.SetDefault("table", "")
	viper.SetDefault("asset_dir", ".")
	viper.SetDefault("selection", "assembly")
	viper.SetDefault("wireframe", false)
	viper.SetDefault("exploded", false)
	viper.SetDefault("log_mode", "dev")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("layout.stage_spacing", layout.StageSpacing)
	viper.SetDefault("layout.stages", layout.Stages)
	viper.SetDefault("layout.explode_step", layout.ExplodeStep)
	viper.SetDefault("layout.cartridge_pitch", layout.CartridgePitch)
	viper.SetDefault("export.dir", "out")
	viper.SetDefault("export.formats", "json,stl")
	viper.SetDefault("export.cells", 64)
	viper.SetDefault("export.mesher", export.MesherOctree)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Layout.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Assembly returns the assembly configuration the settings describe.
func (c Config) Assembly() (assembly.Config, error) {
	sel, err := assembly.ParseSelection(c.Selection)
	if err != nil {
		return assembly.Config{}, err
	}
	return assembly.Config{
		Wireframe: c.Wireframe,
		Exploded:  c.Exploded,
		Selected:  sel,
		Layout:    c.Layout,
	}, nil
}

// DimensionTable loads the configured table, or the built in one.
func (c Config) DimensionTable() (part.Table, error) {
	if c.Table == "" {
		return part.DefaultTable(), nil
	}
	return part.LoadTableFile(c.Table)
}

// ExportOptions returns the exporter options the settings describe.
func (c Config) ExportOptions() (export.Options, error) {
	formats, err := export.ParseFormats(c.Export.Formats)
	if err != nil {
		return export.Options{}, err
	}
	return export.Options{
		Dir:     c.Export.Dir,
		Formats: formats,
		Cells:   c.Export.Cells,
		Mesher:  c.Export.Mesher,
	}, nil
}
