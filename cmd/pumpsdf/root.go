package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/soypat/pumpsdf/internal/config"
	"github.com/soypat/pumpsdf/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "pumpsdf",
	Short: "Parametric multistage feed pump geometry",
	Long: "pumpsdf builds the parts of a multistage boiler feed pump from a dimension table,\n" +
		"composes them into the full assembly or the inner cartridge and exports the result.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .pumpsdf.yaml)")
	pf.String("table", "", "TOML dimension table (default built in)")
	pf.String("asset-dir", ".", "directory holding external asset bundles")
	pf.StringP("selection", "s", "assembly", "assembly, cartridge, a part name or a short key")
	pf.Bool("wireframe", false, "draw every solid as wireframe")
	pf.Bool("exploded", false, "use the exploded layout")
	pf.String("log-level", "info", "debug, info, warn or error")
	pf.String("log-mode", "dev", "dev or prod log encoding")
	for key, flag := range map[string]string{
		"table":     "table",
		"asset_dir": "asset-dir",
		"selection": "selection",
		"wireframe": "wireframe",
		"exploded":  "exploded",
		"log_level": "log-level",
		"log_mode":  "log-mode",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".pumpsdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("PUMPSDF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// setup loads the configuration and builds the logger every command uses.
func setup() (config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return cfg, nil, fmt.Errorf("logger: %w", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("config file", "path", used)
	}
	return cfg, log, nil
}
