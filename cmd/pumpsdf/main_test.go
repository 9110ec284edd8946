package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestListSelections(t *testing.T) {
	out := run(t, "list")
	for _, want := range []string{"assembly", "cartridge", "CouplingGuard", "LubeOilSkid"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output lacks %s", want)
		}
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	out := run(t, "export", "guard", "PumpShaft", "--dir", dir, "--formats", "json", "--log-level", "error")
	if !strings.Contains(out, "wrote 2 files for 2 selections") {
		t.Errorf("unexpected output %q", out)
	}
	for _, name := range []string{"CouplingGuard_View.json", "PumpShaft_View.json", "manifest.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error(err)
		}
	}
}
