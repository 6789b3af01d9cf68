package appdir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_XDGPaths(t *testing.T) {
	dataHome := t.TempDir()
	configHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)

	d, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"data", d.DataPath, filepath.Join(dataHome, "brandkit")},
		{"assets", d.AssetsPath, filepath.Join(dataHome, "brandkit", "assets")},
		{"charts", d.ChartsPath, filepath.Join(dataHome, "brandkit", "charts")},
		{"config", d.ConfigPath, filepath.Join(configHome, "brandkit", "config.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s path = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestDirs_Initialize(t *testing.T) {
	root := filepath.Join(t.TempDir(), "brandkit")
	d := &Dirs{
		DataPath:   root,
		AssetsPath: filepath.Join(root, "assets"),
		ChartsPath: filepath.Join(root, "charts"),
	}

	if d.Exists() {
		t.Fatal("Exists() = true before Initialize")
	}

	if err := d.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}

	if !d.Exists() {
		t.Error("Exists() = false after Initialize")
	}
	for _, dir := range []string{d.AssetsPath, d.ChartsPath} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %s was not created", dir)
		}
	}
}

func TestDirs_ChartPath(t *testing.T) {
	d := &Dirs{ChartsPath: "/data/charts"}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"adds extension", "tiers", "/data/charts/tiers.html"},
		{"keeps extension", "tiers.html", "/data/charts/tiers.html"},
		{"strips directories", "../../etc/tiers", "/data/charts/tiers.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.ChartPath(tt.input); got != tt.expected {
				t.Errorf("ChartPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDirs_ResolveAssetsDir(t *testing.T) {
	root := t.TempDir()
	d := &Dirs{AssetsPath: filepath.Join(root, "assets")}

	if got := d.ResolveAssetsDir(""); got != "" {
		t.Errorf("expected no assets dir before it exists, got %q", got)
	}

	if err := os.MkdirAll(d.AssetsPath, 0755); err != nil {
		t.Fatal(err)
	}
	if got := d.ResolveAssetsDir(""); got != d.AssetsPath {
		t.Errorf("ResolveAssetsDir(\"\") = %q, want %q", got, d.AssetsPath)
	}

	if got := d.ResolveAssetsDir("/srv/assets"); got != "/srv/assets" {
		t.Errorf("configured dir not preferred: %q", got)
	}

	if got := d.ResolveAssetsDir("~/icons"); strings.HasPrefix(got, "~") {
		t.Errorf("home not expanded: %q", got)
	}
}
