package appdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appName = "brandkit"

// Dirs holds the per-user locations brandkit reads and writes
type Dirs struct {
	DataPath   string
	AssetsPath string
	ChartsPath string
	ConfigPath string
}

// New resolves XDG-compliant paths for the current user
func New() (*Dirs, error) {
	dataPath, err := dataRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to determine data directory: %w", err)
	}
	configPath, err := configFile()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	return &Dirs{
		DataPath:   dataPath,
		AssetsPath: filepath.Join(dataPath, "assets"),
		ChartsPath: filepath.Join(dataPath, "charts"),
		ConfigPath: configPath,
	}, nil
}

// dataRoot follows the XDG Base Directory layout on Unix and AppData on Windows
func dataRoot() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName), nil
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", appName), nil
}

func configFile() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName+"-config", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// Initialize creates the data directories if they don't exist
func (d *Dirs) Initialize() error {
	for _, dir := range []string{d.DataPath, d.AssetsPath, d.ChartsPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Exists checks if the data directory has been created
func (d *Dirs) Exists() bool {
	info, err := os.Stat(d.DataPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ChartPath returns where a scan chart with the given name is written.
// The .html extension is added when missing.
func (d *Dirs) ChartPath(name string) string {
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}
	return filepath.Join(d.ChartsPath, filepath.Base(name))
}

// ResolveAssetsDir picks the configured assets directory, falling back to the
// per-user one when it exists
func (d *Dirs) ResolveAssetsDir(configured string) string {
	if configured != "" {
		return expandHome(configured)
	}
	if info, err := os.Stat(d.AssetsPath); err == nil && info.IsDir() {
		return d.AssetsPath
	}
	return ""
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
