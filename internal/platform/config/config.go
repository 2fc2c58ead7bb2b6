package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the document checklist offered on every new draft. These match
// the product's baseline for German master's programmes.
var defaultDocuments = []string{"sop", "lor1", "lor2", "transcript", "cv", "languageCert"}

type Config struct {
	DataDir          string
	DBPath           string
	PluginsPath      string
	SignInDelay      time.Duration
	DefaultDocuments []string
}

// fileConfig is the optional <data-dir>/config.yaml overlay.
type fileConfig struct {
	SignInDelayMS    *int     `yaml:"sign_in_delay_ms"`
	DefaultDocuments []string `yaml:"default_documents"`
}

// New resolves the data directory (defaulting to ~/.unitrack) and applies the
// optional config.yaml on top of built-in defaults.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".unitrack")
	}

	cfg := Config{
		DataDir:          dataDir,
		DBPath:           filepath.Join(dataDir, "unitrack.db"),
		PluginsPath:      dataDir,
		SignInDelay:      600 * time.Millisecond,
		DefaultDocuments: append([]string(nil), defaultDocuments...),
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config.yaml: %w", err)
	}
	overlay := fileConfig{}
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return Config{}, fmt.Errorf("parse config.yaml: %w", err)
	}
	if overlay.SignInDelayMS != nil && *overlay.SignInDelayMS >= 0 {
		cfg.SignInDelay = time.Duration(*overlay.SignInDelayMS) * time.Millisecond
	}
	if len(overlay.DefaultDocuments) > 0 {
		cfg.DefaultDocuments = overlay.DefaultDocuments
	}
	return cfg, nil
}
