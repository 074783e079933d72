// Package config holds the dsdev project configuration and the paths
// used for persistent state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion marks the supported config file version.
const CurrentConfigVersion = 1

// DefaultFileName is the config file looked up in the project root when
// --config is not given.
const DefaultFileName = "dsdev.yaml"

// Config is the top-level project configuration.
type Config struct {
	ConfigVersion int           `mapstructure:"config_version" yaml:"config_version"`
	Name          string        `mapstructure:"name" yaml:"name"`
	DistDir       string        `mapstructure:"dist_dir" yaml:"dist_dir"`
	Clean         CleanConfig   `mapstructure:"clean" yaml:"clean"`
	Dev           DevConfig     `mapstructure:"dev" yaml:"dev"`
	Release       ReleaseConfig `mapstructure:"release" yaml:"release"`
}

// CleanConfig names the build artifacts the clean operation removes.
// Paths and globs are relative to the project root.
type CleanConfig struct {
	Paths []string `mapstructure:"paths" yaml:"paths"`
	Globs []string `mapstructure:"globs" yaml:"globs"`
}

// DevConfig controls the dev-setup operation.
type DevConfig struct {
	Manifest       string `mapstructure:"manifest" yaml:"manifest"`
	InstallCommand string `mapstructure:"install_command" yaml:"install_command"`
}

// ReleaseConfig names the external commands the release pipeline runs.
// UploadCommand is empty by default; release refuses to reach the upload
// step without one.
type ReleaseConfig struct {
	BuildCommand  string `mapstructure:"build_command" yaml:"build_command"`
	CheckCommand  string `mapstructure:"check_command" yaml:"check_command"`
	UploadCommand string `mapstructure:"upload_command" yaml:"upload_command"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Name:          "dset",
		DistDir:       "dist",
		Clean: CleanConfig{
			Paths: []string{"build", "dist", ".coverage"},
			Globs: nil,
		},
		Dev: DevConfig{
			Manifest:       "tools.txt",
			InstallCommand: "go install {entry}",
		},
		Release: ReleaseConfig{
			BuildCommand: "go build ./...",
			CheckCommand: "go vet ./...",
		},
	}
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
