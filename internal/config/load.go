package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load reads configuration from the provided path. If path is empty it
// looks for dsdev.yaml in root. A missing file yields the defaults; a
// present file must carry the supported config_version.
func Load(root, path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = filepath.Join(root, DefaultFileName)
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("name", cfg.Name)
	v.SetDefault("dist_dir", cfg.DistDir)
	v.SetDefault("clean.paths", cfg.Clean.Paths)
	v.SetDefault("clean.globs", cfg.Clean.Globs)
	v.SetDefault("dev.manifest", cfg.Dev.Manifest)
	v.SetDefault("dev.install_command", cfg.Dev.InstallCommand)
	v.SetDefault("release.build_command", cfg.Release.BuildCommand)
	v.SetDefault("release.check_command", cfg.Release.CheckCommand)
	v.SetDefault("release.upload_command", cfg.Release.UploadCommand)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || isNotFound(err) {
			if explicit {
				return Config{}, fmt.Errorf("config file not found: %s", path)
			}
		} else {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		// IsSet would always be true here because of the SetDefault call;
		// InConfig reports whether the file itself carries the key.
		if !v.InConfig("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Name == "" {
		return Config{}, fmt.Errorf("name cannot be empty")
	}
	if cfg.DistDir == "" {
		return Config{}, fmt.Errorf("dist_dir cannot be empty")
	}
	return cfg, nil
}

func isNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	// viper wraps fs errors from SetConfigFile reads
	if pe, ok := err.(*os.PathError); ok {
		return os.IsNotExist(pe)
	}
	return false
}
