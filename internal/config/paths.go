package config

import (
	"os"
	"path/filepath"
)

// DataDir returns the directory used to store dsdev data (the operation
// journal). The DSDEV_HOME environment variable overrides the default
// dot-directory in the user's home.
func DataDir() (string, error) {
	if d := os.Getenv("DSDEV_HOME"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dsdev"), nil
}

// DBPath returns the full path to the SQLite journal database file.
func DBPath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "dsdev.db"), nil
}
