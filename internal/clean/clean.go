// Package clean removes configured build artifacts from the project tree.
// Removal is idempotent: paths that are already absent are skipped, so a
// repeat run is a no-op.
package clean

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Options names what to remove. Paths and Globs are relative to Root;
// anything resolving outside Root is refused.
type Options struct {
	Root  string
	Paths []string
	Globs []string
}

// Plan returns the absolute paths that a Run would remove: configured
// paths that currently exist plus all glob matches, sorted and
// de-duplicated.
func Plan(opts Options) ([]string, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var targets []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			targets = append(targets, p)
		}
	}

	for _, p := range opts.Paths {
		abs, err := resolveWithin(root, p)
		if err != nil {
			return nil, err
		}
		if _, err := os.Lstat(abs); err == nil {
			add(abs)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat %s: %w", abs, err)
		}
	}

	for _, g := range opts.Globs {
		pattern, err := resolveWithin(root, g)
		if err != nil {
			return nil, err
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", g, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(targets)
	return targets, nil
}

// Run removes everything Plan reports and returns the removed paths.
func Run(opts Options) ([]string, error) {
	targets, err := Plan(opts)
	if err != nil {
		return nil, err
	}
	for _, p := range targets {
		if err := os.RemoveAll(p); err != nil {
			return nil, fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return targets, nil
}

// resolveWithin joins p onto root and rejects results escaping root.
func resolveWithin(root, p string) (string, error) {
	if filepath.IsAbs(p) {
		return "", fmt.Errorf("refusing absolute clean path %q", p)
	}
	abs := filepath.Clean(filepath.Join(root, p))
	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return "", fmt.Errorf("refusing clean path %q outside project root", p)
	}
	if abs == root {
		return "", fmt.Errorf("refusing to clean the project root itself")
	}
	return abs, nil
}
