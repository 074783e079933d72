// Package devsetup installs the development tools listed in the project
// tool manifest.
package devsetup

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"

	"github.com/dsetlabs/dset/internal/executor"
	"github.com/dsetlabs/dset/internal/security"
)

// Options controls a dev-setup run.
type Options struct {
	Root           string // project root; relative manifest paths resolve against it
	Manifest       string // manifest path from config
	InstallCommand string // command template; {entry} is replaced per manifest line
	Force          bool   // skip the destructive-command check
}

// ParseManifest reads manifest entries from r. Blank lines and comments
// (lines starting with #, or trailing " # ..." fragments) are ignored.
func ParseManifest(r io.Reader) ([]string, error) {
	var entries []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			// only treat # as a comment at line start or after whitespace
			if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
				line = line[:i]
			}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.ContainsAny(line, " \t") {
			return nil, fmt.Errorf("invalid manifest entry %q: entries must be a single token", line)
		}
		entries = append(entries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return entries, nil
}

// ReadManifest opens and parses the manifest file for opts.
func ReadManifest(opts Options) ([]string, error) {
	path := opts.Manifest
	if !filepath.IsAbs(path) {
		path = filepath.Join(opts.Root, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseManifest(f)
}

// Install installs every manifest entry in order, stopping at the first
// failure. It succeeds only when every entry installed.
func Install(ctx context.Context, run executor.Runner, log pslog.Logger, stdout, stderr io.Writer, opts Options) error {
	entries, err := ReadManifest(opts)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		log.Info("dev manifest empty", "manifest", opts.Manifest)
		return nil
	}
	for _, entry := range entries {
		command := executor.Expand(opts.InstallCommand, map[string]string{"entry": entry})
		if err := security.CheckAllowed(command); err != nil && !opts.Force {
			return fmt.Errorf("refusing to run install command %q: %w (use --force to override)", command, err)
		}
		log.Info("installing tool", "entry", entry)
		fmt.Fprintf(stdout, "-> %s\n", command)
		if err := run.Execute(ctx, command, opts.Root, stdout, stderr); err != nil {
			return fmt.Errorf("install %s: %w", entry, err)
		}
	}
	log.Info("dev setup complete", "installed", len(entries))
	return nil
}
