// Package release sequences the release pipeline: clean, build the
// distribution artifacts, verify their integrity, pause for human
// confirmation, then hand the artifacts to the configured upload tool.
// Each step must succeed before the next starts; the upload step is
// never reached without a completed clean and build.
package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"

	"github.com/dsetlabs/dset/internal/clean"
	"github.com/dsetlabs/dset/internal/config"
	"github.com/dsetlabs/dset/internal/executor"
	"github.com/dsetlabs/dset/internal/security"
)

// ErrAborted is returned when the operator declines the upload prompt.
// Artifacts built by earlier steps are left in place.
var ErrAborted = errors.New("release aborted before upload")

// Pipeline carries everything a release run needs. Confirm is consulted
// once, between the integrity check and the upload.
type Pipeline struct {
	Config  config.Config
	Root    string
	Version string
	Runner  executor.Runner
	Log     pslog.Logger
	Stdout  io.Writer
	Stderr  io.Writer
	Confirm func(msg string) bool
	Yes     bool // skip the confirmation prompt
	Force   bool // skip the destructive-command check
	DryRun  bool // print the pipeline plan without executing it
}

// Result reports what a run produced. Steps lists "name: outcome" pairs
// in execution order for the journal.
type Result struct {
	Steps    []string
	Archive  string
	Checksum string
	Uploaded bool
}

// Run executes the pipeline. On step failure the returned Result still
// lists the steps attempted so far.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var res Result
	step := func(name, outcome string) {
		res.Steps = append(res.Steps, name+": "+outcome)
	}

	if strings.TrimSpace(p.Config.Release.UploadCommand) == "" {
		return res, fmt.Errorf("release.upload_command is not configured")
	}

	if p.DryRun {
		return p.dryRun()
	}

	// clean
	removed, err := clean.Run(clean.Options{
		Root:  p.Root,
		Paths: p.Config.Clean.Paths,
		Globs: p.Config.Clean.Globs,
	})
	if err != nil {
		step("clean", "failed")
		return res, fmt.Errorf("clean: %w", err)
	}
	p.Log.Info("clean complete", "removed", len(removed))
	step("clean", "ok")

	// build
	if err := p.runCommand(ctx, "build", p.Config.Release.BuildCommand); err != nil {
		step("build", "failed")
		return res, err
	}
	distDir := filepath.Join(p.Root, p.Config.DistDir)
	archive, err := buildArchive(p.Root, distDir, p.Config.Name, p.Version)
	if err != nil {
		step("build", "failed")
		return res, fmt.Errorf("build archive: %w", err)
	}
	checksum, err := writeChecksum(archive)
	if err != nil {
		step("build", "failed")
		return res, fmt.Errorf("write checksum: %w", err)
	}
	res.Archive = archive
	res.Checksum = checksum
	p.Log.Info("distribution built", "archive", archive)
	step("build", "ok")

	// integrity check
	if err := verifyArchive(archive, checksum); err != nil {
		step("check", "failed")
		return res, fmt.Errorf("integrity check: %w", err)
	}
	if err := p.runCommand(ctx, "check", p.Config.Release.CheckCommand); err != nil {
		step("check", "failed")
		return res, err
	}
	step("check", "ok")

	// confirmation gate
	if !p.Yes {
		if p.Confirm == nil || !p.Confirm(fmt.Sprintf("Upload %s now?", filepath.Base(archive))) {
			step("confirm", "declined")
			return res, ErrAborted
		}
	}
	step("confirm", "ok")

	// upload
	uploadCmd := executor.Expand(p.Config.Release.UploadCommand, map[string]string{
		"dist":    distDir,
		"archive": archive,
		"version": p.Version,
	})
	if err := p.execChecked(ctx, uploadCmd); err != nil {
		step("upload", "failed")
		return res, fmt.Errorf("upload: %w", err)
	}
	res.Uploaded = true
	p.Log.Info("upload complete", "archive", archive)
	step("upload", "ok")

	return res, nil
}

// dryRun prints the pipeline plan in execution order without touching
// the tree or running any external command.
func (p *Pipeline) dryRun() (Result, error) {
	var res Result

	targets, err := clean.Plan(clean.Options{
		Root:  p.Root,
		Paths: p.Config.Clean.Paths,
		Globs: p.Config.Clean.Globs,
	})
	if err != nil {
		return res, fmt.Errorf("clean: %w", err)
	}
	for _, t := range targets {
		fmt.Fprintf(p.Stdout, "dry-run: would remove %s\n", t)
	}
	res.Steps = append(res.Steps, "clean: dry-run")

	if cmd := strings.TrimSpace(p.Config.Release.BuildCommand); cmd != "" {
		fmt.Fprintf(p.Stdout, "dry-run: would run %s\n", cmd)
	}
	distDir := filepath.Join(p.Root, p.Config.DistDir)
	archive := archiveName(distDir, p.Config.Name, p.Version)
	fmt.Fprintf(p.Stdout, "dry-run: would build %s\n", archive)
	res.Steps = append(res.Steps, "build: dry-run")

	if cmd := strings.TrimSpace(p.Config.Release.CheckCommand); cmd != "" {
		fmt.Fprintf(p.Stdout, "dry-run: would run %s\n", cmd)
	}
	res.Steps = append(res.Steps, "check: dry-run")

	uploadCmd := executor.Expand(p.Config.Release.UploadCommand, map[string]string{
		"dist":    distDir,
		"archive": archive,
		"version": p.Version,
	})
	fmt.Fprintf(p.Stdout, "dry-run: would run %s after confirmation\n", uploadCmd)
	res.Steps = append(res.Steps, "upload: dry-run")

	return res, nil
}

// runCommand runs one configured external command step; an empty
// command means the step is skipped.
func (p *Pipeline) runCommand(ctx context.Context, name, command string) error {
	if strings.TrimSpace(command) == "" {
		p.Log.Debug("step has no command", "step", name)
		return nil
	}
	if err := p.execChecked(ctx, command); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (p *Pipeline) execChecked(ctx context.Context, command string) error {
	if err := security.CheckAllowed(command); err != nil && !p.Force {
		return fmt.Errorf("refusing to run %q: %w (use --force to override)", command, err)
	}
	fmt.Fprintf(p.Stdout, "-> %s\n", command)
	return p.Runner.Execute(ctx, command, p.Root, p.Stdout, p.Stderr)
}
