package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/pslog"

	"github.com/dsetlabs/dset/internal/db"
	"github.com/dsetlabs/dset/internal/journal"
)

// testContext returns a context carrying a discarding logger, matching
// what main seeds before command execution.
func testContext() context.Context {
	logger := pslog.NewWithOptions(io.Discard, pslog.Options{
		Mode:    pslog.ModeStructured,
		NoColor: true,
	})
	return pslog.ContextWithLogger(context.Background(), logger)
}

// setupProject isolates the journal DB and makes a temp dir the working
// directory for the command under test.
func setupProject(t *testing.T) string {
	t.Helper()
	t.Setenv("DSDEV_HOME", t.TempDir())
	proj := t.TempDir()
	t.Chdir(proj)
	return proj
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(testContext())
}

func TestCleanCommandRemovesArtifactsIdempotently(t *testing.T) {
	proj := setupProject(t)
	for _, p := range []string{"build/out.bin", "dist/pkg.tar.gz", ".coverage"} {
		path := filepath.Join(proj, p)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	if err := runCommand(t, "clean"); err != nil {
		t.Fatalf("clean: %v", err)
	}
	for _, p := range []string{"build", "dist", ".coverage"} {
		if _, err := os.Lstat(filepath.Join(proj, p)); !os.IsNotExist(err) {
			t.Errorf("%s still present", p)
		}
	}
	// repeat run must be a no-op, not an error
	if err := runCommand(t, "clean"); err != nil {
		t.Fatalf("second clean: %v", err)
	}
}

func TestCleanCommandDryRunRemovesNothing(t *testing.T) {
	proj := setupProject(t)
	buildDir := filepath.Join(proj, "build")
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := runCommand(t, "clean", "--dry-run"); err != nil {
		t.Fatalf("clean --dry-run: %v", err)
	}
	if _, err := os.Stat(buildDir); err != nil {
		t.Fatalf("dry-run removed the build dir: %v", err)
	}
}

func TestCleanCommandJournalsRemovedPaths(t *testing.T) {
	proj := setupProject(t)
	buildDir := filepath.Join(proj, "build")
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := runCommand(t, "clean"); err != nil {
		t.Fatalf("clean: %v", err)
	}

	conn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	repo := journal.NewRepository(conn)
	defer repo.Close()
	entries, err := repo.List(1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	e := entries[0]
	if e.Operation != "clean" || e.Status != journal.StatusOK {
		t.Fatalf("entry = %+v", e)
	}
	// the journal row names what was removed, not just a count
	if !e.Detail.Valid || !strings.Contains(e.Detail.String, "build") {
		t.Fatalf("detail = %+v", e.Detail)
	}
}

func TestDevCommandDryRun(t *testing.T) {
	proj := setupProject(t)
	manifest := "example.com/tool@v1.0.0\n"
	if err := os.WriteFile(filepath.Join(proj, "tools.txt"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := runCommand(t, "dev", "--dry-run"); err != nil {
		t.Fatalf("dev --dry-run: %v", err)
	}
}

func TestDevCommandMissingManifest(t *testing.T) {
	setupProject(t)
	if err := runCommand(t, "dev", "--dry-run"); err == nil {
		t.Fatalf("expected error for missing manifest")
	}
}

func TestReleaseCommandRequiresUploadCommand(t *testing.T) {
	setupProject(t)
	err := runCommand(t, "release", "--yes")
	if err == nil || !strings.Contains(err.Error(), "upload_command") {
		t.Fatalf("err = %v", err)
	}
}

func TestReleaseCommandDryRunTouchesNothing(t *testing.T) {
	proj := setupProject(t)
	cfg := `config_version: 1
name: demo
release:
  build_command: ""
  check_command: ""
  upload_command: "uploader {archive}"
`
	if err := os.WriteFile(filepath.Join(proj, "dsdev.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	buildDir := filepath.Join(proj, "build")
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := runCommand(t, "release", "--dry-run", "--yes"); err != nil {
		t.Fatalf("release --dry-run: %v", err)
	}
	if _, err := os.Stat(buildDir); err != nil {
		t.Fatalf("dry-run removed the build dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(proj, "dist")); !os.IsNotExist(err) {
		t.Fatalf("dry-run created the dist dir")
	}

	// a dry-run is not journaled
	conn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	repo := journal.NewRepository(conn)
	defer repo.Close()
	entries, err := repo.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestInitCommandDryRunWritesNothing(t *testing.T) {
	proj := setupProject(t)
	if err := runCommand(t, "init", "--dry-run"); err != nil {
		t.Fatalf("init --dry-run: %v", err)
	}
	for _, p := range []string{"dsdev.yaml", "tools.txt"} {
		if _, err := os.Stat(filepath.Join(proj, p)); !os.IsNotExist(err) {
			t.Fatalf("dry-run wrote %s", p)
		}
	}
}

func TestInitWritesConfigAndManifest(t *testing.T) {
	proj := setupProject(t)
	if err := runCommand(t, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(proj, "dsdev.yaml")); err != nil {
		t.Fatalf("dsdev.yaml missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(proj, "tools.txt")); err != nil {
		t.Fatalf("tools.txt missing: %v", err)
	}
	if err := runCommand(t, "init"); err == nil {
		t.Fatalf("expected error on second init")
	}
}

func TestHistoryCommandEmpty(t *testing.T) {
	setupProject(t)
	if err := runCommand(t, "history"); err != nil {
		t.Fatalf("history: %v", err)
	}
}

func TestConfigFlagMissingFile(t *testing.T) {
	setupProject(t)
	if err := runCommand(t, "clean", "--config", "nope.yaml"); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}
