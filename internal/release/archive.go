package release

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// archiveName returns the distribution archive path for a name/version
// pair; a leading "v" on the version is dropped from the file name.
func archiveName(distDir, name, version string) string {
	return filepath.Join(distDir, fmt.Sprintf("%s-%s.tar.gz", name, strings.TrimPrefix(version, "v")))
}

// buildArchive writes a gzipped tar of the project tree to
// distDir/<name>-<version>.tar.gz and returns its path. The dist
// directory itself, VCS metadata, and the dsdev data dir are skipped.
func buildArchive(root, distDir, name, version string) (string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	distDir, err = filepath.Abs(distDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return "", fmt.Errorf("create dist dir: %w", err)
	}
	archivePath := archiveName(distDir, name, version)

	f, err := os.Create(archivePath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	prefix := fmt.Sprintf("%s-%s", name, strings.TrimPrefix(version, "v"))
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if skipEntry(rel, path, distDir) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(filepath.Join(prefix, rel))
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		_, cErr := io.Copy(tw, src)
		_ = src.Close()
		return cErr
	})
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", root, err)
	}
	if err := tw.Close(); err != nil {
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return archivePath, nil
}

func skipEntry(rel, abs, distDir string) bool {
	base := filepath.Base(rel)
	if base == ".git" || base == ".dsdev" {
		return true
	}
	if abs == distDir {
		return true
	}
	return false
}

// writeChecksum writes "<sha256>  <filename>" next to the archive and
// returns the checksum file path.
func writeChecksum(archivePath string) (string, error) {
	sum, err := fileSHA256(archivePath)
	if err != nil {
		return "", err
	}
	checksumPath := archivePath + ".sha256"
	line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(archivePath))
	if err := os.WriteFile(checksumPath, []byte(line), 0o644); err != nil {
		return "", fmt.Errorf("write checksum: %w", err)
	}
	return checksumPath, nil
}

// verifyArchive re-hashes the archive against its checksum file and
// confirms the tarball opens and contains at least one entry.
func verifyArchive(archivePath, checksumPath string) error {
	data, err := os.ReadFile(checksumPath)
	if err != nil {
		return fmt.Errorf("read checksum: %w", err)
	}
	fields := strings.Fields(string(data))
	if len(fields) < 1 {
		return fmt.Errorf("checksum file %s is empty", checksumPath)
	}
	want := fields[0]
	got, err := fileSHA256(archivePath)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("checksum mismatch for %s: have %s, want %s", archivePath, got, want)
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = f.Close() }()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("archive %s is not gzip: %w", archivePath, err)
	}
	defer func() { _ = gz.Close() }()
	tr := tar.NewReader(gz)
	entries := 0
	for {
		if _, err := tr.Next(); err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("archive %s is corrupt: %w", archivePath, err)
		}
		entries++
	}
	if entries == 0 {
		return fmt.Errorf("archive %s has no entries", archivePath)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
