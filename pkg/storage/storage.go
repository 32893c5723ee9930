package storage

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// WriteResult describes a completed atomic write.
type WriteResult struct {
	Bytes  int64
	SHA256 string
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func (s *Storage) HasFile(fn string) bool {
	return fileExists(fn)
}

// EnsureParentDir creates every missing ancestor of filePath.
func (s *Storage) EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	if err := os.WriteFile(filePath, content, 0600); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

// WriteAtomic streams r into a temp file next to filePath and renames it into
// place once the copy succeeds. A failed or interrupted copy never leaves a
// file at filePath.
func (s *Storage) WriteAtomic(filePath string, r io.Reader) (WriteResult, error) {
	tmp, err := os.CreateTemp(filepath.Dir(filePath), "."+filepath.Base(filePath)+".*.part")
	if err != nil {
		return WriteResult{}, fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	hashWriter := sha256.New()
	n, err := io.Copy(tmp, io.TeeReader(r, hashWriter))
	if err != nil {
		cleanup()
		return WriteResult{}, fmt.Errorf("error writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return WriteResult{}, fmt.Errorf("error syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return WriteResult{}, fmt.Errorf("error closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		_ = os.Remove(tmpName)
		return WriteResult{}, fmt.Errorf("error moving file into place: %w", err)
	}

	return WriteResult{Bytes: n, SHA256: fmt.Sprintf("%x", hashWriter.Sum(nil))}, nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
