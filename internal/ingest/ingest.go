// Package ingest stages uploaded files on the local filesystem, one
// directory per run, so the pipeline always reads from a real path.
package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Gee9999/Air-Ship/constants"
	"github.com/Gee9999/Air-Ship/internal/common"
)

// StagedFile is the per-upload staging outcome.
type StagedFile struct {
	Field      string // multipart field the file arrived under
	Name       string // client-supplied base name, kept for logs only
	Path       string // path inside the run's staging directory
	FileExt    string // lowercased, without '.'
	SizeBytes  int64
	HashHex    string
	UploadedAt time.Time
}

// Stager writes uploads into a per-run staging directory under root.
type Stager struct {
	root   string
	logger *slog.Logger
}

func NewStager(root string, logger *slog.Logger) *Stager {
	if root == "" {
		root = "./tmp"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Stager{root: root, logger: logger}
}

// RunDir returns the staging directory for a run, creating it if needed.
func (s *Stager) RunDir(runID string) (string, error) {
	dir := filepath.Join(s.root, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	return dir, nil
}

// SaveUpload streams one upload into the run's staging directory, hashing
// as it writes. The stored name comes from the field, never from the
// client name. Extensions outside allowed are rejected before any I/O.
func (s *Stager) SaveUpload(runID, field, filename string, r io.Reader, allowed map[string]struct{}) (StagedFile, error) {
	ext := constants.NormalizeExt(filepath.Ext(filename))
	if _, ok := allowed[ext]; !ok {
		return StagedFile{}, fmt.Errorf("unsupported %s extension %q: %w", field, ext, common.ErrInputShape)
	}

	dir, err := s.RunDir(runID)
	if err != nil {
		return StagedFile{}, err
	}
	dst := filepath.Join(dir, field+"."+ext)
	f, err := os.Create(dst)
	if err != nil {
		return StagedFile{}, fmt.Errorf("create %s: %w", dst, err)
	}
	h := sha256.New()
	n, err := io.Copy(f, io.TeeReader(r, h))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return StagedFile{}, fmt.Errorf("stage %s: %w", field, err)
	}

	staged := StagedFile{
		Field:      field,
		Name:       filepath.Base(filename),
		Path:       dst,
		FileExt:    ext,
		SizeBytes:  n,
		HashHex:    hex.EncodeToString(h.Sum(nil)),
		UploadedAt: time.Now().UTC(),
	}
	s.logger.Debug("ingest.staged", "field", field, "path", dst, "bytes", n, "sha256", staged.HashHex)
	return staged, nil
}

// Cleanup removes a run's staging directory and everything in it.
func (s *Stager) Cleanup(runID string) {
	if err := os.RemoveAll(filepath.Join(s.root, runID)); err != nil {
		s.logger.Warn("ingest.cleanup.failed", "run_id", runID, "err", err)
	}
}
