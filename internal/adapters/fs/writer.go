package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactWriter = (*Writer)(nil)

// Writer persists artifacts with atomic replacement.
// A file whose content already matches is not rewritten.
type Writer struct {
	hasher *Hasher
}

// NewWriter creates a new Writer.
func NewWriter(hasher *Hasher) *Writer {
	return &Writer{hasher: hasher}
}

// Write implements ports.ArtifactWriter.
func (w *Writer) Write(dir string, artifact domain.Artifact) (domain.ArtifactResult, error) {
	path := filepath.Join(dir, artifact.FileName)
	result := domain.ArtifactResult{
		Kind: artifact.Kind,
		Path: path,
		Hash: w.hasher.HashContent(artifact.Content),
	}

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return domain.ArtifactResult{}, zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "path", dir)
	}

	if existing, err := w.hasher.ComputeFileHash(path); err == nil && existing == result.Hash {
		result.Status = domain.StatusUnchanged
		return result, nil
	}

	if err := writeAtomic(dir, path, artifact.Content); err != nil {
		return domain.ArtifactResult{}, err
	}

	result.Status = domain.StatusWritten
	return result, nil
}

// Remove implements ports.ArtifactWriter.
func (w *Writer) Remove(dir, fileName string) (bool, error) {
	path := filepath.Join(dir, fileName)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrArtifactRemoveFailed.Error()), "path", path)
	}
	return true, nil
}

// writeAtomic writes content to a temporary file in dir and renames it over path.
func writeAtomic(dir, path string, content []byte) error {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Best effort cleanup; fails once renamed

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", path)
	}
	return nil
}
