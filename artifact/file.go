package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
)

// ReadFile reads and decodes the artifact file at path.
func ReadFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

// ReadKind reads the artifact at path and checks that it holds the expected kind.
func ReadKind(path string, kind format.ArtifactKind) (*Artifact, error) {
	a, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if a.Kind() != kind {
		return nil, fmt.Errorf("%w: %s holds a %s artifact, want %s", errs.ErrKindMismatch, path, a.Kind(), kind)
	}

	return a, nil
}

// WriteFile encodes a and writes it to path, replacing any existing file.
//
// The data is written to a temporary file in the same directory and renamed
// into place, so readers never observe a partially written artifact.
func WriteFile(path string, a *Artifact, opts ...EncoderOption) error {
	data, err := Encode(a, opts...)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint: errcheck

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
