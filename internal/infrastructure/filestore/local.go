package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Local stores uploads on disk under Dir and returns web paths of the form
// /uploads/<name>, served as static files by the HTTP layer.
type Local struct {
	Dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Local{Dir: dir}, nil
}

func (s *Local) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	filename := uuid.NewString() + filepath.Ext(name)
	dst := filepath.Join(s.Dir, filename)

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s", filename), nil
}
