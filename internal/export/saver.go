package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Saver receives a finished download. The desktop shell implements it with
// a save dialog; DirSaver writes into a directory.
type Saver interface {
	Save(ctx context.Context, name string, data []byte) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, name string, data []byte) error

func (f SaverFunc) Save(ctx context.Context, name string, data []byte) error {
	return f(ctx, name, data)
}

// DirSaver writes downloads into Dir, replacing any file of the same name.
type DirSaver struct {
	Dir string
}

func (d DirSaver) Save(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(d.Dir, filepath.Base(name))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
