package preprocess

import (
	"os"
	"path/filepath"
)

// OSFileSystem is the production FileSystem: it reads real files from
// disk. cmd/comfyc is the only caller that constructs one; every other
// caller of Expand is expected to supply its own FileSystem, keeping
// the core free of direct os package imports.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFileSystem) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (OSFileSystem) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

func (OSFileSystem) Dir(path string) string {
	return filepath.Dir(path)
}
