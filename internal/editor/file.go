package editor

import (
	"os"
	"path/filepath"
	"strings"
)

// File is an opaque handle on a path. The file is touched into existence at
// open so a later write never surprises; reads and writes reopen per
// operation.
type File struct {
	path string
}

func OpenPath(path string) (*File, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(expanded, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &File{path: expanded}, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

func (f *File) Path() string {
	return f.path
}

// Extension returns the path extension without its leading dot.
func (f *File) Extension() string {
	return strings.TrimPrefix(filepath.Ext(f.path), ".")
}

func (f *File) Read() ([]byte, error) {
	return os.ReadFile(f.path)
}

func (f *File) Write(data []byte) error {
	return os.WriteFile(f.path, data, 0o644)
}
