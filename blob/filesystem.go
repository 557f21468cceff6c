package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/awantoch/kwanixflow/utils"
)

const fileURLPrefix = "file://"

// FilesystemBlobStore archives exports as files under one directory.
type FilesystemBlobStore struct {
	dir string
}

// NewFilesystemBlobStore creates dir if needed.
func NewFilesystemBlobStore(dir string) (*FilesystemBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FilesystemBlobStore{dir: dir}, nil
}

// Put writes data under the base name of filename and returns its file:// URL.
// Two exports racing on one name never see a half-written file: each writes
// its own temp file and renames it into place.
func (f *FilesystemBlobStore) Put(ctx context.Context, data []byte, mime, filename string) (string, error) {
	name := filepath.Base(filename)
	if filename == "" || name == "." || name == string(filepath.Separator) {
		name = "export-" + uuid.NewString()
	}
	path := filepath.Join(f.dir, name)

	tmp, err := os.CreateTemp(f.dir, "."+name+"-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return fileURLPrefix + path, nil
}

// Get reads back a file:// URL produced by Put.
func (f *FilesystemBlobStore) Get(ctx context.Context, url string) ([]byte, error) {
	path, ok := strings.CutPrefix(url, fileURLPrefix)
	if !ok {
		return nil, utils.Errorf("invalid file URL: %s", url)
	}
	return os.ReadFile(path)
}
