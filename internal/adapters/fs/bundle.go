package fs

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bft-labs/beacon/internal/domain"
	"github.com/bft-labs/beacon/internal/ports"
)

const resourceExt = ".json"

// Bundle implements ports.ResourceLoader over an fs.FS.
type Bundle struct {
	fsys fs.FS
	dir  string
}

// NewBundle creates a Bundle that reads resources from fsys.
func NewBundle(fsys fs.FS) *Bundle {
	return &Bundle{fsys: fsys}
}

// NewDirBundle creates a Bundle rooted at dir on the local file system.
func NewDirBundle(dir string) *Bundle {
	return &Bundle{fsys: os.DirFS(dir), dir: dir}
}

// Dir returns the directory backing the bundle, or "" for non-directory bundles.
func (b *Bundle) Dir() string {
	return b.dir
}

// ResourceFile maps a resource name to its file name inside the bundle.
func ResourceFile(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(name, resourceExt) {
		return name
	}
	return name + resourceExt
}

// Load returns the raw bytes of <name>.json.
func (b *Bundle) Load(name string) ([]byte, error) {
	file := ResourceFile(name)
	if strings.TrimSuffix(file, resourceExt) == "" || !fs.ValidPath(file) {
		return nil, &domain.ResourceError{Name: file, Err: fs.ErrInvalid}
	}

	info, err := fs.Stat(b.fsys, file)
	if err != nil {
		return nil, &domain.ResourceError{Name: path.Base(file), Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &domain.ResourceError{Name: path.Base(file), Err: fs.ErrNotExist}
	}

	data, err := fs.ReadFile(b.fsys, file)
	if err != nil {
		return nil, &domain.ResourceError{Name: path.Base(file), Err: err}
	}
	return data, nil
}

var _ ports.ResourceLoader = (*Bundle)(nil)
