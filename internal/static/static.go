// Package static maps request paths onto a directory of prebuilt assets.
package static

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// IndexFile is the fallback document and the directory index.
const IndexFile = "index.html"

// ErrNoMatch means the request path does not name a servable file under
// the root. Missing files, directories without an index, unreadable files
// and paths that try to leave the root all report it.
var ErrNoMatch = errors.New("no matching asset")

// Root is a read-only view of the asset directory. It is safe for
// concurrent use.
type Root struct {
	fs afero.Fs

	// dir is the symlink-free root on disk; empty for in-memory roots.
	dir string
}

// NewRoot confines the root to dir on the local disk. Symlinks are
// followed only while their target stays under dir.
func NewRoot(dir string) *Root {
	r := NewRootFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
	r.dir = filepath.Clean(dir)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		r.dir = resolved
	}
	return r
}

// NewRootFs serves assets from fsys, whose "/" is the asset root.
func NewRootFs(fsys afero.Fs) *Root {
	return &Root{fs: afero.NewReadOnlyFs(fsys)}
}

// Asset is an open file ready to be written to a response. The caller
// must Close it.
type Asset struct {
	afero.File
	Name        string
	Info        fs.FileInfo
	ContentType string

	// DirIndex is set when Name is the index.html of a requested directory.
	DirIndex bool
}

// Open resolves urlPath to a regular file. The path is cleaned against
// "/" first so ".." segments can never climb above the root.
func (r *Root) Open(urlPath string) (*Asset, error) {
	name := path.Clean("/" + urlPath)

	info, err := r.fs.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, name)
	}
	dirIndex := info.IsDir()
	if dirIndex {
		name = path.Join(name, IndexFile)
		if info, err = r.fs.Stat(name); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, name)
		}
	}
	if !info.Mode().IsRegular() || !r.contains(name) {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, name)
	}

	f, err := r.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, name)
	}

	return &Asset{
		File:        f,
		Name:        name,
		Info:        info,
		ContentType: ContentType(name),
		DirIndex:    dirIndex,
	}, nil
}

// contains reports whether name, after resolving every symlink on the
// way, still lives under the on-disk root.
func (r *Root) contains(name string) bool {
	if r.dir == "" {
		return true
	}
	target, err := filepath.EvalSymlinks(filepath.Join(r.dir, filepath.FromSlash(name)))
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(r.dir, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Index returns the bytes of the fallback document.
func (r *Root) Index() ([]byte, error) {
	if !r.contains("/" + IndexFile) {
		return nil, fmt.Errorf("reading %s: %w", IndexFile, ErrNoMatch)
	}
	data, err := afero.ReadFile(r.fs, "/"+IndexFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", IndexFile, err)
	}
	return data, nil
}

// HasIndex reports whether the fallback document exists as a regular file.
func (r *Root) HasIndex() bool {
	info, err := r.fs.Stat("/" + IndexFile)
	return err == nil && info.Mode().IsRegular() && r.contains("/"+IndexFile)
}
