// Package files reads declaration documents from a model tree: a directory
// holding one sub-directory per component, each with some of
// component-model, publish-model, subscribe-model and command-model files
// in YAML, JSON or TOML.
package files

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/icd"
)

// Source walks a model tree.
type Source struct {
	root string
	fsys fs.FS
}

// New creates a source for the model tree rooted at root.
func New(root string) *Source {
	return &Source{root: root, fsys: os.DirFS(root)}
}

// NewFS creates a source over an arbitrary file system. name labels the
// tree in document origins and provides the fallback subsystem for
// components placed directly under the root.
func NewFS(fsys fs.FS, name string) *Source {
	return &Source{root: name, fsys: fsys}
}

// Root returns the tree root.
func (s *Source) Root() string {
	return s.root
}

// Documents implements catalog.Source. Entries whose name starts with a dot
// are skipped, directories included.
func (s *Source) Documents(ctx context.Context) ([]*icd.Document, error) {
	if _, err := fs.Stat(s.fsys, "."); err != nil {
		return nil, errors.WrapIO("open", s.root, err)
	}

	var docs []*icd.Document
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p != "." && isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		kind, format, ok := icd.ParseModelFileName(d.Name())
		if !ok {
			return nil
		}
		doc, err := s.read(p, kind, format)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, errors.WrapIO("walk", s.root, err)
	}
	return docs, nil
}

// Find returns the document of the given kind in a component directory,
// relative to the root. It returns errors.ErrNotFound when the directory
// holds no such model file.
func (s *Source) Find(dir string, kind icd.DocumentKind) (*icd.Document, error) {
	for _, ext := range icd.ModelExtensions {
		p := path.Join(filepath.ToSlash(dir), kind.FileName(ext))
		if _, err := fs.Stat(s.fsys, p); err != nil {
			continue
		}
		format, _ := icd.FormatForExt(ext)
		return s.read(p, kind, format)
	}
	return nil, errors.NewIOError("find", filepath.Join(s.root, dir, kind.FileName("")), errors.ErrNotFound)
}

func (s *Source) read(p string, kind icd.DocumentKind, format icd.Format) (*icd.Document, error) {
	data, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return nil, errors.WrapIO("read", filepath.Join(s.root, p), err)
	}
	doc := &icd.Document{
		Kind:   kind,
		Origin: filepath.Join(s.root, filepath.FromSlash(p)),
		Format: format,
		Data:   data,
	}
	doc.Key = s.key(doc, path.Dir(p))
	return doc, nil
}

// key takes subsystem and component from the document, falling back to the
// two innermost directory names.
func (s *Source) key(doc *icd.Document, dir string) icd.ComponentKey {
	var key icd.ComponentKey
	if header, err := doc.Header(); err == nil {
		key = header
	}
	if key.Subsystem != "" && key.Component != "" {
		return key
	}

	parts := strings.Split(dir, "/")
	if dir == "." {
		parts = nil
	}
	fallback := icd.ComponentKey{Subsystem: filepath.Base(s.root)}
	switch n := len(parts); {
	case n >= 2:
		fallback.Subsystem, fallback.Component = parts[n-2], parts[n-1]
	case n == 1:
		fallback.Component = parts[0]
	}
	if key.Subsystem == "" {
		key.Subsystem = fallback.Subsystem
	}
	if key.Component == "" {
		key.Component = fallback.Component
	}
	return key
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
