// Package memory provides an in-process document source, used by tests and
// by callers that assemble a catalog programmatically.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentstation/icdmap/pkg/icd"
)

// Source holds documents in memory.
type Source struct {
	mu   sync.RWMutex
	docs []*icd.Document
}

// New creates a memory source seeded with docs.
func New(docs ...*icd.Document) *Source {
	s := &Source{}
	for _, d := range docs {
		s.Put(d)
	}
	return s
}

// Put adds a document.
func (s *Source) Put(doc *icd.Document) *Source {
	if doc == nil {
		return s
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	return s
}

// PutYAML adds a YAML document for subsystem.component. The origin is
// the collection name the document would have in a database.
func (s *Source) PutYAML(subsystem, component string, kind icd.DocumentKind, body string) *Source {
	return s.Put(&icd.Document{
		Key:    icd.ComponentKey{Subsystem: subsystem, Component: component},
		Kind:   kind,
		Origin: fmt.Sprintf("%s.%s.%s", subsystem, component, kind),
		Format: icd.FormatYAML,
		Data:   []byte(body),
	})
}

// Len returns the number of documents held.
func (s *Source) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Documents implements catalog.Source. Each call returns fresh copies.
func (s *Source) Documents(ctx context.Context) ([]*icd.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*icd.Document, len(s.docs))
	for i, d := range s.docs {
		cp := *d
		cp.Data = append([]byte(nil), d.Data...)
		out[i] = &cp
	}
	return out, nil
}
