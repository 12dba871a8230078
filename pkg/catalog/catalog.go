// Package catalog loads declaration documents into the registries and
// indexes the resolver works from.
//
// A Catalog is built once by Load and is read-only afterwards:
//
//	cat, err := catalog.Load(ctx, files.New("models"))
//	if err != nil {
//		return err
//	}
//	for _, d := range cat.Diagnostics() {
//		fmt.Println(d)
//	}
package catalog

import (
	"context"
	"slices"

	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/icd"
)

// Source delivers the declaration documents of a catalog.
type Source interface {
	Documents(ctx context.Context) ([]*icd.Document, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]*icd.Document, error)

// Documents implements Source.
func (f SourceFunc) Documents(ctx context.Context) ([]*icd.Document, error) {
	return f(ctx)
}

// Diagnostic records a recovered per-document problem.
type Diagnostic struct {
	Origin string           `json:"origin" yaml:"origin"`
	Key    icd.ComponentKey `json:"key" yaml:"key"`
	Kind   icd.DocumentKind `json:"kind" yaml:"kind"`
	Err    error            `json:"-" yaml:"-"`
}

// String renders the diagnostic for display.
func (d Diagnostic) String() string {
	return d.Origin + ": " + d.Err.Error()
}

// commandSet holds a component's declared sends and receives.
type commandSet struct {
	send    map[icd.ItemID]struct{}
	receive map[icd.ItemID]struct{}
}

// Catalog holds the registries and indexes built from one load.
type Catalog struct {
	prefixes   map[icd.ComponentKey]icd.Prefix
	keys       map[icd.Prefix]icd.ComponentKey
	components map[icd.Prefix]*icd.ComponentModel
	types      map[icd.Prefix]icd.ComponentType

	published     map[icd.ItemKind]map[icd.ItemID]icd.Prefix
	subscriptions map[icd.Prefix]map[icd.ItemKind]map[icd.TargetRef]struct{}
	commands      map[icd.Prefix]*commandSet
	receivers     map[icd.ItemID]icd.Prefix

	diagnostics []Diagnostic
}

func newCatalog() *Catalog {
	return &Catalog{
		prefixes:      make(map[icd.ComponentKey]icd.Prefix),
		keys:          make(map[icd.Prefix]icd.ComponentKey),
		components:    make(map[icd.Prefix]*icd.ComponentModel),
		types:         make(map[icd.Prefix]icd.ComponentType),
		published:     make(map[icd.ItemKind]map[icd.ItemID]icd.Prefix),
		subscriptions: make(map[icd.Prefix]map[icd.ItemKind]map[icd.TargetRef]struct{}),
		commands:      make(map[icd.Prefix]*commandSet),
		receivers:     make(map[icd.ItemID]icd.Prefix),
	}
}

// Prefix resolves a (subsystem, component) pair. It returns an
// *errors.UnknownComponentError when the pair is not registered.
func (c *Catalog) Prefix(key icd.ComponentKey) (icd.Prefix, error) {
	if p, ok := c.prefixes[key]; ok {
		return p, nil
	}
	for k := range c.prefixes {
		if k.Subsystem == key.Subsystem {
			return "", errors.NewUnknownComponentError(key.Subsystem, key.Component)
		}
	}
	return "", errors.NewUnknownSubsystemError(key.Subsystem, key.Component)
}

// HasPrefix reports whether p is registered.
func (c *Catalog) HasPrefix(p icd.Prefix) bool {
	_, ok := c.keys[p]
	return ok
}

// Key returns the declared key of a registered prefix.
func (c *Catalog) Key(p icd.Prefix) (icd.ComponentKey, bool) {
	k, ok := c.keys[p]
	return k, ok
}

// Type returns the component type of p, if declared.
func (c *Catalog) Type(p icd.Prefix) (icd.ComponentType, bool) {
	t, ok := c.types[p]
	return t, ok
}

// Component returns the component model registered under p.
func (c *Catalog) Component(p icd.Prefix) (*icd.ComponentModel, bool) {
	m, ok := c.components[p]
	return m, ok
}

// Prefixes returns every registered prefix, sorted.
func (c *Catalog) Prefixes() []icd.Prefix {
	out := make([]icd.Prefix, 0, len(c.keys))
	for p := range c.keys {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Publisher returns the owner of a published item.
func (c *Catalog) Publisher(kind icd.ItemKind, id icd.ItemID) (icd.Prefix, bool) {
	p, ok := c.published[kind][id]
	return p, ok
}

// Published returns every published identity of the given kind, sorted.
func (c *Catalog) Published(kind icd.ItemKind) []icd.ItemID {
	return sortedIDs(c.published[kind])
}

// Subscribers returns every prefix with at least one subscription, sorted.
func (c *Catalog) Subscribers() []icd.Prefix {
	return sortedKeys(c.subscriptions)
}

// Subscriptions returns the targets p subscribes to for kind, sorted.
func (c *Catalog) Subscriptions(p icd.Prefix, kind icd.ItemKind) []icd.TargetRef {
	set := c.subscriptions[p][kind]
	out := make([]icd.TargetRef, 0, len(set))
	for ref := range set {
		out = append(out, ref)
	}
	slices.SortFunc(out, icd.TargetRef.Compare)
	return out
}

// CommandOwners returns every prefix with a command document, sorted.
func (c *Catalog) CommandOwners() []icd.Prefix {
	return sortedKeys(c.commands)
}

// Sends returns the resolved command identities p sends, sorted.
func (c *Catalog) Sends(p icd.Prefix) []icd.ItemID {
	if cs, ok := c.commands[p]; ok {
		return sortedIDs(cs.send)
	}
	return nil
}

// Receives returns the command identities p receives, sorted.
func (c *Catalog) Receives(p icd.Prefix) []icd.ItemID {
	if cs, ok := c.commands[p]; ok {
		return sortedIDs(cs.receive)
	}
	return nil
}

// Receiver returns the prefix that receives a command identity.
func (c *Catalog) Receiver(id icd.ItemID) (icd.Prefix, bool) {
	p, ok := c.receivers[id]
	return p, ok
}

// Diagnostics returns the problems recovered during load, in processing order.
func (c *Catalog) Diagnostics() []Diagnostic {
	return slices.Clone(c.diagnostics)
}

func sortedIDs[V any](m map[icd.ItemID]V) []icd.ItemID {
	out := make([]icd.ItemID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	slices.SortFunc(out, icd.ItemID.Compare)
	return out
}

func sortedKeys[V any](m map[icd.Prefix]V) []icd.Prefix {
	out := make([]icd.Prefix, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
