package catalog

import (
	"cmp"
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/icd"
	"github.com/agentstation/icdmap/pkg/logging"
)

// Load reads every document from src and builds a Catalog.
//
// Only a failure of the source itself is returned. Problems with individual
// documents or items are logged, recorded as diagnostics and skipped.
func Load(ctx context.Context, src Source, opts ...Option) (*Catalog, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	docs, err := src.Documents(ctx)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	l := &loader{cat: newCatalog(), logger: logger}
	for _, doc := range sortDocuments(docs) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		l.document(doc)
	}

	l.logger.Debug().
		Int("documents", len(docs)).
		Int("components", len(l.cat.keys)).
		Int("diagnostics", len(l.cat.diagnostics)).
		Msg("Catalog loaded")

	return l.cat, nil
}

// sortDocuments orders documents by kind, then key, then origin.
func sortDocuments(docs []*icd.Document) []*icd.Document {
	out := make([]*icd.Document, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			out = append(out, d)
		}
	}
	slices.SortStableFunc(out, func(a, b *icd.Document) int {
		return cmp.Or(
			cmp.Compare(a.Kind.Order(), b.Kind.Order()),
			cmp.Compare(a.Key.Subsystem, b.Key.Subsystem),
			cmp.Compare(a.Key.Component, b.Key.Component),
			cmp.Compare(a.Origin, b.Origin),
		)
	})
	return out
}

type loader struct {
	cat    *Catalog
	logger *zerolog.Logger
}

// diagnose records and logs a recovered problem.
func (l *loader) diagnose(doc *icd.Document, err error) {
	l.cat.diagnostics = append(l.cat.diagnostics, Diagnostic{
		Origin: doc.Origin,
		Key:    doc.Key,
		Kind:   doc.Kind,
		Err:    err,
	})
	l.logger.Warn().
		Err(err).
		Str("subsystem", doc.Key.Subsystem).
		Str("component", doc.Key.Component).
		Str("kind", string(doc.Kind)).
		Str("origin", doc.Origin).
		Msg("Skipping declaration")
}

func (l *loader) document(doc *icd.Document) {
	switch doc.Kind {
	case icd.DocComponent:
		l.component(doc)
	case icd.DocPublish:
		l.publish(doc)
	case icd.DocSubscribe:
		l.subscribe(doc)
	case icd.DocCommand:
		l.command(doc)
	default:
		l.diagnose(doc, errors.NewMalformedDocumentError(doc.Origin, string(doc.Format),
			"unknown document kind "+string(doc.Kind), nil))
	}
}

func (l *loader) component(doc *icd.Document) {
	var m icd.ComponentModel
	if err := doc.Decode(&m); err != nil {
		l.diagnose(doc, err)
		return
	}
	if m.Subsystem == "" {
		m.Subsystem = doc.Key.Subsystem
	}
	if m.Component == "" {
		m.Component = doc.Key.Component
	}
	m.Normalize()
	if err := m.Validate(); err != nil {
		l.diagnose(doc, errors.NewMalformedDocumentError(doc.Origin, string(doc.Format), err.Error(), err))
		return
	}

	key := m.Key()
	if existing, ok := l.cat.prefixes[key]; ok {
		l.diagnose(doc, errors.NewValidationError("prefix", m.Prefix,
			"component "+key.String()+" already registered with prefix "+string(existing)))
		return
	}
	if other, ok := l.cat.keys[m.Prefix]; ok {
		l.diagnose(doc, errors.NewValidationError("prefix", m.Prefix,
			"prefix already claimed by "+other.String()))
		return
	}

	l.cat.prefixes[key] = m.Prefix
	l.cat.keys[m.Prefix] = key
	l.cat.components[m.Prefix] = &m
	if m.ComponentType != "" {
		l.cat.types[m.Prefix] = m.ComponentType
	}
}

// owner resolves the prefix a document belongs to.
func (l *loader) owner(doc *icd.Document, subsystem, component string) (icd.Prefix, bool) {
	key := doc.Key
	if subsystem != "" && component != "" {
		key = icd.ComponentKey{Subsystem: subsystem, Component: component}
	}
	p, err := l.cat.Prefix(key)
	if err != nil {
		l.diagnose(doc, err)
		return "", false
	}
	return p, true
}

func (l *loader) publish(doc *icd.Document) {
	var m icd.PublishModel
	if err := doc.Decode(&m); err != nil {
		l.diagnose(doc, err)
		return
	}
	p, ok := l.owner(doc, m.Subsystem, m.Component)
	if !ok || m.Publish == nil {
		return
	}
	for _, kind := range icd.PublishKinds {
		for _, item := range m.Publish.Items(kind) {
			if item.Name == "" {
				continue
			}
			if l.cat.published[kind] == nil {
				l.cat.published[kind] = make(map[icd.ItemID]icd.Prefix)
			}
			l.cat.published[kind][icd.ItemID{Owner: p, Name: item.Name}] = p
		}
	}
}

func (l *loader) subscribe(doc *icd.Document) {
	var m icd.SubscribeModel
	if err := doc.Decode(&m); err != nil {
		l.diagnose(doc, err)
		return
	}
	p, ok := l.owner(doc, m.Subsystem, m.Component)
	if !ok || m.Subscribe == nil {
		return
	}
	for _, kind := range icd.SubscribeKinds {
		for _, item := range m.Subscribe.Items(kind) {
			ref := icd.TargetRef{Item: icd.ItemID{Name: item.Name}}
			if target, err := l.cat.Prefix(item.Key()); err == nil {
				ref.Item.Owner = target
				ref.Resolved = true
			} else {
				ref.Item.Owner = icd.Prefix(item.Key().String())
				l.logger.Debug().
					Err(err).
					Str("subscriber", string(p)).
					Str("item", item.Name).
					Msg("Subscription target not registered")
			}
			if l.cat.subscriptions[p] == nil {
				l.cat.subscriptions[p] = make(map[icd.ItemKind]map[icd.TargetRef]struct{})
			}
			if l.cat.subscriptions[p][kind] == nil {
				l.cat.subscriptions[p][kind] = make(map[icd.TargetRef]struct{})
			}
			l.cat.subscriptions[p][kind][ref] = struct{}{}
		}
	}
}

func (l *loader) command(doc *icd.Document) {
	var m icd.CommandModel
	if err := doc.Decode(&m); err != nil {
		l.diagnose(doc, err)
		return
	}
	p, ok := l.owner(doc, m.Subsystem, m.Component)
	if !ok {
		return
	}
	cs := l.cat.commands[p]
	if cs == nil {
		cs = &commandSet{
			send:    make(map[icd.ItemID]struct{}),
			receive: make(map[icd.ItemID]struct{}),
		}
		l.cat.commands[p] = cs
	}

	for _, rc := range m.Receive {
		if rc.Name == "" {
			l.diagnose(doc, errors.NewMalformedDocumentError(doc.Origin, string(doc.Format),
				"receive entry without a name", nil))
			continue
		}
		id := icd.ItemID{Owner: p, Name: rc.Name}
		cs.receive[id] = struct{}{}
		l.cat.receivers[id] = p
	}
	for _, sc := range m.Send {
		target, err := l.cat.Prefix(sc.Key())
		if err != nil {
			l.diagnose(doc, err)
			continue
		}
		cs.send[icd.ItemID{Owner: target, Name: sc.Name}] = struct{}{}
	}
}
