// Package projector turns a resolved catalog into the node and edge
// description of a diagram centred on a set of primary components.
package projector

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/icdmap/pkg/constants"
	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/icd"
	"github.com/agentstation/icdmap/pkg/logging"
	"github.com/agentstation/icdmap/pkg/resolver"
)

// Catalog is the registry view the projector needs.
// *catalog.Catalog satisfies it.
type Catalog interface {
	HasPrefix(p icd.Prefix) bool
	Prefix(key icd.ComponentKey) (icd.Prefix, error)
	Prefixes() []icd.Prefix
	Key(p icd.Prefix) (icd.ComponentKey, bool)
	Type(p icd.Prefix) (icd.ComponentType, bool)
}

// Links is the resolution view the projector needs.
// *resolver.Resolution satisfies it.
type Links interface {
	LinksTo(kind icd.LinkKind, p icd.Prefix) []resolver.Link
	LinksFrom(kind icd.LinkKind, p icd.Prefix) []resolver.Link
	UnmatchedReceives(p icd.Prefix) []string
	Unresolved(p icd.Prefix, kind icd.ItemKind) []icd.TargetRef
}

// pairKey identifies one aggregated edge.
type pairKey struct {
	kind     icd.LinkKind
	from, to icd.Prefix
}

type projection struct {
	opts    Options
	logger  *zerolog.Logger
	nodes   map[icd.Prefix]bool // value reports primary
	pairs   map[pairKey][]string
	missing map[icd.Prefix]map[icd.LinkKind][]string
	graph   *Graph
}

// Project builds the graph for the primaries selected by opts. It returns an
// *errors.InvalidSelectionError when opts names neither components nor
// subsystems. Requested names that are not registered are skipped and
// listed in Graph.Skipped.
func Project(cat Catalog, res Links, opts Options) (*Graph, error) {
	return ProjectWithLogger(cat, res, opts, logging.Default())
}

// ProjectWithLogger is Project with an explicit logger for skipped names.
func ProjectWithLogger(cat Catalog, res Links, opts Options, logger *zerolog.Logger) (*Graph, error) {
	if err := ValidateSelection(opts); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Default()
	}

	p := &projection{
		opts:    opts,
		logger:  logger,
		nodes:   make(map[icd.Prefix]bool),
		pairs:   make(map[pairKey][]string),
		missing: make(map[icd.Prefix]map[icd.LinkKind][]string),
		graph:   &Graph{Grouped: opts.GroupSubsystems},
	}

	for _, primary := range p.primaries(cat) {
		p.nodes[primary] = true
		p.collect(res, primary)
	}

	p.emitNodes()
	p.emitEdges()
	p.emitMissing()
	return p.graph, nil
}

// ValidateSelection checks that opts names at least one component or subsystem.
func ValidateSelection(opts Options) error {
	if len(nonEmpty(opts.Components)) == 0 && len(nonEmpty(opts.Subsystems)) == 0 {
		return errors.NewInvalidSelectionError("either components or subsystems must be given")
	}
	return nil
}

// primaries expands the selection, then drops omitted component types.
func (p *projection) primaries(cat Catalog) []icd.Prefix {
	selected := make(map[icd.Prefix]struct{})

	for _, name := range nonEmpty(p.opts.Components) {
		prefix, ok := lookup(cat, name)
		if !ok {
			p.skip(name, "component")
			continue
		}
		selected[prefix] = struct{}{}
	}

	for _, subsystem := range nonEmpty(p.opts.Subsystems) {
		found := false
		for _, prefix := range cat.Prefixes() {
			if inSubsystem(cat, prefix, subsystem) {
				selected[prefix] = struct{}{}
				found = true
			}
		}
		if !found {
			p.skip(subsystem, "subsystem")
		}
	}

	out := make([]icd.Prefix, 0, len(selected))
	for prefix := range selected {
		if t, ok := cat.Type(prefix); ok && p.opts.omitted(t) {
			continue
		}
		out = append(out, prefix)
	}
	slices.Sort(out)
	return out
}

func (p *projection) skip(name, what string) {
	p.graph.Skipped = append(p.graph.Skipped, name)
	p.logger.Warn().Str(what, name).Msg("Unknown " + what + ", skipping")
}

// lookup resolves a requested name as a prefix, then as subsystem.component.
func lookup(cat Catalog, name string) (icd.Prefix, bool) {
	if cat.HasPrefix(icd.Prefix(name)) {
		return icd.Prefix(name), true
	}
	key, ok := icd.ParseComponentKey(name)
	if !ok {
		return "", false
	}
	prefix, err := cat.Prefix(key)
	if err != nil {
		return "", false
	}
	return prefix, true
}

func inSubsystem(cat Catalog, prefix icd.Prefix, subsystem string) bool {
	if strings.EqualFold(prefix.Subsystem(), subsystem) {
		return true
	}
	key, ok := cat.Key(prefix)
	return ok && strings.EqualFold(key.Subsystem, subsystem)
}

// collect gathers the links touching primary and its missing requirements.
func (p *projection) collect(res Links, primary icd.Prefix) {
	kinds := []icd.LinkKind{icd.LinkCommand, icd.LinkEvent}
	if p.opts.IncludeTelemetry {
		kinds = append(kinds, icd.LinkTelemetry)
	}

	for _, kind := range kinds {
		for _, l := range res.LinksTo(kind, primary) {
			p.addLink(l)
		}
		for _, l := range res.LinksFrom(kind, primary) {
			p.addLink(l)
		}
	}

	if p.opts.MissingCommands {
		p.addMissing(primary, icd.LinkCommand, res.UnmatchedReceives(primary))
	}
	if p.opts.MissingEvents {
		p.addMissing(primary, icd.LinkEvent, targetNames(res.Unresolved(primary, icd.ItemEvent)))
	}
	if p.opts.IncludeTelemetry && p.opts.MissingTelemetry {
		p.addMissing(primary, icd.LinkTelemetry, targetNames(res.Unresolved(primary, icd.ItemTelemetry)))
	}
}

func (p *projection) addLink(l resolver.Link) {
	for _, end := range []icd.Prefix{l.From, l.To} {
		if _, ok := p.nodes[end]; !ok {
			p.nodes[end] = false
		}
	}
	k := pairKey{kind: l.Kind, from: l.From, to: l.To}
	p.pairs[k] = append(p.pairs[k], l.Item)
}

func (p *projection) addMissing(primary icd.Prefix, kind icd.LinkKind, items []string) {
	if len(items) == 0 {
		return
	}
	if p.missing[primary] == nil {
		p.missing[primary] = make(map[icd.LinkKind][]string)
	}
	p.missing[primary][kind] = append(p.missing[primary][kind], items...)
}

// targetNames renders unresolved targets as owner.name, since their
// publisher is unknown.
func targetNames(refs []icd.TargetRef) []string {
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.String()
	}
	return names
}

func (p *projection) emitNodes() {
	ids := make([]icd.Prefix, 0, len(p.nodes))
	for id := range p.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	clusters := make(map[string]*Cluster)
	var order []string
	for _, prefix := range ids {
		n := p.node(prefix)
		p.graph.Nodes = append(p.graph.Nodes, n)

		c, ok := clusters[n.Subsystem]
		if !ok {
			c = &Cluster{Subsystem: n.Subsystem, Color: n.Color}
			clusters[n.Subsystem] = c
			order = append(order, n.Subsystem)
		}
		c.Nodes = append(c.Nodes, n.ID)
	}

	slices.Sort(order)
	for _, s := range order {
		p.graph.Clusters = append(p.graph.Clusters, *clusters[s])
	}
}

// node styles a prefix. Subsystems in the palette get their color and a
// short label; others get the default color and the full prefix.
func (p *projection) node(prefix icd.Prefix) Node {
	subsystem := prefix.Subsystem()
	n := Node{
		ID:        string(prefix),
		Prefix:    prefix,
		Label:     string(prefix),
		Subsystem: subsystem,
		Color:     p.opts.defaultColor(),
		Style:     StyleSecondary,
	}
	if color, ok := paletteColor(p.opts.palette(), subsystem); ok {
		n.Color = color
		n.Label = prefix.Short()
	}
	if p.nodes[prefix] {
		n.Style = StylePrimary
	}
	return n
}

func paletteColor(palette map[string]string, subsystem string) (string, bool) {
	if c, ok := palette[subsystem]; ok {
		return c, true
	}
	c, ok := palette[strings.ToLower(subsystem)]
	return c, ok
}

func (p *projection) emitEdges() {
	keys := make([]pairKey, 0, len(p.pairs))
	for k := range p.pairs {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, comparePairs)

	for _, k := range keys {
		p.graph.Edges = append(p.graph.Edges, Edge{
			From:      string(k.from),
			To:        string(k.to),
			Kind:      k.kind,
			Labels:    sortedSet(p.pairs[k]),
			ShowLabel: p.opts.showLabel(k.kind),
		})
	}
}

// emitMissing adds one dummy node per primary with missing requirements and
// one labeled edge per missing kind, from the dummy to the primary.
func (p *projection) emitMissing() {
	primaries := make([]icd.Prefix, 0, len(p.missing))
	for prefix := range p.missing {
		primaries = append(primaries, prefix)
	}
	slices.Sort(primaries)

	for _, prefix := range primaries {
		dummy := MissingNodeID(prefix)
		p.graph.Nodes = append(p.graph.Nodes, Node{
			ID:        dummy,
			Prefix:    prefix,
			Label:     "missing",
			Subsystem: prefix.Subsystem(),
			Color:     constants.MissingNodeColor,
			Style:     StyleMissing,
		})

		for _, kind := range icd.LinkKinds {
			items := sortedSet(p.missing[prefix][kind])
			if len(items) == 0 {
				continue
			}
			for _, item := range items {
				p.graph.Missing = append(p.graph.Missing, MissingRequirement{Prefix: prefix, Kind: kind, Item: item})
			}
			p.graph.Edges = append(p.graph.Edges, Edge{
				From:      dummy,
				To:        string(prefix),
				Kind:      kind,
				Labels:    items,
				ShowLabel: true,
				Missing:   true,
			})
		}
	}
}

// MissingNodeID returns the id of the dummy node holding prefix's missing requirements.
func MissingNodeID(prefix icd.Prefix) string {
	return string(prefix) + constants.MissingNodeSuffix
}

func comparePairs(a, b pairKey) int {
	return cmp.Or(
		cmp.Compare(slices.Index(icd.LinkKinds, a.kind), slices.Index(icd.LinkKinds, b.kind)),
		cmp.Compare(a.from, b.from),
		cmp.Compare(a.to, b.to),
	)
}

func sortedSet(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
