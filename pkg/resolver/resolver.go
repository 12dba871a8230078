// Package resolver cross-references a loaded catalog: publishers against
// subscribers and command receivers against senders. The result holds the
// resolved links plus what could not be matched.
package resolver

import (
	"cmp"
	"slices"

	"github.com/agentstation/icdmap/pkg/icd"
)

// Catalog is the view of a loaded catalog the resolver needs.
// *catalog.Catalog satisfies it.
type Catalog interface {
	HasPrefix(p icd.Prefix) bool
	Publisher(kind icd.ItemKind, id icd.ItemID) (icd.Prefix, bool)
	Subscribers() []icd.Prefix
	Subscriptions(p icd.Prefix, kind icd.ItemKind) []icd.TargetRef
	CommandOwners() []icd.Prefix
	Sends(p icd.Prefix) []icd.ItemID
	Receives(p icd.Prefix) []icd.ItemID
}

// Link is a relationship whose producing and consuming ends are both known.
// For commands From sends to To; for events and telemetry From publishes
// and To subscribes.
type Link struct {
	Kind icd.LinkKind `json:"kind" yaml:"kind"`
	From icd.Prefix   `json:"from" yaml:"from"`
	To   icd.Prefix   `json:"to" yaml:"to"`
	Item string       `json:"item" yaml:"item"`
}

// Compare orders links by kind, from, to, then item.
func (l Link) Compare(other Link) int {
	return cmp.Or(
		cmp.Compare(linkOrder(l.Kind), linkOrder(other.Kind)),
		cmp.Compare(l.From, other.From),
		cmp.Compare(l.To, other.To),
		cmp.Compare(l.Item, other.Item),
	)
}

func linkOrder(k icd.LinkKind) int {
	if i := slices.Index(icd.LinkKinds, k); i >= 0 {
		return i
	}
	return len(icd.LinkKinds)
}

// Resolution is the outcome of resolving one catalog.
type Resolution struct {
	links             map[icd.LinkKind][]Link
	unresolved        map[icd.Prefix]map[icd.ItemKind][]icd.TargetRef
	unmatchedReceives map[icd.Prefix][]string
	unmatchedSends    []icd.ItemID
}

// Resolve computes links and unmatched declarations. It never fails: each
// declaration either resolves or is retained as unmatched.
func Resolve(cat Catalog) *Resolution {
	r := &Resolution{
		links:             make(map[icd.LinkKind][]Link),
		unresolved:        make(map[icd.Prefix]map[icd.ItemKind][]icd.TargetRef),
		unmatchedReceives: make(map[icd.Prefix][]string),
	}
	r.resolveCommands(cat)
	r.resolveSubscriptions(cat)
	for kind, links := range r.links {
		r.links[kind] = dedup(links)
	}
	return r
}

func (r *Resolution) resolveCommands(cat Catalog) {
	owners := cat.CommandOwners()

	senders := make(map[icd.ItemID][]icd.Prefix)
	for _, p := range owners {
		for _, id := range cat.Sends(p) {
			senders[id] = append(senders[id], p)
		}
	}

	received := make(map[icd.ItemID]bool)
	for _, receiver := range owners {
		for _, id := range cat.Receives(receiver) {
			received[id] = true
			from := senders[id]
			if len(from) == 0 {
				r.unmatchedReceives[receiver] = append(r.unmatchedReceives[receiver], id.Name)
				continue
			}
			for _, sender := range from {
				r.links[icd.LinkCommand] = append(r.links[icd.LinkCommand], Link{
					Kind: icd.LinkCommand,
					From: sender,
					To:   receiver,
					Item: id.Name,
				})
			}
		}
	}

	for id := range senders {
		if !received[id] {
			r.unmatchedSends = append(r.unmatchedSends, id)
		}
	}
	slices.SortFunc(r.unmatchedSends, icd.ItemID.Compare)
	for p, names := range r.unmatchedReceives {
		slices.Sort(names)
		r.unmatchedReceives[p] = slices.Compact(names)
	}
}

func (r *Resolution) resolveSubscriptions(cat Catalog) {
	for _, subscriber := range cat.Subscribers() {
		for _, kind := range icd.SubscribeKinds {
			linkKind, _ := icd.LinkKindFor(kind)
			for _, ref := range cat.Subscriptions(subscriber, kind) {
				publisher, ok := publisherOf(cat, kind, ref)
				if !ok {
					if r.unresolved[subscriber] == nil {
						r.unresolved[subscriber] = make(map[icd.ItemKind][]icd.TargetRef)
					}
					r.unresolved[subscriber][kind] = append(r.unresolved[subscriber][kind], ref)
					continue
				}
				r.links[linkKind] = append(r.links[linkKind], Link{
					Kind: linkKind,
					From: publisher,
					To:   subscriber,
					Item: ref.Item.Name,
				})
			}
		}
	}
}

// publisherOf finds the registered publisher of a subscription target.
func publisherOf(cat Catalog, kind icd.ItemKind, ref icd.TargetRef) (icd.Prefix, bool) {
	if !ref.Resolved {
		return "", false
	}
	p, ok := cat.Publisher(kind, ref.Item)
	if !ok || !cat.HasPrefix(p) {
		return "", false
	}
	return p, true
}

func dedup(links []Link) []Link {
	slices.SortFunc(links, Link.Compare)
	return slices.Compact(links)
}

// Links returns every resolved link of kind, sorted.
func (r *Resolution) Links(kind icd.LinkKind) []Link {
	return slices.Clone(r.links[kind])
}

// All returns every resolved link of every kind, sorted.
func (r *Resolution) All() []Link {
	var out []Link
	for _, kind := range icd.LinkKinds {
		out = append(out, r.links[kind]...)
	}
	return out
}

// LinksTo returns the links of kind whose consuming end is p.
func (r *Resolution) LinksTo(kind icd.LinkKind, p icd.Prefix) []Link {
	var out []Link
	for _, l := range r.links[kind] {
		if l.To == p {
			out = append(out, l)
		}
	}
	return out
}

// LinksFrom returns the links of kind whose producing end is p.
func (r *Resolution) LinksFrom(kind icd.LinkKind, p icd.Prefix) []Link {
	var out []Link
	for _, l := range r.links[kind] {
		if l.From == p {
			out = append(out, l)
		}
	}
	return out
}

// Unresolved returns p's subscriptions of kind with no known publisher.
func (r *Resolution) Unresolved(p icd.Prefix, kind icd.ItemKind) []icd.TargetRef {
	return slices.Clone(r.unresolved[p][kind])
}

// UnresolvedSubscribers returns every prefix with an unresolved subscription, sorted.
func (r *Resolution) UnresolvedSubscribers() []icd.Prefix {
	out := make([]icd.Prefix, 0, len(r.unresolved))
	for p := range r.unresolved {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// UnmatchedReceives returns the commands p receives that nobody sends, sorted.
func (r *Resolution) UnmatchedReceives(p icd.Prefix) []string {
	return slices.Clone(r.unmatchedReceives[p])
}

// UnmatchedReceivers returns every prefix with an unmatched receive, sorted.
func (r *Resolution) UnmatchedReceivers() []icd.Prefix {
	out := make([]icd.Prefix, 0, len(r.unmatchedReceives))
	for p := range r.unmatchedReceives {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// UnmatchedSends returns the sent command identities that the target does
// not declare as received, sorted.
func (r *Resolution) UnmatchedSends() []icd.ItemID {
	return slices.Clone(r.unmatchedSends)
}
