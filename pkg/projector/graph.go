package projector

import (
	"github.com/agentstation/icdmap/pkg/icd"
)

// NodeStyle is how a node is drawn.
type NodeStyle string

// Node styles.
const (
	StylePrimary   NodeStyle = "primary"
	StyleSecondary NodeStyle = "secondary"
	StyleMissing   NodeStyle = "missing"
)

// Node is one vertex of the projected graph.
type Node struct {
	ID        string     `json:"id" yaml:"id"`
	Prefix    icd.Prefix `json:"prefix" yaml:"prefix"`
	Label     string     `json:"label" yaml:"label"`
	Subsystem string     `json:"subsystem" yaml:"subsystem"`
	Color     string     `json:"color" yaml:"color"`
	Style     NodeStyle  `json:"style" yaml:"style"`
}

// Edge aggregates every item flowing between one ordered pair of nodes.
type Edge struct {
	From      string       `json:"from" yaml:"from"`
	To        string       `json:"to" yaml:"to"`
	Kind      icd.LinkKind `json:"kind" yaml:"kind"`
	Labels    []string     `json:"labels" yaml:"labels"`
	ShowLabel bool         `json:"showLabel" yaml:"showLabel"`
	Missing   bool         `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Cluster groups the nodes of one subsystem.
type Cluster struct {
	Subsystem string   `json:"subsystem" yaml:"subsystem"`
	Color     string   `json:"color" yaml:"color"`
	Nodes     []string `json:"nodes" yaml:"nodes"`
}

// MissingRequirement is a primary's declared receive or subscription with
// no sender or publisher anywhere in the catalog.
type MissingRequirement struct {
	Prefix icd.Prefix   `json:"prefix" yaml:"prefix"`
	Kind   icd.LinkKind `json:"kind" yaml:"kind"`
	Item   string       `json:"item" yaml:"item"`
}

// Graph is the renderer-agnostic projection of a catalog.
type Graph struct {
	Nodes    []Node               `json:"nodes" yaml:"nodes"`
	Edges    []Edge               `json:"edges" yaml:"edges"`
	Clusters []Cluster            `json:"clusters,omitempty" yaml:"clusters,omitempty"`
	Grouped  bool                 `json:"grouped" yaml:"grouped"`
	Missing  []MissingRequirement `json:"missing,omitempty" yaml:"missing,omitempty"`
	// Skipped lists requested components that are not registered.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge returns the edge of kind between from and to.
func (g *Graph) Edge(kind icd.LinkKind, from, to string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.Kind == kind && e.From == from && e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}
