// Package render writes projected graphs as Graphviz DOT and drives the
// external Graphviz tools that turn DOT into images.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agentstation/icdmap/pkg/constants"
	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/icd"
	"github.com/agentstation/icdmap/pkg/projector"
)

// DOTOptions holds the graph-level attributes.
type DOTOptions struct {
	Layout     string // dot, fdp, neato, twopi, circo
	Ratio      string
	Separation string
}

func (o DOTOptions) withDefaults() DOTOptions {
	if o.Layout == "" {
		o.Layout = constants.DefaultLayout
	}
	if o.Ratio == "" {
		o.Ratio = constants.DefaultRatio
	}
	if o.Separation == "" {
		o.Separation = constants.DefaultSeparation
	}
	return o
}

// EdgeColor returns the color used for edges of kind.
func EdgeColor(kind icd.LinkKind) string {
	switch kind {
	case icd.LinkCommand:
		return constants.CommandEdgeColor
	case icd.LinkTelemetry:
		return constants.TelemetryEdgeColor
	default:
		return constants.EventEdgeColor
	}
}

// WriteDOT writes g as a DOT digraph.
func WriteDOT(w io.Writer, g *projector.Graph, opts DOTOptions) error {
	opts = opts.withDefaults()
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph {")
	fmt.Fprintf(bw, "\tgraph [layout=%s sep=%s ratio=%s]\n", quote(opts.Layout), quote(opts.Separation), quote(opts.Ratio))
	fmt.Fprintln(bw, "\tnode [fontsize=\"20\"]")
	fmt.Fprintln(bw, "\tedge [fontsize=\"10\"]")

	if g.Grouped {
		for _, c := range g.Clusters {
			writeCluster(bw, g, c)
		}
		for _, n := range g.Nodes {
			if n.Style == projector.StyleMissing {
				writeNode(bw, "\t", n)
			}
		}
	} else {
		for _, n := range g.Nodes {
			writeNode(bw, "\t", n)
		}
	}

	for _, e := range g.Edges {
		writeEdge(bw, e)
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func writeCluster(w io.Writer, g *projector.Graph, c projector.Cluster) {
	fmt.Fprintf(w, "\tsubgraph %s {\n", quote("cluster_"+c.Subsystem))
	fmt.Fprintf(w, "\t\tgraph [label=%s color=%s fontcolor=%s fontsize=\"30\" style=\"rounded\" penwidth=\"3\" labelloc=\"b\"]\n",
		quote(c.Subsystem), quote(c.Color), quote(c.Color))
	for _, id := range c.Nodes {
		if n, ok := g.Node(id); ok {
			writeNode(w, "\t\t", n)
		}
	}
	fmt.Fprintln(w, "\t}")
}

func writeNode(w io.Writer, indent string, n projector.Node) {
	style := "dashed"
	switch n.Style {
	case projector.StylePrimary:
		style = "bold"
	case projector.StyleMissing:
		style = "filled"
	}
	fmt.Fprintf(w, "%s%s [label=%s color=%s fontcolor=%s style=%s]\n",
		indent, quote(n.ID), quote(n.Label), quote(n.Color), quote(n.Color), quote(style))
}

func writeEdge(w io.Writer, e projector.Edge) {
	color := EdgeColor(e.Kind)
	attrs := fmt.Sprintf("color=%s fontcolor=%s", quote(color), quote(color))
	if e.ShowLabel && len(e.Labels) > 0 {
		attrs = fmt.Sprintf("label=%s %s", quote(strings.Join(e.Labels, "\n")), attrs)
	}
	if e.Missing {
		attrs += ` style="dotted"`
	}
	fmt.Fprintf(w, "\t%s -> %s [%s]\n", quote(e.From), quote(e.To), attrs)
}

// quote renders s as a quoted DOT id.
func quote(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
	)
	return `"` + r.Replace(s) + `"`
}

// WriteDOTFile writes g to path. Any failure is an *errors.OutputWriteError.
func WriteDOTFile(path string, g *projector.Graph, opts DOTOptions) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapOutput(path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WrapOutput(path, cerr)
		}
	}()
	return errors.WrapOutput(path, WriteDOT(f, g, opts))
}
