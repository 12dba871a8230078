package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/icd"
	"github.com/agentstation/icdmap/pkg/logging"
	"github.com/agentstation/icdmap/pkg/projector"
)

func sampleGraph(grouped bool) *projector.Graph {
	return &projector.Graph{
		Grouped: grouped,
		Nodes: []projector.Node{
			{ID: "iris.rotator", Prefix: "iris.rotator", Label: "rotator", Subsystem: "iris", Color: "blue", Style: projector.StylePrimary},
			{ID: "tcs.pk", Prefix: "tcs.pk", Label: "pk", Subsystem: "tcs", Color: "purple", Style: projector.StyleSecondary},
			{ID: "iris.rotator_missing", Prefix: "iris.rotator", Label: "missing", Subsystem: "iris", Color: "orangered", Style: projector.StyleMissing},
		},
		Clusters: []projector.Cluster{
			{Subsystem: "iris", Color: "blue", Nodes: []string{"iris.rotator"}},
			{Subsystem: "tcs", Color: "purple", Nodes: []string{"tcs.pk"}},
		},
		Edges: []projector.Edge{
			{From: "tcs.pk", To: "iris.rotator", Kind: icd.LinkCommand, Labels: []string{"follow", "init"}, ShowLabel: true},
			{From: "tcs.pk", To: "iris.rotator", Kind: icd.LinkEvent, Labels: []string{"demand"}},
			{From: "iris.rotator_missing", To: "iris.rotator", Kind: icd.LinkCommand, Labels: []string{"reset"}, ShowLabel: true, Missing: true},
		},
	}
}

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, sampleGraph(false), DOTOptions{}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "digraph {\n"))
	assert.Contains(t, out, `graph [layout="dot" sep="+20" ratio="0.5"]`)
	assert.Contains(t, out, `node [fontsize="20"]`)
	assert.Contains(t, out, `edge [fontsize="10"]`)
	assert.Contains(t, out, `"iris.rotator" [label="rotator" color="blue" fontcolor="blue" style="bold"]`)
	assert.Contains(t, out, `"tcs.pk" [label="pk" color="purple" fontcolor="purple" style="dashed"]`)
	assert.Contains(t, out, `"iris.rotator_missing" [label="missing" color="orangered" fontcolor="orangered" style="filled"]`)
	assert.Contains(t, out, `"tcs.pk" -> "iris.rotator" [label="follow\ninit" color="chocolate" fontcolor="chocolate"]`)
	assert.Contains(t, out, `"tcs.pk" -> "iris.rotator" [color="dimgrey" fontcolor="dimgrey"]`)
	assert.Contains(t, out, `"iris.rotator_missing" -> "iris.rotator" [label="reset" color="chocolate" fontcolor="chocolate" style="dotted"]`)
	assert.NotContains(t, out, "subgraph")
}

func TestWriteDOTGrouped(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, sampleGraph(true), DOTOptions{Layout: "fdp"}))
	out := buf.String()

	assert.Contains(t, out, `layout="fdp"`)
	assert.Contains(t, out, `subgraph "cluster_iris" {`)
	assert.Contains(t, out, `graph [label="iris" color="blue" fontcolor="blue" fontsize="30" style="rounded" penwidth="3" labelloc="b"]`)
	assert.Contains(t, out, "\t\t\"iris.rotator\" [")
	// the dummy node stays outside every cluster
	assert.Contains(t, out, "\n\t\"iris.rotator_missing\" [")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"a.b"`, quote("a.b"))
	assert.Equal(t, `"say \"hi\""`, quote(`say "hi"`))
	assert.Equal(t, `"a\nb"`, quote("a\nb"))
}

func TestEdgeColor(t *testing.T) {
	assert.Equal(t, "chocolate", EdgeColor(icd.LinkCommand))
	assert.Equal(t, "dimgrey", EdgeColor(icd.LinkEvent))
	assert.Equal(t, "steelblue", EdgeColor(icd.LinkTelemetry))
}

func TestWriteDOTFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icd.gv")
	require.NoError(t, WriteDOTFile(path, sampleGraph(false), DOTOptions{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")

	err = WriteDOTFile(filepath.Join(t.TempDir(), "missing", "icd.gv"), sampleGraph(false), DOTOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsOutputWrite(err))
}

func TestImageFormat(t *testing.T) {
	assert.Equal(t, "png", ImageFormat("out/icd.PNG"))
	assert.Equal(t, "svg", ImageFormat("icd.svg"))
	assert.Equal(t, "pdf", ImageFormat("icd"))
}

func TestGraphvizMissingBinary(t *testing.T) {
	g := Graphviz{Binary: "icdmap-no-such-graphviz", Logger: logging.NewNopLogger()}
	err := g.Render(context.Background(), "in.gv", "out.png", "")
	require.Error(t, err)

	var perr *errors.ProcessError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "render diagram", perr.Operation)
	assert.Contains(t, perr.Command, "-Kdot -Tpng -o out.png in.gv")
}

func TestShowImage(t *testing.T) {
	orig := Opener
	t.Cleanup(func() { Opener = orig })

	var opened string
	Opener = func(path string) error {
		opened = path
		return nil
	}
	require.NoError(t, ShowImage("icd.pdf"))
	assert.Equal(t, "icd.pdf", opened)

	Opener = func(string) error { return errors.New("no viewer") }
	err := ShowImage("icd.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "show image")
}
