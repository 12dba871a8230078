package projector_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/icdmap/internal/sources/memory"
	"github.com/agentstation/icdmap/pkg/catalog"
	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/icd"
	"github.com/agentstation/icdmap/pkg/logging"
	"github.com/agentstation/icdmap/pkg/projector"
	"github.com/agentstation/icdmap/pkg/resolver"
)

func key(subsystem, component string) icd.ComponentKey {
	return icd.ComponentKey{Subsystem: subsystem, Component: component}
}

func project(t *testing.T, src *memory.Source, opts projector.Options) *projector.Graph {
	t.Helper()
	cat, err := catalog.Load(context.Background(), src, catalog.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	g, err := projector.ProjectWithLogger(cat, resolver.Resolve(cat), opts, logging.NewNopLogger())
	require.NoError(t, err)
	return g
}

func nodeIDs(g *projector.Graph) []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

func TestProjectEventScenario(t *testing.T) {
	src := memory.New().
		Component("sys", "compA", "sys.compA", "").
		Component("sys", "compB", "sys.compB", "").
		Publish("sys", "compA", icd.ItemEvent, "status").
		Subscribe("sys", "compB", icd.ItemEvent, key("sys", "compA"), "status")

	g := project(t, src, projector.Options{Components: []string{"sys.compB"}, EventLabels: true})

	assert.Equal(t, []string{"sys.compA", "sys.compB"}, nodeIDs(g))
	a, _ := g.Node("sys.compA")
	b, _ := g.Node("sys.compB")
	assert.Equal(t, projector.StyleSecondary, a.Style)
	assert.Equal(t, projector.StylePrimary, b.Style)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, projector.Edge{
		From: "sys.compA", To: "sys.compB", Kind: icd.LinkEvent,
		Labels: []string{"status"}, ShowLabel: true,
	}, g.Edges[0])
}

func TestProjectMissingCommand(t *testing.T) {
	src := memory.New().
		Component("sys", "compC", "sys.compC", "").
		Receive("sys", "compC", "reset")

	g := project(t, src, projector.Options{Components: []string{"sys.compC"}, MissingCommands: true})

	dummy, ok := g.Node("sys.compC_missing")
	require.True(t, ok)
	assert.Equal(t, projector.StyleMissing, dummy.Style)

	e, ok := g.Edge(icd.LinkCommand, "sys.compC_missing", "sys.compC")
	require.True(t, ok)
	assert.Equal(t, []string{"reset"}, e.Labels)
	assert.True(t, e.ShowLabel)
	assert.True(t, e.Missing)
	assert.Equal(t, []projector.MissingRequirement{
		{Prefix: "sys.compC", Kind: icd.LinkCommand, Item: "reset"},
	}, g.Missing)

	t.Run("gated by flag", func(t *testing.T) {
		g := project(t, src, projector.Options{Components: []string{"sys.compC"}})
		assert.Empty(t, g.Missing)
		assert.Equal(t, []string{"sys.compC"}, nodeIDs(g))
	})
}

func TestProjectMissingIsRelativeToPrimaries(t *testing.T) {
	src := memory.New().
		Component("sys", "compA", "sys.compA", "").
		Component("sys", "compX", "sys.compX", "").
		Receive("sys", "compX", "reset").
		Receive("sys", "compA", "go").
		Send("sys", "compX", key("sys", "compA"), "go")

	g := project(t, src, projector.Options{Components: []string{"sys.compA"}, MissingCommands: true})

	// compX appears as a sender, but its own unmatched receive is not reported.
	assert.Empty(t, g.Missing)
	_, ok := g.Node("sys.compX_missing")
	assert.False(t, ok)

	g = project(t, src, projector.Options{Components: []string{"sys.compX"}, MissingCommands: true})
	assert.Equal(t, []projector.MissingRequirement{
		{Prefix: "sys.compX", Kind: icd.LinkCommand, Item: "reset"},
	}, g.Missing)
}

func TestProjectRedundantCommandLabel(t *testing.T) {
	src := memory.New().
		Component("sys", "compA", "sys.compA", "").
		Component("sys", "compB", "sys.compB", "").
		Receive("sys", "compB", "go", "stop").
		Receive("sys", "compB", "go").
		Send("sys", "compA", key("sys", "compB"), "go").
		Send("sys", "compA", key("sys", "compB"), "go").
		Send("sys", "compA", key("sys", "compB"), "stop")

	g := project(t, src, projector.Options{Components: []string{"sys.compA", "sys.compB"}, CommandLabels: true})

	require.Len(t, g.Edges, 1)
	assert.Equal(t, []string{"go", "stop"}, g.Edges[0].Labels)
}

func TestProjectMissingEventsAndTelemetry(t *testing.T) {
	src := memory.New().
		Component("sys", "compB", "sys.compB", "").
		Subscribe("sys", "compB", icd.ItemEvent, key("tcs", "pk"), "demand").
		Subscribe("sys", "compB", icd.ItemTelemetry, key("sys", "compB"), "temp")

	opts := projector.Options{Components: []string{"sys.compB"}, MissingEvents: true, MissingTelemetry: true}
	g := project(t, src, opts)
	assert.Equal(t, []projector.MissingRequirement{
		{Prefix: "sys.compB", Kind: icd.LinkEvent, Item: "tcs.pk.demand"},
	}, g.Missing)

	opts.IncludeTelemetry = true
	g = project(t, src, opts)
	assert.Len(t, g.Missing, 2)
	_, ok := g.Edge(icd.LinkTelemetry, "sys.compB_missing", "sys.compB")
	assert.True(t, ok)
}

func TestProjectTelemetryLinks(t *testing.T) {
	src := memory.New().
		Component("sys", "compA", "sys.compA", "").
		Component("sys", "compB", "sys.compB", "").
		Publish("sys", "compA", icd.ItemTelemetry, "temp").
		Subscribe("sys", "compB", icd.ItemTelemetry, key("sys", "compA"), "temp")

	g := project(t, src, projector.Options{Components: []string{"sys.compB"}})
	assert.Empty(t, g.Edges)

	g = project(t, src, projector.Options{Components: []string{"sys.compB"}, IncludeTelemetry: true})
	require.Len(t, g.Edges, 1)
	assert.Equal(t, icd.LinkTelemetry, g.Edges[0].Kind)
}

func TestProjectSelection(t *testing.T) {
	src := memory.New().
		Component("iris", "rotator", "iris.rotator", icd.TypeAssembly).
		Component("iris", "oiwfs.poa", "iris.oiwfs.poa", icd.TypeHCD).
		Component("IRIS", "dms", "iris.dms", icd.TypeHCD).
		Component("tcs", "pk", "tcs.pk", icd.TypeAssembly)

	t.Run("subsystem", func(t *testing.T) {
		g := project(t, src, projector.Options{Subsystems: []string{"iris"}})
		assert.Equal(t, []string{"iris.dms", "iris.oiwfs.poa", "iris.rotator"}, nodeIDs(g))
	})

	t.Run("omit types", func(t *testing.T) {
		g := project(t, src, projector.Options{Subsystems: []string{"iris"}, OmitTypes: []icd.ComponentType{icd.TypeHCD}})
		assert.Equal(t, []string{"iris.rotator"}, nodeIDs(g))
	})

	t.Run("component key fallback", func(t *testing.T) {
		g := project(t, src, projector.Options{Components: []string{"tcs.pk", "iris.oiwfs.poa", "nfiraos.rtc"}})
		assert.Equal(t, []string{"iris.oiwfs.poa", "tcs.pk"}, nodeIDs(g))
		assert.Equal(t, []string{"nfiraos.rtc"}, g.Skipped)
	})

	t.Run("unknown subsystem", func(t *testing.T) {
		g := project(t, src, projector.Options{Subsystems: []string{"aps"}})
		assert.Empty(t, g.Nodes)
		assert.Equal(t, []string{"aps"}, g.Skipped)
	})

	t.Run("isolated primary", func(t *testing.T) {
		g := project(t, src, projector.Options{Components: []string{"tcs.pk"}})
		require.Len(t, g.Nodes, 1)
		assert.Empty(t, g.Edges)
	})
}

func TestProjectColorsAndClusters(t *testing.T) {
	src := memory.New().
		Component("iris", "rotator", "iris.rotator", "").
		Component("aps", "pek", "aps.pek", "").
		Receive("iris", "rotator", "follow").
		Send("aps", "pek", key("iris", "rotator"), "follow")

	g := project(t, src, projector.Options{Components: []string{"iris.rotator"}, GroupSubsystems: true})

	rot, _ := g.Node("iris.rotator")
	assert.Equal(t, "blue", rot.Color)
	assert.Equal(t, "rotator", rot.Label)

	pek, _ := g.Node("aps.pek")
	assert.Equal(t, "grey", pek.Color)
	assert.Equal(t, "aps.pek", pek.Label)

	assert.True(t, g.Grouped)
	require.Len(t, g.Clusters, 2)
	assert.Equal(t, projector.Cluster{Subsystem: "aps", Color: "grey", Nodes: []string{"aps.pek"}}, g.Clusters[0])
	assert.Equal(t, "iris", g.Clusters[1].Subsystem)

	custom := project(t, src, projector.Options{
		Components:   []string{"iris.rotator"},
		Palette:      map[string]string{"aps": "gold"},
		DefaultColor: "black",
	})
	pek, _ = custom.Node("aps.pek")
	assert.Equal(t, "gold", pek.Color)
	rot, _ = custom.Node("iris.rotator")
	assert.Equal(t, "black", rot.Color)
}

func TestProjectSelfLink(t *testing.T) {
	src := memory.New().
		Component("sys", "compA", "sys.compA", "").
		Receive("sys", "compA", "ping").
		Send("sys", "compA", key("sys", "compA"), "ping")

	g := project(t, src, projector.Options{Components: []string{"sys.compA"}})
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "sys.compA", g.Edges[0].From)
	assert.Equal(t, "sys.compA", g.Edges[0].To)
}

func TestProjectInvalidSelection(t *testing.T) {
	_, err := projector.Project(nil, nil, projector.Options{Components: []string{" "}})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidSelection(err))
}
