package resolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/icdmap/internal/sources/memory"
	"github.com/agentstation/icdmap/pkg/catalog"
	"github.com/agentstation/icdmap/pkg/icd"
	"github.com/agentstation/icdmap/pkg/logging"
	"github.com/agentstation/icdmap/pkg/resolver"
)

func key(component string) icd.ComponentKey {
	return icd.ComponentKey{Subsystem: "sys", Component: component}
}

func resolve(t *testing.T, src *memory.Source) (*catalog.Catalog, *resolver.Resolution) {
	t.Helper()
	cat, err := catalog.Load(context.Background(), src, catalog.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return cat, resolver.Resolve(cat)
}

func TestResolveEvents(t *testing.T) {
	src := memory.New().
		Component("sys", "compA", "sys.compA", "").
		Component("sys", "compB", "sys.compB", "").
		Publish("sys", "compA", icd.ItemEvent, "status").
		Subscribe("sys", "compB", icd.ItemEvent, key("compA"), "status").
		Subscribe("sys", "compB", icd.ItemEvent, key("compA"), "missing").
		Subscribe("sys", "compB", icd.ItemEvent, icd.ComponentKey{Subsystem: "tcs", Component: "pk"}, "demand")

	_, res := resolve(t, src)

	want := resolver.Link{Kind: icd.LinkEvent, From: "sys.compA", To: "sys.compB", Item: "status"}
	assert.Equal(t, []resolver.Link{want}, res.Links(icd.LinkEvent))
	assert.Equal(t, []resolver.Link{want}, res.LinksTo(icd.LinkEvent, "sys.compB"))
	assert.Equal(t, []resolver.Link{want}, res.LinksFrom(icd.LinkEvent, "sys.compA"))
	assert.Empty(t, res.LinksFrom(icd.LinkEvent, "sys.compB"))

	unresolved := res.Unresolved("sys.compB", icd.ItemEvent)
	require.Len(t, unresolved, 2)
	assert.Equal(t, icd.ItemID{Owner: "sys.compA", Name: "missing"}, unresolved[0].Item)
	assert.True(t, unresolved[0].Resolved)
	assert.Equal(t, icd.ItemID{Owner: "tcs.pk", Name: "demand"}, unresolved[1].Item)
	assert.False(t, unresolved[1].Resolved)
	assert.Equal(t, []icd.Prefix{"sys.compB"}, res.UnresolvedSubscribers())
}

func TestResolveTelemetry(t *testing.T) {
	src := memory.New().
		Component("sys", "compA", "sys.compA", "").
		Component("sys", "compB", "sys.compB", "").
		Publish("sys", "compA", icd.ItemTelemetry, "temp").
		Publish("sys", "compA", icd.ItemEvent, "temp").
		Subscribe("sys", "compB", icd.ItemTelemetry, key("compA"), "temp")

	_, res := resolve(t, src)
	assert.Len(t, res.Links(icd.LinkTelemetry), 1)
	assert.Empty(t, res.Links(icd.LinkEvent))
}

func TestResolveCommands(t *testing.T) {
	src := memory.New().
		Component("sys", "compA", "sys.compA", "").
		Component("sys", "compB", "sys.compB", "").
		Component("sys", "compC", "sys.compC", "").
		Component("sys", "compD", "sys.compD", "").
		Receive("sys", "compB", "go").
		Receive("sys", "compB", "go").
		Send("sys", "compA", key("compB"), "go").
		Send("sys", "compA", key("compB"), "go").
		Send("sys", "compD", key("compB"), "go").
		Receive("sys", "compC", "reset").
		Send("sys", "compA", key("compC"), "halt")

	_, res := resolve(t, src)

	assert.Equal(t, []resolver.Link{
		{Kind: icd.LinkCommand, From: "sys.compA", To: "sys.compB", Item: "go"},
		{Kind: icd.LinkCommand, From: "sys.compD", To: "sys.compB", Item: "go"},
	}, res.Links(icd.LinkCommand))

	assert.Equal(t, []string{"reset"}, res.UnmatchedReceives("sys.compC"))
	assert.Empty(t, res.UnmatchedReceives("sys.compB"))
	assert.Equal(t, []icd.Prefix{"sys.compC"}, res.UnmatchedReceivers())
	assert.Equal(t, []icd.ItemID{{Owner: "sys.compC", Name: "halt"}}, res.UnmatchedSends())
}

func TestResolveSelfLink(t *testing.T) {
	src := memory.New().
		Component("sys", "compA", "sys.compA", "").
		Receive("sys", "compA", "ping").
		Send("sys", "compA", key("compA"), "ping")

	_, res := resolve(t, src)
	assert.Equal(t, []resolver.Link{
		{Kind: icd.LinkCommand, From: "sys.compA", To: "sys.compA", Item: "ping"},
	}, res.All())
}

func TestResolveEmpty(t *testing.T) {
	_, res := resolve(t, memory.New())
	assert.Empty(t, res.All())
	assert.Empty(t, res.UnmatchedSends())
	assert.Empty(t, res.Unresolved("sys.x", icd.ItemEvent))
}
