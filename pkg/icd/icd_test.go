package icd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/icdmap/pkg/errors"
)

func TestPrefix(t *testing.T) {
	tests := []struct {
		prefix    Prefix
		subsystem string
		short     string
	}{
		{"iris.oiwfs.poa", "iris", "oiwfs.poa"},
		{"tcs.pk", "tcs", "pk"},
		{"standalone", "standalone", "standalone"},
	}
	for _, tt := range tests {
		t.Run(string(tt.prefix), func(t *testing.T) {
			assert.Equal(t, tt.subsystem, tt.prefix.Subsystem())
			assert.Equal(t, tt.short, tt.prefix.Short())
		})
	}
}

func TestParseComponentKey(t *testing.T) {
	key, ok := ParseComponentKey("iris.oiwfs.poa")
	require.True(t, ok)
	assert.Equal(t, ComponentKey{Subsystem: "iris", Component: "oiwfs.poa"}, key)
	assert.Equal(t, "iris.oiwfs.poa", key.String())

	_, ok = ParseComponentKey("iris")
	assert.False(t, ok)
	_, ok = ParseComponentKey(".rotator")
	assert.False(t, ok)
}

func TestParseComponentType(t *testing.T) {
	got, err := ParseComponentType("assembly")
	require.NoError(t, err)
	assert.Equal(t, TypeAssembly, got)

	got, err = ParseComponentType(" HCD ")
	require.NoError(t, err)
	assert.Equal(t, TypeHCD, got)

	_, err = ParseComponentType("Gadget")
	assert.True(t, errors.IsValidationError(err))

	types, err := ParseComponentTypes([]string{"HCD", "", "sequencer"})
	require.NoError(t, err)
	assert.Equal(t, []ComponentType{TypeHCD, TypeSequencer}, types)
}

func TestKinds(t *testing.T) {
	assert.True(t, ItemAlarm.Publishable())
	assert.False(t, ItemAlarm.Subscribable())
	assert.True(t, ItemTelemetry.Subscribable())
	assert.Equal(t, "events", ItemEvent.Section())
	assert.Equal(t, "alarms", ItemAlarm.Section())

	lk, ok := LinkKindFor(ItemTelemetry)
	require.True(t, ok)
	assert.Equal(t, LinkTelemetry, lk)
	_, ok = LinkKindFor(ItemAlarm)
	assert.False(t, ok)

	ik, ok := LinkEvent.ItemKind()
	require.True(t, ok)
	assert.Equal(t, ItemEvent, ik)
	_, ok = LinkCommand.ItemKind()
	assert.False(t, ok)
}

func TestItemIdentity(t *testing.T) {
	// A dotted name must not collide with a longer owner.
	a := ItemID{Owner: "sys.a", Name: "b.c"}
	b := ItemID{Owner: "sys.a.b", Name: "c"}
	assert.Equal(t, a.String(), b.String())
	assert.NotEqual(t, a, b)
	assert.True(t, a.Less(b))

	resolved := TargetRef{Item: ItemID{Owner: "sys.x", Name: "s"}, Resolved: true}
	raw := TargetRef{Item: ItemID{Owner: "sys.x", Name: "s"}}
	assert.NotEqual(t, resolved, raw)
	assert.True(t, resolved.Less(raw))
	assert.False(t, raw.Less(resolved))
}

func TestParseModelFileName(t *testing.T) {
	tests := []struct {
		name   string
		kind   DocumentKind
		format Format
		ok     bool
	}{
		{"component-model.yaml", DocComponent, FormatYAML, true},
		{"publish-model.yml", DocPublish, FormatYAML, true},
		{"subscribe-model.json", DocSubscribe, FormatJSON, true},
		{"command-model.toml", DocCommand, FormatTOML, true},
		{"command-model.conf", "", "", false},
		{"alarm-model.yaml", "", "", false},
		{"README.md", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, format, ok := ParseModelFileName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.format, format)
		})
	}

	assert.Equal(t, "publish-model.yaml", DocPublish.FileName(""))
	assert.Equal(t, "command-model.toml", DocCommand.FileName("toml"))
	assert.Less(t, DocComponent.Order(), DocCommand.Order())
}

func TestDocumentDecode(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		doc := &Document{Origin: "p.yaml", Format: FormatYAML, Data: []byte(`
subsystem: sys
component: compA
publish:
  events:
    - name: status
      minRate: 1
      attributes:
        - name: mode
          enum: [idle, busy]
`)}
		var m PublishModel
		require.NoError(t, doc.Decode(&m))
		require.NotNil(t, m.Publish)
		require.Len(t, m.Publish.Events, 1)
		assert.Equal(t, "status", m.Publish.Events[0].Name)
		assert.Equal(t, 1.0, *m.Publish.Events[0].MinRate)
		assert.Len(t, m.Publish.Events[0].Attributes[0].Enum, 2)
		assert.Empty(t, m.Publish.Items(ItemAlarm))
	})

	t.Run("json", func(t *testing.T) {
		doc := &Document{Origin: "c.json", Format: FormatJSON, Data: []byte(
			`{"subsystem":"sys","component":"compC","receive":[{"name":"reset"}]}`)}
		var m CommandModel
		require.NoError(t, doc.Decode(&m))
		require.Len(t, m.Receive, 1)
		assert.Equal(t, "reset", m.Receive[0].Name)
	})

	t.Run("toml", func(t *testing.T) {
		doc := &Document{Origin: "s.toml", Format: FormatTOML, Data: []byte(`
subsystem = "sys"
component = "compB"

[[subscribe.events]]
subsystem = "sys"
component = "compA"
name = "status"
`)}
		var m SubscribeModel
		require.NoError(t, doc.Decode(&m))
		require.NotNil(t, m.Subscribe)
		require.Len(t, m.Subscribe.Events, 1)
		assert.Equal(t, ComponentKey{Subsystem: "sys", Component: "compA"}, m.Subscribe.Events[0].Key())

		key, err := doc.Header()
		require.NoError(t, err)
		assert.Equal(t, "sys.compB", key.String())
	})

	t.Run("malformed", func(t *testing.T) {
		doc := &Document{Origin: "bad.yaml", Format: FormatYAML, Data: []byte("receive: [unterminated")}
		var m CommandModel
		err := doc.Decode(&m)
		require.Error(t, err)
		assert.True(t, errors.IsMalformedDocument(err))
	})

	t.Run("unsupported format", func(t *testing.T) {
		doc := &Document{Origin: "x.conf", Format: "hocon"}
		assert.True(t, errors.IsMalformedDocument(doc.Decode(&CommandModel{})))
	})
}

func TestComponentModelValidate(t *testing.T) {
	valid := &ComponentModel{Subsystem: "iris", Component: "rotator", Prefix: "iris.rotator", ComponentType: "assembly"}
	valid.Normalize()
	assert.Equal(t, TypeAssembly, valid.ComponentType)
	assert.NoError(t, valid.Validate())

	noType := &ComponentModel{Subsystem: "iris", Component: "rotator", Prefix: "iris.rotator"}
	assert.NoError(t, noType.Validate())

	noPrefix := &ComponentModel{Subsystem: "iris", Component: "rotator"}
	err := noPrefix.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "Prefix")

	badType := &ComponentModel{Subsystem: "iris", Component: "rotator", Prefix: "iris.rotator", ComponentType: "Gadget"}
	err = badType.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ComponentType")
}
