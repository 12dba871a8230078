// Package icd defines the data model shared by every stage of icdmap:
// component identities, item and link kinds, the composite identities used
// to match publishers with subscribers and senders with receivers, and the
// typed shapes of the four declaration documents.
package icd

import (
	"fmt"
	"strings"

	"github.com/agentstation/icdmap/pkg/errors"
)

// ComponentKey identifies a component as declared in its source documents.
type ComponentKey struct {
	Subsystem string `json:"subsystem" yaml:"subsystem" toml:"subsystem"`
	Component string `json:"component" yaml:"component" toml:"component"`
}

// String renders the key as subsystem.component.
func (k ComponentKey) String() string {
	return k.Subsystem + "." + k.Component
}

// IsZero reports whether neither field is set.
func (k ComponentKey) IsZero() bool {
	return k.Subsystem == "" && k.Component == ""
}

// ParseComponentKey splits "subsystem.component" at the first dot.
// Component names may themselves contain dots.
func ParseComponentKey(s string) (ComponentKey, bool) {
	subsystem, component, ok := strings.Cut(s, ".")
	if !ok || subsystem == "" || component == "" {
		return ComponentKey{}, false
	}
	return ComponentKey{Subsystem: subsystem, Component: component}, true
}

// Prefix is the globally unique identifier a component declares for itself.
type Prefix string

// String implements fmt.Stringer.
func (p Prefix) String() string {
	return string(p)
}

// Subsystem returns the leading dot-separated segment of the prefix.
func (p Prefix) Subsystem() string {
	s, _, _ := strings.Cut(string(p), ".")
	return s
}

// Short returns everything after the leading segment, or the whole prefix
// when it has no dot.
func (p Prefix) Short() string {
	_, rest, ok := strings.Cut(string(p), ".")
	if !ok || rest == "" {
		return string(p)
	}
	return rest
}

// ComponentType is the kind of component attached to a prefix.
type ComponentType string

// Component types.
const (
	TypeHCD         ComponentType = "HCD"
	TypeAssembly    ComponentType = "Assembly"
	TypeSequencer   ComponentType = "Sequencer"
	TypeApplication ComponentType = "Application"
)

// ComponentTypes lists every valid component type.
var ComponentTypes = []ComponentType{TypeHCD, TypeAssembly, TypeSequencer, TypeApplication}

// ParseComponentType matches s against the known types, ignoring case.
func ParseComponentType(s string) (ComponentType, error) {
	for _, t := range ComponentTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", errors.NewValidationError("componentType", s,
		fmt.Sprintf("must be one of %s", joinTypes(ComponentTypes)))
}

// ParseComponentTypes parses a list of type names, such as the omit-types flag.
func ParseComponentTypes(values []string) ([]ComponentType, error) {
	types := make([]ComponentType, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		t, err := ParseComponentType(v)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func joinTypes(types []ComponentType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// ItemKind is the kind of a published or subscribed item.
type ItemKind string

// Item kinds.
const (
	ItemEvent     ItemKind = "event"
	ItemTelemetry ItemKind = "telemetry"
	ItemAlarm     ItemKind = "alarm"
)

// PublishKinds lists the kinds a publish document may declare.
var PublishKinds = []ItemKind{ItemEvent, ItemTelemetry, ItemAlarm}

// SubscribeKinds lists the kinds a subscribe document may declare.
var SubscribeKinds = []ItemKind{ItemEvent, ItemTelemetry}

// Publishable reports whether items of this kind appear in publish documents.
func (k ItemKind) Publishable() bool {
	return k == ItemEvent || k == ItemTelemetry || k == ItemAlarm
}

// Subscribable reports whether items of this kind can be subscribed to.
func (k ItemKind) Subscribable() bool {
	return k == ItemEvent || k == ItemTelemetry
}

// Section returns the document section holding items of this kind.
func (k ItemKind) Section() string {
	switch k {
	case ItemEvent:
		return "events"
	case ItemAlarm:
		return "alarms"
	default:
		return string(k)
	}
}

// LinkKind is the kind of a relationship between two components.
type LinkKind string

// Link kinds.
const (
	LinkCommand   LinkKind = "command"
	LinkEvent     LinkKind = "event"
	LinkTelemetry LinkKind = "telemetry"
)

// LinkKinds lists the link kinds in display order.
var LinkKinds = []LinkKind{LinkCommand, LinkEvent, LinkTelemetry}

// LinkKindFor maps a subscribable item kind to its link kind.
func LinkKindFor(kind ItemKind) (LinkKind, bool) {
	switch kind {
	case ItemEvent:
		return LinkEvent, true
	case ItemTelemetry:
		return LinkTelemetry, true
	default:
		return "", false
	}
}

// ItemKind returns the item kind carried by this link kind, if any.
func (k LinkKind) ItemKind() (ItemKind, bool) {
	switch k {
	case LinkEvent:
		return ItemEvent, true
	case LinkTelemetry:
		return ItemTelemetry, true
	default:
		return "", false
	}
}

// ItemID is the composite identity of an item: its owning prefix plus name.
type ItemID struct {
	Owner Prefix `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
}

// String renders owner.name for display.
func (id ItemID) String() string {
	return string(id.Owner) + "." + id.Name
}

// Compare orders identities by owner, then name.
func (id ItemID) Compare(other ItemID) int {
	if c := strings.Compare(string(id.Owner), string(other.Owner)); c != 0 {
		return c
	}
	return strings.Compare(id.Name, other.Name)
}

// Less reports whether id sorts before other.
func (id ItemID) Less(other ItemID) bool {
	return id.Compare(other) < 0
}

// TargetRef is the target of a subscription. When the subscription's
// (subsystem, component) pair is not registered, Item.Owner holds the raw
// "subsystem.component" text and Resolved is false.
type TargetRef struct {
	Item     ItemID `json:"item" yaml:"item"`
	Resolved bool   `json:"resolved" yaml:"resolved"`
}

// String renders the target for display.
func (r TargetRef) String() string {
	return r.Item.String()
}

// Compare orders references by identity, resolved references first on ties.
func (r TargetRef) Compare(other TargetRef) int {
	if c := r.Item.Compare(other.Item); c != 0 {
		return c
	}
	switch {
	case r.Resolved == other.Resolved:
		return 0
	case r.Resolved:
		return -1
	default:
		return 1
	}
}

// Less reports whether r sorts before other.
func (r TargetRef) Less(other TargetRef) bool {
	return r.Compare(other) < 0
}
