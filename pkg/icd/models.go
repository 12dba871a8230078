package icd

// ComponentModel is the body of a component document.
type ComponentModel struct {
	Subsystem     string        `json:"subsystem" yaml:"subsystem" toml:"subsystem" validate:"required"`
	Component     string        `json:"component" yaml:"component" toml:"component" validate:"required"`
	Prefix        Prefix        `json:"prefix" yaml:"prefix" toml:"prefix" validate:"required"`
	ComponentType ComponentType `json:"componentType,omitempty" yaml:"componentType,omitempty" toml:"componentType,omitempty" validate:"omitempty,componenttype"`
	Title         string        `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Description   string        `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	ModelVersion  string        `json:"modelVersion,omitempty" yaml:"modelVersion,omitempty" toml:"modelVersion,omitempty"`
	WBSID         string        `json:"wbsId,omitempty" yaml:"wbsId,omitempty" toml:"wbsId,omitempty"`
}

// Key returns the component's declared key.
func (m *ComponentModel) Key() ComponentKey {
	return ComponentKey{Subsystem: m.Subsystem, Component: m.Component}
}

// Attribute describes an item attribute or a command argument.
type Attribute struct {
	Name        string     `json:"name" yaml:"name" toml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Type        string     `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Units       string     `json:"units,omitempty" yaml:"units,omitempty" toml:"units,omitempty"`
	Enum        []any      `json:"enum,omitempty" yaml:"enum,omitempty" toml:"enum,omitempty"`
	Minimum     *float64   `json:"minimum,omitempty" yaml:"minimum,omitempty" toml:"minimum,omitempty"`
	Maximum     *float64   `json:"maximum,omitempty" yaml:"maximum,omitempty" toml:"maximum,omitempty"`
	Dimensions  []int      `json:"dimensions,omitempty" yaml:"dimensions,omitempty" toml:"dimensions,omitempty"`
	Items       *Attribute `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
}

// PublishedItem is one entry of a publish section.
type PublishedItem struct {
	Name        string      `json:"name" yaml:"name" toml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Archive     *bool       `json:"archive,omitempty" yaml:"archive,omitempty" toml:"archive,omitempty"`
	MinRate     *float64    `json:"minRate,omitempty" yaml:"minRate,omitempty" toml:"minRate,omitempty"`
	MaxRate     *float64    `json:"maxRate,omitempty" yaml:"maxRate,omitempty" toml:"maxRate,omitempty"`
	Severity    string      `json:"severity,omitempty" yaml:"severity,omitempty" toml:"severity,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty" toml:"attributes,omitempty"`
}

// PublishSection groups published items by kind.
type PublishSection struct {
	Events    []PublishedItem `json:"events,omitempty" yaml:"events,omitempty" toml:"events,omitempty"`
	Telemetry []PublishedItem `json:"telemetry,omitempty" yaml:"telemetry,omitempty" toml:"telemetry,omitempty"`
	Alarms    []PublishedItem `json:"alarms,omitempty" yaml:"alarms,omitempty" toml:"alarms,omitempty"`
}

// Items returns the items of the given kind.
func (s *PublishSection) Items(kind ItemKind) []PublishedItem {
	if s == nil {
		return nil
	}
	switch kind {
	case ItemEvent:
		return s.Events
	case ItemTelemetry:
		return s.Telemetry
	case ItemAlarm:
		return s.Alarms
	default:
		return nil
	}
}

// PublishModel is the body of a publish document. A nil Publish means the
// document has no publish section.
type PublishModel struct {
	Subsystem string          `json:"subsystem,omitempty" yaml:"subsystem,omitempty" toml:"subsystem,omitempty"`
	Component string          `json:"component,omitempty" yaml:"component,omitempty" toml:"component,omitempty"`
	Publish   *PublishSection `json:"publish,omitempty" yaml:"publish,omitempty" toml:"publish,omitempty"`
}

// SubscribedItem is one entry of a subscribe section.
type SubscribedItem struct {
	Subsystem    string   `json:"subsystem" yaml:"subsystem" toml:"subsystem"`
	Component    string   `json:"component" yaml:"component" toml:"component"`
	Name         string   `json:"name" yaml:"name" toml:"name"`
	RequiredRate *float64 `json:"requiredRate,omitempty" yaml:"requiredRate,omitempty" toml:"requiredRate,omitempty"`
	Usage        string   `json:"usage,omitempty" yaml:"usage,omitempty" toml:"usage,omitempty"`
}

// Key returns the (subsystem, component) the subscription targets.
func (s SubscribedItem) Key() ComponentKey {
	return ComponentKey{Subsystem: s.Subsystem, Component: s.Component}
}

// SubscribeSection groups subscriptions by kind.
type SubscribeSection struct {
	Events    []SubscribedItem `json:"events,omitempty" yaml:"events,omitempty" toml:"events,omitempty"`
	Telemetry []SubscribedItem `json:"telemetry,omitempty" yaml:"telemetry,omitempty" toml:"telemetry,omitempty"`
}

// Items returns the subscriptions of the given kind.
func (s *SubscribeSection) Items(kind ItemKind) []SubscribedItem {
	if s == nil {
		return nil
	}
	switch kind {
	case ItemEvent:
		return s.Events
	case ItemTelemetry:
		return s.Telemetry
	default:
		return nil
	}
}

// SubscribeModel is the body of a subscribe document.
type SubscribeModel struct {
	Subsystem string            `json:"subsystem,omitempty" yaml:"subsystem,omitempty" toml:"subsystem,omitempty"`
	Component string            `json:"component,omitempty" yaml:"component,omitempty" toml:"component,omitempty"`
	Subscribe *SubscribeSection `json:"subscribe,omitempty" yaml:"subscribe,omitempty" toml:"subscribe,omitempty"`
}

// ReceivedCommand is a command a component accepts.
type ReceivedCommand struct {
	Name         string      `json:"name" yaml:"name" toml:"name"`
	Description  string      `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Args         []Attribute `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
	RequiredArgs []string    `json:"requiredArgs,omitempty" yaml:"requiredArgs,omitempty" toml:"requiredArgs,omitempty"`
}

// SentCommand is a command a component sends to another component.
type SentCommand struct {
	Subsystem string `json:"subsystem" yaml:"subsystem" toml:"subsystem"`
	Component string `json:"component" yaml:"component" toml:"component"`
	Name      string `json:"name" yaml:"name" toml:"name"`
}

// Key returns the (subsystem, component) the command is sent to.
func (s SentCommand) Key() ComponentKey {
	return ComponentKey{Subsystem: s.Subsystem, Component: s.Component}
}

// CommandModel is the body of a command document.
type CommandModel struct {
	Subsystem string            `json:"subsystem,omitempty" yaml:"subsystem,omitempty" toml:"subsystem,omitempty"`
	Component string            `json:"component,omitempty" yaml:"component,omitempty" toml:"component,omitempty"`
	Receive   []ReceivedCommand `json:"receive,omitempty" yaml:"receive,omitempty" toml:"receive,omitempty"`
	Send      []SentCommand     `json:"send,omitempty" yaml:"send,omitempty" toml:"send,omitempty"`
}
