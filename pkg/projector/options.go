package projector

import (
	"github.com/agentstation/icdmap/pkg/constants"
	"github.com/agentstation/icdmap/pkg/icd"
)

// Options selects the primary components and controls what the graph shows.
type Options struct {
	// Components lists primaries by prefix, or by subsystem.component key.
	Components []string
	// Subsystems selects every component of the named subsystems.
	Subsystems []string
	// OmitTypes drops primaries of these component types.
	OmitTypes []icd.ComponentType

	GroupSubsystems  bool
	MissingCommands  bool
	MissingEvents    bool
	MissingTelemetry bool
	CommandLabels    bool
	EventLabels      bool
	IncludeTelemetry bool

	// Palette maps a subsystem to its display color.
	Palette map[string]string
	// DefaultColor is used for subsystems outside the palette.
	DefaultColor string
}

func (o Options) palette() map[string]string {
	if o.Palette != nil {
		return o.Palette
	}
	return constants.DefaultPalette
}

func (o Options) defaultColor() string {
	if o.DefaultColor != "" {
		return o.DefaultColor
	}
	return constants.DefaultNodeColor
}

func (o Options) showLabel(kind icd.LinkKind) bool {
	if kind == icd.LinkCommand {
		return o.CommandLabels
	}
	return o.EventLabels
}

func (o Options) omitted(t icd.ComponentType) bool {
	for _, omit := range o.OmitTypes {
		if omit == t {
			return true
		}
	}
	return false
}
