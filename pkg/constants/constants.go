// Package constants provides shared constants used throughout the icdmap codebase.
// This includes file permissions, model file naming, diagram styling and other
// values that should be consistent across the generators and the CLI.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Model file constants
const (
	// ModelFileSuffix is the suffix shared by every model file base name
	ModelFileSuffix = "-model"

	// DefaultModelExtension is used when writing model files
	DefaultModelExtension = ".yaml"

	// CollectionSeparator joins subsystem, component and kind into a collection name
	CollectionSeparator = "."
)

// Diagram constants
const (
	// DefaultLayout is the Graphviz layout engine used when none is configured
	DefaultLayout = "dot"

	// DefaultImageFormat is the output format when the image file has no extension
	DefaultImageFormat = "pdf"

	// DefaultRatio is the aspect ratio hint passed to the renderer
	DefaultRatio = "0.5"

	// DefaultSeparation is the node separation hint passed to the renderer
	DefaultSeparation = "+20"

	// MissingNodeSuffix is appended to a primary prefix to build its missing-items node
	MissingNodeSuffix = "_missing"

	// DefaultNodeColor is used for subsystems absent from the palette
	DefaultNodeColor = "grey"

	// MissingNodeColor is the color of missing-items nodes
	MissingNodeColor = "orangered"

	// CommandEdgeColor is the color of command edges
	CommandEdgeColor = "chocolate"

	// EventEdgeColor is the color of event edges
	EventEdgeColor = "dimgrey"

	// TelemetryEdgeColor is the color of telemetry edges
	TelemetryEdgeColor = "steelblue"
)

// DefaultPalette maps subsystems to their diagram color.
var DefaultPalette = map[string]string{
	"aoesw":   "green",
	"nfiraos": "red",
	"tcs":     "purple",
	"iris":    "blue",
}

// DefaultSubsystemPrefixes maps subsystem names to the prefix used when
// rendering subscription references in documentation fragments.
var DefaultSubsystemPrefixes = map[string]string{
	"NFIRAOS": "ao.nfiraos",
	"TCS":     "tcs",
	"AOESW":   "ao.aoesw",
}

// Environment
const (
	// EnvPrefix is the prefix for environment variables read through viper
	EnvPrefix = "ICDMAP"

	// ConfigName is the base name of the config file searched in $HOME and .
	ConfigName = ".icdmap"
)
