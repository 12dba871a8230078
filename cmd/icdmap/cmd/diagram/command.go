// Package diagram implements the diagram command.
package diagram

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/icdmap/cmd/application"
	"github.com/agentstation/icdmap/internal/sources"
	"github.com/agentstation/icdmap/pkg/icd"
	"github.com/agentstation/icdmap/pkg/logging"
	"github.com/agentstation/icdmap/pkg/projector"
	"github.com/agentstation/icdmap/pkg/render"
	"github.com/agentstation/icdmap/pkg/resolver"
)

// Flags holds the diagram command flags.
type Flags struct {
	Components       []string
	Subsystems       []string
	OmitTypes        []string
	MissingEvents    bool
	MissingCommands  bool
	MissingTelemetry bool
	Telemetry        bool
	CommandLabels    bool
	EventLabels      bool
	GroupSubsystems  bool
	Layout           string
	ImageFile        string
	DotFile          string
	ShowPlot         bool
	Models           string
	DB               string
}

// NewCommand creates the diagram command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "diagram",
		GroupID: "core",
		Short:   "Draw the relationships of selected components",
		Long: `Draw a Graphviz diagram of the commands and events exchanged by the
selected primary components and their peers.

Primaries are chosen with --components (prefixes or subsystem.component
keys) or --subsystems. Missing requirements of the primaries, commands
nobody sends and subscriptions nobody publishes, can be shown as a
dedicated "missing" node.`,
		Example: `  icdmap diagram --models ICD-Model-Files --subsystems iris
  icdmap diagram --db icds.db --components iris.rotator,tcs.pk --missingcommands --commandlabels
  icdmap diagram --models . --subsystems nfiraos --omittypes HCD --groupsubsystems --imagefile nfiraos.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.Components, "components", nil, "primary components, comma separated prefixes or subsystem.component keys")
	cmd.Flags().StringSliceVar(&flags.Subsystems, "subsystems", nil, "primary subsystems, comma separated")
	cmd.Flags().StringSliceVar(&flags.OmitTypes, "omittypes", nil, "component types to drop from the primaries (HCD, Assembly, Sequencer, Application)")
	cmd.Flags().BoolVar(&flags.MissingEvents, "missingevents", false, "show subscribed events nobody publishes")
	cmd.Flags().BoolVar(&flags.MissingCommands, "missingcommands", false, "show received commands nobody sends")
	cmd.Flags().BoolVar(&flags.MissingTelemetry, "missingtelemetry", false, "show subscribed telemetry nobody publishes (needs --telemetry)")
	cmd.Flags().BoolVar(&flags.Telemetry, "telemetry", false, "include telemetry links")
	cmd.Flags().BoolVar(&flags.CommandLabels, "commandlabels", false, "label command edges")
	cmd.Flags().BoolVar(&flags.EventLabels, "eventlabels", false, "label event and telemetry edges")
	cmd.Flags().BoolVar(&flags.GroupSubsystems, "groupsubsystems", false, "group components into one cluster per subsystem")
	cmd.Flags().StringVar(&flags.Layout, "layout", "", "Graphviz layout engine: dot, fdp, neato, twopi, circo")
	cmd.Flags().StringVar(&flags.ImageFile, "imagefile", "icd.pdf", "rendered image; empty writes the DOT file only")
	cmd.Flags().StringVar(&flags.DotFile, "dotfile", "", "DOT output (default: image file with .gv extension)")
	cmd.Flags().BoolVar(&flags.ShowPlot, "showplot", false, "open the image once rendered")
	cmd.Flags().StringVar(&flags.Models, "models", "", "model tree root")
	cmd.Flags().StringVar(&flags.DB, "db", "", "SQLite document database")

	return cmd
}

// Options converts the flags into projector options.
func (f *Flags) Options(app application.Application) (projector.Options, error) {
	omit, err := icd.ParseComponentTypes(splitAll(f.OmitTypes))
	if err != nil {
		return projector.Options{}, err
	}
	return projector.Options{
		Components:       splitAll(f.Components),
		Subsystems:       splitAll(f.Subsystems),
		OmitTypes:        omit,
		GroupSubsystems:  f.GroupSubsystems,
		MissingCommands:  f.MissingCommands,
		MissingEvents:    f.MissingEvents,
		MissingTelemetry: f.MissingTelemetry,
		CommandLabels:    f.CommandLabels,
		EventLabels:      f.EventLabels,
		IncludeTelemetry: f.Telemetry,
		Palette:          app.Palette(),
		DefaultColor:     app.DefaultColor(),
	}, nil
}

// Paths returns the DOT and image paths. image is empty when no image is wanted.
func (f *Flags) Paths() (dot, image string) {
	image = f.ImageFile
	dot = f.DotFile
	if dot == "" {
		base := image
		if base == "" {
			base = "icd"
		}
		dot = strings.TrimSuffix(base, filepath.Ext(base)) + ".gv"
	}
	return dot, image
}

func run(cmd *cobra.Command, app application.Application, flags *Flags) error {
	ctx := logging.WithOperation(logging.WithLogger(cmd.Context(), app.Logger()), "diagram")
	logger := logging.FromContext(ctx)

	opts, err := flags.Options(app)
	if err != nil {
		return err
	}
	// Checked before any model file is read
	if err := projector.ValidateSelection(opts); err != nil {
		return err
	}

	cat, err := app.Catalog(ctx, sources.Selection{Models: flags.Models, DB: flags.DB})
	if err != nil {
		return err
	}
	res := resolver.Resolve(cat)

	g, err := projector.ProjectWithLogger(cat, res, opts, logger)
	if err != nil {
		return err
	}
	logger.Info().
		Int("nodes", len(g.Nodes)).
		Int("edges", len(g.Edges)).
		Int("missing", len(g.Missing)).
		Msg("Graph projected")

	layout := flags.Layout
	if layout == "" {
		layout = app.Layout()
	}

	dotFile, image := flags.Paths()
	if err := render.WriteDOTFile(dotFile, g, render.DOTOptions{Layout: layout}); err != nil {
		return err
	}
	logger.Info().Str("file", dotFile).Msg("DOT file written")

	if image == "" {
		return nil
	}
	if err := (render.Graphviz{Logger: logger}).Render(ctx, dotFile, image, layout); err != nil {
		return err
	}
	if flags.ShowPlot {
		return render.ShowImage(image)
	}
	return nil
}

// splitAll trims and splits comma separated values, dropping empties.
func splitAll(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
