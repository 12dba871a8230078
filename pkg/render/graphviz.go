package render

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"github.com/agentstation/icdmap/pkg/constants"
	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/logging"
)

// Graphviz renders DOT files with the Graphviz command line tools.
type Graphviz struct {
	// Binary is the Graphviz executable. Defaults to "dot".
	Binary string
	Logger *zerolog.Logger
}

// ImageFormat returns the output format implied by image's extension.
func ImageFormat(image string) string {
	if ext := strings.TrimPrefix(filepath.Ext(image), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return constants.DefaultImageFormat
}

// Render converts dotFile into image using the given layout engine.
func (g Graphviz) Render(ctx context.Context, dotFile, image, layout string) error {
	binary := g.Binary
	if binary == "" {
		binary = "dot"
	}
	if layout == "" {
		layout = constants.DefaultLayout
	}
	logger := g.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	args := []string{"-K" + layout, "-T" + ImageFormat(image), "-o", image, dotFile}
	logger.Debug().Str("binary", binary).Strs("args", args).Msg("Rendering diagram")

	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &errors.ProcessError{
			Operation: "render diagram",
			Command:   binary + " " + strings.Join(args, " "),
			Output:    strings.TrimSpace(string(output)),
			ExitCode:  exitCode(err),
			Err:       err,
		}
	}

	logger.Info().Str("image", image).Msg("Diagram rendered")
	return nil
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Opener opens a file with the desktop viewer.
var Opener = browser.OpenFile

// ShowImage opens image in the system viewer.
func ShowImage(image string) error {
	if err := Opener(image); err != nil {
		return errors.NewProcessError("show image", "open "+image, "", err)
	}
	return nil
}
