// Package routing generates the model files that route every command and
// event of a model tree: a command model sending each received command,
// and a subscribe model subscribing to each published event.
package routing

import (
	"context"
	"io"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/agentstation/icdmap/internal/sources/files"
	"github.com/agentstation/icdmap/pkg/constants"
	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/icd"
	"github.com/agentstation/icdmap/pkg/logging"
)

// Options configures a generation run.
type Options struct {
	// Root is the model tree to scan.
	Root string
	// SendPath receives the generated command model.
	SendPath string
	// SubscribePath receives the generated subscribe model.
	SubscribePath string
	// SkipPattern, when set, excludes items whose description's first
	// line matches it, case-insensitively.
	SkipPattern string
	Logger      *zerolog.Logger
}

// Record is one routed item.
type Record struct {
	Subsystem string `json:"subsystem" yaml:"subsystem"`
	Component string `json:"component" yaml:"component"`
	Name      string `json:"name" yaml:"name"`
}

// Skipped is an item excluded by the skip pattern.
type Skipped struct {
	Kind   icd.DocumentKind `json:"kind" yaml:"kind"`
	Record Record           `json:"record" yaml:"record"`
}

// Result summarizes a run.
type Result struct {
	Send      []Record
	Subscribe []Record
	Skipped   []Skipped
}

// Generate scans opts.Root and writes the send and subscribe files. Both
// files are created before the scan; failing to create or write either is
// an *errors.OutputWriteError. Model files that cannot be parsed are
// skipped with a warning.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	skip, err := compileSkip(opts.SkipPattern)
	if err != nil {
		return nil, err
	}

	sendFile, err := create(opts.SendPath)
	if err != nil {
		return nil, err
	}
	defer sendFile.Close() //nolint:errcheck
	subscribeFile, err := create(opts.SubscribePath)
	if err != nil {
		return nil, err
	}
	defer subscribeFile.Close() //nolint:errcheck

	docs, err := files.New(opts.Root).Documents(ctx)
	if err != nil {
		return nil, err
	}

	g := &generator{logger: logger, skip: skip, result: &Result{}}
	for _, doc := range docs {
		switch doc.Kind {
		case icd.DocCommand:
			g.commands(doc)
		case icd.DocPublish:
			g.events(doc)
		}
	}

	if err := write(sendFile, opts.SendPath, sendModel(g.result.Send)); err != nil {
		return nil, err
	}
	if err := write(subscribeFile, opts.SubscribePath, subscribeModel(g.result.Subscribe)); err != nil {
		return nil, err
	}
	return g.result, nil
}

type generator struct {
	logger *zerolog.Logger
	skip   *regexp.Regexp
	result *Result
}

func (g *generator) commands(doc *icd.Document) {
	var model icd.CommandModel
	if err := doc.Decode(&model); err != nil {
		g.unreadable(doc, err)
		return
	}
	key := owner(doc, model.Subsystem, model.Component)
	for _, cmd := range model.Receive {
		rec := Record{Subsystem: key.Subsystem, Component: key.Component, Name: cmd.Name}
		if g.skipped(doc.Kind, rec, cmd.Description) {
			continue
		}
		g.result.Send = append(g.result.Send, rec)
	}
}

func (g *generator) events(doc *icd.Document) {
	var model icd.PublishModel
	if err := doc.Decode(&model); err != nil {
		g.unreadable(doc, err)
		return
	}
	key := owner(doc, model.Subsystem, model.Component)
	for _, ev := range model.Publish.Items(icd.ItemEvent) {
		rec := Record{Subsystem: key.Subsystem, Component: key.Component, Name: ev.Name}
		if g.skipped(doc.Kind, rec, ev.Description) {
			continue
		}
		g.result.Subscribe = append(g.result.Subscribe, rec)
	}
}

func (g *generator) skipped(kind icd.DocumentKind, rec Record, description string) bool {
	event := g.logger.Info().
		Str("kind", string(kind)).
		Str("subsystem", rec.Subsystem).
		Str("component", rec.Component).
		Str("name", rec.Name)
	if g.skip != nil && description != "" && g.skip.MatchString(description) {
		g.result.Skipped = append(g.result.Skipped, Skipped{Kind: kind, Record: rec})
		event.Msg("SKIPPED")
		return true
	}
	event.Msg("Routed")
	return false
}

func (g *generator) unreadable(doc *icd.Document, err error) {
	g.logger.Warn().Err(err).
		Str("origin", doc.Origin).
		Str("kind", string(doc.Kind)).
		Msg("Skipping unreadable model file")
}

func owner(doc *icd.Document, subsystem, component string) icd.ComponentKey {
	key := doc.Key
	if subsystem != "" {
		key.Subsystem = subsystem
	}
	if component != "" {
		key.Component = component
	}
	return key
}

// compileSkip anchors pattern to the start of the description so that it
// matches anywhere on the first line only.
func compileSkip(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(`(?i)\A.*` + pattern)
	if err != nil {
		return nil, errors.NewValidationError("skip pattern", pattern, err.Error())
	}
	return re, nil
}

func create(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return nil, errors.WrapOutput(path, err)
	}
	return f, nil
}

func write(w io.WriteCloser, path string, v any) error {
	data, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return errors.WrapOutput(path, err)
	}
	if _, err := w.Write(data); err != nil {
		return errors.WrapOutput(path, err)
	}
	return errors.WrapOutput(path, w.Close())
}

// sendFile and subscribeFile are the command-model and subscribe-model
// shapes, kept separate so empty lists are still written.
type sendFile struct {
	Send []Record `yaml:"send"`
}

type subscribeFile struct {
	Subscribe struct {
		Events []Record `yaml:"events"`
	} `yaml:"subscribe"`
}

func sendModel(records []Record) sendFile {
	out := sendFile{Send: make([]Record, 0, len(records))}
	out.Send = append(out.Send, records...)
	return out
}

func subscribeModel(records []Record) subscribeFile {
	var out subscribeFile
	out.Subscribe.Events = append(make([]Record, 0, len(records)), records...)
	return out
}
