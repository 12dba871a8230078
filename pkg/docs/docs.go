// Package docs writes Markdown documentation fragments for one component
// of a model tree: its description, published items, alarms,
// subscriptions and accepted commands.
package docs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/icdmap/internal/sources/files"
	"github.com/agentstation/icdmap/pkg/constants"
	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/icd"
	"github.com/agentstation/icdmap/pkg/logging"
)

// Fragment file names.
const (
	ComponentFile      = "component.md"
	PublishTelemetry   = "publishTelem.md"
	PublishEvents      = "publishEvent.md"
	AlarmFile          = "alarm.md"
	SubscribeTelemetry = "subscribeTelem.md"
	SubscribeEvents    = "subscribeEvent.md"
	CommandFile        = "command.md"
)

// Fragments lists every file Generate writes, in write order.
var Fragments = []string{
	ComponentFile,
	SubscribeTelemetry,
	SubscribeEvents,
	PublishTelemetry,
	PublishEvents,
	AlarmFile,
	CommandFile,
}

const notAvailable = "N/A"

// Generator writes documentation fragments.
type Generator struct {
	prefixes map[string]string
	logger   *zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSubsystemPrefixes sets the subsystem to prefix map used when
// rendering subscription targets.
func WithSubsystemPrefixes(prefixes map[string]string) Option {
	return func(g *Generator) {
		if prefixes != nil {
			g.prefixes = prefixes
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{prefixes: constants.DefaultSubsystemPrefixes}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// models holds whatever a component directory declares. A nil field means
// the file is absent or could not be read.
type models struct {
	title     string
	prefix    icd.Prefix
	component *icd.ComponentModel
	publish   *icd.PublishModel
	subscribe *icd.SubscribeModel
	command   *icd.CommandModel
}

// Generate reads the model files in componentDir and writes every fragment
// to outDir. Missing or unreadable model files render as N/A. Failing to
// write a fragment is an *errors.OutputWriteError.
func (g *Generator) Generate(ctx context.Context, componentDir, outDir string) error {
	logger := g.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	if err := os.MkdirAll(outDir, constants.DirPermissions); err != nil {
		return errors.WrapOutput(outDir, err)
	}

	m := g.read(files.New(componentDir), logger)
	if m.title == "" {
		m.title = filepath.Base(componentDir)
	}

	writers := map[string]func(*markdownBuilder){
		ComponentFile:      m.writeComponent,
		SubscribeTelemetry: func(b *markdownBuilder) { g.writeSubscriptions(b, m, icd.ItemTelemetry) },
		SubscribeEvents:    func(b *markdownBuilder) { g.writeSubscriptions(b, m, icd.ItemEvent) },
		PublishTelemetry:   func(b *markdownBuilder) { m.writePublished(b, icd.ItemTelemetry) },
		PublishEvents:      func(b *markdownBuilder) { m.writePublished(b, icd.ItemEvent) },
		AlarmFile:          m.writeAlarms,
		CommandFile:        m.writeCommands,
	}

	for _, name := range Fragments {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(outDir, name)
		if err := writeFragment(path, writers[name]); err != nil {
			return err
		}
		logger.Debug().Str("file", path).Msg("Wrote fragment")
	}
	logger.Info().Str("component", m.title).Str("dir", outDir).Msg("Documentation generated")
	return nil
}

func writeFragment(path string, fill func(*markdownBuilder)) error {
	var buf bytes.Buffer
	b := newMarkdownBuilder(&buf)
	fill(b)
	if err := b.Build(); err != nil {
		return errors.WrapOutput(path, err)
	}
	return errors.WrapOutput(path, os.WriteFile(path, buf.Bytes(), constants.FilePermissions))
}

func (g *Generator) read(src *files.Source, logger *zerolog.Logger) *models {
	m := &models{}
	load := func(kind icd.DocumentKind, v any) bool {
		doc, err := src.Find(".", kind)
		if err != nil {
			if !errors.IsNotFound(err) {
				logger.Warn().Err(err).Str("kind", string(kind)).Msg("Cannot read model file")
			}
			return false
		}
		if err := doc.Decode(v); err != nil {
			logger.Warn().Err(err).Str("kind", string(kind)).Str("origin", doc.Origin).Msg("Skipping malformed model file")
			return false
		}
		return true
	}

	var component icd.ComponentModel
	if load(icd.DocComponent, &component) {
		m.component = &component
		m.title = component.Title
		if m.title == "" {
			m.title = component.Component
		}
		m.prefix = component.Prefix
	}
	var publish icd.PublishModel
	if load(icd.DocPublish, &publish) {
		m.publish = &publish
	}
	var subscribe icd.SubscribeModel
	if load(icd.DocSubscribe, &subscribe) {
		m.subscribe = &subscribe
	}
	var command icd.CommandModel
	if load(icd.DocCommand, &command) {
		m.command = &command
	}
	return m
}

func (m *models) writeComponent(b *markdownBuilder) {
	if m.component == nil {
		b.PlainText(notAvailable)
		return
	}
	b.PlainTextf("The prefix for the %s is: *%s*", m.title, m.prefix).LF()
	b.PlainText(m.component.Description)
}

func (m *models) writePublished(b *markdownBuilder, kind icd.ItemKind) {
	var items []icd.PublishedItem
	if m.publish != nil {
		items = m.publish.Publish.Items(kind)
	}
	if len(items) == 0 {
		b.PlainText(notAvailable)
		return
	}

	noun, title, tag := "event", "Event", "pubev"
	if kind == icd.ItemTelemetry {
		noun, title, tag = "telemetry", "Telemetry", "pubtel"
	}

	b.PlainTextf("The %s publishes the following %s items:", m.title, noun).LF()
	for _, item := range items {
		b.HorizontalRule()
		b.Anchor(anchor(tag, item.Name))
		b.H4(item.Name + " " + title)
		b.Field(title+" item", m.qualified(item.Name))
		if item.Archive != nil {
			b.Field("Archived", optionalBool(item.Archive))
		}
		if r := rate(item.MinRate, item.MaxRate); r != "" {
			b.Field("Rate", r)
		}
		b.PlainText(item.Description).LF()
		if len(item.Attributes) > 0 {
			b.Table([]string{"Attribute", "Data Type", "Units", "Range", "Description"}, attributeRows(item.Attributes))
		}
	}
}

func (m *models) writeAlarms(b *markdownBuilder) {
	var alarms []icd.PublishedItem
	if m.publish != nil {
		alarms = m.publish.Publish.Items(icd.ItemAlarm)
	}
	if len(alarms) == 0 {
		b.PlainText(notAvailable)
		return
	}

	b.PlainTextf("The %s publishes the following alarms:", m.title).LF()
	for _, alarm := range alarms {
		b.Anchor(anchor("alarm", alarm.Name))
	}
	rows := make([][]string, len(alarms))
	for i, alarm := range alarms {
		rows[i] = []string{m.qualified(alarm.Name), alarm.Severity, optionalBool(alarm.Archive), alarm.Description}
	}
	b.Table([]string{"Alarm", "Severity", "Archived", "Description"}, rows)
}

func (g *Generator) writeSubscriptions(b *markdownBuilder, m *models, kind icd.ItemKind) {
	var subs []icd.SubscribedItem
	if m.subscribe != nil {
		subs = m.subscribe.Subscribe.Items(kind)
	}
	if len(subs) == 0 {
		b.PlainText(notAvailable)
		return
	}

	noun := "event"
	if kind == icd.ItemTelemetry {
		noun = "telemetry"
	}
	b.PlainTextf("The %s subscribes to the following %s items:", m.title, noun).LF()
	if kind == icd.ItemEvent {
		for _, s := range subs {
			b.Anchor(anchor("subev", s.Name))
		}
	}
	rows := make([][]string, len(subs))
	for i, s := range subs {
		rows[i] = []string{g.subscription(s), optionalNumber(s.RequiredRate), s.Usage}
	}
	b.Table([]string{"Subscription", "Rate (Hz)", "Usage"}, rows)
}

// subscription renders a target as prefix.component.name, mapping the
// subsystem through the configured prefixes.
func (g *Generator) subscription(s icd.SubscribedItem) string {
	prefix := s.Subsystem
	if p, ok := g.prefixes[s.Subsystem]; ok {
		prefix = p
	}
	return prefix + constants.CollectionSeparator + s.Component + constants.CollectionSeparator + s.Name
}

func (m *models) writeCommands(b *markdownBuilder) {
	if m.command == nil || len(m.command.Receive) == 0 {
		b.PlainText(notAvailable)
		return
	}

	b.PlainTextf("The %s accepts the following commands:", m.title).LF()
	for _, cmd := range m.command.Receive {
		b.HorizontalRule()
		b.Anchor(anchor("cmd", cmd.Name))
		b.H4(cmd.Name + " Command")
		b.Field("Command", m.qualified(cmd.Name))
		b.PlainText(cmd.Description).LF()
		if len(cmd.Args) > 0 {
			b.Table([]string{"Argument", "Data Type", "Units", "Range", "Description"}, attributeRows(cmd.Args))
		}
		if len(cmd.RequiredArgs) > 0 {
			b.Field("Required Args", strings.Join(cmd.RequiredArgs, ", "))
		}
	}
}

func (m *models) qualified(name string) string {
	if m.prefix == "" {
		return name
	}
	return string(m.prefix) + constants.CollectionSeparator + name
}

func attributeRows(attrs []icd.Attribute) [][]string {
	rows := make([][]string, len(attrs))
	for i, a := range attrs {
		dt, valueRange := dataType(a)
		rows[i] = []string{a.Name, dt, a.Units, valueRange, a.Description}
	}
	return rows
}
