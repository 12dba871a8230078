package output

import (
	"fmt"
	"io"

	"github.com/agentstation/icdmap/pkg/catalog"
	"github.com/agentstation/icdmap/pkg/icd"
	"github.com/agentstation/icdmap/pkg/resolver"
)

// Report summarizes a resolved catalog.
type Report struct {
	Components  int             `json:"components" yaml:"components"`
	Links       []LinkRow       `json:"links" yaml:"links"`
	Unmatched   []MissingRow    `json:"unmatched_receives" yaml:"unmatched_receives"`
	Unresolved  []MissingRow    `json:"unresolved_subscriptions" yaml:"unresolved_subscriptions"`
	Sends       []MissingRow    `json:"unmatched_sends" yaml:"unmatched_sends"`
	Diagnostics []DiagnosticRow `json:"diagnostics" yaml:"diagnostics"`
}

// LinkRow is one resolved link.
type LinkRow struct {
	Kind icd.LinkKind `json:"kind" yaml:"kind"`
	From icd.Prefix   `json:"from" yaml:"from"`
	To   icd.Prefix   `json:"to" yaml:"to"`
	Item string       `json:"item" yaml:"item"`
}

// MissingRow is a requirement with no counterpart.
type MissingRow struct {
	Prefix icd.Prefix `json:"prefix" yaml:"prefix"`
	Kind   string     `json:"kind" yaml:"kind"`
	Item   string     `json:"item" yaml:"item"`
}

// DiagnosticRow is a declaration skipped while loading.
type DiagnosticRow struct {
	Origin    string           `json:"origin" yaml:"origin"`
	Subsystem string           `json:"subsystem" yaml:"subsystem"`
	Component string           `json:"component" yaml:"component"`
	Kind      icd.DocumentKind `json:"kind" yaml:"kind"`
	Error     string           `json:"error" yaml:"error"`
}

// NewReport collects the report rows from cat and res.
func NewReport(cat *catalog.Catalog, res *resolver.Resolution) *Report {
	r := &Report{
		Components:  len(cat.Prefixes()),
		Links:       []LinkRow{},
		Unmatched:   []MissingRow{},
		Unresolved:  []MissingRow{},
		Sends:       []MissingRow{},
		Diagnostics: []DiagnosticRow{},
	}

	for _, l := range res.All() {
		r.Links = append(r.Links, LinkRow{Kind: l.Kind, From: l.From, To: l.To, Item: l.Item})
	}
	for _, p := range res.UnmatchedReceivers() {
		for _, name := range res.UnmatchedReceives(p) {
			r.Unmatched = append(r.Unmatched, MissingRow{Prefix: p, Kind: string(icd.LinkCommand), Item: name})
		}
	}
	for _, p := range res.UnresolvedSubscribers() {
		for _, kind := range icd.SubscribeKinds {
			for _, ref := range res.Unresolved(p, kind) {
				r.Unresolved = append(r.Unresolved, MissingRow{Prefix: p, Kind: string(kind), Item: ref.String()})
			}
		}
	}
	for _, id := range res.UnmatchedSends() {
		r.Sends = append(r.Sends, MissingRow{Prefix: id.Owner, Kind: string(icd.LinkCommand), Item: id.Name})
	}
	for _, d := range cat.Diagnostics() {
		row := DiagnosticRow{Origin: d.Origin, Subsystem: d.Key.Subsystem, Component: d.Key.Component, Kind: d.Kind}
		if d.Err != nil {
			row.Error = d.Err.Error()
		}
		r.Diagnostics = append(r.Diagnostics, row)
	}
	return r
}

// Section is one titled table of a report.
type Section struct {
	Title string
	Data  Data
}

// Sections renders the report as tables. Empty sections are dropped unless
// wide is set.
func (r *Report) Sections(wide bool) []Section {
	sections := []Section{
		{Title: fmt.Sprintf("Links (%d components)", r.Components), Data: leftAligned(r.Links)},
		{Title: "Unmatched receives", Data: leftAligned(r.Unmatched)},
		{Title: "Unresolved subscriptions", Data: leftAligned(r.Unresolved)},
		{Title: "Unmatched sends", Data: leftAligned(r.Sends)},
		{Title: "Diagnostics", Data: leftAligned(r.Diagnostics)},
	}
	if wide {
		return sections
	}
	out := sections[:0]
	for _, s := range sections {
		if len(s.Data.Rows) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// leftAligned tabulates rows, which are always row struct slices here.
func leftAligned(rows any) Data {
	data, err := TableOf(rows)
	if err != nil {
		panic("programming error: " + err.Error())
	}
	data.ColumnAlignment = make([]Align, len(data.Headers))
	for i := range data.ColumnAlignment {
		data.ColumnAlignment[i] = AlignLeft
	}
	return data
}

// WriteReport writes r in the given format.
func WriteReport(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, r)
	}

	tf := &TableFormatter{Wide: format == FormatWide}
	for i, s := range r.Sections(tf.Wide) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, s.Title)
		if err := tf.Format(w, s.Data); err != nil {
			return err
		}
	}
	return nil
}
