package docs

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"
)

// markdownBuilder wraps the markdown package with the pieces fragments use.
type markdownBuilder struct {
	md *md.Markdown
}

func newMarkdownBuilder(w io.Writer) *markdownBuilder {
	return &markdownBuilder{md: md.NewMarkdown(w)}
}

func (m *markdownBuilder) H4(text string) *markdownBuilder {
	m.md.H4(text)
	return m
}

func (m *markdownBuilder) PlainText(text string) *markdownBuilder {
	m.md.PlainText(text)
	return m
}

func (m *markdownBuilder) PlainTextf(format string, args ...interface{}) *markdownBuilder {
	m.md.PlainTextf(format, args...)
	return m
}

func (m *markdownBuilder) LF() *markdownBuilder {
	m.md.LF()
	return m
}

// Field writes a "**label:** value" line.
func (m *markdownBuilder) Field(label, value string) *markdownBuilder {
	m.md.PlainText(md.Bold(label+":") + " " + value)
	m.md.LF()
	return m
}

// Anchor writes an HTML anchor so other pages can link to the section.
func (m *markdownBuilder) Anchor(id string) *markdownBuilder {
	m.md.PlainText(fmt.Sprintf(`<a id="%s"></a>`, id))
	return m
}

// Table writes a table, escaping pipes inside cells.
func (m *markdownBuilder) Table(header []string, rows [][]string) *markdownBuilder {
	escaped := make([][]string, len(rows))
	for i, row := range rows {
		escaped[i] = make([]string, len(row))
		for j, cell := range row {
			escaped[i][j] = strings.ReplaceAll(cell, "|", `\|`)
		}
	}
	m.md.Table(md.TableSet{Header: header, Rows: escaped})
	return m
}

func (m *markdownBuilder) HorizontalRule() *markdownBuilder {
	m.md.HorizontalRule()
	return m
}

func (m *markdownBuilder) Build() error {
	return m.md.Build()
}
