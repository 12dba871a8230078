package icd

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/agentstation/icdmap/pkg/constants"
	"github.com/agentstation/icdmap/pkg/errors"
)

// DocumentKind is the kind of a declaration document.
type DocumentKind string

// Document kinds, in load order.
const (
	DocComponent DocumentKind = "component"
	DocPublish   DocumentKind = "publish"
	DocSubscribe DocumentKind = "subscribe"
	DocCommand   DocumentKind = "command"
)

// DocumentKinds lists the document kinds in the order the loader processes them.
var DocumentKinds = []DocumentKind{DocComponent, DocPublish, DocSubscribe, DocCommand}

// Order returns the load position of the kind; unknown kinds sort last.
func (k DocumentKind) Order() int {
	for i, kind := range DocumentKinds {
		if kind == k {
			return i
		}
	}
	return len(DocumentKinds)
}

// FileName returns the canonical model file name for ext, e.g. "publish-model.yaml".
func (k DocumentKind) FileName(ext string) string {
	if ext == "" {
		ext = constants.DefaultModelExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return string(k) + constants.ModelFileSuffix + ext
}

// ParseDocumentKind maps a kind name to a DocumentKind.
func ParseDocumentKind(s string) (DocumentKind, bool) {
	for _, kind := range DocumentKinds {
		if string(kind) == s {
			return kind, true
		}
	}
	return "", false
}

// Format is the serialization of a document body.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ModelExtensions lists the file extensions recognized for model files.
var ModelExtensions = []string{".yaml", ".yml", ".json", ".toml"}

// FormatForExt maps a file extension to a Format.
func FormatForExt(ext string) (Format, bool) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// ParseModelFileName recognizes "<kind>-model.<ext>" file names.
func ParseModelFileName(name string) (DocumentKind, Format, bool) {
	ext := filepath.Ext(name)
	format, ok := FormatForExt(ext)
	if !ok {
		return "", "", false
	}
	base := strings.TrimSuffix(name, ext)
	kindName, found := strings.CutSuffix(base, constants.ModelFileSuffix)
	if !found {
		return "", "", false
	}
	kind, ok := ParseDocumentKind(kindName)
	if !ok {
		return "", "", false
	}
	return kind, format, true
}

// Document is one declaration document as delivered by a source.
type Document struct {
	Key    ComponentKey
	Kind   DocumentKind
	Origin string // file path or collection name
	Format Format
	Data   []byte
}

// Decode unmarshals the document body into v.
// YAML and JSON bodies are read with go-yaml, TOML bodies with go-toml.
func (d *Document) Decode(v any) error {
	var err error
	switch d.Format {
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(d.Data)).Decode(v)
	case FormatYAML, FormatJSON, "":
		err = yaml.Unmarshal(d.Data, v)
	default:
		return errors.NewMalformedDocumentError(d.Origin, string(d.Format), "unsupported format", nil)
	}
	return errors.WrapMalformed(d.Origin, string(d.Format), err)
}

// Header reads the subsystem and component fields every model file carries.
func (d *Document) Header() (ComponentKey, error) {
	var key ComponentKey
	if err := d.Decode(&key); err != nil {
		return ComponentKey{}, err
	}
	return key, nil
}
