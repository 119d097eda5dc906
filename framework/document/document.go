package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/km-arc/configy/framework/tree"
)

// Format identifies a document syntax.
type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
	FormatTOML Format = "toml"
)

// SyntaxError reports a document that could not be parsed.
type SyntaxError struct {
	Format Format
	Path   string
	Cause  error
}

func (e *SyntaxError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse %s document %s: %v", e.Format, e.Path, e.Cause)
	}
	return fmt.Sprintf("parse %s document: %v", e.Format, e.Cause)
}

func (e *SyntaxError) Unwrap() error { return e.Cause }

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".config":
		return FormatXML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported document extension %q (want .xml, .config, .yaml, .yml, .hcl or .toml)", filepath.Ext(path))
}

// Parse parses data in the given format.
func Parse(data []byte, format Format) (*tree.Node, error) {
	switch format {
	case FormatXML:
		return ParseXML(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatHCL:
		return ParseHCL(data, "<input>")
	case FormatTOML:
		return ParseTOML(data)
	}
	return nil, fmt.Errorf("unknown document format %q", format)
}

// Load reads and parses a document file, picking the format from its extension.
//
//	root, err := document.Load("configy.xml")
func Load(path string) (*tree.Node, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var root *tree.Node
	if format == FormatHCL {
		root, err = ParseHCL(data, path)
	} else {
		root, err = Parse(data, format)
	}
	if err != nil {
		if se, ok := err.(*SyntaxError); ok {
			se.Path = path
		}
		return nil, err
	}
	return root, nil
}
