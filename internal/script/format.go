package script

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roach88/platymap/internal/ir"
)

// Format names a structured-text syntax.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
	CUE  Format = "cue"
)

// Formats lists the supported formats in preference order.
var Formats = []Format{JSON, YAML, CUE}

// ParseFormat resolves a user-supplied format name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "cue":
		return CUE, nil
	}
	return "", fmt.Errorf("unknown script format %q: must be one of %v", name, Formats)
}

// FormatForPath picks a format from a file extension, or returns fallback
// when the extension is not recognized.
func FormatForPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	case ".cue":
		return CUE
	}
	return fallback
}

// Parse reads a script document into entries.
//
// Errors are *ir.Error values of kind KindParseFailure (not well formed) or
// KindInvalidFormat (top level not a sequence, or an element not an object;
// the latter carries the element index).
func Parse(data []byte, f Format) ([]ir.Entry, error) {
	switch f {
	case JSON:
		return parseJSON(data)
	case YAML:
		return parseYAML(data)
	case CUE:
		return parseCUE(data)
	}
	return nil, fmt.Errorf("unknown script format %q", f)
}

// Marshal writes a resolved script in the given format.
func Marshal(s ir.Script, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return marshalJSON(s)
	case YAML:
		return marshalYAML(s)
	case CUE:
		return marshalCUE(s)
	}
	return nil, fmt.Errorf("unknown script format %q", f)
}

// entryFromObject picks the known keys out of a parsed element.
// Unknown keys are ignored.
func entryFromObject(obj ir.IRObject) ir.Entry {
	return ir.Entry{
		Wait:   obj["wait"],
		Action: obj["action"],
		Args:   obj["args"],
	}
}
