package harness

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/roach88/platymap/internal/compiler"
	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/script"
)

// Scenario directions.
const (
	DirectionCompile   = "compile"
	DirectionDecompile = "decompile"
	DirectionRoundTrip = "roundtrip"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Direction is compile, decompile or roundtrip.
	Direction string `yaml:"direction"`

	// Format is the script format of Input. Defaults to json.
	Format string `yaml:"format,omitempty"`

	// Input is the script text (compile, roundtrip).
	Input string `yaml:"input,omitempty"`

	// Words is the binary input (decompile).
	Words []Word `yaml:"words,omitempty"`

	// Bytes is the binary input as hex, for streams that are not whole
	// words (decompile). Exclusive with Words.
	Bytes string `yaml:"bytes,omitempty"`

	// Expect holds the expected outcome.
	Expect Expectation `yaml:"expect"`
}

// Expectation describes a scenario's expected outcome.
// Error is exclusive with Words and Script.
type Expectation struct {
	Words  []Word       `yaml:"words,omitempty"`
	Script string       `yaml:"script,omitempty"`
	Error  *ExpectError `yaml:"error,omitempty"`
}

// ExpectError names the expected error kind and, optionally, record index.
type ExpectError struct {
	Kind  string `yaml:"kind"`
	Index *int   `yaml:"index,omitempty"`
}

// Word is a 32-bit value from a scenario file.
type Word uint32

// UnmarshalYAML accepts decimal (including negative) and 0x-prefixed hex.
func (w *Word) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: word must be a scalar", node.Line)
	}
	n, err := strconv.ParseInt(node.Value, 0, 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid word %q", node.Line, node.Value)
	}
	if n < -1<<31 || n > 1<<32-1 {
		return fmt.Errorf("line %d: word %q out of 32-bit range", node.Line, node.Value)
	}
	*w = Word(uint32(n))
	return nil
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid,
// and normalizes Format.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Direction {
	case DirectionCompile, DirectionRoundTrip:
		if s.Input == "" {
			return fmt.Errorf("input is required for %s", s.Direction)
		}
		if len(s.Words) > 0 || s.Bytes != "" {
			return fmt.Errorf("binary input is not allowed for %s (use expect.words)", s.Direction)
		}
	case DirectionDecompile:
		if (len(s.Words) == 0) == (s.Bytes == "") {
			return fmt.Errorf("decompile needs exactly one of words or bytes")
		}
		if s.Bytes != "" {
			if _, err := hex.DecodeString(s.Bytes); err != nil {
				return fmt.Errorf("bytes: %w", err)
			}
		}
		if s.Input != "" {
			return fmt.Errorf("input is not allowed for decompile")
		}
	case "":
		return fmt.Errorf("direction is required")
	default:
		return fmt.Errorf("unknown direction %q", s.Direction)
	}

	if s.Format == "" {
		s.Format = string(script.JSON)
	}
	f, err := script.ParseFormat(s.Format)
	if err != nil {
		return err
	}
	s.Format = string(f)

	return validateExpectation(s)
}

func validateExpectation(s *Scenario) error {
	e := s.Expect
	if e.Error != nil {
		if len(e.Words) > 0 || e.Script != "" {
			return fmt.Errorf("expect.error cannot be combined with expect.words or expect.script")
		}
		if _, ok := ir.ParseErrorKind(e.Error.Kind); !ok {
			return fmt.Errorf("expect.error: unknown kind %q", e.Error.Kind)
		}
		if e.Error.Index != nil && *e.Error.Index < 0 {
			return fmt.Errorf("expect.error: index must be non-negative")
		}
		return nil
	}

	if s.Direction != DirectionRoundTrip && len(e.Words) == 0 && e.Script == "" {
		return fmt.Errorf("expect needs words, script or error")
	}
	return nil
}

// binaryInput returns the decompile input stream.
func (s *Scenario) binaryInput() []byte {
	if s.Bytes != "" {
		data, _ := hex.DecodeString(s.Bytes)
		return data
	}
	return compiler.PackWords(wordsToUint32(s.Words))
}

func wordsToUint32(ws []Word) []uint32 {
	out := make([]uint32, len(ws))
	for i, w := range ws {
		out[i] = uint32(w)
	}
	return out
}
