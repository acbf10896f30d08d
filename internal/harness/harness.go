package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/platymap/internal/compiler"
	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/opcode"
	"github.com/roach88/platymap/internal/script"
)

// Harness runs scenarios against one opcode table.
type Harness struct {
	table  *opcode.Table
	logger *slog.Logger
}

// New creates a harness. A nil logger discards output.
func New(table *opcode.Table, logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{table: table, logger: logger}
}

// Run executes a scenario with a silent logger.
func Run(table *opcode.Table, scenario *Scenario) (*Result, error) {
	return New(table, nil).Run(scenario)
}

// Run executes a scenario and checks its expectations.
//
// A conversion error is part of the result, not a returned error; the
// returned error reports a scenario that cannot be evaluated at all, such as
// an expect.script that does not resolve.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	result := NewResult()

	var err error
	switch scenario.Direction {
	case DirectionCompile:
		err = h.compile(scenario, result)
	case DirectionDecompile:
		err = h.decompile(scenario, result)
	case DirectionRoundTrip:
		err = h.roundTrip(scenario, result)
	default:
		return nil, fmt.Errorf("unknown direction %q", scenario.Direction)
	}
	result.Err = err

	h.logger.Debug("scenario executed",
		"scenario", scenario.Name,
		"direction", scenario.Direction,
		"words", len(result.Words),
		"records", len(result.Script),
		"error", err,
	)

	if err := h.checkExpectations(scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (h *Harness) parseInput(scenario *Scenario) (ir.Script, []ir.Entry, error) {
	entries, err := script.Parse([]byte(scenario.Input), script.Format(scenario.Format))
	if err != nil {
		return nil, nil, err
	}
	resolved, err := compiler.Resolve(h.table, entries)
	if err != nil {
		return nil, nil, err
	}
	return resolved, entries, nil
}

func (h *Harness) compile(scenario *Scenario, result *Result) error {
	resolved, entries, err := h.parseInput(scenario)
	if err != nil {
		return err
	}
	result.Script = resolved

	out, err := compiler.Compile(h.table, entries)
	if err != nil {
		return err
	}
	result.Words = compiler.UnpackWords(out)
	return nil
}

func (h *Harness) decompile(scenario *Scenario, result *Result) error {
	data := scenario.binaryInput()
	result.Words = compiler.UnpackWords(data)

	decoded, err := compiler.Decompile(h.table, data)
	if err != nil {
		return err
	}
	result.Script = decoded
	return nil
}

// roundTrip compiles, decompiles, and re-marshals in the scenario's format,
// recording a mismatch whenever a stage does not reproduce the script.
func (h *Harness) roundTrip(scenario *Scenario, result *Result) error {
	resolved, entries, err := h.parseInput(scenario)
	if err != nil {
		return err
	}

	out, err := compiler.Compile(h.table, entries)
	if err != nil {
		return err
	}
	result.Words = compiler.UnpackWords(out)

	decoded, err := compiler.Decompile(h.table, out)
	if err != nil {
		return err
	}
	result.Script = decoded
	if !scriptsEqual(resolved, decoded) {
		result.AddError("decompiled script differs from input: got %s", describeScript(decoded))
	}

	format := script.Format(scenario.Format)
	text, err := script.Marshal(decoded, format)
	if err != nil {
		return err
	}
	reparsed, err := script.Parse(text, format)
	if err != nil {
		return err
	}
	again, err := compiler.Compile(h.table, reparsed)
	if err != nil {
		return err
	}
	if ir.BinaryHash(again) != ir.BinaryHash(out) {
		result.AddError("re-marshaled %s script compiles to different bytes", format)
	}
	return nil
}
