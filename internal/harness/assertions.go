package harness

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/platymap/internal/compiler"
	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/script"
)

// checkExpectations compares the result against scenario.Expect and records
// each mismatch on the result.
func (h *Harness) checkExpectations(scenario *Scenario, result *Result) error {
	expect := scenario.Expect

	if expect.Error != nil {
		checkError(expect.Error, result)
		return nil
	}

	if result.Err != nil {
		result.AddError("unexpected error [%s]: %v", ir.KindOf(result.Err).Code(), result.Err)
		return nil
	}

	if len(expect.Words) > 0 {
		want := wordsToUint32(expect.Words)
		if !slices.Equal(want, result.Words) {
			result.AddError("words: expected %s, got %s", formatWords(want), formatWords(result.Words))
		}
	}

	if expect.Script != "" {
		entries, err := script.Parse([]byte(expect.Script), script.JSON)
		if err != nil {
			return fmt.Errorf("expect.script: %w", err)
		}
		want, err := compiler.Resolve(h.table, entries)
		if err != nil {
			return fmt.Errorf("expect.script: %w", err)
		}
		if !scriptsEqual(want, result.Script) {
			result.AddError("script: expected %s, got %s", describeScript(want), describeScript(result.Script))
		}
	}
	return nil
}

func checkError(want *ExpectError, result *Result) {
	if result.Err == nil {
		result.AddError("expected %s error, conversion succeeded", want.Kind)
		return
	}

	got := ir.KindOf(result.Err)
	if got.String() != want.Kind {
		result.AddError("expected %s error, got %s: %v", want.Kind, got, result.Err)
		return
	}

	if want.Index != nil {
		index := errorIndex(result.Err)
		if index != *want.Index {
			result.AddError("expected %s at record #%d, got #%d", want.Kind, *want.Index, index)
		}
	}
}

func errorIndex(err error) int {
	var irErr *ir.Error
	if errors.As(err, &irErr) {
		return irErr.Index
	}
	return -1
}

func scriptsEqual(a, b ir.Script) bool {
	return slices.EqualFunc(a, b, func(x, y ir.Record) bool {
		return x.Wait == y.Wait && x.Action == y.Action && slices.Equal(x.Args, y.Args)
	})
}

func formatWords(ws []uint32) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = fmt.Sprintf("%08X", w)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func describeScript(s ir.Script) string {
	data, err := ir.MarshalCanonical(s)
	if err != nil {
		return fmt.Sprintf("%v", s)
	}
	return string(data)
}
