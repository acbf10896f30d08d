package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/opcode"
)

// Snapshot renders a scenario result as canonical JSON.
//
// The snapshot holds the scenario name, direction, words as 8-digit hex
// strings, the script, and the error kind, code and record index when the
// conversion failed. Mismatch messages are not part of it.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	snap := ir.IRObject{
		"scenario_name": ir.IRString(scenario.Name),
		"direction":     ir.IRString(scenario.Direction),
	}

	if result.Words != nil {
		words := make(ir.IRArray, len(result.Words))
		for i, w := range result.Words {
			words[i] = ir.IRString(fmt.Sprintf("%08X", w))
		}
		snap["words"] = words
	}
	if result.Script != nil {
		snap["script"] = result.Script.Value()
	}
	if result.Err != nil {
		kind := ir.KindOf(result.Err)
		snap["error"] = ir.IRObject{
			"kind":  ir.IRString(kind.String()),
			"code":  ir.IRString(kind.Code()),
			"index": ir.IRInt(errorIndex(result.Err)),
		}
	}

	return ir.MarshalCanonical(snap)
}

// RunWithGolden runs a scenario and compares its Snapshot with
// testdata/scenarios/golden/<name>.golden. Run tests with -update to regenerate.
//
// Returns error if the scenario cannot be evaluated.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, table *opcode.Table, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(table, scenario)
	if err != nil {
		return nil, err
	}

	data, err := Snapshot(scenario, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/scenarios/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
