// Package harness runs conformance scenarios against the converter.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: saucer_with_wait
//	description: "One record with a wait and three arguments"
//	direction: compile          # compile | decompile | roundtrip
//	format: json                # format of input (default json)
//	input: |
//	  [{"wait": 5, "action": "saucer", "args": {"x": 10, "y": 20, "firing_chance": 3}}]
//	expect:
//	  words: [5, 0x1E, 10, 20, 3, 0x2A6FE0EF]
//
// Decompile scenarios give the binary as words instead of input:
//
//	direction: decompile
//	words: [0, 0x7, 0x2A6FE0EF]
//	expect:
//	  script: '[{"action": "sayLevel"}]'
//
// A failing conversion is expected with expect.error:
//
//	expect:
//	  error: {kind: UnknownAction, index: 0}
//
// A stream that is not a whole number of words is given as hex instead:
//
//	bytes: "EFE06F"
//
// Words are 32-bit values written as decimal (negative values allowed) or
// 0x-prefixed hex. expect.script is JSON and is compared after resolution
// against the opcode table, so key order and omitted zero waits do not matter.
//
// A roundtrip scenario compiles input, decompiles the result and checks that
// the script survives unchanged, in addition to any expect clauses.
//
// # Golden Snapshots
//
// Snapshot renders a result as canonical JSON. RunWithGolden compares it
// with golden/<name>.golden beside the scenario files, the same layout the
// platymap test command uses, so behavior changes show up as diffs.
package harness
