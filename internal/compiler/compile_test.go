package compiler

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/opcode"
)

// words builds a little-endian byte stream from 32-bit words.
func words(ws ...uint32) []byte {
	out := make([]byte, 0, len(ws)*WordSize)
	for _, w := range ws {
		out = binary.LittleEndian.AppendUint32(out, w)
	}
	return out
}

func entry(action string) ir.Entry {
	return ir.Entry{Action: ir.IRString(action)}
}

func TestCompileNoArgs(t *testing.T) {
	out, err := Compile(opcode.Platypus(), []ir.Entry{entry("sayLevel")})
	require.NoError(t, err)

	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x00,
		0x07, 0x00, 0x00, 0x00,
		0xEF, 0xE0, 0x6F, 0x2A,
	}, out)
}

func TestCompileWithWaitAndArgs(t *testing.T) {
	e := ir.Entry{
		Wait:   ir.IRInt(5),
		Action: ir.IRString("saucer"),
		// Key order in the object does not matter; the table fixes it.
		Args: ir.IRObject{"firing_chance": ir.IRInt(3), "y": ir.IRInt(20), "x": ir.IRInt(10)},
	}

	out, err := Compile(opcode.Platypus(), []ir.Entry{e})
	require.NoError(t, err)
	assert.Equal(t, words(5, 0x1E, 10, 20, 3, opcode.Terminator), out)
	assert.Len(t, out, 24)
}

func TestCompileEmptyScript(t *testing.T) {
	out, err := Compile(opcode.Platypus(), nil)
	require.NoError(t, err)
	assert.Equal(t, words(opcode.Terminator), out)
}

func TestCompileNegativeValues(t *testing.T) {
	e := ir.Entry{
		Wait:   ir.IRInt(-1),
		Action: ir.IRString("skipIfOne"),
		Args:   ir.IRObject{"places": ir.IRInt(-2147483648)},
	}
	out, err := Compile(opcode.Platypus(), []ir.Entry{e})
	require.NoError(t, err)
	assert.Equal(t, words(0xFFFFFFFF, 0x0C, 0x80000000, opcode.Terminator), out)
}

func TestCompileLargeCodes(t *testing.T) {
	out, err := Compile(opcode.Platypus(), []ir.Entry{entry("noEruption"), entry("end_level"), entry("next_level")})
	require.NoError(t, err)
	assert.Equal(t, words(0, 0x151F04BD, 0, 0x23A15D71, 0, 0x9E051FB8, opcode.Terminator), out)
}

func TestCompileIgnoresArgsForZeroArity(t *testing.T) {
	e := ir.Entry{Action: ir.IRString("sayLevel"), Args: ir.IRString("not even an object")}
	out, err := Compile(opcode.Platypus(), []ir.Entry{e})
	require.NoError(t, err)
	assert.Equal(t, words(0, 0x07, opcode.Terminator), out)
}

func TestCompileIgnoresExtraKeys(t *testing.T) {
	e := ir.Entry{
		Action: ir.IRString("skipIfOne"),
		Args:   ir.IRObject{"places": ir.IRInt(2), "comment": ir.IRString("extra")},
	}
	out, err := Compile(opcode.Platypus(), []ir.Entry{e})
	require.NoError(t, err)
	assert.Equal(t, words(0, 0x0C, 2, opcode.Terminator), out)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		entry  ir.Entry
		kind   ir.ErrorKind
		action string
		field  string
	}{
		{"unknown action", entry("doesNotExist"), ir.KindUnknownAction, "doesNotExist", ""},
		{"missing action", ir.Entry{}, ir.KindMissingAction, "", "action"},
		{"action not string", ir.Entry{Action: ir.IRInt(7)}, ir.KindMissingAction, "", "action"},
		{"wait float", ir.Entry{Wait: ir.IRFloat(1.5), Action: ir.IRString("sayLevel")}, ir.KindWaitNotInteger, "", "wait"},
		{"wait string", ir.Entry{Wait: ir.IRString("5"), Action: ir.IRString("sayLevel")}, ir.KindWaitNotInteger, "", "wait"},
		{"wait null", ir.Entry{Wait: ir.IRNull{}, Action: ir.IRString("sayLevel")}, ir.KindWaitNotInteger, "", "wait"},
		{"wait overflow", ir.Entry{Wait: ir.IRInt(1 << 31), Action: ir.IRString("sayLevel")}, ir.KindWaitNotInteger, "", "wait"},
		{"missing args", entry("saucer"), ir.KindMissingArgs, "saucer", "args"},
		{"args null", ir.Entry{Action: ir.IRString("saucer"), Args: ir.IRNull{}}, ir.KindArgNotObject, "saucer", "args"},
		{"args array", ir.Entry{Action: ir.IRString("saucer"), Args: ir.IRArray{ir.IRInt(1)}}, ir.KindArgNotObject, "saucer", "args"},
		{
			"missing arg",
			ir.Entry{Action: ir.IRString("saucer"), Args: ir.IRObject{"x": ir.IRInt(1), "firing_chance": ir.IRInt(2)}},
			ir.KindMissingArg, "saucer", "y",
		},
		{
			"arg float",
			ir.Entry{Action: ir.IRString("skipIfOne"), Args: ir.IRObject{"places": ir.IRFloat(1.0)}},
			ir.KindArgNotInteger, "skipIfOne", "places",
		},
		{
			"arg bool",
			ir.Entry{Action: ir.IRString("skipIfOne"), Args: ir.IRObject{"places": ir.IRBool(true)}},
			ir.KindArgNotInteger, "skipIfOne", "places",
		},
		{
			"arg overflow",
			ir.Entry{Action: ir.IRString("skipIfOne"), Args: ir.IRObject{"places": ir.IRInt(1 << 32)}},
			ir.KindArgNotInteger, "skipIfOne", "places",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Compile(opcode.Platypus(), []ir.Entry{tt.entry})
			require.Error(t, err)
			assert.Nil(t, out)

			var irErr *ir.Error
			require.ErrorAs(t, err, &irErr)
			assert.Equal(t, tt.kind, irErr.Kind)
			assert.Equal(t, 0, irErr.Index)
			assert.Equal(t, tt.action, irErr.Action)
			assert.Equal(t, tt.field, irErr.Field)
		})
	}
}

func TestCompileReportsFirstFailingIndex(t *testing.T) {
	entries := []ir.Entry{
		entry("sayLevel"),
		entry("sayArea"),
		entry("doesNotExist"),
		entry("saucer"), // would fail too, but later
	}

	_, err := Compile(opcode.Platypus(), entries)
	require.Error(t, err)

	var irErr *ir.Error
	require.ErrorAs(t, err, &irErr)
	assert.Equal(t, ir.KindUnknownAction, irErr.Kind)
	assert.Equal(t, 2, irErr.Index)
}

func TestCompileChecksWaitBeforeAction(t *testing.T) {
	_, err := Compile(opcode.Platypus(), []ir.Entry{{Wait: ir.IRFloat(0.5), Action: ir.IRString("doesNotExist")}})
	assert.Equal(t, ir.KindWaitNotInteger, ir.KindOf(err))
}

func TestResolveOrdersArgsByDeclaration(t *testing.T) {
	e := ir.Entry{
		Action: ir.IRString("redSaucer1"),
		Args:   ir.IRObject{"x": ir.IRInt(3), "y": ir.IRInt(2), "bonus": ir.IRInt(1)},
	}

	script, err := Resolve(opcode.Platypus(), []ir.Entry{e})
	require.NoError(t, err)
	require.Len(t, script, 1)
	assert.Equal(t, []ir.Arg{{Name: "bonus", Value: 1}, {Name: "y", Value: 2}, {Name: "x", Value: 3}}, script[0].Args)
}

func TestResolveZeroArityHasNilArgs(t *testing.T) {
	script, err := Resolve(opcode.Platypus(), []ir.Entry{entry("sayLevel")})
	require.NoError(t, err)
	assert.Equal(t, ir.Script{{Action: "sayLevel"}}, script)
}

func TestEncodeRejectsIncompleteRecord(t *testing.T) {
	_, err := Encode(opcode.Platypus(), ir.Script{{Action: "saucer", Args: []ir.Arg{{Name: "x", Value: 1}}}})
	require.Error(t, err)
	assert.Equal(t, ir.KindMissingArg, ir.KindOf(err))
}

func TestCompileWithCustomTable(t *testing.T) {
	table := opcode.MustTable([]opcode.Operation{
		{Code: 0x2A, Name: "fishFire", Args: []string{"enabled"}},
		{Code: 0x2A, Name: "legacyFishFire", Args: []string{"enabled"}},
	})

	// Both names still encode; the code is shared.
	out, err := Compile(table, []ir.Entry{
		{Action: ir.IRString("fishFire"), Args: ir.IRObject{"enabled": ir.IRInt(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, words(0, 0x2A, 1, opcode.Terminator), out)

	// Decoding recovers the last-declared name.
	script, err := Decompile(table, out)
	require.NoError(t, err)
	assert.Equal(t, "legacyFishFire", script[0].Action)
}

func TestPackUnpackWords(t *testing.T) {
	ws := []uint32{0, 0x1E, 0xFFFFFFFF, opcode.Terminator}
	data := PackWords(ws)
	assert.Equal(t, words(ws...), data)
	assert.Equal(t, ws, UnpackWords(data))

	assert.Equal(t, []uint32{1}, UnpackWords([]byte{1, 0, 0, 0, 9, 9}))
	assert.Empty(t, UnpackWords(nil))
}
