package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/store"
)

func TestHistoryWithoutDatabase(t *testing.T) {
	t.Setenv("PLATYMAP_DB", "")

	run := execute(t, "", "history")
	require.Error(t, run.err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.err))
	assert.Contains(t, run.stderr.String(), ErrCodeHistory)
}

func TestHistoryRecordsConversions(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	input := writeFile(t, "level.json", `[{"action":"sayLevel"}]`)
	dir := t.TempDir()
	bin := filepath.Join(dir, "level.bin")

	require.NoError(t, execute(t, "", "--db", db, "compile", input, bin).err)
	require.NoError(t, execute(t, "", "--db", db, "decompile", bin, filepath.Join(dir, "level.yaml")).err)

	run := execute(t, "", "--db", db, "--format", "json", "history")
	require.NoError(t, run.err, run.stderr.String())

	var resp struct {
		Data []store.Conversion `json:"data"`
	}
	require.NoError(t, json.Unmarshal(run.stdout.Bytes(), &resp))
	require.Len(t, resp.Data, 2)

	compiled, decompiled := resp.Data[0], resp.Data[1]
	assert.Equal(t, int64(1), compiled.Seq)
	assert.Equal(t, store.DirectionCompile, compiled.Direction)
	assert.Equal(t, "json", compiled.TextFormat)
	assert.Equal(t, 12, compiled.Bytes)
	assert.Equal(t, ir.BinaryHash(sayLevelBinary), compiled.BinaryHash)

	assert.Equal(t, int64(2), decompiled.Seq)
	assert.Equal(t, store.DirectionDecompile, decompiled.Direction)
	assert.Equal(t, "yaml", decompiled.TextFormat)
	// Both directions describe the same script and binary.
	assert.Equal(t, compiled.ScriptHash, decompiled.ScriptHash)
	assert.Equal(t, compiled.BinaryHash, decompiled.BinaryHash)
}

func TestHistoryText(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	input := writeFile(t, "level.json", `[{"action":"sayLevel"}]`)

	require.NoError(t, execute(t, "", "--db", db, "compile", input, "-").err)

	run := execute(t, "", "--db", db, "history")
	require.NoError(t, run.err, run.stderr.String())
	assert.Contains(t, run.stdout.String(), "SEQ")
	assert.Contains(t, run.stdout.String(), "compile")
	assert.Contains(t, run.stdout.String(), input)
}

func TestHistoryEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	run := execute(t, "", "--db", db, "history")
	require.NoError(t, run.err, run.stderr.String())
	assert.Contains(t, run.stdout.String(), "No conversions recorded.")
}

func TestHistoryFailedConversionNotRecorded(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	input := writeFile(t, "bad.json", `[{"action":"fooBar"}]`)

	require.Error(t, execute(t, "", "--db", db, "compile", input, "-").err)

	run := execute(t, "", "--db", db, "--format", "json", "history")
	require.NoError(t, run.err)
	var resp struct {
		Data []store.Conversion `json:"data"`
	}
	require.NoError(t, json.Unmarshal(run.stdout.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestHistoryByBinaryHash(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	level := writeFile(t, "level.json", `[{"action":"sayLevel"}]`)
	other := writeFile(t, "other.json", `[{"wait":1,"action":"sayLevel"}]`)

	require.NoError(t, execute(t, "", "--db", db, "compile", level, "-").err)
	require.NoError(t, execute(t, "", "--db", db, "compile", other, "-").err)

	run := execute(t, "", "--db", db, "--format", "json", "history", "--binary-hash", ir.BinaryHash(sayLevelBinary))
	require.NoError(t, run.err)

	var resp struct {
		Data []store.Conversion `json:"data"`
	}
	require.NoError(t, json.Unmarshal(run.stdout.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, level, resp.Data[0].InputPath)
}
