package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/roach88/platymap/internal/ir"
)

// Direction is the way a conversion ran.
type Direction string

const (
	DirectionCompile   Direction = "compile"
	DirectionDecompile Direction = "decompile"
)

// Conversion is one recorded run.
type Conversion struct {
	ID          string    `json:"id"`
	Seq         int64     `json:"seq"`
	Direction   Direction `json:"direction"`
	InputPath   string    `json:"input_path"`
	OutputPath  string    `json:"output_path"`
	TextFormat  string    `json:"text_format"`
	ScriptHash  string    `json:"script_hash"`
	BinaryHash  string    `json:"binary_hash"`
	Records     int       `json:"records"`
	Bytes       int       `json:"bytes"`
	ToolVersion string    `json:"tool_version"`
}

// NewConversion describes a successful conversion of script to or from data.
func NewConversion(dir Direction, inputPath, outputPath, textFormat string, script ir.Script, data []byte) (Conversion, error) {
	scriptHash, err := ir.ScriptHash(script)
	if err != nil {
		return Conversion{}, fmt.Errorf("hash script: %w", err)
	}
	return Conversion{
		Direction:   dir,
		InputPath:   inputPath,
		OutputPath:  outputPath,
		TextFormat:  textFormat,
		ScriptHash:  scriptHash,
		BinaryHash:  ir.BinaryHash(data),
		Records:     len(script),
		Bytes:       len(data),
		ToolVersion: ir.ToolVersion,
	}, nil
}

// RecordConversion appends c to the history. ID and Seq are assigned by the
// store; any values set by the caller are ignored.
func (s *Store) RecordConversion(ctx context.Context, c Conversion) (Conversion, error) {
	c.ID = s.ids.Generate()

	// seq is assigned by the insert itself.
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO conversions
		(id, seq, direction, input_path, output_path, text_format, script_hash, binary_hash, records, bytes, tool_version)
		SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?, ?, ?, ?, ?, ?
		FROM conversions
		RETURNING seq
	`,
		c.ID,
		string(c.Direction),
		c.InputPath,
		c.OutputPath,
		c.TextFormat,
		c.ScriptHash,
		c.BinaryHash,
		c.Records,
		c.Bytes,
		c.ToolVersion,
	)
	if err := row.Scan(&c.Seq); err != nil {
		return Conversion{}, fmt.Errorf("record conversion: %w", err)
	}
	return c, nil
}

// ListConversions returns the newest limit conversions in ascending seq
// order. A limit of zero or less returns the whole history.
//
// Returns an empty slice (not nil) when nothing has been recorded.
func (s *Store) ListConversions(ctx context.Context, limit int) ([]Conversion, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, direction, input_path, output_path, text_format, script_hash, binary_hash, records, bytes, tool_version
		FROM conversions
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	convs, err := scanConversions(rows)
	if err != nil {
		return nil, err
	}
	slices.Reverse(convs)
	return convs, nil
}

// FindByBinaryHash returns every conversion that produced or read a binary
// with the given hash, in seq order.
func (s *Store) FindByBinaryHash(ctx context.Context, hash string) ([]Conversion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, direction, input_path, output_path, text_format, script_hash, binary_hash, records, bytes, tool_version
		FROM conversions
		WHERE binary_hash = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, hash)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	return scanConversions(rows)
}

func scanConversions(rows *sql.Rows) ([]Conversion, error) {
	defer rows.Close()

	convs := []Conversion{}
	for rows.Next() {
		var c Conversion
		var dir string
		if err := rows.Scan(
			&c.ID,
			&c.Seq,
			&dir,
			&c.InputPath,
			&c.OutputPath,
			&c.TextFormat,
			&c.ScriptHash,
			&c.BinaryHash,
			&c.Records,
			&c.Bytes,
			&c.ToolVersion,
		); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		c.Direction = Direction(dir)
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}
	return convs, nil
}
