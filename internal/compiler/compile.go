package compiler

import (
	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/opcode"
)

// Compile encodes text-side entries into a map file.
// Entries are validated and written in one pass; on error nothing is returned.
func Compile(table *opcode.Table, entries []ir.Entry) ([]byte, error) {
	w := &wordWriter{buf: make([]byte, 0, (len(entries)*2+1)*WordSize)}

	for i, e := range entries {
		rec, op, err := resolveEntry(table, i, e)
		if err != nil {
			return nil, err
		}
		w.int32(rec.Wait)
		w.uint32(op.Code)
		for _, a := range rec.Args {
			w.int32(a.Value)
		}
	}

	w.uint32(opcode.Terminator)
	return w.buf, nil
}

// Encode encodes an already-resolved script.
// Records are checked against table the same way text entries are, so a
// record naming an unknown action or missing an argument still fails.
func Encode(table *opcode.Table, script ir.Script) ([]byte, error) {
	return Compile(table, script.Entries())
}
