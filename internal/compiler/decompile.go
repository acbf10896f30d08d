package compiler

import (
	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/opcode"
)

// Decompile decodes a map file into a resolved script.
//
// The input must be a positive multiple of WordSize long (KindInvalidLength)
// and end with opcode.Terminator (KindMissingTerminator). Records are then
// read word by word up to the terminator; a record cut short fails with
// KindUnexpectedEOF and an unknown opcode with KindUnknownOpcode.
func Decompile(table *opcode.Table, data []byte) (ir.Script, error) {
	if len(data) < WordSize || len(data)%WordSize != 0 {
		return nil, ir.StreamError(ir.KindInvalidLength, -1, len(data))
	}

	end := len(data) - WordSize
	if byteOrder.Uint32(data[end:]) != opcode.Terminator {
		return nil, ir.StreamError(ir.KindMissingTerminator, -1, end)
	}

	r := &wordReader{data: data[:end]}
	script := ir.Script{}

	for index := 0; r.remaining() > 0; index++ {
		wait, _ := r.int32()

		at := r.offset()
		code, ok := r.uint32()
		if !ok {
			return nil, ir.StreamError(ir.KindUnexpectedEOF, index, at)
		}

		op, ok := table.ByCode(code)
		if !ok {
			return nil, &ir.Error{Kind: ir.KindUnknownOpcode, Index: index, Offset: at, Opcode: code}
		}

		if r.remaining() < op.Arity() {
			err := ir.StreamError(ir.KindUnexpectedEOF, index, r.offset())
			err.Action = op.Name
			return nil, err
		}

		rec := ir.Record{Wait: wait, Action: op.Name}
		if op.Arity() > 0 {
			rec.Args = make([]ir.Arg, op.Arity())
			for i, name := range op.Args {
				v, _ := r.int32()
				rec.Args[i] = ir.Arg{Name: name, Value: v}
			}
		}
		script = append(script, rec)
	}

	return script, nil
}
