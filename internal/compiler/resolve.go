package compiler

import (
	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/opcode"
)

// Resolve checks every entry against table and returns the resolved script.
// It stops at the first invalid entry; the error carries its index.
//
// Checks per entry, in order:
//   - wait, when present, is a 32-bit integer (KindWaitNotInteger)
//   - action is a string (KindMissingAction) naming a known operation (KindUnknownAction)
//   - for operations with arguments: args is present (KindMissingArgs), is an
//     object (KindArgNotObject), has every declared name (KindMissingArg), and
//     each value is a 32-bit integer (KindArgNotInteger)
//
// Operations without arguments ignore any args block; unused keys are ignored.
func Resolve(table *opcode.Table, entries []ir.Entry) (ir.Script, error) {
	script := make(ir.Script, 0, len(entries))
	for i, e := range entries {
		rec, _, err := resolveEntry(table, i, e)
		if err != nil {
			return nil, err
		}
		script = append(script, rec)
	}
	return script, nil
}

func resolveEntry(table *opcode.Table, index int, e ir.Entry) (ir.Record, opcode.Operation, error) {
	var rec ir.Record

	if e.Wait != nil {
		wait, ok := ir.AsInt32(e.Wait)
		if !ok {
			return rec, opcode.Operation{}, ir.EntryError(ir.KindWaitNotInteger, index, "", "wait")
		}
		rec.Wait = wait
	}

	name, ok := e.Action.(ir.IRString)
	if !ok {
		return rec, opcode.Operation{}, ir.EntryError(ir.KindMissingAction, index, "", "action")
	}

	op, ok := table.ByName(string(name))
	if !ok {
		return rec, opcode.Operation{}, ir.EntryError(ir.KindUnknownAction, index, string(name), "")
	}
	rec.Action = op.Name

	if op.Arity() == 0 {
		return rec, op, nil
	}

	if e.Args == nil {
		return rec, op, ir.EntryError(ir.KindMissingArgs, index, op.Name, "args")
	}
	obj, ok := e.Args.(ir.IRObject)
	if !ok {
		return rec, op, ir.EntryError(ir.KindArgNotObject, index, op.Name, "args")
	}

	rec.Args = make([]ir.Arg, 0, op.Arity())
	for _, argName := range op.Args {
		raw, present := obj[argName]
		if !present {
			return rec, op, ir.EntryError(ir.KindMissingArg, index, op.Name, argName)
		}
		v, ok := ir.AsInt32(raw)
		if !ok {
			return rec, op, ir.EntryError(ir.KindArgNotInteger, index, op.Name, argName)
		}
		rec.Args = append(rec.Args, ir.Arg{Name: argName, Value: v})
	}

	return rec, op, nil
}
