package script

import (
	"bytes"
	"fmt"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"

	"github.com/roach88/platymap/internal/ir"
)

// parseCUE evaluates a CUE document whose emit value is a list.
// The list may use references and comprehensions but must be concrete.
func parseCUE(data []byte) ([]ir.Entry, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename("script.cue"))
	if err := v.Err(); err != nil {
		return nil, ir.DocumentError(ir.KindParseFailure, err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, ir.DocumentError(ir.KindParseFailure, err)
	}
	if v.Kind() != cue.ListKind {
		return nil, ir.DocumentError(ir.KindInvalidFormat, nil)
	}

	iter, err := v.List()
	if err != nil {
		return nil, ir.DocumentError(ir.KindParseFailure, err)
	}
	var entries []ir.Entry
	for i := 0; iter.Next(); i++ {
		elem, err := fromCUE(iter.Value())
		if err != nil {
			return nil, ir.DocumentError(ir.KindParseFailure, err)
		}
		obj, ok := elem.(ir.IRObject)
		if !ok {
			return nil, ir.EntryError(ir.KindInvalidFormat, i, "", "")
		}
		entries = append(entries, entryFromObject(obj))
	}
	if entries == nil {
		entries = []ir.Entry{}
	}
	return entries, nil
}

func fromCUE(v cue.Value) (ir.IRValue, error) {
	switch v.Kind() {
	case cue.NullKind:
		return ir.IRNull{}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		return ir.IRBool(b), err
	case cue.IntKind:
		if n, err := v.Int64(); err == nil {
			return ir.IRInt(n), nil
		}
		f, err := v.Float64()
		return ir.IRFloat(f), err
	case cue.FloatKind:
		f, err := v.Float64()
		return ir.IRFloat(f), err
	case cue.StringKind:
		s, err := v.String()
		return ir.IRString(s), err
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, err
		}
		arr := ir.IRArray{}
		for iter.Next() {
			e, err := fromCUE(iter.Value())
			if err != nil {
				return nil, err
			}
			arr = append(arr, e)
		}
		return arr, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, err
		}
		obj := ir.IRObject{}
		for iter.Next() {
			e, err := fromCUE(iter.Value())
			if err != nil {
				return nil, err
			}
			obj[iter.Selector().Unquoted()] = e
		}
		return obj, nil
	}
	return nil, fmt.Errorf("%s: unsupported value of kind %s", v.Pos(), v.Kind())
}

// marshalCUE writes the script as a CUE list with quoted labels, then runs
// it through the CUE formatter.
func marshalCUE(s ir.Script) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, rec := range s {
		action, err := quoteJSON(rec.Action)
		if err != nil {
			return nil, fmt.Errorf("record #%d: %w", i, err)
		}
		buf.WriteByte('{')
		if rec.Wait != 0 {
			buf.WriteString(`"wait": `)
			buf.WriteString(strconv.FormatInt(int64(rec.Wait), 10))
			buf.WriteString(", ")
		}
		buf.WriteString(`"action": `)
		buf.Write(action)
		if len(rec.Args) > 0 {
			buf.WriteString(`, "args": {`)
			for j, arg := range rec.Args {
				name, err := quoteJSON(arg.Name)
				if err != nil {
					return nil, fmt.Errorf("record #%d: %w", i, err)
				}
				if j > 0 {
					buf.WriteString(", ")
				}
				buf.Write(name)
				buf.WriteString(": ")
				buf.WriteString(strconv.FormatInt(int64(arg.Value), 10))
			}
			buf.WriteByte('}')
		}
		buf.WriteString("},\n")
	}
	buf.WriteString("]\n")

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format cue: %w", err)
	}
	return out, nil
}
