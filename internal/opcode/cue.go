package opcode

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// tableSchema constrains CUE table documents. A list rather than a struct
// keeps declaration order and lets a document repeat a code or name.
const tableSchema = `
import "list"

#Operation: {
	code:  int & >=0 & <=0xFFFFFFFF
	name:  string & !=""
	args?: list.UniqueItems() & [...(string & !="")]
}
operations: [...#Operation]
`

// TableError reports a problem in a CUE table document.
type TableError struct {
	Message string
	Pos     token.Pos
}

func (e *TableError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// LoadCUE reads a CUE table document from path and builds a Table from it.
func LoadCUE(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read opcode table: %w", err)
	}
	return CompileCUE(path, data)
}

// CompileCUE builds a Table from CUE source of the form:
//
//	operations: [
//		{code: 0x01, name: "randSaucers", args: ["saucers", "firing_chance"]},
//		{code: 0x07, name: "sayLevel"},
//	]
func CompileCUE(filename string, src []byte) (*Table, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(tableSchema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("opcode table schema: %w", err)
	}

	doc := ctx.CompileBytes(src, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := schema.Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	list := v.LookupPath(cue.ParsePath("operations"))
	iter, err := list.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var ops []Operation
	for iter.Next() {
		op, err := decodeOperation(iter.Value())
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	t, err := NewTable(ops)
	if err != nil {
		return nil, &TableError{Message: err.Error(), Pos: list.Pos()}
	}
	return t, nil
}

func decodeOperation(v cue.Value) (Operation, error) {
	var op Operation

	code, err := v.LookupPath(cue.ParsePath("code")).Uint64()
	if err != nil {
		return op, formatCUEError(err)
	}
	op.Code = uint32(code)

	op.Name, err = v.LookupPath(cue.ParsePath("name")).String()
	if err != nil {
		return op, formatCUEError(err)
	}

	argsVal := v.LookupPath(cue.ParsePath("args"))
	if !argsVal.Exists() {
		return op, nil
	}
	argsIter, err := argsVal.List()
	if err != nil {
		return op, formatCUEError(err)
	}
	for argsIter.Next() {
		name, err := argsIter.Value().String()
		if err != nil {
			return op, formatCUEError(err)
		}
		op.Args = append(op.Args, name)
	}
	return op, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &TableError{Message: first.Error(), Pos: positions[0]}
	}
	return &TableError{Message: first.Error()}
}
