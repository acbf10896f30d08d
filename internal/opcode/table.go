package opcode

import (
	"fmt"
	"slices"
)

// Terminator is the sentinel word that ends every encoded script.
// No operation may use it as its code.
const Terminator uint32 = 0x2A6FE0EF

// Operation is a static table entry.
type Operation struct {
	Code uint32   `json:"code"`
	Name string   `json:"name"`
	Args []string `json:"args"`
}

// Arity returns the number of declared arguments.
func (op Operation) Arity() int {
	return len(op.Args)
}

// String renders the operation as "0x1E saucer(x, y, firing_chance)".
func (op Operation) String() string {
	s := fmt.Sprintf("0x%02X %s(", op.Code, op.Name)
	for i, a := range op.Args {
		if i > 0 {
			s += ", "
		}
		s += a
	}
	return s + ")"
}

// Shadow describes an entry hidden by a later entry with the same key.
type Shadow struct {
	Key      string    `json:"key"` // "code" or "name"
	Hidden   Operation `json:"hidden"`
	Winner   Operation `json:"winner"`
	Position int       `json:"position"` // declaration index of the hidden entry
}

// Table is an immutable operation registry with code and name indexes.
type Table struct {
	ops    []Operation
	byCode map[uint32]int
	byName map[string]int
}

// NewTable builds a table from ops in a single pass.
// Later entries overwrite earlier ones in either index.
// Fails if an operation has an empty name, uses the Terminator code, or has
// an empty or repeated argument name.
func NewTable(ops []Operation) (*Table, error) {
	t := &Table{
		ops:    make([]Operation, len(ops)),
		byCode: make(map[uint32]int, len(ops)),
		byName: make(map[string]int, len(ops)),
	}

	for i, op := range ops {
		if op.Name == "" {
			return nil, fmt.Errorf("operation #%d (code 0x%02X): name is required", i, op.Code)
		}
		if op.Code == Terminator {
			return nil, fmt.Errorf("operation %q: code 0x%08X is reserved for the terminator", op.Name, op.Code)
		}
		for j, arg := range op.Args {
			if arg == "" {
				return nil, fmt.Errorf("operation %q: argument #%d has no name", op.Name, j)
			}
			if slices.Contains(op.Args[:j], arg) {
				return nil, fmt.Errorf("operation %q: argument %q is declared twice", op.Name, arg)
			}
		}
		op.Args = slices.Clone(op.Args)
		t.ops[i] = op
		t.byCode[op.Code] = i
		t.byName[op.Name] = i
	}

	return t, nil
}

// MustTable is like NewTable but panics on error.
// Use only for tables defined in code.
func MustTable(ops []Operation) *Table {
	t, err := NewTable(ops)
	if err != nil {
		panic(err)
	}
	return t
}

// ByCode resolves an operation by its numeric code.
// The returned Args slice is shared with the table and must not be modified.
func (t *Table) ByCode(code uint32) (Operation, bool) {
	i, ok := t.byCode[code]
	if !ok {
		return Operation{}, false
	}
	return t.ops[i], true
}

// ByName resolves an operation by its name.
func (t *Table) ByName(name string) (Operation, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Operation{}, false
	}
	return t.ops[i], true
}

// Operations returns every entry in declaration order, including shadowed ones.
// The returned slice is a copy.
func (t *Table) Operations() []Operation {
	out := make([]Operation, len(t.ops))
	for i, op := range t.ops {
		op.Args = slices.Clone(op.Args)
		out[i] = op
	}
	return out
}

// Len returns the number of declared entries.
func (t *Table) Len() int {
	return len(t.ops)
}

// Shadowed lists entries that lost a code or name to a later declaration.
func (t *Table) Shadowed() []Shadow {
	var out []Shadow
	for i, op := range t.ops {
		if w := t.byCode[op.Code]; w != i {
			out = append(out, Shadow{Key: "code", Hidden: op, Winner: t.ops[w], Position: i})
		}
		if w := t.byName[op.Name]; w != i {
			out = append(out, Shadow{Key: "name", Hidden: op, Winner: t.ops[w], Position: i})
		}
	}
	return out
}
