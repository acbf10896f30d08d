package harness

import (
	"fmt"

	"github.com/roach88/platymap/internal/ir"
)

// Result is the outcome of a scenario.
type Result struct {
	// Pass is true when every expectation holds.
	Pass bool `json:"pass"`

	// Words is the binary produced (compile, roundtrip) or read (decompile).
	Words []uint32 `json:"words,omitempty"`

	// Script is the resolved script (compile) or decoded script
	// (decompile, roundtrip).
	Script ir.Script `json:"script,omitempty"`

	// Err is the conversion error, if the conversion failed.
	Err error `json:"-"`

	// Errors lists expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError records a mismatch and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Pass = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
