package ir

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a conversion failure.
type ErrorKind int

// Error kinds. Text-side kinds come first, then encode, then decode.
const (
	KindNone ErrorKind = iota
	KindParseFailure
	KindInvalidFormat
	KindMissingAction
	KindWaitNotInteger
	KindUnknownAction
	KindMissingArgs
	KindArgNotObject
	KindMissingArg
	KindArgNotInteger
	KindInvalidLength
	KindMissingTerminator
	KindUnexpectedEOF
	KindUnknownOpcode
)

var kindInfo = map[ErrorKind]struct {
	name string
	code string
}{
	KindNone:              {"None", "E001"},
	KindParseFailure:      {"ParseFailure", "E201"},
	KindInvalidFormat:     {"InvalidFormat", "E202"},
	KindMissingAction:     {"MissingAction", "E203"},
	KindWaitNotInteger:    {"WaitNotInteger", "E204"},
	KindUnknownAction:     {"UnknownAction", "E205"},
	KindMissingArgs:       {"MissingArgs", "E206"},
	KindArgNotObject:      {"ArgNotObject", "E207"},
	KindMissingArg:        {"MissingArg", "E208"},
	KindArgNotInteger:     {"ArgNotInteger", "E209"},
	KindInvalidLength:     {"InvalidLength", "E301"},
	KindMissingTerminator: {"MissingTerminator", "E302"},
	KindUnexpectedEOF:     {"UnexpectedEOF", "E303"},
	KindUnknownOpcode:     {"UnknownOpcode", "E304"},
}

// String returns the kind's name, e.g. "UnknownAction".
func (k ErrorKind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Code returns the stable diagnostic code for the kind, e.g. "E205".
func (k ErrorKind) Code() string {
	if info, ok := kindInfo[k]; ok {
		return info.code
	}
	return kindInfo[KindNone].code
}

// ParseErrorKind looks a kind up by name. Used by scenario files.
func ParseErrorKind(name string) (ErrorKind, bool) {
	for k, info := range kindInfo {
		if info.name == name && k != KindNone {
			return k, true
		}
	}
	return KindNone, false
}

// Error is a structured conversion error.
// Index and Offset are -1 when they do not apply.
type Error struct {
	Kind   ErrorKind
	Index  int    // 0-based record position
	Offset int    // byte offset of the offending word; input length for KindInvalidLength
	Action string // action name, when known
	Field  string // argument name, when relevant
	Opcode uint32 // raw opcode for KindUnknownOpcode
	Err    error  // underlying parser error, if any
}

// EntryError creates an error for a text-side record.
func EntryError(kind ErrorKind, index int, action, field string) *Error {
	return &Error{Kind: kind, Index: index, Offset: -1, Action: action, Field: field}
}

// StreamError creates an error for a position in a binary stream.
func StreamError(kind ErrorKind, index, offset int) *Error {
	return &Error{Kind: kind, Index: index, Offset: offset}
}

// DocumentError creates an error about a whole document.
func DocumentError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Index: -1, Offset: -1, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindParseFailure:
		if e.Err != nil {
			return fmt.Sprintf("invalid script (parsing failed): %v", e.Err)
		}
		return "invalid script (parsing failed)"
	case KindInvalidFormat:
		if e.Index >= 0 {
			return fmt.Sprintf("invalid script (element #%d not an object)", e.Index)
		}
		return "invalid script (root not a sequence)"
	case KindWaitNotInteger:
		return fmt.Sprintf("invalid script (wait not integer in #%d)", e.Index)
	case KindMissingAction:
		return fmt.Sprintf("invalid script (no action in object #%d)", e.Index)
	case KindUnknownAction:
		return fmt.Sprintf("invalid script (unknown action %s in #%d)", e.Action, e.Index)
	case KindMissingArgs:
		return fmt.Sprintf("invalid script (args missing for %s in #%d)", e.Action, e.Index)
	case KindArgNotObject:
		return fmt.Sprintf("invalid script (args not object for %s in #%d)", e.Action, e.Index)
	case KindMissingArg:
		return fmt.Sprintf("invalid script (arg %s missing for %s in #%d)", e.Field, e.Action, e.Index)
	case KindArgNotInteger:
		return fmt.Sprintf("invalid script (arg %s not integer for %s in #%d)", e.Field, e.Action, e.Index)
	case KindInvalidLength:
		return fmt.Sprintf("invalid map file (length %d is not a positive multiple of 4)", e.Offset)
	case KindMissingTerminator:
		return fmt.Sprintf("invalid map file (no end marker at offset %d)", e.Offset)
	case KindUnexpectedEOF:
		return fmt.Sprintf("unexpected end of file in record #%d at offset %d", e.Index, e.Offset)
	case KindUnknownOpcode:
		return fmt.Sprintf("invalid opcode %08X in record #%d at offset %d", e.Opcode, e.Index, e.Offset)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

// Unwrap returns the underlying parser error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the diagnostic code of the error's kind.
func (e *Error) Code() string {
	return e.Kind.Code()
}

// KindOf extracts the ErrorKind from err, looking through wrapping.
// Returns KindNone if err is not an *Error.
func KindOf(err error) ErrorKind {
	var irErr *Error
	if errors.As(err, &irErr) {
		return irErr.Kind
	}
	return KindNone
}
