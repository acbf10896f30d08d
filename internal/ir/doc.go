// Package ir provides the structured-record model shared by the text bridge
// and the binary codec.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal.
//
// Two record shapes exist:
//   - Entry: one event as read from text, with raw IRValue fields that have
//     not been checked against an opcode table yet
//   - Record: one resolved event with a 32-bit wait, an action name and the
//     integer arguments in the operation's declared order
//
// Errors raised anywhere in a conversion are *Error values tagged with an
// ErrorKind, so callers can map them to exit codes without string matching.
package ir
