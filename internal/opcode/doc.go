// Package opcode holds the registry of scripted operations.
//
// A Table binds each operation's numeric code to its name and ordered
// argument names, and indexes it both ways. Tables are immutable after
// NewTable returns and are safe for concurrent lookups without locking.
//
// When two entries share a code or a name, the entry declared later wins
// that key. Shadowed reports the entries that lost, so duplicates never go
// unnoticed.
package opcode
