// Package compiler converts between resolved scripts and the binary map
// format read by the game.
//
// # Binary layout
//
// A map file is a sequence of 4-byte little-endian words:
//
//	[wait i32][opcode u32][arg_0 i32]...[arg_n-1 i32]   one per record
//	[0x2A6FE0EF]                                        terminator
//
// The number of argument words is not stored; it comes from the opcode
// table, so every record is self-describing given the table.
//
// # Failure model
//
// Both directions stop at the first problem and return an *ir.Error that
// carries the record index (and, when decoding, the byte offset). No
// partial output is returned on failure.
package compiler
