// Package script is the bridge between structured text and the record model.
//
// A script is an ordered sequence of objects:
//
//	[
//	{"action": "sayLevel"},
//	{"wait": 5, "action": "saucer", "args": {"x": 10, "y": 20, "firing_chance": 3}}
//	]
//
// Parse accepts JSON, YAML or CUE and only checks the document's shape: a
// sequence whose elements are objects. Field types are checked later, against
// the opcode table, by the compiler package.
//
// Marshal writes resolved records back out. wait is omitted when zero and
// args when the operation takes none; action is always written. Arguments
// appear in the operation's declared order.
package script
