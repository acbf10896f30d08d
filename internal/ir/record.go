package ir

// Entry is one scripted event as read from structured text.
// A nil field means the key was absent from the source object.
// Field types are not checked here; resolution against an opcode table does that.
type Entry struct {
	Wait   IRValue
	Action IRValue
	Args   IRValue
}

// Arg is one named argument of a resolved Record.
type Arg struct {
	Name  string `json:"name"`
	Value int32  `json:"value"`
}

// Record is one resolved scripted event.
// Args follow the declaration order of the referenced operation and are nil
// when the operation takes no arguments.
type Record struct {
	Wait   int32  `json:"wait,omitempty"`
	Action string `json:"action"`
	Args   []Arg  `json:"args,omitempty"`
}

// Script is an ordered sequence of records.
type Script []Record

// Arg returns the value of the named argument.
func (r Record) Arg(name string) (int32, bool) {
	for _, a := range r.Args {
		if a.Name == name {
			return a.Value, true
		}
	}
	return 0, false
}

// Entry converts the record back into its text-side shape, applying the
// field-presence convention: wait is omitted when zero, args when empty.
func (r Record) Entry() Entry {
	e := Entry{Action: IRString(r.Action)}
	if r.Wait != 0 {
		e.Wait = IRInt(r.Wait)
	}
	if len(r.Args) > 0 {
		obj := make(IRObject, len(r.Args))
		for _, a := range r.Args {
			obj[a.Name] = IRInt(a.Value)
		}
		e.Args = obj
	}
	return e
}

// Entries converts every record of the script with Record.Entry.
func (s Script) Entries() []Entry {
	entries := make([]Entry, len(s))
	for i, r := range s {
		entries[i] = r.Entry()
	}
	return entries
}
