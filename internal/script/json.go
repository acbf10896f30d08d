package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/roach88/platymap/internal/ir"
)

// parseJSON decodes token by token so that a repeated object key is an
// error instead of silently replacing the earlier value.
func parseJSON(data []byte) ([]ir.Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeJSON(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
			if len(bytes.TrimSpace(data)) == 0 {
				err = errors.New("empty document")
			}
		}
		return nil, ir.DocumentError(ir.KindParseFailure, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ir.DocumentError(ir.KindParseFailure, errors.New("trailing data after document"))
	}

	elems, ok := root.(ir.IRArray)
	if !ok {
		return nil, ir.DocumentError(ir.KindInvalidFormat, nil)
	}
	entries := make([]ir.Entry, 0, len(elems))
	for i, elem := range elems {
		obj, ok := elem.(ir.IRObject)
		if !ok {
			return nil, ir.EntryError(ir.KindInvalidFormat, i, "", "")
		}
		entries = append(entries, entryFromObject(obj))
	}
	return entries, nil
}

// decodeJSON reads one value. Numbers that parse as int64 become IRInt;
// everything else numeric is IRFloat.
func decodeJSON(dec *json.Decoder) (ir.IRValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch x := tok.(type) {
	case nil:
		return ir.IRNull{}, nil
	case bool:
		return ir.IRBool(x), nil
	case string:
		return ir.IRString(x), nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return ir.IRInt(n), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", x, err)
		}
		return ir.IRFloat(f), nil
	case json.Delim:
		if x == '[' {
			arr := ir.IRArray{}
			for dec.More() {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			_, err := dec.Token()
			return arr, err
		}

		obj := ir.IRObject{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			if _, dup := obj[key]; dup {
				return nil, fmt.Errorf("duplicate key %q", key)
			}
			v, err := decodeJSON(dec)
			if err != nil {
				return nil, err
			}
			obj[key] = v
		}
		_, err := dec.Token()
		return obj, err
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// marshalJSON writes one record per line between the brackets, the layout
// the shipped map sources use.
func marshalJSON(s ir.Script) ([]byte, error) {
	if len(s) == 0 {
		return []byte("[]\n"), nil
	}
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, rec := range s {
		if err := writeJSONRecord(&buf, rec); err != nil {
			return nil, fmt.Errorf("record #%d: %w", i, err)
		}
		if i < len(s)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
	return buf.Bytes(), nil
}

func writeJSONRecord(buf *bytes.Buffer, rec ir.Record) error {
	action, err := quoteJSON(rec.Action)
	if err != nil {
		return err
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
		for i, arg := range rec.Args {
			name, err := quoteJSON(arg.Name)
			if err != nil {
				return err
			}
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.Write(name)
			buf.WriteString(": ")
			buf.WriteString(strconv.FormatInt(int64(arg.Value), 10))
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return nil
}

func quoteJSON(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
