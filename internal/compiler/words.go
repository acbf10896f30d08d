package compiler

import "encoding/binary"

// WordSize is the width in bytes of every field in the binary format.
const WordSize = 4

// byteOrder is fixed for both directions.
var byteOrder = binary.LittleEndian

// wordWriter appends words to a growing buffer.
type wordWriter struct {
	buf []byte
}

func (w *wordWriter) int32(v int32) {
	w.buf = byteOrder.AppendUint32(w.buf, uint32(v))
}

func (w *wordWriter) uint32(v uint32) {
	w.buf = byteOrder.AppendUint32(w.buf, v)
}

// wordReader is a bounds-checked cursor over an immutable byte slice.
// Every read checks the remaining length before consuming a word.
type wordReader struct {
	data []byte
	pos  int
}

// remaining returns the number of whole words left.
func (r *wordReader) remaining() int {
	return (len(r.data) - r.pos) / WordSize
}

// offset returns the byte offset of the next word.
func (r *wordReader) offset() int {
	return r.pos
}

func (r *wordReader) uint32() (uint32, bool) {
	if r.remaining() < 1 {
		return 0, false
	}
	v := byteOrder.Uint32(r.data[r.pos:])
	r.pos += WordSize
	return v, true
}

func (r *wordReader) int32() (int32, bool) {
	v, ok := r.uint32()
	return int32(v), ok
}

// PackWords lays out words in the binary byte order.
func PackWords(ws []uint32) []byte {
	w := wordWriter{buf: make([]byte, 0, len(ws)*WordSize)}
	for _, v := range ws {
		w.uint32(v)
	}
	return w.buf
}

// UnpackWords splits data into words. A trailing partial word is dropped.
func UnpackWords(data []byte) []uint32 {
	r := wordReader{data: data}
	ws := make([]uint32, 0, r.remaining())
	for {
		v, ok := r.uint32()
		if !ok {
			return ws
		}
		ws = append(ws, v)
	}
}
