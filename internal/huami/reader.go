package huami

import (
	"encoding/binary"
	"math"
)

// reader is a bounded little-endian cursor over a summary blob.
// The first read or skip that would run past the end of the buffer marks
// the reader exhausted; every later read fails.
type reader struct {
	buf       []byte
	pos       int
	exhausted bool
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

// take returns the next n bytes, or false if they are not all available.
func (r *reader) take(n int) ([]byte, bool) {
	if r.exhausted || r.pos+n > len(r.buf) {
		r.exhausted = true
		return nil, false
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, true
}

// skip advances the cursor by n bytes, clamping at the end of the buffer.
func (r *reader) skip(n int) bool {
	if r.exhausted {
		return false
	}
	if r.pos+n > len(r.buf) {
		r.pos = len(r.buf)
		r.exhausted = true
		return false
	}
	r.pos += n
	return true
}

// seek moves the cursor to an absolute offset. It fails when the buffer is
// shorter than the offset.
func (r *reader) seek(offset int) bool {
	if offset > len(r.buf) {
		return false
	}
	r.pos = offset
	return true
}

func (r *reader) u16() (uint16, bool) {
	b, ok := r.take(2)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b), true
}

func (r *reader) i16() (int16, bool) {
	v, ok := r.u16()
	return int16(v), ok
}

func (r *reader) i32() (int32, bool) {
	b, ok := r.take(4)
	if !ok {
		return 0, false
	}
	return int32(binary.LittleEndian.Uint32(b)), true
}

func (r *reader) f32() (float32, bool) {
	b, ok := r.take(4)
	if !ok {
		return 0, false
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), true
}

// integer reads one integer field of the given encoding.
func (r *reader) integer(enc encoding) (int, bool) {
	switch enc {
	case encU16:
		v, ok := r.u16()
		return int(v), ok
	case encI16:
		v, ok := r.i16()
		return int(v), ok
	case encI32:
		v, ok := r.i32()
		return int(v), ok
	}
	return 0, false
}
