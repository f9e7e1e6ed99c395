// Package archive implements the byte-stream persistence facility: a
// direction-locked in-memory stream with typed little-endian operators, plus
// a file envelope with an integrity digest.
//
// Readers and writers must agree on the exact operator sequence; the archive
// itself carries no per-value framing.
package archive

import (
	"encoding/binary"
	"math"

	"github.com/sparsekit/sparsekit/pkg/generic"
)

var bufPool = generic.NewPool(func() []byte {
	return make([]byte, 0, 4096)
})

// Archive is a single-direction byte stream. A write archive accumulates
// into an in-memory buffer; a read archive consumes one. Mixing directions
// or reading past the end of the buffer is a programmer error and panics.
type Archive struct {
	buf      []byte
	pos      int
	readMode bool
}

// NewWriter returns an empty write-mode archive backed by a pooled buffer.
func NewWriter() *Archive {
	return &Archive{buf: bufPool.Get()[:0]}
}

// NewReader returns a read-mode archive over data. The archive does not copy
// data; the caller must not mutate it while reading.
func NewReader(data []byte) *Archive {
	return &Archive{buf: data, readMode: true}
}

// IsReadMode reports the archive direction.
func (a *Archive) IsReadMode() bool {
	return a.readMode
}

// Bytes returns the payload written so far.
func (a *Archive) Bytes() []byte {
	a.mustWrite()
	return a.buf
}

// Release returns a write archive's buffer to the pool. The archive must not
// be used afterwards. Release on a read archive is a no-op since the buffer
// belongs to the caller.
func (a *Archive) Release() {
	if !a.readMode {
		bufPool.Put(a.buf[:0])
	}
	a.buf = nil
	a.pos = 0
}

func (a *Archive) mustWrite() {
	if a.readMode {
		panic("archive: write operation on read-mode archive")
	}
}

func (a *Archive) next(n int) []byte {
	if !a.readMode {
		panic("archive: read operation on write-mode archive")
	}
	if a.pos+n > len(a.buf) {
		panic("archive: read past end of stream, read/write order mismatch")
	}
	b := a.buf[a.pos : a.pos+n]
	a.pos += n
	return b
}

func (a *Archive) WriteBool(v bool) {
	if v {
		a.WriteUint8(1)
	} else {
		a.WriteUint8(0)
	}
}

func (a *Archive) ReadBool() bool {
	return a.ReadUint8() != 0
}

func (a *Archive) WriteUint8(v uint8) {
	a.mustWrite()
	a.buf = append(a.buf, v)
}

func (a *Archive) ReadUint8() uint8 {
	return a.next(1)[0]
}

func (a *Archive) WriteUint32(v uint32) {
	a.mustWrite()
	a.buf = binary.LittleEndian.AppendUint32(a.buf, v)
}

func (a *Archive) ReadUint32() uint32 {
	return binary.LittleEndian.Uint32(a.next(4))
}

func (a *Archive) WriteUint64(v uint64) {
	a.mustWrite()
	a.buf = binary.LittleEndian.AppendUint64(a.buf, v)
}

func (a *Archive) ReadUint64() uint64 {
	return binary.LittleEndian.Uint64(a.next(8))
}

func (a *Archive) WriteInt32(v int32) {
	a.WriteUint32(uint32(v))
}

func (a *Archive) ReadInt32() int32 {
	return int32(a.ReadUint32())
}

func (a *Archive) WriteInt64(v int64) {
	a.WriteUint64(uint64(v))
}

func (a *Archive) ReadInt64() int64 {
	return int64(a.ReadUint64())
}

func (a *Archive) WriteFloat32(v float32) {
	a.WriteUint32(math.Float32bits(v))
}

func (a *Archive) ReadFloat32() float32 {
	return math.Float32frombits(a.ReadUint32())
}

func (a *Archive) WriteFloat64(v float64) {
	a.WriteUint64(math.Float64bits(v))
}

func (a *Archive) ReadFloat64() float64 {
	return math.Float64frombits(a.ReadUint64())
}

// WriteString writes a length-prefixed UTF-8 string.
func (a *Archive) WriteString(v string) {
	a.WriteUint64(uint64(len(v)))
	a.mustWrite()
	a.buf = append(a.buf, v...)
}

func (a *Archive) ReadString() string {
	n := a.ReadUint64()
	// Bound before the int conversion so a garbage length cannot wrap
	// negative and surface as a raw slice-bounds error.
	if n > uint64(len(a.buf)-a.pos) {
		panic("archive: read past end of stream, read/write order mismatch")
	}
	return string(a.next(int(n)))
}

// WriteBytes writes a raw byte run without a length prefix; the reader must
// know the exact size.
func (a *Archive) WriteBytes(v []byte) {
	a.mustWrite()
	a.buf = append(a.buf, v...)
}

func (a *Archive) ReadBytes(n int) []byte {
	out := make([]byte, n)
	copy(out, a.next(n))
	return out
}
