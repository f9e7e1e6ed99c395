package archive

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamOperatorsRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true)
	w.WriteUint8(0xAB)
	w.WriteUint32(123456)
	w.WriteUint64(1 << 40)
	w.WriteInt32(-42)
	w.WriteInt64(-1 << 33)
	w.WriteFloat32(1.5)
	w.WriteFloat64(-2.25)
	w.WriteString("hello")
	w.WriteBytes([]byte{1, 2, 3})

	r := NewReader(w.Bytes())
	assert.True(t, r.IsReadMode())
	assert.Equal(t, true, r.ReadBool())
	assert.Equal(t, uint8(0xAB), r.ReadUint8())
	assert.Equal(t, uint32(123456), r.ReadUint32())
	assert.Equal(t, uint64(1<<40), r.ReadUint64())
	assert.Equal(t, int32(-42), r.ReadInt32())
	assert.Equal(t, int64(-1<<33), r.ReadInt64())
	assert.Equal(t, float32(1.5), r.ReadFloat32())
	assert.Equal(t, -2.25, r.ReadFloat64())
	assert.Equal(t, "hello", r.ReadString())
	assert.Equal(t, []byte{1, 2, 3}, r.ReadBytes(3))
}

func TestDirectionViolationsPanic(t *testing.T) {
	w := NewWriter()
	assert.Panics(t, func() { w.ReadUint32() })

	r := NewReader([]byte{1, 2})
	assert.Panics(t, func() { r.WriteUint32(1) })
}

func TestReadPastEndPanics(t *testing.T) {
	r := NewReader([]byte{1, 2})
	assert.Panics(t, func() { r.ReadUint32() })
}

func TestReadStringRejectsOversizedLength(t *testing.T) {
	w := NewWriter()
	w.WriteUint64(math.MaxUint64) // garbage length prefix, no payload

	r := NewReader(w.Bytes())
	assert.PanicsWithValue(t,
		"archive: read past end of stream, read/write order mismatch",
		func() { r.ReadString() })
}

func TestFileSaveOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.bin")

	w := NewWriter()
	w.WriteUint64(99)
	w.WriteString("state")
	hdr, err := Save(path, w)
	require.NoError(t, err)
	assert.NotZero(t, hdr.Checksum)

	r, openedHdr, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, hdr.SnapshotID, openedHdr.SnapshotID)
	assert.Equal(t, uint64(99), r.ReadUint64())
	assert.Equal(t, "state", r.ReadString())
}

func TestOpenRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")

	w := NewWriter()
	w.WriteUint64(1)
	_, err := Save(path, w)
	require.NoError(t, err)

	// Corrupt the magic in place.
	raw := readFile(t, path)
	raw[0] ^= 0xFF
	writeFile(t, path, raw)

	_, _, err = Open(path)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestOpenRejectsCorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.bin")

	w := NewWriter()
	w.WriteString("payload payload payload")
	_, err := Save(path, w)
	require.NoError(t, err)

	raw := readFile(t, path)
	raw[len(raw)-1] ^= 0xFF
	writeFile(t, path, raw)

	_, _, err = Open(path)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}
