package archive

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/sparsekit/sparsekit/internal/core/observability/log"
)

// File envelope: magic, format version, snapshot id, payload digest, payload
// length, payload. The envelope belongs to this facility; callers framing
// their own data inside the payload get no additional structure from it.
const (
	fileMagic   uint32 = 0x52414B53 // "SKAR" little-endian
	fileVersion uint32 = 1
	headerSize         = 4 + 4 + 16 + 8 + 8
)

var (
	ErrBadMagic         = errors.New("archive: unrecognized file magic")
	ErrVersionMismatch  = errors.New("archive: unsupported file version")
	ErrChecksumMismatch = errors.New("archive: payload digest mismatch")
	ErrTruncated        = errors.New("archive: truncated file")
)

// Header describes a saved archive file.
type Header struct {
	Version    uint32
	SnapshotID uuid.UUID
	Checksum   uint64
}

// Save writes a write-mode archive's payload to path under a fresh envelope
// and returns the header it wrote.
func Save(path string, a *Archive) (Header, error) {
	payload := a.Bytes()
	hdr := Header{
		Version:    fileVersion,
		SnapshotID: uuid.New(),
		Checksum:   xxhash.Sum64(payload),
	}

	out := make([]byte, 0, headerSize+len(payload))
	out = binary.LittleEndian.AppendUint32(out, fileMagic)
	out = binary.LittleEndian.AppendUint32(out, hdr.Version)
	out = append(out, hdr.SnapshotID[:]...)
	out = binary.LittleEndian.AppendUint64(out, hdr.Checksum)
	out = binary.LittleEndian.AppendUint64(out, uint64(len(payload)))
	out = append(out, payload...)

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return Header{}, fmt.Errorf("archive: failed to write %s: %w", path, err)
	}

	log.Provide().Info("archive saved",
		log.String("path", path),
		log.String("snapshot_id", hdr.SnapshotID.String()),
		log.Int("payload_bytes", len(payload)),
	)
	return hdr, nil
}

// Open reads the file at path, validates its envelope and digest, and
// returns a read-mode archive over the payload.
func Open(path string) (*Archive, Header, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("archive: failed to read %s: %w", path, err)
	}
	if len(raw) < headerSize {
		return nil, Header{}, ErrTruncated
	}

	if binary.LittleEndian.Uint32(raw[0:4]) != fileMagic {
		return nil, Header{}, ErrBadMagic
	}
	var hdr Header
	hdr.Version = binary.LittleEndian.Uint32(raw[4:8])
	if hdr.Version != fileVersion {
		return nil, Header{}, fmt.Errorf("%w: %d", ErrVersionMismatch, hdr.Version)
	}
	copy(hdr.SnapshotID[:], raw[8:24])
	hdr.Checksum = binary.LittleEndian.Uint64(raw[24:32])
	payloadLen := binary.LittleEndian.Uint64(raw[32:headerSize])

	payload := raw[headerSize:]
	if uint64(len(payload)) != payloadLen {
		return nil, Header{}, ErrTruncated
	}
	if xxhash.Sum64(payload) != hdr.Checksum {
		return nil, Header{}, ErrChecksumMismatch
	}

	log.Provide().Debug("archive opened",
		log.String("path", path),
		log.String("snapshot_id", hdr.SnapshotID.String()),
		log.Int("payload_bytes", len(payload)),
	)
	return NewReader(payload), hdr, nil
}
