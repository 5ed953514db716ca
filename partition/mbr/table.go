package mbr

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/diskfs/go-mbrscan/partition/part"
	"github.com/diskfs/go-mbrscan/sector"
)

// Table represents the primary partition table read from sector 0 of a disk
type Table struct {
	Partitions    []Entry
	DiskSignature uint32
	// BootSignature is true when the sector ends in 0x55AA
	BootSignature bool
}

const (
	partitionEntriesStart = 446
	partitionEntriesCount = 4
	diskSignatureStart    = 440
	signatureStart        = 510
)

// an EBR keeps the same layout as an MBR but only uses the first two slots
const (
	ebrFirstEntry = 0
	ebrNextEntry  = 1
)

func getMbrSignature() []byte {
	return []byte{0x55, 0xaa}
}

// entryAt decodes slot i of the partition table in a 512-byte boot record
func entryAt(b []byte, i int) (Entry, error) {
	start := partitionEntriesStart + i*partitionEntrySize
	end := start + partitionEntrySize
	if end > len(b) {
		return Entry{}, NewMalformedEntryError(max(len(b)-start, 0))
	}
	return DecodeEntry(b[start:end])
}

func hasBootSignature(b []byte) bool {
	return len(b) == sector.Size && bytes.Equal(b[signatureStart:], getMbrSignature())
}

// tableFromBytes read a partition table from a byte slice
func tableFromBytes(b []byte) (*Table, error) {
	if len(b) != sector.Size {
		return nil, fmt.Errorf("data for partition table was %d bytes instead of expected %d", len(b), sector.Size)
	}

	parts := make([]Entry, 0, partitionEntriesCount)
	for i := 0; i < partitionEntriesCount; i++ {
		p, err := entryAt(b, i)
		if err != nil {
			return nil, fmt.Errorf("error reading partition entry %d: %w", i, err)
		}
		parts = append(parts, p)
	}

	return &Table{
		Partitions:    parts,
		DiskSignature: binary.LittleEndian.Uint32(b[diskSignatureStart : diskSignatureStart+4]),
		BootSignature: hasBootSignature(b),
	}, nil
}

// Type report the type of table, always the string "mbr"
func (t *Table) Type() string {
	return "mbr"
}

// PartUUID the identifier Linux gives an MBR partition, the disk signature and the partition number
func (t *Table) PartUUID(r part.Record) string {
	return fmt.Sprintf("%08x-%02x", t.DiskSignature, r.Number)
}

// ReadTable reads only the primary partition table from sector 0 of src.
// A source shorter than one sector fails with sector.ErrTruncatedRead.
func ReadTable(src io.ReaderAt, opts ...WalkOption) (*Table, error) {
	return readTable(sector.NewReader(src), newConfig(opts))
}

func readTable(r *sector.Reader, cfg config) (*Table, error) {
	b, err := r.ReadSector(0)
	if err != nil {
		return nil, fmt.Errorf("error reading MBR: %w", err)
	}
	if cfg.checkSignature && !hasBootSignature(b) {
		return nil, NewInvalidSignatureError(0, b[signatureStart:])
	}
	return tableFromBytes(b)
}
