package mbr

import (
	"bytes"
	"encoding/binary"
)

// partitionEntrySize standard size of an MBR partition entry
const partitionEntrySize = 16

// byte ranges inside a partition entry. CHS start (1:4) and end (5:8) are not read.
const (
	statusOffset = 0
	typeOffset   = 4
	startOffset  = 8
	startEnd     = 12
	sizeOffset   = 12
	sizeEnd      = 16
)

// Entry is a decoded 16-byte partition table entry.
// Cylinder, head, sector (CHS) addressing is ignored; only LBA is used.
type Entry struct {
	Status byte
	Type   Type
	Start  uint32 // Start first LBA sector of the partition, relative to the table it came from
	Size   uint32 // Size number of sectors in partition
}

// DecodeEntry decodes the first 16 bytes of b as a partition table entry
func DecodeEntry(b []byte) (Entry, error) {
	if len(b) < partitionEntrySize {
		return Entry{}, NewMalformedEntryError(len(b))
	}
	return Entry{
		Status: b[statusOffset],
		Type:   Type(b[typeOffset]),
		Start:  binary.LittleEndian.Uint32(b[startOffset:startEnd]),
		Size:   binary.LittleEndian.Uint32(b[sizeOffset:sizeEnd]),
	}, nil
}

// Bytes encodes the entry back to 16 bytes, with zeroed CHS fields
func (e Entry) Bytes() []byte {
	b := make([]byte, partitionEntrySize)
	b[statusOffset] = e.Status
	b[typeOffset] = byte(e.Type)
	binary.LittleEndian.PutUint32(b[startOffset:startEnd], e.Start)
	binary.LittleEndian.PutUint32(b[sizeOffset:sizeEnd], e.Size)
	return b
}

// Empty reports an unused slot
func (e Entry) Empty() bool {
	return e.Type == Empty
}

// EntryEqualBytes compares if the bytes for 2 partition entries are equal, ignoring CHS start and end
func EntryEqualBytes(b1, b2 []byte) bool {
	if len(b1) != partitionEntrySize || len(b2) != partitionEntrySize {
		return false
	}
	return b1[statusOffset] == b2[statusOffset] &&
		b1[typeOffset] == b2[typeOffset] &&
		bytes.Equal(b1[startOffset:startEnd], b2[startOffset:startEnd]) &&
		bytes.Equal(b1[sizeOffset:sizeEnd], b2[sizeOffset:sizeEnd])
}
