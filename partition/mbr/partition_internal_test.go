package mbr

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/diskfs/go-mbrscan/partition/part"
)

func TestDecodeEntry(t *testing.T) {
	t.Run("short byte slice", func(t *testing.T) {
		for _, size := range []int{0, 1, 15} {
			_, err := DecodeEntry(make([]byte, size))
			if !errors.Is(err, ErrMalformedEntry) {
				t.Errorf("%d bytes: expected ErrMalformedEntry, got %v", size, err)
			}
		}
	})
	t.Run("field offsets", func(t *testing.T) {
		b := []byte{
			0x80,                   // status
			0x20, 0x21, 0x00,       // CHS start
			0x0c,                   // type
			0x31, 0x18, 0x00,       // CHS end
			0x00, 0x08, 0x00, 0x00, // start 2048
			0x00, 0x20, 0x03, 0x00, // size 204800
		}
		e, err := DecodeEntry(b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := Entry{Status: 0x80, Type: Fat32LBA, Start: 2048, Size: 204800}
		if diff := cmp.Diff(expected, e); diff != "" {
			t.Errorf("DecodeEntry() mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("round trip", func(t *testing.T) {
		for i := 0; i < 64; i++ {
			b := make([]byte, partitionEntrySize)
			_, _ = rand.Read(b)
			e, err := DecodeEntry(b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out := e.Bytes(); !EntryEqualBytes(b, out) {
				t.Errorf("re-encoded % x as % x", b, out)
			}
		}
	})
	t.Run("extra bytes ignored", func(t *testing.T) {
		b := make([]byte, 32)
		b[typeOffset] = byte(NTFS)
		b[partitionEntrySize+typeOffset] = byte(Linux)
		e, err := DecodeEntry(b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Type != NTFS {
			t.Errorf("type %s instead of %s", e.Type, NTFS)
		}
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		t    Type
		kind part.Kind
	}{
		{Fat32CHS, part.FAT32},
		{Fat32LBA, part.FAT32},
		{NTFS, part.NTFS},
		{ExtendedCHS, part.Extended},
		{Empty, part.Unrecognized},
		{ExtendedLBA, part.Unrecognized},
		{LinuxExtended, part.Unrecognized},
		{Linux, part.Unrecognized},
		{Fat16, part.Unrecognized},
		{GPTProtective, part.Unrecognized},
	}
	for _, tt := range tests {
		if kind := Classify(tt.t); kind != tt.kind {
			t.Errorf("Classify(%s) = %s, expected %s", tt.t, kind, tt.kind)
		}
	}
	for i := 0; i < 256; i++ {
		typ := Type(i)
		switch typ {
		case Fat32CHS, Fat32LBA, NTFS, ExtendedCHS:
			continue
		}
		if kind := Classify(typ); kind != part.Unrecognized {
			t.Errorf("Classify(%s) = %s, expected Unrecognized", typ, kind)
		}
	}
}

func TestTableFromBytes(t *testing.T) {
	t.Run("short byte slice", func(t *testing.T) {
		table, err := tableFromBytes(make([]byte, 511))
		if table != nil {
			t.Error("should return nil table")
		}
		if err == nil {
			t.Error("should not return nil error")
		}
	})
	t.Run("valid table", func(t *testing.T) {
		b := make([]byte, 512)
		copy(b[446:], Entry{Type: Fat32CHS, Start: 2048, Size: 204800}.Bytes())
		copy(b[478:], Entry{Type: ExtendedCHS, Start: 1000000, Size: 2000000}.Bytes())
		b[440], b[441], b[442], b[443] = 0x78, 0x56, 0x34, 0x12
		b[510], b[511] = 0x55, 0xaa
		table, err := tableFromBytes(b)
		if err != nil {
			t.Fatalf("returned non-nil error: %v", err)
		}
		expected := &Table{
			Partitions: []Entry{
				{Type: Fat32CHS, Start: 2048, Size: 204800},
				{},
				{Type: ExtendedCHS, Start: 1000000, Size: 2000000},
				{},
			},
			DiskSignature: 0x12345678,
			BootSignature: true,
		}
		if diff := cmp.Diff(expected, table); diff != "" {
			t.Errorf("tableFromBytes() mismatch (-want +got):\n%s", diff)
		}
		if id := table.PartUUID(part.Record{Number: 5}); id != "12345678-05" {
			t.Errorf("PartUUID %s", id)
		}
	})
}
