package testhelper

import (
	"encoding/binary"
	"io"
)

const (
	sectorSize       = 512
	entriesStart     = 446
	entrySize        = 16
	diskSignatureOff = 440
)

// SparseImage is an in-memory disk image where sectors that were never set read as zeroes.
// It lets tests place EBRs far into a disk without allocating the whole disk.
type SparseImage struct {
	Sectors map[uint64][]byte
	Size    int64
}

// NewSparseImage an image of size bytes, all zeroes
func NewSparseImage(size int64) *SparseImage {
	return &SparseImage{
		Sectors: map[uint64][]byte{},
		Size:    size,
	}
}

func (s *SparseImage) sector(lba uint64) []byte {
	b, ok := s.Sectors[lba]
	if !ok {
		b = make([]byte, sectorSize)
		s.Sectors[lba] = b
	}
	return b
}

// SetEntry writes a 16-byte partition table entry into slot of the MBR or EBR at lba
func (s *SparseImage) SetEntry(lba uint64, slot int, partitionType byte, start, size uint32) *SparseImage {
	b := s.sector(lba)
	e := b[entriesStart+slot*entrySize : entriesStart+(slot+1)*entrySize]
	e[4] = partitionType
	binary.LittleEndian.PutUint32(e[8:12], start)
	binary.LittleEndian.PutUint32(e[12:16], size)
	return s
}

// SetBootSignature writes 0x55AA at the end of the sector at lba
func (s *SparseImage) SetBootSignature(lba uint64) *SparseImage {
	b := s.sector(lba)
	b[510], b[511] = 0x55, 0xaa
	return s
}

// SetDiskSignature writes the 32-bit disk identifier of the MBR
func (s *SparseImage) SetDiskSignature(sig uint32) *SparseImage {
	binary.LittleEndian.PutUint32(s.sector(0)[diskSignatureOff:diskSignatureOff+4], sig)
	return s
}

// ReadAt honours io.ReaderAt: short reads at the end of the image return io.EOF
func (s *SparseImage) ReadAt(b []byte, off int64) (int, error) {
	if off < 0 || off >= s.Size {
		return 0, io.EOF
	}
	n := 0
	for n < len(b) && off+int64(n) < s.Size {
		pos := off + int64(n)
		within := int(pos % sectorSize)
		chunk := sectorSize - within
		if remaining := s.Size - pos; int64(chunk) > remaining {
			chunk = int(remaining)
		}
		if chunk > len(b)-n {
			chunk = len(b) - n
		}
		if sec, ok := s.Sectors[uint64(pos/sectorSize)]; ok {
			copy(b[n:n+chunk], sec[within:within+chunk])
		} else {
			clear(b[n : n+chunk])
		}
		n += chunk
	}
	if n < len(b) {
		return n, io.EOF
	}
	return n, nil
}
