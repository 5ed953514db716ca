// Package sector reads fixed 512-byte sectors from a random-access source.
package sector

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// Size of a sector in bytes. MBR and EBR layouts assume it.
const Size = 512

var ErrTruncatedRead = errors.New("truncated sector read")

// TruncatedReadError reports that fewer than Size bytes were available at LBA
type TruncatedReadError struct {
	LBA  uint64
	Read int
}

func (e *TruncatedReadError) Error() string {
	return fmt.Sprintf("read only %d bytes of sector %d instead of expected %d", e.Read, e.LBA, Size)
}

func (e *TruncatedReadError) Is(target error) bool {
	return target == ErrTruncatedRead
}

func NewTruncatedReadError(lba uint64, read int) *TruncatedReadError {
	return &TruncatedReadError{
		LBA:  lba,
		Read: read,
	}
}

// Reader reads whole sectors. It does not cache, every call goes to the source.
type Reader struct {
	src io.ReaderAt
}

func NewReader(src io.ReaderAt) *Reader {
	return &Reader{src: src}
}

// ReadSector returns exactly Size bytes starting at byte offset lba*Size.
// If the source ends before a full sector is available, the error is a *TruncatedReadError.
func (r *Reader) ReadSector(lba uint64) ([]byte, error) {
	if lba > math.MaxInt64/Size {
		return nil, NewTruncatedReadError(lba, 0)
	}
	b := make([]byte, Size)
	read, err := r.src.ReadAt(b, int64(lba)*Size)
	if read < 0 {
		read = 0
	}
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("error reading sector %d: %w", lba, err)
	}
	if read != Size {
		return nil, NewTruncatedReadError(lba, read)
	}
	return b, nil
}
