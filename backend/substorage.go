package backend

import (
	"io"
	"io/fs"
	"os"
)

// SubStorage is a read-only window of size bytes starting at offset in the underlying Storage.
// Reads past the end of the window are cut short with io.EOF.
type SubStorage struct {
	underlying Storage
	offset     int64
	size       int64
	pos        int64
}

func Sub(u Storage, offset, size int64) *SubStorage {
	return &SubStorage{
		underlying: u,
		offset:     offset,
		size:       size,
	}
}

func (s *SubStorage) Stat() (fs.FileInfo, error) {
	return s.underlying.Stat()
}

func (s *SubStorage) Read(b []byte) (int, error) {
	n, err := s.ReadAt(b, s.pos)
	s.pos += int64(n)
	return n, err
}

// Close is a no-op; the underlying Storage belongs to whoever created the window
func (s *SubStorage) Close() error {
	return nil
}

func (s *SubStorage) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, ErrNotSuitable
	}
	if off >= s.size {
		return 0, io.EOF
	}
	short := false
	if remaining := s.size - off; int64(len(p)) > remaining {
		p = p[:remaining]
		short = true
	}
	n, err = s.underlying.ReadAt(p, s.offset+off)
	if err == nil && short {
		err = io.EOF
	}
	return n, err
}

func (s *SubStorage) Seek(offset int64, whence int) (int64, error) {
	var pos int64

	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = s.pos + offset
	case io.SeekEnd:
		pos = s.size + offset
	default:
		return -1, ErrNotSuitable
	}

	if pos < 0 {
		return -1, ErrNotSuitable
	}
	s.pos = pos
	return pos, nil
}

func (s *SubStorage) Sys() (*os.File, error) {
	return s.underlying.Sys()
}

// Size of the window in bytes
func (s *SubStorage) Size() int64 {
	return s.size
}

// backend.Storage interface guard
var _ Storage = (*SubStorage)(nil)
