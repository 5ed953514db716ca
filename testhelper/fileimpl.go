package testhelper

import (
	"fmt"
	"io"
	"io/fs"
)

type reader func(b []byte, offset int64) (int, error)

// FileImpl implement github.com/diskfs/go-mbrscan/backend/File
// used for testing to enable stubbing out reads from a disk
type FileImpl struct {
	Reader reader
	// Reads counts calls to ReadAt
	Reads int
}

func (f *FileImpl) Stat() (fs.FileInfo, error) {
	return nil, nil
}

func (f *FileImpl) Read(b []byte) (int, error) {
	return f.ReadAt(b, 0)
}

func (f *FileImpl) Close() error {
	return nil
}

// ReadAt read at a particular offset
func (f *FileImpl) ReadAt(b []byte, offset int64) (int, error) {
	f.Reads++
	return f.Reader(b, offset)
}

// Seek seek a particular offset - does not actually work
//
//nolint:unused,revive // to implement the interface
func (f *FileImpl) Seek(offset int64, whence int) (int64, error) {
	return 0, fmt.Errorf("FileImpl does not implement Seek()")
}

// ImageReader returns a Reader serving the given bytes as a disk image, honouring io.ReaderAt semantics
func ImageReader(img []byte) func(b []byte, offset int64) (int, error) {
	return func(b []byte, offset int64) (int, error) {
		if offset >= int64(len(img)) {
			return 0, io.EOF
		}
		n := copy(b, img[offset:])
		if n < len(b) {
			return n, io.EOF
		}
		return n, nil
	}
}
