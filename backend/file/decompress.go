package file

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"

	"github.com/diskfs/go-mbrscan/backend"
)

type compression int

const (
	compressionNone compression = iota
	compressionXz
	compressionLz4
)

var (
	xzMagic  = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}
)

func (c compression) String() string {
	switch c {
	case compressionXz:
		return "xz"
	case compressionLz4:
		return "lz4"
	default:
		return "none"
	}
}

// detectCompression sniffs the magic number at the start of the image
func detectCompression(r io.ReaderAt) (compression, error) {
	b := make([]byte, len(xzMagic))
	n, err := r.ReadAt(b, 0)
	if err != nil && err != io.EOF {
		return compressionNone, err
	}
	b = b[:n]
	switch {
	case bytes.HasPrefix(b, xzMagic):
		return compressionXz, nil
	case bytes.HasPrefix(b, lz4Magic):
		return compressionLz4, nil
	}
	return compressionNone, nil
}

// decompress reads the whole compressed stream into memory. Disk images that
// matter for partition scanning are small, and the sector reader needs
// random access which neither xz nor lz4 streams provide.
func decompress(r io.Reader, info fs.FileInfo, c compression) (backend.Storage, error) {
	var (
		dr  io.Reader
		err error
	)
	switch c {
	case compressionXz:
		dr, err = xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("error creating xz decompressor: %v", err)
		}
	case compressionLz4:
		dr = lz4.NewReader(r)
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
	b, err := io.ReadAll(dr)
	if err != nil {
		return nil, fmt.Errorf("error decompressing %s: %v", c, err)
	}
	return newMemBackend(info.Name(), info.ModTime(), b), nil
}

// memBackend serves a decompressed image from memory
type memBackend struct {
	*bytes.Reader
	info memInfo
}

func newMemBackend(name string, modTime time.Time, b []byte) *memBackend {
	return &memBackend{
		Reader: bytes.NewReader(b),
		info: memInfo{
			name:    name,
			size:    int64(len(b)),
			modTime: modTime,
		},
	}
}

// backend.Storage interface guard
var _ backend.Storage = (*memBackend)(nil)

func (m *memBackend) Stat() (fs.FileInfo, error) {
	return m.info, nil
}

func (m *memBackend) Close() error {
	return nil
}

func (m *memBackend) Sys() (*os.File, error) {
	return nil, backend.ErrNotSuitable
}

type memInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) Mode() fs.FileMode  { return 0o400 }
func (i memInfo) ModTime() time.Time { return i.modTime }
func (i memInfo) IsDir() bool        { return false }
func (i memInfo) Sys() any           { return nil }
