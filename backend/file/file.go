package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/diskfs/go-mbrscan/backend"
)

type rawBackend struct {
	storage fs.File
}

// Create a backend.Storage from provided fs.File
func New(f fs.File) backend.Storage {
	return rawBackend{
		storage: f,
	}
}

// Create a backend.Storage from a path to a device or image file.
// Should pass a path to a block device e.g. /dev/sda or a path to a file /tmp/foo.img
// The provided device/file must exist at the time you call OpenFromPath().
// It is always opened read-only. Image files compressed with xz or lz4 are
// decompressed into memory and served from there.
func OpenFromPath(pathName string) (backend.Storage, error) {
	if pathName == "" {
		return nil, fmt.Errorf("%w: must pass device or file name", backend.ErrSourceUnavailable)
	}

	info, err := os.Stat(pathName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: provided device/file %s does not exist", backend.ErrSourceUnavailable, pathName)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not stat %s: %v", backend.ErrSourceUnavailable, pathName, err)
	}

	f, err := os.OpenFile(pathName, os.O_RDONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open device %s: %v", backend.ErrSourceUnavailable, pathName, err)
	}

	if !info.Mode().IsRegular() {
		return rawBackend{storage: f}, nil
	}

	c, err := detectCompression(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: could not read %s: %v", backend.ErrSourceUnavailable, pathName, err)
	}
	if c == compressionNone {
		return rawBackend{storage: f}, nil
	}

	defer f.Close()
	mem, err := decompress(f, info, c)
	if err != nil {
		return nil, fmt.Errorf("%w: could not decompress %s: %v", backend.ErrSourceUnavailable, pathName, err)
	}
	return mem, nil
}

// backend.Storage interface guard
var _ backend.Storage = (*rawBackend)(nil)

// OS-specific file for ioctl calls via fd
func (f rawBackend) Sys() (*os.File, error) {
	if osFile, ok := f.storage.(*os.File); ok {
		return osFile, nil
	}
	return nil, backend.ErrNotSuitable
}

func (f rawBackend) Stat() (fs.FileInfo, error) {
	return f.storage.Stat()
}

func (f rawBackend) Read(b []byte) (int, error) {
	return f.storage.Read(b)
}

func (f rawBackend) Close() error {
	return f.storage.Close()
}

func (f rawBackend) ReadAt(p []byte, off int64) (n int, err error) {
	if readerAt, ok := f.storage.(io.ReaderAt); ok {
		return readerAt.ReadAt(p, off)
	}
	return -1, backend.ErrNotSuitable
}

func (f rawBackend) Seek(offset int64, whence int) (int64, error) {
	if seeker, ok := f.storage.(io.Seeker); ok {
		return seeker.Seek(offset, whence)
	}
	return -1, backend.ErrNotSuitable
}
