package backend

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

var (
	ErrNotSuitable       = errors.New("backing file is not suitable")
	ErrSourceUnavailable = errors.New("disk source unavailable")
)

// File is a read-only, random-access view of a disk image or block device
type File interface {
	fs.File
	io.ReaderAt
	io.Seeker
	io.Closer
}

type Storage interface {
	File
	// OS-specific file for ioctl calls via fd
	Sys() (*os.File, error)
}
