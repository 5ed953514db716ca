package part

import (
	"fmt"
	"io"

	"github.com/diskfs/go-mbrscan/backend"
	"github.com/diskfs/go-mbrscan/sector"
)

// Partition reference to an individual partition on disk
type Partition interface {
	GetSize() int64
	GetStart() int64
	ReadContents(backend.File, io.Writer) (int64, error)
}

// Kind is the filesystem a partition type code announces
type Kind int

const (
	Unrecognized Kind = iota
	FAT32
	NTFS
	// Extended is not a filesystem, it marks the start of a chain of logical partitions
	Extended
)

func (k Kind) String() string {
	switch k {
	case FAT32:
		return "FAT32"
	case NTFS:
		return "NTFS"
	case Extended:
		return "Extended"
	default:
		return "Unrecognized"
	}
}

// Filesystem reports whether the kind is one that gets listed
func (k Kind) Filesystem() bool {
	return k == FAT32 || k == NTFS
}

// Record is a single discovered partition. Start is absolute on the disk, in sectors.
type Record struct {
	Kind  Kind
	Start uint64
	Size  uint32
	// Number is the partition number the Linux kernel would give it:
	// primaries 1-4 by slot, logical partitions from 5 in chain order
	Number  int
	Logical bool
}

// String renders the record as "<kind> <start_lba> <sector_count>"
func (r Record) String() string {
	return fmt.Sprintf("%s %d %d", r.Kind, r.Start, r.Size)
}

// GetStart offset of the partition in bytes
func (r Record) GetStart() int64 {
	return int64(r.Start) * sector.Size
}

// GetSize size of the partition in bytes
func (r Record) GetSize() int64 {
	return int64(r.Size) * sector.Size
}

// ReadContents streams the entire partition to the writer
func (r Record) ReadContents(f backend.File, out io.Writer) (int64, error) {
	total := int64(0)
	b := make([]byte, sector.Size)
	start := r.GetStart()
	size := r.GetSize()

	for total < size {
		read, err := f.ReadAt(b, start+total)
		if err != nil && err != io.EOF {
			return total, fmt.Errorf("error reading from file: %v", err)
		}
		if read > 0 {
			if _, werr := out.Write(b[:read]); werr != nil {
				return total, fmt.Errorf("error writing partition contents: %v", werr)
			}
			total += int64(read)
		}
		if err == io.EOF || read <= 0 {
			break
		}
	}
	if total != size {
		return total, NewIncompletePartitionReadError(total, size)
	}
	return total, nil
}

// part.Partition interface guard
var _ Partition = Record{}
