package disk

import (
	"fmt"

	"github.com/diskfs/go-mbrscan/partition/part"
)

type InvalidPartitionError struct {
	record part.Record
}

func (e *InvalidPartitionError) Error() string {
	return fmt.Sprintf("partition %d (%s) extends past the end of the disk", e.record.Number, e.record)
}

func NewInvalidPartitionError(r part.Record) *InvalidPartitionError {
	return &InvalidPartitionError{
		record: r,
	}
}

type UnsupportedSectorSizeError struct {
	size int64
}

func (e *UnsupportedSectorSizeError) Error() string {
	return fmt.Sprintf("logical sector size %d is not supported, only 512", e.size)
}

func NewUnsupportedSectorSizeError(size int64) *UnsupportedSectorSizeError {
	return &UnsupportedSectorSizeError{
		size: size,
	}
}
