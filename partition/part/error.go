package part

import "fmt"

type IncompletePartitionReadError struct {
	readBytes  int64
	totalBytes int64
}

func (e *IncompletePartitionReadError) Error() string {
	return fmt.Sprintf("read %d bytes of partition of size %d", e.readBytes, e.totalBytes)
}

func NewIncompletePartitionReadError(read, total int64) error {
	return &IncompletePartitionReadError{
		readBytes:  read,
		totalBytes: total,
	}
}
