// Package disk provides utilities for working directly with a disk
//
// Most of the provided functions are intelligent wrappers around implementations of
// github.com/diskfs/go-mbrscan/partition/mbr
package disk

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/diskfs/go-mbrscan/backend"
	"github.com/diskfs/go-mbrscan/partition/mbr"
	"github.com/diskfs/go-mbrscan/partition/part"
	"github.com/diskfs/go-mbrscan/sector"
)

// Disk is a reference to a single disk block device or image that has been Open()
type Disk struct {
	Backend           backend.Storage
	Type              DeviceType
	Size              int64
	LogicalBlocksize  int64
	PhysicalBlocksize int64
	// ID identifies this Disk in log output
	ID  string
	Log *logrus.Entry
}

func (d *Disk) logger() *logrus.Entry {
	if d.Log != nil {
		return d.Log
	}
	return logrus.WithField("disk", d.ID)
}

func (d *Disk) checkSectorSize() error {
	if d.LogicalBlocksize != 0 && d.LogicalBlocksize != sector.Size {
		return NewUnsupportedSectorSizeError(d.LogicalBlocksize)
	}
	return nil
}

// Walk returns a Walker over the partitions of the disk. The disk's logger is used unless
// the options set another one.
func (d *Disk) Walk(opts ...mbr.WalkOption) *mbr.Walker {
	opts = append([]mbr.WalkOption{mbr.WithLogger(d.logger())}, opts...)
	return mbr.NewWalker(d.Backend, opts...)
}

// GetPartitions lists every FAT32 and NTFS partition, primary and logical, in table order
//
// returns an error if the disk cannot be read, has no readable MBR, or its logical sector size is not 512
func (d *Disk) GetPartitions(opts ...mbr.WalkOption) ([]part.Record, error) {
	if err := d.checkSectorSize(); err != nil {
		return nil, err
	}
	log := d.logger()
	var records []part.Record
	w := d.Walk(opts...)
	for w.Next() {
		r := w.Record()
		log.WithFields(logrus.Fields{
			"number": r.Number,
			"kind":   r.Kind,
			"start":  r.Start,
			"size":   r.Size,
		}).Debug("found partition")
		records = append(records, r)
	}
	if err := w.Err(); err != nil {
		return records, fmt.Errorf("error reading partitions: %w", err)
	}
	return records, nil
}

// PartitionStorage returns a read-only view of just the given partition
//
// returns an error if the partition does not lie entirely within the disk
func (d *Disk) PartitionStorage(r part.Record) (backend.Storage, error) {
	if d.Size > 0 && r.GetStart()+r.GetSize() > d.Size {
		return nil, NewInvalidPartitionError(r)
	}
	return backend.Sub(d.Backend, r.GetStart(), r.GetSize()), nil
}

// ReadPartitionContents reads the contents of a partition to an io.Writer
//
// if successful, returns the number of bytes read
//
// returns an error if there was an error reading from the disk, writing to the writer, or the partition is invalid
func (d *Disk) ReadPartitionContents(r part.Record, writer io.Writer) (int64, error) {
	if d.Size > 0 && r.GetStart()+r.GetSize() > d.Size {
		return -1, NewInvalidPartitionError(r)
	}
	return r.ReadContents(d.Backend, writer)
}

// Close the disk. Once successfully closed, it can no longer be used.
func (d *Disk) Close() error {
	if err := d.Backend.Close(); err != nil {
		return fmt.Errorf("could not close backend: %w", err)
	}
	*d = Disk{}
	return nil
}
