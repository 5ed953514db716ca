// Package diskfs lists the partitions of MBR partitioned disks, whether block devices
// in /dev or direct disk images.
//
// It reads the primary partition table and follows the chain of Extended Boot Records
// to find logical partitions, reporting every FAT32 and NTFS partition with its
// absolute start sector and its size in sectors. It never writes to the disk, and
// does not mount anything: it reads the bytes directly.
//
// Image files compressed with xz or lz4 are decompressed transparently.
//
// Example, list the partitions of an image:
//
//	import diskfs "github.com/diskfs/go-mbrscan"
//
//	d, err := diskfs.Open("/tmp/disk.img")
//	if err != nil {
//	  log.Fatal(err)
//	}
//	defer d.Close()
//	partitions, err := d.GetPartitions()
//	for _, p := range partitions {
//	  fmt.Println(p)
//	}
package diskfs

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/diskfs/go-mbrscan/backend"
	"github.com/diskfs/go-mbrscan/backend/file"
	"github.com/diskfs/go-mbrscan/disk"
	"github.com/diskfs/go-mbrscan/sector"
)

const defaultBlocksize int64 = sector.Size

type openOpts struct {
	log *logrus.Entry
}

// OpenOpt configures Open
type OpenOpt func(o *openOpts) error

// WithLogger logs through the given logger, with a field identifying the disk added
func WithLogger(log *logrus.Entry) OpenOpt {
	return func(o *openOpts) error {
		if log == nil {
			return errors.New("logger must not be nil")
		}
		o.log = log
		return nil
	}
}

func initDisk(b backend.Storage, log *logrus.Entry) (*disk.Disk, error) {
	var (
		size     int64
		lblksize = defaultBlocksize
		pblksize = defaultBlocksize
	)

	devInfo, err := b.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not get info for device: %w", err)
	}
	diskType, err := disk.DetermineDeviceType(b)
	if err != nil {
		return nil, err
	}

	switch diskType {
	case disk.DeviceTypeFile:
		size = devInfo.Size()
	case disk.DeviceTypeBlockDevice:
		size, err = b.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, fmt.Errorf("could not get size of device %s: %w", devInfo.Name(), err)
		}
		if _, err := b.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("could not rewind device %s: %w", devInfo.Name(), err)
		}
		osFile, err := b.Sys()
		if err != nil {
			return nil, fmt.Errorf("cannot get sector sizes of device %s: %w", devInfo.Name(), err)
		}
		lblksize, pblksize, err = getSectorSizes(osFile)
		if err != nil {
			return nil, fmt.Errorf("unable to get block sizes for device %s: %w", devInfo.Name(), err)
		}
	}
	if size < sector.Size {
		return nil, fmt.Errorf("device %s is %d bytes, smaller than one sector: %w", devInfo.Name(), size, sector.ErrTruncatedRead)
	}

	id := uuid.NewString()
	log = log.WithField("disk", id)
	log.WithFields(logrus.Fields{
		"name":              devInfo.Name(),
		"type":              diskType,
		"size":              size,
		"logicalBlocksize":  lblksize,
		"physicalBlocksize": pblksize,
	}).Debug("opened disk")

	return &disk.Disk{
		Backend:           b,
		Type:              diskType,
		Size:              size,
		LogicalBlocksize:  lblksize,
		PhysicalBlocksize: pblksize,
		ID:                id,
		Log:               log,
	}, nil
}

// Open a Disk from a path to a device or image, read-only
// Should pass a path to a block device e.g. /dev/sda or a path to a file /tmp/foo.img
// The provided device must exist at the time you call Open(); if it cannot be opened
// the error wraps backend.ErrSourceUnavailable.
func Open(device string, opts ...OpenOpt) (*disk.Disk, error) {
	b, err := file.OpenFromPath(device)
	if err != nil {
		return nil, err
	}
	d, err := OpenBackend(b, opts...)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return d, nil
}

// OpenBackend wraps an already opened backend.Storage as a Disk
func OpenBackend(b backend.Storage, opts ...OpenOpt) (*disk.Disk, error) {
	o := &openOpts{
		log: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return initDisk(b, o.log)
}
