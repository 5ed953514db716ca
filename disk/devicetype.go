package disk

import (
	"fmt"
	iofs "io/fs"
)

type DeviceType int

const (
	DeviceTypeUnknown DeviceType = iota
	DeviceTypeFile
	DeviceTypeBlockDevice
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeFile:
		return "file"
	case DeviceTypeBlockDevice:
		return "block device"
	default:
		return "unknown"
	}
}

// DetermineDeviceType tells an image file from a block device. Character devices,
// directories and the like are refused.
func DetermineDeviceType(f iofs.File) (DeviceType, error) {
	info, err := f.Stat()
	if err != nil {
		return DeviceTypeUnknown, fmt.Errorf("could not stat file: %v", err)
	}
	mode := info.Mode()
	switch {
	case mode.IsRegular():
		return DeviceTypeFile, nil
	case mode&iofs.ModeDevice != 0 && mode&iofs.ModeCharDevice == 0:
		return DeviceTypeBlockDevice, nil
	}
	return DeviceTypeUnknown, fmt.Errorf("device %s is neither a block device nor a regular file", info.Name())
}
