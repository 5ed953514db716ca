package disk_test

/*
 These tests the exported functions
 We want to do full-in tests with files
*/

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"

	"github.com/diskfs/go-mbrscan/backend/file"
	"github.com/diskfs/go-mbrscan/disk"
	"github.com/diskfs/go-mbrscan/partition/mbr"
	"github.com/diskfs/go-mbrscan/partition/part"
	"github.com/diskfs/go-mbrscan/sector"
	"github.com/diskfs/go-mbrscan/testhelper"
)

const diskSectors = 20480

// tmpDisk writes a 10MB image with a FAT32 primary at 2048 and an extended partition at
// 8192 holding an NTFS logical partition, and opens it as a Disk
func tmpDisk(t *testing.T) *disk.Disk {
	t.Helper()
	img := testhelper.NewSparseImage(diskSectors*sector.Size).
		SetEntry(0, 0, byte(mbr.Fat32LBA), 2048, 4096).
		SetEntry(0, 1, byte(mbr.ExtendedCHS), 8192, 12288).
		SetEntry(8192, 0, byte(mbr.NTFS), 2048, 8192).
		SetBootSignature(0).
		SetBootSignature(8192)
	// fill the FAT32 partition so its contents can be checked
	for lba := uint64(2048); lba < 2048+4096; lba++ {
		img.Sectors[lba] = bytes.Repeat([]byte{0xfa}, sector.Size)
	}

	p := filepath.Join(t.TempDir(), "disk_test.img")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("Failed to create tempfile %s: %v", p, err)
	}
	defer f.Close()
	if err := f.Truncate(img.Size); err != nil {
		t.Fatalf("Failed to size tempfile: %v", err)
	}
	for lba, b := range img.Sectors {
		if _, err := f.WriteAt(b, int64(lba)*sector.Size); err != nil {
			t.Fatalf("Failed to write sector %d: %v", lba, err)
		}
	}

	s, err := file.OpenFromPath(p)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", p, err)
	}
	d := &disk.Disk{
		Backend:           s,
		Type:              disk.DeviceTypeFile,
		Size:              img.Size,
		LogicalBlocksize:  512,
		PhysicalBlocksize: 512,
		ID:                "disk_test",
	}
	t.Cleanup(func() { _ = s.Close() })
	return d
}

func TestGetPartitions(t *testing.T) {
	d := tmpDisk(t)
	records, err := d.GetPartitions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []part.Record{
		{Kind: part.FAT32, Start: 2048, Size: 4096, Number: 1},
		{Kind: part.NTFS, Start: 10240, Size: 8192, Number: 5, Logical: true},
	}
	if diff := deep.Equal(records, expected); diff != nil {
		t.Errorf("GetPartitions() mismatch: %v", diff)
	}
}

func TestGetPartitionsSectorSize(t *testing.T) {
	d := tmpDisk(t)
	d.LogicalBlocksize = 4096
	_, err := d.GetPartitions()
	var se *disk.UnsupportedSectorSizeError
	if !errors.As(err, &se) {
		t.Errorf("expected UnsupportedSectorSizeError, got %v", err)
	}
}

func TestReadPartitionContents(t *testing.T) {
	d := tmpDisk(t)
	records, err := d.GetPartitions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out bytes.Buffer
	n, err := d.ReadPartitionContents(records[0], &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4096*sector.Size {
		t.Errorf("read %d bytes", n)
	}
	if !bytes.Equal(out.Bytes(), bytes.Repeat([]byte{0xfa}, 4096*sector.Size)) {
		t.Errorf("partition contents mismatch")
	}

	_, err = d.ReadPartitionContents(part.Record{Kind: part.NTFS, Start: diskSectors - 10, Size: 20}, &out)
	var ie *disk.InvalidPartitionError
	if !errors.As(err, &ie) {
		t.Errorf("expected InvalidPartitionError, got %v", err)
	}
}

func TestPartitionStorage(t *testing.T) {
	d := tmpDisk(t)
	records, err := d.GetPartitions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := d.PartitionStorage(records[1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := make([]byte, sector.Size)
	if _, err := s.ReadAt(b, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(b, make([]byte, sector.Size)) {
		t.Errorf("first sector of logical partition is not empty")
	}
	if n, err := s.ReadAt(b, records[1].GetSize()); n != 0 || err == nil {
		t.Errorf("read %d bytes past end of partition, error %v", n, err)
	}

	_, err = d.PartitionStorage(part.Record{Kind: part.NTFS, Start: diskSectors, Size: 1})
	var ie *disk.InvalidPartitionError
	if !errors.As(err, &ie) {
		t.Errorf("expected InvalidPartitionError, got %v", err)
	}
}

func TestDetermineDeviceType(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "devicetype")
	if err != nil {
		t.Fatalf("Failed to create tempfile: %v", err)
	}
	defer f.Close()
	dt, err := disk.DetermineDeviceType(f)
	if err != nil || dt != disk.DeviceTypeFile {
		t.Errorf("got %s, %v", dt, err)
	}

	dir, err := os.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open dir: %v", err)
	}
	defer dir.Close()
	if _, err := disk.DetermineDeviceType(dir); err == nil {
		t.Errorf("directory accepted as a disk")
	}
}
