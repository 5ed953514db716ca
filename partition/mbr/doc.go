// Package mbr reads Master Boot Record (MBR) partitioned disks, including the
// logical partitions chained through Extended Boot Records (EBR).
//
// Only partitions announcing FAT32 (0x0b, 0x0c) or NTFS (0x07) are reported. An
// Extended (0x05) entry is followed: each EBR in the chain carries one logical
// partition, relative to the EBR's own sector, and a link to the next EBR,
// relative to the start of the extended partition. A link of 0 ends the chain.
//
// The package never writes to the disk.
//
// Here is a simple example listing every partition of an image:
//
//	f, err := os.Open("/tmp/disk.img")
//	if err != nil {
//	  log.Fatal(err)
//	}
//	w := mbr.NewWalker(f)
//	for w.Next() {
//	  fmt.Println(w.Record())
//	}
//	if err := w.Err(); err != nil {
//	  log.Fatal(err)
//	}
package mbr
