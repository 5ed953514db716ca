package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	diskfs "github.com/diskfs/go-mbrscan"
	"github.com/diskfs/go-mbrscan/sector"
	"github.com/diskfs/go-mbrscan/util"
)

// partitionTableBytes the positions of the type code, start and size of each of
// the four table entries, and the boot signature
func partitionTableBytes() []int {
	var positions []int
	for i := 0; i < 4; i++ {
		entry := 446 + i*16
		positions = append(positions, entry+4)
		for j := 8; j < 16; j++ {
			positions = append(positions, entry+j)
		}
	}
	return append(positions, 510, 511)
}

func dumpCmd() *cobra.Command {
	var (
		lba  uint64
		full bool
	)
	cmd := &cobra.Command{
		Use:   "dump <image>",
		Short: "hex dump the partition table of an MBR or EBR sector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := diskfs.Open(args[0], diskfs.WithLogger(log.WithField("image", args[0])))
			if err != nil {
				return err
			}
			defer d.Close()

			b, err := sector.NewReader(d.Backend).ReadSector(lba)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), util.DumpByteSlice(b, util.DumpOptions{
				ASCII:           true,
				PosHex:          true,
				Base:            int64(lba) * sector.Size,
				Highlight:       partitionTableBytes(),
				OnlyHighlighted: !full,
			}))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&lba, "lba", 0, "Sector to dump")
	cmd.Flags().BoolVar(&full, "full", false, "Dump the whole sector, not just the partition table rows")
	return cmd
}
