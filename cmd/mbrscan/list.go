package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	diskfs "github.com/diskfs/go-mbrscan"
)

func listCmd() *cobra.Command {
	var (
		checkSignature bool
		maxChainLength int
		showUUID       bool
	)
	cmd := &cobra.Command{
		Use:   "list <image>",
		Short: "print one line per partition: <kind> <start_lba> <sector_count>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scan := Config.Scan
			if cmd.Flags().Changed("check-signature") {
				scan.CheckSignature = checkSignature
			}
			if cmd.Flags().Changed("max-chain") {
				scan.MaxChainLength = maxChainLength
			}

			d, err := diskfs.Open(args[0], diskfs.WithLogger(log.WithField("image", args[0])))
			if err != nil {
				return err
			}
			defer d.Close()

			out := cmd.OutOrStdout()
			w := d.Walk(scan.walkOptions()...)
			for w.Next() {
				r := w.Record()
				if showUUID {
					fmt.Fprintf(out, "%s %s\n", r, w.Table().PartUUID(r))
					continue
				}
				fmt.Fprintln(out, r)
			}
			return w.Err()
		},
	}
	cmd.Flags().BoolVar(&checkSignature, "check-signature", false, "Reject MBR and EBR sectors not ending in 0x55AA")
	cmd.Flags().IntVar(&maxChainLength, "max-chain", 0, "Maximum number of EBRs in one extended partition, 0 for no limit")
	cmd.Flags().BoolVar(&showUUID, "uuid", false, "Append the Linux PARTUUID of each partition")
	return cmd
}
