package main

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	defaultLogFormatter = &log.TextFormatter{}
)

// infoFormatter overrides the default format for Info() log events to
// provide an easier to read output
type infoFormatter struct {
}

func (f *infoFormatter) Format(entry *log.Entry) ([]byte, error) {
	if entry.Level == log.InfoLevel {
		return append([]byte(entry.Message), '\n'), nil
	}
	return defaultLogFormatter.Format(entry)
}

// setupLogging once the flags have been parsed, setup the logging
func setupLogging(quiet bool, verbose int) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(new(infoFormatter))
	if quiet && verbose > 0 {
		return errors.New("can't set quiet and verbose flag at the same time")
	}
	switch {
	case quiet:
		log.SetLevel(log.ErrorLevel)
	case verbose == 0:
		log.SetLevel(log.WarnLevel)
	case verbose == 1:
		log.SetFormatter(defaultLogFormatter)
		log.SetLevel(log.InfoLevel)
	case verbose == 2:
		log.SetFormatter(defaultLogFormatter)
		log.SetLevel(log.DebugLevel)
	case verbose == 3:
		log.SetFormatter(defaultLogFormatter)
		log.SetLevel(log.TraceLevel)
	default:
		return errors.New("verbose flag can only be set to 0, 1, 2 or 3")
	}
	return nil
}

func newCmd() *cobra.Command {
	var (
		flagQuiet   bool
		flagVerbose int
		flagConfig  string
	)
	cmd := &cobra.Command{
		Use:               "mbrscan",
		Short:             "list the FAT32 and NTFS partitions of an MBR disk",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(flagQuiet, flagVerbose); err != nil {
				return err
			}
			return readConfig(flagConfig)
		},
	}

	cmd.AddCommand(listCmd())
	cmd.AddCommand(dumpCmd())

	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Quiet execution")
	cmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "Verbose output, repeat for more")
	cmd.PersistentFlags().StringVar(&flagConfig, "config", defaultConfigPath(), "Path to the configuration file")

	return cmd
}

func main() {
	if err := newCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
