package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/phil-mansfield/windprof/io"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var level, logName string
	var logFile *os.File

	root := &cobra.Command{
		Use:   "windprof",
		Short: "windprof computes X-ray line profiles of stellar winds",
		Long: `windprof computes X-ray emission line profiles and continuum
transmission for clumped, absorbing hot star winds.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(level)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)

			if logName != "" {
				logFile, err = os.Create(logName)
				if err != nil {
					return err
				}
				log.SetOutput(logFile)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logFile == nil {
				return nil
			}
			log.SetOutput(os.Stderr)
			f := logFile
			logFile = nil
			return f.Close()
		},
	}

	root.PersistentFlags().StringVar(
		&level, "log-level", "warning",
		"Minimum level of logged messages: debug, info, warning, or error.",
	)
	root.PersistentFlags().StringVar(
		&logName, "log-file", "", "Write log messages to this file.",
	)

	root.AddCommand(newProfileCmd())
	root.AddCommand(newLxCmd())
	root.AddCommand(newDepthCmd())
	root.AddCommand(newTransmissionCmd())
	root.AddCommand(newWindtabsCmd())
	root.AddCommand(newSlabtabsCmd())
	root.AddCommand(newSweepCmd())
	root.AddCommand(newPlotCmd())
	root.AddCommand(newExampleConfigCmd())

	return root
}

func newExampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config TYPE",
		Short: "Print an example configuration file",
		Long: `Prints an example configuration file of the specified type to
stdout. Accepted types are model, windtabs, slabtabs, transmission, and
sweep.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := io.ExampleConfig(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
