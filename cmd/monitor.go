/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/allbin/ctsmon"
	"github.com/spf13/cobra"
	"github.com/womat/debug"
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor [device]",
	Short: "Print control line transitions",
	Long: `Poll the modem control lines of a serial device and print one line per
level change. Press Ctrl+C to stop.

CTS and RTS are always watched. With --verbose DSR and DTR are watched too,
and the initial state plus start/stop markers are printed.

Examples:
  ctsmon monitor /dev/ttyUSB0
  ctsmon monitor /dev/ttyUSB0 --interval 100 --format rel
  ctsmon monitor /dev/ttyUSB0 --mode tight --output cts.log --verbose

Output:
  [2025-01-01 12:00:00.000123] CTS: HIGH ↑
  [0.004512] RTS: LOW ↓`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := sessionConfig(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		session, err := ctsmon.Start(cfg, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		runErr := session.Run(ctx)
		stop()

		if err := session.Close(); err != nil {
			debug.ErrorLog.Printf("close: %v", err)
		}

		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
			os.Exit(1)
		}
		debug.InfoLog.Printf("%s: %d samples", cfg.Device, session.Samples())
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	addSessionFlags(monitorCmd)
}
