/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/allbin/ctsmon"
	"github.com/spf13/cobra"
)

// signalsCmd represents the signals command
var signalsCmd = &cobra.Command{
	Use:   "signals <port>",
	Short: "Display current control line states",
	Long: `Take a single sample of the modem control lines and print it.

The same backend selection as monitor is used, so FTDI adapters are read
over USB when possible.

Examples:
  ctsmon signals /dev/ttyUSB0
  ctsmon signals /dev/ttyACM0

Signal meanings:
  CTS - Clear To Send (input)
  DSR - Data Set Ready (input)
  RTS - Request To Send (output)
  DTR - Data Terminal Ready (output)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		cls := ctsmon.NewClassifier().Classify(portPath)
		src, err := ctsmon.OpenSource(portPath, cls, ctsmon.DefaultBackends())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening port: %v\n", err)
			os.Exit(1)
		}
		defer src.Close()

		state, err := src.Sample()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading modem signals: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Modem Signals for %s (%s):\n\n", portPath, src.Kind())
		fmt.Printf("  CTS (Clear To Send):       %s\n", ctsmon.LevelString(state.CTS))
		fmt.Printf("  DSR (Data Set Ready):      %s\n", ctsmon.LevelString(state.DSR))
		fmt.Printf("  RTS (Request To Send):     %s\n", ctsmon.LevelString(state.RTS))
		fmt.Printf("  DTR (Data Terminal Ready): %s\n", ctsmon.LevelString(state.DTR))
	},
}

func init() {
	rootCmd.AddCommand(signalsCmd)
}
