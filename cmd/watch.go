/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/allbin/ctsmon"
	"github.com/allbin/ctsmon/internal/tui/components"
	"github.com/allbin/ctsmon/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/womat/debug"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [device]",
	Short: "Live TUI of control line levels and transitions",
	Long: `Open an interactive view with the current level of each control line
and a scrolling log of transitions.

With --output the transitions are also written to a file in the same
format as the monitor command.

Examples:
  ctsmon watch /dev/ttyUSB0
  ctsmon watch /dev/ttyUSB0 --interval 200 --verbose
  ctsmon watch /dev/ttyS0 --output cts.log

Key bindings:
  p/space  Pause log scrolling
  c        Clear log and counters
  ↑/↓ g/G  Scroll
  q        Quit`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := sessionConfig(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := runWatchTUI(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addSessionFlags(watchCmd)
}

func runWatchTUI(cfg ctsmon.Config) error {
	// Diagnostics would draw over the alt screen
	if name := viper.GetString("log-file"); name == "" || name == "stderr" || name == "stdout" {
		devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err == nil {
			debug.SetDebug(devNull, debug.Standard)
			defer devNull.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := models.NewWatchModel(cfg.Device, cfg.Verbose, cancel)
	p := tea.NewProgram(m, tea.WithAltScreen())

	var sink ctsmon.Sink = models.NewProgramSink(p.Send)
	if cfg.Output != "" && cfg.Output != "-" {
		out, err := ctsmon.OpenOutput(cfg.Output, false)
		if err != nil {
			return err
		}
		defer out.Close()
		sink = ctsmon.Tee(sink, out)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		session, err := ctsmon.Start(cfg, sink)
		if err != nil {
			p.Send(models.StoppedMsg{Err: err})
			return
		}

		info := components.SessionInfo{
			Kind:     session.Kind(),
			Mode:     cfg.Mode,
			Interval: int(cfg.Interval.Microseconds()),
		}
		if cls := session.Classification(); cls.Capable && session.Kind() == ctsmon.SourceDirectGPIO {
			info.Chip = cls.Chip.Name
		}
		p.Send(models.StartedMsg{State: session.State(), Info: info})

		runErr := session.Run(ctx)
		if err := session.Close(); err != nil {
			debug.ErrorLog.Printf("close: %v", err)
		}
		p.Send(models.StoppedMsg{Err: runErr})
	}()

	_, err := p.Run()

	// Stop the session and wait for it to release the device
	cancel()
	<-done
	return err
}
