/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"github.com/allbin/ctsmon"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addSessionFlags registers the flags shared by monitor and watch
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("interval", "i", 1000, "polling interval in microseconds (min 100, interval mode only)")
	cmd.Flags().StringP("format", "f", "abs", "timestamp format: abs|rel")
	cmd.Flags().StringP("output", "o", "", "write events to FILE instead of stdout")
	cmd.Flags().StringP("mode", "m", "interval", "polling mode: interval|tight")
}

// sessionConfig builds a session config from args, flags, env and config file.
// The device may come from the config file when no argument is given.
func sessionConfig(args []string) (ctsmon.Config, error) {
	device := viper.GetString("device")
	if len(args) > 0 {
		device = args[0]
	}

	mode, err := ctsmon.ParseMode(viper.GetString("mode"))
	if err != nil {
		return ctsmon.Config{}, err
	}
	format, err := ctsmon.ParseTimeFormat(viper.GetString("format"))
	if err != nil {
		return ctsmon.Config{}, err
	}

	opts := []ctsmon.Option{
		ctsmon.WithMode(mode),
		ctsmon.WithTimeFormat(format),
		ctsmon.WithOutput(viper.GetString("output")),
		ctsmon.WithVerbose(viper.GetBool("verbose")),
	}
	if mode == ctsmon.ModeInterval {
		opts = append(opts, ctsmon.WithIntervalMicros(viper.GetInt("interval")))
	}
	return ctsmon.NewConfig(device, opts...)
}
