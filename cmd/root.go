/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/womat/debug"
)

var (
	// Global flags
	cfgFile  string
	logLevel string
	logFile  string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "ctsmon",
	Short: "Serial control line monitor",
	Long: `Monitor the CTS/RTS (and DSR/DTR) modem control lines of a serial port
and print a timestamped line for every level change.

FTDI USB adapters are read directly over USB in bit-bang mode when possible,
everything else through the kernel serial driver.

Examples:
  ctsmon monitor /dev/ttyUSB0                    # Watch CTS/RTS, 1ms polling
  ctsmon monitor /dev/ttyUSB0 -i 100 -f rel -v   # 100µs polling, relative time, all lines
  ctsmon monitor /dev/ttyS0 -m tight -o cts.log  # Busy loop, write to file
  ctsmon watch /dev/ttyUSB0                      # Live TUI`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./ctsmon.yaml, ~/.config/ctsmon/ctsmon.yaml, /etc/ctsmon/ctsmon.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "track DSR/DTR and print session markers")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log", "l", "standard", "diagnostic log level (standard|debug|trace)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "stderr", "diagnostic log destination (stderr|stdout|FILE)")
}

// setup loads the configuration and wires logging before any command runs
func setup(cmd *cobra.Command, args []string) error {
	if err := initConfig(cmd); err != nil {
		return err
	}
	return initLogging()
}

// initConfig reads the config file and CTSMON_* environment variables.
// Flags of the running command are bound so that they take precedence.
func initConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ctsmon")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ctsmon"))
		}
		viper.AddConfigPath("/etc/ctsmon")
	}

	viper.SetEnvPrefix("ctsmon")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	return viper.BindPFlags(cmd.InheritedFlags())
}

// initLogging maps the log level onto womat/debug flags.
// Verbose mode always enables debug output.
func initLogging() error {
	var flag int
	switch strings.ToLower(viper.GetString("log")) {
	case "trace", "full":
		flag = debug.Full
	case "debug":
		flag = debug.Warning | debug.Info | debug.Error | debug.Fatal | debug.Debug
	case "standard", "":
		flag = debug.Standard
		if viper.GetBool("verbose") {
			flag |= debug.Info | debug.Debug
		}
	default:
		return fmt.Errorf("unknown log level %q (use standard, debug or trace)", viper.GetString("log"))
	}

	file, err := openLogFile(viper.GetString("log-file"))
	if err != nil {
		return err
	}
	debug.SetDebug(file, flag)
	return nil
}

func openLogFile(name string) (*os.File, error) {
	switch name {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		file, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return file, nil
	}
}
