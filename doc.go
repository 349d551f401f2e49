// Package ctsmon watches the modem control lines of a serial interface and
// reports every level change with a timestamp.
//
// CTS and RTS are always watched. DSR and DTR are added in verbose mode.
//
// # Signal Sources
//
// Two backends can sample the lines:
//
//   - Line status: the OS serial driver is asked for the line levels with
//     the TIOCMGET ioctl. Works for any tty that supports modem status.
//   - Direct GPIO: FTDI bridge chips are switched to bit-bang input mode over
//     USB and their pin byte is read with a vendor control request. This
//     bypasses the kernel serial layer entirely.
//
// The classifier decides whether a device may use the direct path. When it
// can, OpenSource tries it first and silently falls back to line status on
// any failure:
//
//	cls := ctsmon.NewClassifier().Classify("/dev/ttyUSB0")
//	src, err := ctsmon.OpenSource("/dev/ttyUSB0", cls, ctsmon.DefaultBackends())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	state, err := src.Sample()
//	fmt.Printf("CTS=%v RTS=%v\n", state.CTS, state.RTS)
//
// # Monitoring
//
// A Session ties a source to a change detector and an output sink:
//
//	cfg, err := ctsmon.NewConfig("/dev/ttyUSB0",
//	    ctsmon.WithIntervalMicros(500),
//	    ctsmon.WithTimeFormat(ctsmon.TimeRelative),
//	    ctsmon.WithVerbose(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session, err := ctsmon.Start(cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	err = session.Run(ctx)
//
// Each transition is written as one line and flushed immediately:
//
//	[0.012345] CTS: HIGH ↑
//	[0.013001] RTS: LOW ↓
//
// # Modes
//
// ModeInterval sleeps for the configured interval between samples. The
// minimum interval is MinInterval. ModeTight samples again immediately and
// keeps one core busy.
//
// # Error Handling
//
// Errors wrap the sentinels in errors.go and are checked with errors.Is:
//
//	if errors.Is(err, ctsmon.ErrDeviceUnavailable) {
//	    // neither backend could open the device
//	}
//
// # Port Discovery
//
// ListPorts and GetPortInfo read /dev and sysfs. USB metadata includes the
// bus number and device address, which the classifier uses to pick the
// exact bridge chip behind a tty.
package ctsmon
