package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/thatsimonsguy/presence-matrix/internal/config"
	"github.com/thatsimonsguy/presence-matrix/internal/gpio"
	"github.com/thatsimonsguy/presence-matrix/internal/icons"
	"github.com/thatsimonsguy/presence-matrix/internal/logging"
	"github.com/thatsimonsguy/presence-matrix/internal/matrix"
	"github.com/thatsimonsguy/presence-matrix/internal/model"
	"github.com/thatsimonsguy/presence-matrix/internal/network"
	"github.com/thatsimonsguy/presence-matrix/internal/presence"
	"github.com/thatsimonsguy/presence-matrix/internal/renderer"
	"github.com/thatsimonsguy/presence-matrix/system/startup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type anyLink struct{}

func (anyLink) Associated() bool { return true }

func newRootCmd() *cobra.Command {
	var debug bool
	var logPath string
	var logFile io.Closer

	root := &cobra.Command{
		Use:          "presence-debug",
		Short:        "Inspect and exercise the presence matrix from a shell",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if debug {
				level = zerolog.DebugLevel
			}
			logFile = logging.Init(level, logPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&logPath, "log-file", "", "Append logs to this file instead of the console")

	root.AddCommand(newFetchCmd(), newIconsCmd(), newLEDCmd(), newInstallServiceCmd())
	return root
}

func newFetchCmd() *cobra.Command {
	var iface string
	var skipLink bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Poll presence once and print the icon that would be shown",
		RunE: func(cmd *cobra.Command, args []string) error {
			var link network.Link = network.NewWiFi(iface, config.WiFiSSID, config.WiFiPassword)
			if skipLink {
				link = anyLink{}
			}

			p := presence.NewFetcher(config.BuildCredentials(), link).FetchPresence(context.Background())

			buf := matrix.NewBuffer(255, nil)
			renderer.New(buf, icons.Default()).Render(p)

			fmt.Fprintf(cmd.OutOrStdout(), "presence: %s\n%s", p, matrix.Render(buf.Shown()))
			return nil
		},
	}
	cmd.Flags().StringVar(&iface, "interface", "wlan0", "Wireless interface to check for association")
	cmd.Flags().BoolVar(&skipLink, "skip-link-check", false, "Poll even when the interface reports no association")
	return cmd
}

func newIconsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "Print the compiled-in icons",
		RunE: func(cmd *cobra.Command, args []string) error {
			set := icons.Default()
			fmt.Fprintf(cmd.OutOrStdout(), "busy (%s):\n%s\navailable (%s):\n%s",
				model.PresenceActive, set.Cross, model.PresenceAway, set.Check)
			return nil
		},
	}
}

func newLEDCmd() *cobra.Command {
	var pin model.GPIOPin
	var safe bool

	cmd := &cobra.Command{
		Use:       "led on|off|status",
		Short:     "Drive or read the status LED",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			gpio.SetSafeMode(safe)
			led := gpio.NewStatusLED(pin)

			switch args[0] {
			case "on":
				return led.Set(true)
			case "off":
				return led.Off()
			default:
				active, err := gpio.CurrentlyActive(pin)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "GPIO %d lit: %v\n", pin.Number, active)
				return nil
			}
		},
	}
	cmd.Flags().IntVar(&pin.Number, "pin", 17, "GPIO number of the status LED")
	cmd.Flags().BoolVar(&pin.ActiveHigh, "active-high", true, "LED lights when the pin is driven high")
	cmd.Flags().BoolVar(&safe, "safe-mode", false, "Do not write to GPIO")
	return cmd
}

func newInstallServiceCmd() *cobra.Command {
	var opts startup.ServiceOptions

	cmd := &cobra.Command{
		Use:   "install-service [-- presence-matrix flags]",
		Short: "Write a systemd unit for presence-matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Args = args
			if err := startup.InstallService(opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.UnitPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.UnitPath, "unit-path", "/etc/systemd/system/presence-matrix.service", "Where to write the unit file")
	cmd.Flags().StringVar(&opts.Binary, "binary", "/usr/local/bin/presence-matrix", "Path of the presence-matrix binary")
	cmd.Flags().StringVar(&opts.User, "user", "root", "User the service runs as")
	return cmd
}
