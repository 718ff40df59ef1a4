package cmd

import (
	"time"

	"github.com/hirewire/hirewire-backend/hirewire-session/cmd/server"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/build"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hirewire-session",
		Short: "HireWire session backend (notifications, chat rooms, call signaling)",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}

			logrus.SetFormatter(&logrus.TextFormatter{
				FullTimestamp:   true,
				TimestampFormat: time.RFC3339Nano,
			})
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "make output more verbose")

	cmd.AddCommand(
		NewVersionCommand(),
		server.NewServeCommand(),
	)
	return cmd
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "prints build information",
		Run: func(cmd *cobra.Command, args []string) {
			logrus.Infof("Build time: %s", build.Time)
			logrus.Infof("Go version: %s", build.GoVersion)
		},
	}
}
