package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/soleneko/starfall/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Starts a Wish SSH server so players can connect and play
over SSH without installing anything:

  ssh -p 23234 localhost

Examples:
  starfall serve
  starfall serve --ssh :2222
  starfall serve --host-key /etc/starfall/host_key`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH listen address")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key (auto-generated if empty)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle connection timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
	}

	srv, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	return srv.ListenAndServe()
}
