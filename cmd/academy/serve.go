package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/robot-academy/internal/core"
	"github.com/vovakirdan/robot-academy/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServePace   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the academy SSH server",
	Long: `Start an SSH server that lets learners connect and play lessons.

Each SSH connection gets its own session with a lesson picker and its own
robot. Lessons are shared by all sessions.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.academy/host_key

Examples:
  academy serve                           # Listen on :23235 with auto-generated key
  academy serve --ssh :2222               # Listen on port 2222
  academy serve --host-key ./my_host_key  # Use specific host key
  academy serve --lessons ./classroom     # Add a lesson directory

Learners can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(def.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServePace, "pace", "", "Pacing preset: slow, normal, fast, instant")
}

func runServe(_ *cobra.Command, _ []string) {
	if err := applyPace(flagServePace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := app.logger.WithPrefix(app.cfg.Log.Prefix + "-ssh")
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Lesson: tui.Options{
			Engine:  engineOptions(logger),
			Catalog: app.catalog,
			Logger:  logger,
			Config:  core.DefaultConfig(),
		},
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting academy SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
