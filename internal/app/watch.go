package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/blackwell-systems/cvswitch/internal/config"
	"github.com/blackwell-systems/cvswitch/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchDaemon      bool
	watchDaemonChild bool
	watchStop        bool

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Monitor the active installation for external changes",
		Long: `Watch the active OpenCV installation directories for modifications made
outside cvswitch.

A manual 'make install' or a distro package upgrade silently replaces
the files cvswitch believes belong to the active version. The watcher
journals such changes and warns that the active version should be
re-saved before the next switch.

Watch modes:
  • Foreground (default): run in the current terminal, Ctrl+C to stop
  • Daemon: run as a background process
  • Stop: stop a running daemon`,
		Example: `  # Run in foreground (Ctrl+C to stop)
  cvswitch watch

  # Run as background daemon
  cvswitch watch --daemon

  # Stop running daemon
  cvswitch watch --stop`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop a running daemon")
	watchCmd.Flags().MarkHidden("daemon-child")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if watchStop {
		if err := watcher.StopDaemon(cfg.PIDFile); err != nil {
			return err
		}
		fmt.Println("Watcher stopped")
		return nil
	}

	if watchDaemon {
		if err := watcher.StartDaemon(cfg.PIDFile, cfg.LogFile); err != nil {
			return err
		}
		fmt.Printf("Watcher running in background (log: %s)\n", cfg.LogFile)
		return nil
	}

	w, err := buildWatcher(cfg)
	if err != nil {
		return err
	}

	if watchDaemonChild {
		// Record our PID for --stop; the parent already wrote the child
		// PID, this refreshes it after the re-exec.
		os.WriteFile(cfg.PIDFile, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644)
		return w.RunDaemon(cfg.PIDFile)
	}

	if err := w.Start(); err != nil {
		return err
	}
	fmt.Println("Watching the active installation (Ctrl+C to stop)")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	return w.Stop()
}

// buildWatcher wires a Watcher over the active installation directories:
// the include and lib trees plus the directory holding the active .pc
// file when one is locatable.
func buildWatcher(cfg *config.Config) (*watcher.Watcher, error) {
	inst, err := newDetector().Detect()
	if err != nil {
		return nil, err
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot index: %w", err)
	}

	dirs := []string{inst.IncludeDir, inst.LibDir}
	if loc, err := newLocator(cfg).Locate(inst.Version); err == nil {
		dirs = append(dirs, loc.Dir)
	}

	return watcher.New(st, inst.Version, dirs)
}
