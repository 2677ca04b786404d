package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/synqueue/queuectl"
	"github.com/synqueue/queuectl/runner"
)

var workerCount int

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run or supervise queue worker processes.",
}

var workerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Spawn N independent worker processes and wait for them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSupervisor(cmd.Context(), workerCount)
	},
}

var workerRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single worker process (invoked by 'worker start').",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorker(cmd.Context(), workerIDFlag)
	},
}

var workerIDFlag int

func init() {
	workerStartCmd.Flags().IntVar(&workerCount, "count", 1, "number of worker processes to spawn")
	workerCmd.AddCommand(workerStartCmd)

	workerRunCmd.Flags().IntVar(&workerIDFlag, "id", 0, "worker id, for log lines only")
}

func runWorker(ctx context.Context, id int) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	q := queuectl.NewQueue(store)
	cfg := queuectl.DefaultWorkerConfig(id)
	cfg.ReclaimInterval = time.Minute

	w := queuectl.NewWorker(q, store, runner.NewShell(), cfg, logger())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop(10 * time.Second)
}

// runSupervisor spawns count independent "worker run" child processes,
// relays SIGINT/SIGTERM to them, waits up to 5s for a graceful exit,
// then kills stragglers. It shares no in-memory state with its
// children; all coordination happens through the Store.
func runSupervisor(ctx context.Context, count int) error {
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolving own executable: %w", err)
	}

	cmds := make([]*exec.Cmd, count)
	for i := range cmds {
		c := exec.Command(self, "worker", "run", "--id", strconv.Itoa(i+1))
		if dataDirFlag != "" {
			c.Args = append(c.Args, "--data-dir", dataDirFlag)
		}
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Start(); err != nil {
			return fmt.Errorf("starting worker %d: %w", i+1, err)
		}
		cmds[i] = c
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for _, c := range cmds {
			wg.Add(1)
			go func(c *exec.Cmd) {
				defer wg.Done()
				_ = c.Wait()
			}(c)
		}
		wg.Wait()
	}()

	select {
	case <-done:
		return nil
	case <-sigCh:
	case <-ctx.Done():
	}

	for _, c := range cmds {
		if c.Process != nil {
			_ = c.Process.Signal(syscall.SIGTERM)
		}
	}

	select {
	case <-done:
		return nil
	case <-time.After(5 * time.Second):
	}

	for _, c := range cmds {
		if c.Process != nil {
			_ = c.Process.Kill()
		}
	}
	<-done
	return nil
}
