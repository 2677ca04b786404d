// Package cli implements the queuectl command-line surface: a cobra
// command tree wired to the queuectl/fsstore package, with the data
// directory resolved the way storacha-piri resolves PIRI_DATA_DIR —
// a persistent flag bound through viper to an environment variable.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/synqueue/queuectl/fsstore"
)

var dataDirFlag string

var rootCmd = &cobra.Command{
	Use:   "queuectl",
	Short: "A durable, file-backed background job queue.",
	Long: `queuectl runs shell commands as background jobs, persisted to a
local data directory, with retries, exponential backoff, and a dead
letter queue for jobs that exhaust their retries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "queuectl data directory")
	cobra.CheckErr(viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir")))
	cobra.CheckErr(viper.BindEnv("data_dir", "QUEUECTL_DATA_DIR"))

	rootCmd.AddCommand(enqueueCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dlqCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(reclaimCmd)

	// workerRunCmd is the re-exec entry point a spawned worker process
	// invokes; it is not meant for interactive use.
	workerRunCmd.Hidden = true
	workerCmd.AddCommand(workerRunCmd)
}

func initConfig() {
	viper.AutomaticEnv()
}

// resolvedDataDir returns the configured data directory, defaulting
// to .queuectl under the current working directory.
func resolvedDataDir() string {
	if dir := viper.GetString("data_dir"); dir != "" {
		return dir
	}
	return filepath.Join(".", ".queuectl")
}

func openStore() (*fsstore.Store, error) {
	dir := resolvedDataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return fsstore.Open(dir)
}

func logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// Execute runs the queuectl command tree. It exits the process with
// status 1 on any user-visible error, per the CLI's exit code
// contract.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
