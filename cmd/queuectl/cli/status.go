package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print queue statistics and the current configuration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		stats, err := store.Stats()
		if err != nil {
			return err
		}
		cfg, err := store.GetConfig()
		if err != nil {
			return err
		}

		fmt.Printf("pending:    %d\n", stats.Pending)
		fmt.Printf("processing: %d\n", stats.Processing)
		fmt.Printf("completed:  %d\n", stats.Completed)
		fmt.Printf("failed:     %d\n", stats.Failed)
		fmt.Printf("dead:       %d\n", stats.Dead)
		fmt.Printf("total:      %d\n", stats.Total)
		fmt.Println()
		fmt.Printf("max_retries:       %d\n", cfg.MaxRetries)
		fmt.Printf("backoff_base:      %g\n", cfg.BackoffBase)
		fmt.Printf("backoff_max_delay: %s\n", cfg.BackoffMaxDelay)
		return nil
	},
}
