package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the persisted queue configuration.",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		cfg, err := store.GetConfig()
		if err != nil {
			return err
		}
		fmt.Printf("max-retries:       %d\n", cfg.MaxRetries)
		fmt.Printf("backoff-base:      %g\n", cfg.BackoffBase)
		fmt.Printf("backoff-max-delay: %s\n", cfg.BackoffMaxDelay)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single configuration key.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		cfg, err := store.GetConfig()
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		switch key {
		case "max-retries":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid max-retries value %q: %w", value, err)
			}
			cfg.MaxRetries = uint32(n)
		case "backoff-base":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("invalid backoff-base value %q: %w", value, err)
			}
			cfg.BackoffBase = f
		case "backoff-max-delay":
			secs, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid backoff-max-delay value %q: %w", value, err)
			}
			cfg.BackoffMaxDelay = time.Duration(secs) * time.Second
		default:
			return fmt.Errorf("unknown config key %q", key)
		}

		return store.SetConfig(cfg)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
