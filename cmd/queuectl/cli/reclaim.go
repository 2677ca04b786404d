package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synqueue/queuectl"
)

var reclaimCmd = &cobra.Command{
	Use:   "reclaim",
	Short: "Recover jobs stuck in Processing because their worker died.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		q := queuectl.NewQueue(store)
		r := queuectl.NewReclaimer(q, store, 0, logger())
		n, err := r.Reconcile(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("reclaimed %d job(s)\n", n)
		return nil
	},
}
