package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synqueue/queuectl"
)

var dlqListLimit int

var dlqCmd = &cobra.Command{
	Use:   "dlq",
	Short: "Inspect and manage the dead letter queue.",
}

var dlqListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print jobs currently in the dead letter queue.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		jobs, err := store.DLQAll()
		if err != nil {
			return err
		}
		if dlqListLimit > 0 && len(jobs) > dlqListLimit {
			jobs = jobs[:dlqListLimit]
		}
		for _, j := range jobs {
			printJob(j)
		}
		return nil
	},
}

var dlqRetryCmd = &cobra.Command{
	Use:   "retry <id>",
	Short: "Move a dead lettered job back to the active set as Pending.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		q := queuectl.NewQueue(store)
		ok, err := q.RequeueFromDLQ(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no dlq job with id %q", args[0])
		}
		fmt.Printf("requeued %s\n", args[0])
		return nil
	},
}

func init() {
	dlqListCmd.Flags().IntVar(&dlqListLimit, "limit", 0, "maximum number of jobs to print (0 = all)")
	dlqCmd.AddCommand(dlqListCmd)
	dlqCmd.AddCommand(dlqRetryCmd)
}
