package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synqueue/queuectl"
	"github.com/synqueue/queuectl/job"
)

var enqueueCmd = &cobra.Command{
	Use:   "enqueue <json>",
	Short: "Parse a Job JSON document and add it to the queue.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var j job.Job
		if err := json.Unmarshal([]byte(args[0]), &j); err != nil {
			return fmt.Errorf("parsing job JSON: %w", err)
		}
		if j.Id == "" || j.Command == "" {
			return fmt.Errorf("job JSON must set both \"id\" and \"command\"")
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		q := queuectl.NewQueue(store)
		if err := q.Enqueue(&j); err != nil {
			return err
		}
		fmt.Printf("enqueued %s\n", j.Id)
		return nil
	},
}
