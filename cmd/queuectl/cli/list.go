package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synqueue/queuectl/job"
)

var (
	listState string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print active jobs, optionally filtered by state.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		var jobs []*job.Job
		if listState != "" {
			s, err := job.ParseStatus(listState)
			if err != nil {
				return err
			}
			jobs, err = store.ByState(s)
			if err != nil {
				return err
			}
		} else {
			jobs, err = store.All()
			if err != nil {
				return err
			}
		}

		if listLimit > 0 && len(jobs) > listLimit {
			jobs = jobs[:listLimit]
		}
		for _, j := range jobs {
			printJob(j)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listState, "state", "", "filter by state (pending|processing|completed|failed|dead)")
	listCmd.Flags().IntVar(&listLimit, "limit", 10, "maximum number of jobs to print")
}

func printJob(j *job.Job) {
	errMsg := ""
	if j.ErrorMessage != nil {
		errMsg = *j.ErrorMessage
	}
	fmt.Printf("%s\t%s\t%s\tattempts=%d/%d\t%s\n", j.Id, j.Status, j.Command, j.Attempts, j.MaxRetries, errMsg)
}
