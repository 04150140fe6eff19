package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfacchin/crewrota/pkg/core/model"
	"github.com/mfacchin/crewrota/pkg/core/timeline"
)

// StatusCmd creates the status command
func StatusCmd(app *AppContext) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "status <worker_code>",
		Short: "Show a worker's resolved status and next scheduled change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}

			snap, _, err := app.Database.Fetch(app.Ctx)
			if err != nil {
				return err
			}

			worker := snap.WorkerByCode(args[0])
			if worker == nil {
				return fmt.Errorf("no worker with code %q", args[0])
			}

			resolved := timeline.ResolveStatus(*worker, date)
			fmt.Printf("\n%s (%s) on %s: %s\n", worker.Name, worker.Code, date, resolved.Status.Label())
			if resolved.Start != nil {
				if resolved.End != nil {
					fmt.Printf("Active record: %s .. %s\n", resolved.Start, resolved.End)
				} else {
					fmt.Printf("Active record: %s .. open-ended\n", resolved.Start)
				}
			}

			if change := timeline.NextStatusChange(*worker, date); change != nil {
				fmt.Printf("Next change:   %s -> %s\n\n", change.Date, change.Status.Label())
			} else {
				fmt.Printf("Next change:   none scheduled\n\n")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Reference date (YYYY-MM-DD, default today)")
	return cmd
}

// parseDateFlag parses an optional --date value, defaulting to today.
func parseDateFlag(s string) (model.Date, error) {
	if s == "" {
		return model.Today(), nil
	}
	return model.ParseDate(s)
}
