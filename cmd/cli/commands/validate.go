package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfacchin/crewrota/pkg/core/validate"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <worker_code> <job_id>",
		Short: "Check whether a worker may be assigned to a job slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := app.Database.Fetch(app.Ctx)
			if err != nil {
				return err
			}

			worker := snap.WorkerByCode(args[0])
			if worker == nil {
				return fmt.Errorf("no worker with code %q", args[0])
			}
			job := snap.JobByID(args[1])
			if job == nil {
				return fmt.Errorf("no job with id %q", args[1])
			}

			holidays, err := app.HolidayResolver(&snap)
			if err != nil {
				return err
			}

			result := validate.Validate(*worker, *job, snap.Jobs, snap.Clients, holidays)
			switch {
			case result.Error != nil:
				fmt.Printf("\n✗ Blocked: %s\n\n", result.Error.Message)
			case result.Warning != nil:
				fmt.Printf("\n⚠ Warning: %s\n\n", result.Warning.Message)
			default:
				fmt.Printf("\n✓ %s may be assigned to job %s on %s\n\n", worker.Name, job.ID, job.Date)
			}

			// Double-booking is informational only and never blocks.
			if overlaps := validate.TimeOverlaps(*worker, *job, snap.Jobs); len(overlaps) > 0 {
				fmt.Printf("Overlapping jobs the same day:\n")
				for _, other := range overlaps {
					window := other.WindowFor(worker.ID)
					fmt.Printf("  - %s (%s-%s)\n", other.ID, window.Start, window.End)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
