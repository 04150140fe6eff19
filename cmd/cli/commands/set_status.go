package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfacchin/crewrota/pkg/core/model"
	"github.com/mfacchin/crewrota/pkg/core/timeline"
	"github.com/mfacchin/crewrota/pkg/syncer"
)

// SetStatusCmd creates the set-status command
func SetStatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <worker_code> <status> <start> [end]",
		Short: "Add a status record to a worker's timeline, replacing any overlapping records",
		Long: `Adds a date-ranged status record (vacation, medical_leave, parental_leave,
available) to a worker's timeline. Existing records that overlap the new range
are replaced wholesale. Omitting the end date makes the record open-ended.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := model.Status(args[1])
			if !status.IsValid() {
				return fmt.Errorf("invalid status %q", args[1])
			}

			start, err := model.ParseDate(args[2])
			if err != nil {
				return err
			}
			var end *model.Date
			if len(args) == 4 {
				parsed, err := model.ParseDate(args[3])
				if err != nil {
					return err
				}
				if parsed.Before(start) {
					return fmt.Errorf("end date %s precedes start date %s", parsed, start)
				}
				end = &parsed
			}

			engine, err := app.NewEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			found := false
			engine.Mutate(func(s *model.Snapshot) bool {
				worker := s.WorkerByCode(args[0])
				if worker == nil {
					return false
				}
				found = true
				*worker = timeline.InsertOrReplaceRecord(*worker, status, start, end)
				return true
			})
			if !found {
				return fmt.Errorf("no worker with code %q", args[0])
			}

			if err := engine.Flush(app.Ctx); err != nil {
				if errors.Is(err, syncer.ErrConflict) {
					return fmt.Errorf("another editor changed the schedule, reload and retry: %w", err)
				}
				return err
			}

			fmt.Printf("\n✓ Status record saved for %s\n\n", args[0])
			return nil
		},
	}
}
