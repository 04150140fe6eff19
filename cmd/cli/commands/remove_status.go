package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfacchin/crewrota/pkg/core/model"
	"github.com/mfacchin/crewrota/pkg/core/timeline"
	"github.com/mfacchin/crewrota/pkg/syncer"
)

// RemoveStatusCmd creates the remove-status command
func RemoveStatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-status <worker_code> <record_id>",
		Short: "Delete a status record from a worker's timeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
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
				before := len(worker.StatusRecords)
				*worker = timeline.RemoveRecord(*worker, args[1])
				return len(worker.StatusRecords) != before
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

			fmt.Printf("\n✓ Record %s removed from %s\n\n", args[1], args[0])
			return nil
		},
	}
}
