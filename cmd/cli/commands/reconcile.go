package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfacchin/crewrota/pkg/core/model"
	"github.com/mfacchin/crewrota/pkg/core/timeline"
	"github.com/mfacchin/crewrota/pkg/syncer"
)

// ReconcileCmd creates the reconcile command
func ReconcileCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconciliation pass over every worker's cached status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := app.NewEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			changed := false
			engine.Mutate(func(s *model.Snapshot) bool {
				changed = timeline.Reconcile(s, model.Today(), app.Logger)
				return changed
			})

			if !changed {
				fmt.Printf("\n✓ All cached statuses already match the timeline\n\n")
				return nil
			}

			if err := engine.Flush(app.Ctx); err != nil {
				if errors.Is(err, syncer.ErrConflict) {
					return fmt.Errorf("another editor changed the schedule, reload and retry: %w", err)
				}
				return err
			}

			fmt.Printf("\n✓ Stale cached statuses corrected\n\n")
			return nil
		},
	}
}
