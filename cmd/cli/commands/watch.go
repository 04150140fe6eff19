package commands

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mfacchin/crewrota/pkg/core/model"
	"github.com/mfacchin/crewrota/pkg/core/timeline"
)

// WatchCmd creates the watch command
func WatchCmd(app *AppContext) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow remote schedule changes and keep cached statuses reconciled",
		Long: `Runs the sync engine against the shared schedule: remote writes are applied
last-writer-wins, and a periodic reconciliation pass corrects any worker whose
cached status drifted from the status timeline. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := app.NewEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			ctx, cancel := context.WithCancel(app.Ctx)
			defer cancel()

			go func() {
				for err := range engine.Errors() {
					app.Logger.Warn("Background flush error", zap.Error(err))
				}
			}()

			reconciler := timeline.NewReconciler(interval, app.Logger)
			go reconciler.Run(ctx, func(today model.Date) {
				engine.Mutate(func(s *model.Snapshot) bool {
					return timeline.Reconcile(s, today, app.Logger)
				})
			})

			app.Logger.Info("Watching schedule for changes")
			if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Reconciliation interval")
	return cmd
}
