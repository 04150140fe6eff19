package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfacchin/crewrota/pkg/core/model"
	"github.com/mfacchin/crewrota/pkg/core/timeline"
)

// ListWorkersCmd creates the list-workers command
func ListWorkersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list-workers",
		Short: "List all workers with their contract type and computed status for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := app.Database.Fetch(app.Ctx)
			if err != nil {
				return err
			}

			if len(snap.Workers) == 0 {
				fmt.Printf("\nNo workers in the schedule\n\n")
				return nil
			}

			today := model.Today()
			fmt.Printf("\n%-8s %-25s %-14s %s\n", "CODE", "NAME", "CONTRACT", "STATUS")
			for _, worker := range snap.Workers {
				resolved := timeline.ResolveStatus(worker, today)
				fmt.Printf("%-8s %-25s %-14s %s\n", worker.Code, worker.Name, worker.Contract, resolved.Status.Label())
			}
			fmt.Println()

			return nil
		},
	}
}
