package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/mfacchin/crewrota/internal/config"
	"github.com/mfacchin/crewrota/pkg/core/holiday"
	"github.com/mfacchin/crewrota/pkg/core/model"
	"github.com/mfacchin/crewrota/pkg/postgres"
	"github.com/mfacchin/crewrota/pkg/syncer"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context
}

// HolidayResolver builds the holiday resolver from the configured overrides
// and the dated holidays carried in the snapshot.
func (app *AppContext) HolidayResolver(snap *model.Snapshot) (*holiday.Resolver, error) {
	overrides, rules, err := app.Cfg.HolidayOverrides()
	if err != nil {
		return nil, err
	}
	return holiday.NewResolver(overrides, snap.Holidays, rules)
}

// NewEngine creates a sync engine bound to the configured store.
func (app *AppContext) NewEngine() (*syncer.Engine, error) {
	return syncer.New(app.Ctx, app.Database, app.Database, app.Logger, syncer.Options{
		Debounce:  app.Cfg.Debounce(),
		Tolerance: app.Cfg.Tolerance(),
	})
}
