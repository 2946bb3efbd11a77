package commands

import (
	"fmt"

	"github.com/wonny/festa/backend/internal/external/tourapi"
	"github.com/wonny/festa/backend/internal/festival"
	"github.com/wonny/festa/backend/internal/generate"
	"github.com/wonny/festa/backend/internal/syncsvc"
	"github.com/wonny/festa/backend/pkg/config"
	"github.com/wonny/festa/backend/pkg/database"
	"github.com/wonny/festa/backend/pkg/httputil"
	"github.com/wonny/festa/backend/pkg/logger"
)

// app holds the wired application dependencies shared by the commands
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	db        *database.DB
	occs      *festival.OccurrenceRepository
	series    *festival.SeriesRepository
	generator *generate.Generator
	sync      *syncsvc.Service
}

// initApp loads config and wires repositories, the generator and the sync service
func initApp() (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// 4. Create repositories
	occs := festival.NewOccurrenceRepository(db.Pool)
	series := festival.NewSeriesRepository(db.Pool)
	uow := festival.NewUnitOfWork(db.Pool)

	// 5. Create generator
	generator := generate.NewGenerator(occs, series, uow, log.Zerolog())

	// 6. Create TourAPI client + sync service
	httpClient := httputil.New(cfg, log)
	tourClient := tourapi.NewClient(httpClient, cfg.TourAPI, log)
	syncService := syncsvc.NewService(tourClient, occs, series, log.Zerolog())

	return &app{
		cfg:       cfg,
		log:       log,
		db:        db,
		occs:      occs,
		series:    series,
		generator: generator,
		sync:      syncService,
	}, nil
}

// close releases the app's resources
func (a *app) close() {
	a.db.Close()
}
