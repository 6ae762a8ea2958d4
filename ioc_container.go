package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"germination_tracker/config"
	"germination_tracker/database"
	"germination_tracker/garden"
	"germination_tracker/library"
	"germination_tracker/notify"
)

// IOC container
type GTS struct {
	broker   *notify.MessageBroker
	db       *gorm.DB
	plants   *garden.PlantsManager
	library  *library.Service
	listener *notify.Listener
	appCtx   context.Context
	config   *config.AppConfig
	log      zerolog.Logger
}

type GTSOption func(*GTS) error

func NewGTS(ctx context.Context, opts ...GTSOption) (*GTS, error) {
	gts := &GTS{
		config: config.DefaultConfig(),
		appCtx: ctx,
		log:    zerolog.Nop(),
	}

	for _, opt := range opts {
		if err := opt(gts); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if gts.db == nil {
		db, err := database.InitDatabase(gts.config.DBPath, gts.log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		gts.db = db
	}

	if gts.config.AutoMigrate {
		if err := database.AutoMigrate(gts.db, &garden.Plant{}, &garden.PlantEvent{}, &database.Setting{}); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	gts.plants = garden.NewPlantsManager(gts.db, gts.log)
	if err := gts.plants.LoadPlants(ctx); err != nil {
		return nil, fmt.Errorf("failed to load plants: %w", err)
	}

	gts.broker = notify.NewMessageBroker(gts.log)
	gts.library = library.NewService(ctx, gts.plants, database.NewSettingsStore(gts.db), gts.broker, gts.log)
	return gts, nil
}

// StartChangeLog logs every library change until ctx ends or Close is called.
func (g *GTS) StartChangeLog(ctx context.Context) {
	log := g.log.With().Str("component", "changes").Logger()
	g.listener = notify.NewListener(g.broker, notify.TopicLibrary, notify.HandlerFunc(func(c notify.Change) {
		log.Info().
			Str("kind", string(c.Kind)).
			Str("plant", c.PlantID.String()).
			Str("sort_option", c.SortOption).
			Msg("library changed")
	}))
	g.listener.Start(ctx)
}

// Close stops the change log and releases the database.
func (g *GTS) Close() error {
	if g.listener != nil {
		g.listener.Shutdown()
		g.listener = nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (g *GTS) Library() *library.Service { return g.library }

func (g *GTS) Config() *config.AppConfig { return g.config }

func WithDatabase(db *gorm.DB) GTSOption {
	return func(gts *GTS) error {
		gts.db = db
		return nil
	}
}

func WithConfig(cfg *config.AppConfig) GTSOption {
	return func(gts *GTS) error {
		if cfg == nil {
			return fmt.Errorf("nil config")
		}
		gts.config = cfg
		return nil
	}
}

func WithLogger(log zerolog.Logger) GTSOption {
	return func(gts *GTS) error {
		gts.log = log
		return nil
	}
}

func WithPort(port int) GTSOption {
	return func(gts *GTS) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port %d", port)
		}
		gts.config.Port = port
		return nil
	}
}
