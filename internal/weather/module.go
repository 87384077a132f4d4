package weather

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shandysiswandi/gobrc/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gobrc/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gobrc/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gobrc/internal/pkg/pkguid"
	"github.com/shandysiswandi/gobrc/internal/weather/engine"
	"github.com/shandysiswandi/gobrc/internal/weather/event"
	"github.com/shandysiswandi/gobrc/internal/weather/inbound"
	"github.com/shandysiswandi/gobrc/internal/weather/store"
	"github.com/shandysiswandi/gobrc/internal/weather/usecase"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
}

// EngineOptions reads the engine tuning keys. Unset keys leave the engine
// defaults in place.
func EngineOptions(cfg pkgconfig.Config) engine.Options {
	return engine.Options{
		Workers:     int(cfg.GetInt("modules.weather.workers")),
		MaxStations: int(cfg.GetInt("modules.weather.max_stations")),
		BlockSize:   int(cfg.GetInt("modules.weather.block_size")),
	}
}

func New(dep Dependency) (func(context.Context) error, error) {
	jobID, err := pkguid.NewSnowflake(dep.Config.GetInt("modules.weather.node_id"))
	if err != nil {
		return nil, fmt.Errorf("init job id generator: %w", err)
	}

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	spoolDir := dep.Config.GetString("modules.weather.spool_dir")
	if spoolDir != "" {
		if err := os.MkdirAll(spoolDir, 0o750); err != nil {
			return nil, fmt.Errorf("create spool dir: %w", err)
		}
	}

	var archiver event.Handler = event.NoopArchiver{}
	if dir := dep.Config.GetString("modules.weather.archive_dir"); dir != "" {
		fa, err := event.NewFileArchiver(dir)
		if err != nil {
			return nil, err
		}
		archiver = fa
	}

	bus := event.NewBus(512)
	consumer := event.NewArchiveConsumer(bus, archiver, event.ConsumerConfig{
		Workers:     2,
		MaxRetries:  3,
		BaseBackoff: 200 * time.Millisecond,
	})
	consumer.Start()

	eng := engine.New(EngineOptions(dep.Config))

	uc := usecase.New(usecase.Dependency{
		Store:    store.NewInMemoryStore(),
		Events:   bus,
		Runner:   dep.Goroutine,
		Engine:   eng,
		JobID:    jobID,
		EventID:  dep.ID,
		DataDir:  dep.Config.GetString("modules.weather.data_dir"),
		SpoolDir: spoolDir,
		RootCtx:  dep.Context,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	slog.Info("weather module ready",
		"workers", eng.Workers(),
		"data_dir", dep.Config.GetString("modules.weather.data_dir"),
	)

	return consumer.Stop, nil
}
