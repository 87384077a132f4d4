package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gobrc/internal/weather"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.weather.enabled") {
		closer, err := weather.New(weather.Dependency{
			Config:    a.config,
			Router:    a.router,
			Goroutine: a.goroutine,
			Context:   a.ctx,
			ID:        a.uuid,
		})
		if err != nil {
			slog.Error("failed to init module weather", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			a.addCloser("Weather", closer)
		}
	}
}
