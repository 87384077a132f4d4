package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/shandysiswandi/gobrc/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gobrc/internal/pkg/pkglog"
	"github.com/shandysiswandi/gobrc/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gobrc/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gobrc/internal/pkg/pkguid"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	goroutine *pkgroutine.Manager

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	// module resources, closed in order after the HTTP server and jobs stop
	closers []closer
}

func New() *App {
	pkglog.InitLogging(os.Stdout, slog.LevelInfo)

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}
