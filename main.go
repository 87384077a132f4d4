// Command gobrc serves weather aggregation jobs over HTTP.
package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/gobrc/internal/app"
)

const shutdownTimeout = 15 * time.Second

func main() {
	application := app.New()
	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	application.Stop(ctx)
}
