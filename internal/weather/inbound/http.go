package inbound

import (
	"context"
	"io"

	"github.com/shandysiswandi/gobrc/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gobrc/internal/weather/entity"
	"github.com/shandysiswandi/gobrc/internal/weather/usecase"
)

type uc interface {
	Submit(ctx context.Context, file string) (usecase.SubmitResult, error)
	Upload(ctx context.Context, r io.Reader) (usecase.SubmitResult, error)
	Job(ctx context.Context, jobID string) (entity.JobMeta, error)
	Jobs(ctx context.Context) (usecase.JobsResult, error)
	Stations(ctx context.Context, jobID string, filter usecase.StationFilter, page, pageSize int) (usecase.StationsResult, error)
	Report(ctx context.Context, jobID string) (usecase.ReportResult, error)
	Delete(ctx context.Context, jobID string) error
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/jobs", end.SubmitJob)
	r.POST("/uploads", end.UploadJob)

	r.GET("/jobs", end.ListJobs)
	r.GET("/jobs/:id", end.GetJob)
	r.GET("/jobs/:id/stations", end.JobStations) // ?prefix=&page=&page_size=
	r.GET("/jobs/:id/report", end.JobReport)
	r.DELETE("/jobs/:id", end.DeleteJob)
}
