package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/shandysiswandi/gobrc/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gobrc/internal/pkg/pkglog"
	"github.com/shandysiswandi/gobrc/internal/pkg/pkguid"
	"github.com/shandysiswandi/gobrc/internal/weather/engine"
	"github.com/shandysiswandi/gobrc/internal/weather/entity"
)

type Store interface {
	CreateJob(ctx context.Context, meta entity.JobMeta) error
	UpdateMeta(ctx context.Context, jobID string, fn func(meta *entity.JobMeta)) error
	SaveResult(ctx context.Context, jobID string, stations []entity.Station, report string) error
	GetJob(ctx context.Context, jobID string) (entity.JobMeta, error)
	GetResult(ctx context.Context, jobID string) ([]entity.Station, string, entity.JobMeta, error)
	ListJobs(ctx context.Context) ([]entity.JobMeta, error)
	DeleteJob(ctx context.Context, jobID string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.JobFinishedEvent) error
}

// Runner schedules background work without blocking the caller. abort runs
// instead of f when ctx ends before f could start.
type Runner interface {
	Queue(ctx context.Context, f func(ctx context.Context) error, abort func(err error))
}

type Clock interface {
	Now() time.Time
}

type Computer interface {
	Compute(ctx context.Context, path string) (*engine.Final, error)
	Workers() int
}

type Dependency struct {
	Store    Store
	Events   EventPublisher
	Runner   Runner
	Clock    Clock
	Engine   Computer
	JobID    pkguid.NumberID
	EventID  pkguid.StringID
	DataDir  string
	SpoolDir string
	RootCtx  context.Context
}

type Usecase struct {
	store    Store
	events   EventPublisher
	runner   Runner
	clock    Clock
	engine   Computer
	jobID    pkguid.NumberID
	eventID  pkguid.StringID
	dataDir  string
	spoolDir string
	rootCtx  context.Context
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	return &Usecase{
		store:    dep.Store,
		events:   dep.Events,
		runner:   dep.Runner,
		clock:    clock,
		engine:   dep.Engine,
		jobID:    dep.JobID,
		eventID:  dep.EventID,
		dataDir:  dep.DataDir,
		spoolDir: dep.SpoolDir,
		rootCtx:  root,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Submit queues a job over a file inside the data directory.
func (u *Usecase) Submit(ctx context.Context, file string) (SubmitResult, error) {
	if err := u.ready(); err != nil {
		return SubmitResult{}, err
	}

	path, size, err := resolveFile(u.dataDir, file)
	if err != nil {
		return SubmitResult{}, err
	}

	return u.start(ctx, entity.JobMeta{
		Source: entity.JobSourceFile,
		File:   file,
		Bytes:  size,
	}, path, nil)
}

// Upload spools r to disk and queues a job over it. The spooled file is
// removed once the job finishes.
func (u *Usecase) Upload(ctx context.Context, r io.Reader) (SubmitResult, error) {
	if err := u.ready(); err != nil {
		return SubmitResult{}, err
	}

	path, size, err := spool(u.spoolDir, r)
	if err != nil {
		return SubmitResult{}, pkgerror.NewServer(err)
	}

	cleanup := func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to remove spooled upload", "path", path, "error", err)
		}
	}

	res, err := u.start(ctx, entity.JobMeta{
		Source: entity.JobSourceUpload,
		Bytes:  size,
	}, path, cleanup)
	if err != nil {
		cleanup()
	}

	return res, err
}

func (u *Usecase) Job(ctx context.Context, jobID string) (entity.JobMeta, error) {
	if jobID == "" {
		return entity.JobMeta{}, pkgerror.NewInvalidInput(errors.New("job id is required"))
	}

	meta, err := u.store.GetJob(ctx, jobID)
	if err != nil {
		return entity.JobMeta{}, mapStoreErr(err)
	}

	return meta, nil
}

func (u *Usecase) Jobs(ctx context.Context) (JobsResult, error) {
	jobs, err := u.store.ListJobs(ctx)
	if err != nil {
		return JobsResult{}, normalizeErr(err)
	}

	return JobsResult{Jobs: jobs}, nil
}

func (u *Usecase) Stations(ctx context.Context, jobID string, filter StationFilter, page, pageSize int) (StationsResult, error) {
	if jobID == "" {
		return StationsResult{}, pkgerror.NewInvalidInput(errors.New("job id is required"))
	}

	if page < 1 || pageSize < 1 {
		return StationsResult{}, pkgerror.NewInvalidInput(errors.New("invalid pagination"))
	}

	stations, _, meta, err := u.store.GetResult(ctx, jobID)
	if err != nil {
		return StationsResult{}, mapStoreErr(err)
	}
	if err := resultErr(meta); err != nil {
		return StationsResult{}, err
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	total := 0
	rows := make([]entity.Station, 0, pageSize)
	for _, st := range stations {
		if !filter.Matches(st) {
			continue
		}
		if total >= start && total < end {
			rows = append(rows, st)
		}
		total++
	}

	return StationsResult{
		JobID:    jobID,
		Status:   meta.Status,
		Stations: rows,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

func (u *Usecase) Report(ctx context.Context, jobID string) (ReportResult, error) {
	if jobID == "" {
		return ReportResult{}, pkgerror.NewInvalidInput(errors.New("job id is required"))
	}

	_, report, meta, err := u.store.GetResult(ctx, jobID)
	if err != nil {
		return ReportResult{}, mapStoreErr(err)
	}
	if err := resultErr(meta); err != nil {
		return ReportResult{}, err
	}

	return ReportResult{JobID: jobID, Report: report}, nil
}

// Delete drops a finished job and its result.
func (u *Usecase) Delete(ctx context.Context, jobID string) error {
	meta, err := u.Job(ctx, jobID)
	if err != nil {
		return err
	}
	if !meta.Status.Finished() {
		return pkgerror.NewBusiness("job is still running", pkgerror.CodeConflict)
	}

	if err := u.store.DeleteJob(ctx, jobID); err != nil {
		return mapStoreErr(err)
	}

	return nil
}

func (u *Usecase) ready() error {
	if u.store == nil || u.jobID == nil || u.runner == nil || u.engine == nil {
		return pkgerror.NewServer(errors.New("missing dependency"))
	}
	return nil
}

func (u *Usecase) start(ctx context.Context, meta entity.JobMeta, path string, cleanup func()) (SubmitResult, error) {
	meta.ID = strconv.FormatInt(u.jobID.Generate(), 10)
	meta.Status = entity.JobStatusQueued
	meta.CreatedAt = u.clock.Now().UnixMilli()
	meta.Workers = u.engine.Workers()

	if err := u.store.CreateJob(ctx, meta); err != nil {
		return SubmitResult{}, normalizeErr(err)
	}

	jobID := meta.ID
	jobCtx := pkglog.Detach(u.rootCtx, pkglog.SetJobID(ctx, jobID))
	u.runner.Queue(jobCtx, func(ctx context.Context) error {
		if cleanup != nil {
			defer cleanup()
		}

		if err := u.processJob(ctx, jobID, path); err != nil {
			slog.ErrorContext(ctx, "job processing failed", "error", err)
			return err
		}
		return nil
	}, func(cause error) {
		if cleanup != nil {
			defer cleanup()
		}

		if err := u.finish(jobCtx, jobID, "", fmt.Errorf("job canceled before start: %w", cause)); err != nil {
			slog.ErrorContext(jobCtx, "failed to record canceled job", "error", err)
		}
	})

	return SubmitResult{JobID: jobID, Status: entity.JobStatusQueued}, nil
}

// processJob runs the engine over path. A failed computation is recorded on
// the job, not returned; only errors the job record could not absorb are.
func (u *Usecase) processJob(ctx context.Context, jobID, path string) error {
	startedAt := u.clock.Now().UnixMilli()
	if err := u.store.UpdateMeta(ctx, jobID, func(meta *entity.JobMeta) {
		meta.Status = entity.JobStatusProcessing
		meta.StartedAt = startedAt
	}); err != nil {
		return err
	}

	final, err := u.engine.Compute(ctx, path)
	if err != nil {
		return u.finish(ctx, jobID, "", err)
	}

	report := engine.Render(final)
	if err := u.store.SaveResult(ctx, jobID, toStations(final), report); err != nil {
		return u.finish(ctx, jobID, "", fmt.Errorf("save result: %w", err))
	}

	return u.finish(ctx, jobID, report, nil)
}

// finish moves a job to its terminal status and publishes it. A nil cause
// means success. If a successful job cannot be marked DONE it is marked
// FAILED instead, so no job is left QUEUED or PROCESSING.
func (u *Usecase) finish(ctx context.Context, jobID, report string, cause error) error {
	ctx = context.WithoutCancel(ctx)

	err := u.markFinished(ctx, jobID, cause)
	if err != nil && cause == nil {
		cause = fmt.Errorf("record result: %w", err)
		err = u.markFinished(ctx, jobID, cause)
	}

	status := entity.JobStatusDone
	if cause != nil {
		status = entity.JobStatusFailed
		report = ""
		slog.WarnContext(ctx, "job failed", "error", cause)
	}
	u.publish(ctx, jobID, status, report)

	return err
}

func (u *Usecase) markFinished(ctx context.Context, jobID string, cause error) error {
	status := entity.JobStatusDone
	errMsg, errCode := "", ""
	if cause != nil {
		status = entity.JobStatusFailed
		errMsg = cause.Error()
		errCode = mapEngineErr(cause).Code().String()
	}

	endedAt := u.clock.Now().UnixMilli()
	return u.store.UpdateMeta(ctx, jobID, func(meta *entity.JobMeta) {
		meta.Status = status
		meta.Err = errMsg
		meta.ErrCode = errCode
		meta.EndedAt = endedAt
	})
}

func (u *Usecase) publish(ctx context.Context, jobID string, status entity.JobStatus, report string) {
	if u.events == nil || u.eventID == nil {
		return
	}

	event := entity.JobFinishedEvent{
		EventID: u.eventID.Generate(),
		JobID:   jobID,
		Status:  status,
		Report:  report,
	}
	if err := u.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event", "job_id", jobID, "event_id", event.EventID, "error", err)
	}
}

func toStations(f *engine.Final) []entity.Station {
	entries := f.Entries()
	stations := make([]entity.Station, 0, len(entries))
	for _, e := range entries {
		stations = append(stations, entity.Station{
			Name:  e.Name,
			Min:   int64(e.Min),
			Mean:  e.Mean(),
			Max:   int64(e.Max),
			Sum:   e.Sum,
			Count: e.Count,
		})
	}

	return stations
}

// resultErr rejects reads of results that do not exist yet or never will.
func resultErr(meta entity.JobMeta) error {
	switch meta.Status {
	case entity.JobStatusDone:
		return nil
	case entity.JobStatusFailed:
		return pkgerror.NewBusiness("job failed: "+meta.Err, failureCode(meta.ErrCode))
	default:
		return pkgerror.NewBusiness("job is not finished", pkgerror.CodeConflict)
	}
}

func failureCode(s string) pkgerror.Code {
	for _, c := range []pkgerror.Code{
		pkgerror.CodeNotFound,
		pkgerror.CodeInvalidInput,
		pkgerror.CodeResourceExhausted,
	} {
		if c.String() == s {
			return c
		}
	}
	return pkgerror.CodeInternal
}

func mapEngineErr(err error) *pkgerror.Error {
	var out error
	switch {
	case errors.Is(err, engine.ErrSourceUnavailable):
		out = pkgerror.NewBusiness("input is unavailable", pkgerror.CodeNotFound)
	case errors.Is(err, engine.ErrMalformedRecord):
		out = pkgerror.NewInvalidInput(err)
	case errors.Is(err, engine.ErrResourceExhausted):
		out = pkgerror.NewResourceExhausted(err)
	default:
		out = pkgerror.NewServer(err)
	}

	var perr *pkgerror.Error
	errors.As(out, &perr)
	return perr
}

func mapStoreErr(err error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness("job not found", pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
