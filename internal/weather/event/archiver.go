package event

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pechorka/stdlib/pkg/errs"
	"github.com/shandysiswandi/gobrc/internal/weather/entity"
)

// FileArchiver writes the report of every successful job to
// <dir>/<job id>.txt. Rewrites replace the file atomically, so handling the
// same event twice is harmless.
type FileArchiver struct {
	dir string
}

func NewFileArchiver(dir string) (*FileArchiver, error) {
	if dir == "" {
		return nil, errors.New("archive dir is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errs.Wrap(err, "create archive dir")
	}

	return &FileArchiver{dir: dir}, nil
}

func (a *FileArchiver) Handle(ctx context.Context, event entity.JobFinishedEvent) error {
	if event.JobID == "" {
		return errors.New("missing job id")
	}
	if event.Status != entity.JobStatusDone {
		slog.InfoContext(ctx, "skip archiving unsuccessful job", "job_id", event.JobID, "status", event.Status)
		return nil
	}

	tmp, err := os.CreateTemp(a.dir, ".job-*.tmp")
	if err != nil {
		return errs.Wrap(err, "create temp report")
	}

	_, err = tmp.WriteString(event.Report)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), a.Path(event.JobID))
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return errs.Wrap(err, "archive report")
	}

	slog.InfoContext(ctx, "archived job report", "job_id", event.JobID, "bytes", len(event.Report))
	return nil
}

// Path returns where the report of jobID is archived.
func (a *FileArchiver) Path(jobID string) string {
	return filepath.Join(a.dir, jobID+".txt")
}

type NoopArchiver struct{}

func (NoopArchiver) Handle(ctx context.Context, event entity.JobFinishedEvent) error {
	if event.EventID == "" {
		return errors.New("missing event id")
	}

	slog.Info("job finished", "event_id", event.EventID, "job_id", event.JobID, "status", event.Status)
	return nil
}
