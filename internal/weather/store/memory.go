package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/gobrc/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gobrc/internal/weather/entity"
	"golang.org/x/exp/maps"
)

type InMemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*jobRecord
}

type jobRecord struct {
	mu       sync.RWMutex
	meta     entity.JobMeta
	stations []entity.Station
	report   string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		jobs: make(map[string]*jobRecord),
	}
}

func (s *InMemoryStore) CreateJob(ctx context.Context, meta entity.JobMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[meta.ID]; exists {
		return pkgerror.NewBusiness("job already exists", pkgerror.CodeConflict)
	}

	s.jobs[meta.ID] = &jobRecord{
		meta: meta,
	}

	return nil
}

func (s *InMemoryStore) UpdateMeta(ctx context.Context, jobID string, fn func(meta *entity.JobMeta)) error {
	rec, err := s.get(jobID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	fn(&rec.meta)

	return nil
}

func (s *InMemoryStore) SaveResult(ctx context.Context, jobID string, stations []entity.Station, report string) error {
	rec, err := s.get(jobID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.stations = stations
	rec.report = report
	rec.meta.Stations = len(stations)

	return nil
}

func (s *InMemoryStore) GetJob(ctx context.Context, jobID string) (entity.JobMeta, error) {
	rec, err := s.get(jobID)
	if err != nil {
		return entity.JobMeta{}, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	return rec.meta, nil
}

// GetResult returns the stations and rendered report. The stations slice is
// shared and must not be modified.
func (s *InMemoryStore) GetResult(ctx context.Context, jobID string) ([]entity.Station, string, entity.JobMeta, error) {
	rec, err := s.get(jobID)
	if err != nil {
		return nil, "", entity.JobMeta{}, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	return rec.stations, rec.report, rec.meta, nil
}

// ListJobs returns every job, newest first.
func (s *InMemoryStore) ListJobs(ctx context.Context) ([]entity.JobMeta, error) {
	s.mu.RLock()
	records := maps.Values(s.jobs)
	s.mu.RUnlock()

	metas := make([]entity.JobMeta, 0, len(records))
	for _, rec := range records {
		rec.mu.RLock()
		metas = append(metas, rec.meta)
		rec.mu.RUnlock()
	}

	slices.SortFunc(metas, func(a, b entity.JobMeta) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return metas, nil
}

func (s *InMemoryStore) DeleteJob(ctx context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[jobID]; !ok {
		return pkgerror.ErrNotFound
	}
	delete(s.jobs, jobID)

	return nil
}

func (s *InMemoryStore) get(jobID string) (*jobRecord, error) {
	s.mu.RLock()
	rec, ok := s.jobs[jobID]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}
