package usecase

import (
	"strings"

	"github.com/shandysiswandi/gobrc/internal/weather/entity"
)

type SubmitResult struct {
	JobID  string
	Status entity.JobStatus
}

type JobsResult struct {
	Jobs []entity.JobMeta
}

type StationsResult struct {
	JobID    string
	Status   entity.JobStatus
	Stations []entity.Station
	Page     int
	PageSize int
	Total    int
}

type ReportResult struct {
	JobID  string
	Report string
}

type StationFilter struct {
	Prefix string
}

func (f StationFilter) Matches(st entity.Station) bool {
	return f.Prefix == "" || strings.HasPrefix(st.Name, f.Prefix)
}
