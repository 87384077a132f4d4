package inbound

import (
	"net/http"

	"github.com/shandysiswandi/gobrc/internal/weather/entity"
)

type SubmitRequest struct {
	File string `json:"file"`
}

type SubmitResponse struct {
	JobID  string           `json:"job_id"`
	Status entity.JobStatus `json:"status"`
}

func (SubmitResponse) StatusCode() int {
	return http.StatusAccepted
}

func (SubmitResponse) Message() string {
	return "job accepted"
}

type Job struct {
	ID        string           `json:"id"`
	Source    entity.JobSource `json:"source"`
	File      string           `json:"file,omitempty"`
	Bytes     int64            `json:"bytes"`
	Status    entity.JobStatus `json:"status"`
	Error     string           `json:"error,omitempty"`
	ErrorCode string           `json:"error_code,omitempty"`
	Workers   int              `json:"workers"`
	Stations  int              `json:"stations"`
	CreatedAt int64            `json:"created_at"`
	StartedAt int64            `json:"started_at,omitempty"`
	EndedAt   int64            `json:"ended_at,omitempty"`
}

type ListJobsResponse struct {
	Jobs []Job `json:"jobs"`
}

// Station values are decimal strings with one fractional digit.
type Station struct {
	Name  string `json:"name"`
	Min   string `json:"min"`
	Mean  string `json:"mean"`
	Max   string `json:"max"`
	Count uint64 `json:"count"`
}

type StationsResponse struct {
	JobID    string           `json:"job_id"`
	Status   entity.JobStatus `json:"status"`
	Stations []Station        `json:"stations"`
	page     int
	pageSize int
	total    int
}

func (r StationsResponse) Meta() map[string]any {
	return map[string]any{
		"page":      r.page,
		"page_size": r.pageSize,
		"total":     r.total,
	}
}

// ReportResponse is sent as plain text, byte for byte as rendered.
type ReportResponse string

func (ReportResponse) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r ReportResponse) Bytes() []byte {
	return []byte(r)
}
