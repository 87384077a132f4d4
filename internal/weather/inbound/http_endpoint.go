package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/shandysiswandi/gobrc/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gobrc/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gobrc/internal/weather/engine"
	"github.com/shandysiswandi/gobrc/internal/weather/entity"
	"github.com/shandysiswandi/gobrc/internal/weather/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) SubmitJob(ctx context.Context, r *http.Request) (any, error) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}

	result, err := h.uc.Submit(ctx, strings.TrimSpace(req.File))
	if err != nil {
		return nil, err
	}

	return SubmitResponse{JobID: result.JobID, Status: result.Status}, nil
}

func (h *HTTPEndpoint) UploadJob(ctx context.Context, r *http.Request) (any, error) {
	reader, cleanup, err := extractBody(r)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := h.uc.Upload(ctx, reader)
	if err != nil {
		return nil, err
	}

	return SubmitResponse{JobID: result.JobID, Status: result.Status}, nil
}

func (h *HTTPEndpoint) ListJobs(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Jobs(ctx)
	if err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(result.Jobs))
	for _, meta := range result.Jobs {
		jobs = append(jobs, toHTTPJob(meta))
	}

	return ListJobsResponse{Jobs: jobs}, nil
}

func (h *HTTPEndpoint) GetJob(ctx context.Context, r *http.Request) (any, error) {
	meta, err := h.uc.Job(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return toHTTPJob(meta), nil
}

func (h *HTTPEndpoint) JobStations(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()
	page, pageSize, err := parsePagination(query.Get("page"), query.Get("page_size"))
	if err != nil {
		return nil, err
	}

	filter := usecase.StationFilter{Prefix: query.Get("prefix")}
	result, err := h.uc.Stations(ctx, pkgrouter.GetParam(ctx, "id"), filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	stations := make([]Station, 0, len(result.Stations))
	for _, st := range result.Stations {
		stations = append(stations, toHTTPStation(st))
	}

	return StationsResponse{
		JobID:    result.JobID,
		Status:   result.Status,
		Stations: stations,
		page:     result.Page,
		pageSize: result.PageSize,
		total:    result.Total,
	}, nil
}

func (h *HTTPEndpoint) JobReport(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Report(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return ReportResponse(result.Report), nil
}

func (h *HTTPEndpoint) DeleteJob(ctx context.Context, r *http.Request) (any, error) {
	if err := h.uc.Delete(ctx, pkgrouter.GetParam(ctx, "id")); err != nil {
		return nil, err
	}

	return nil, nil
}

func parsePagination(pageRaw, sizeRaw string) (int, int, error) {
	page := 1
	pageSize := 50

	if pageRaw != "" {
		value, err := strconv.Atoi(pageRaw)
		if err != nil || value < 1 {
			return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page"))
		}
		page = value
	}

	if sizeRaw != "" {
		value, err := strconv.Atoi(sizeRaw)
		if err != nil || value < 1 {
			return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page_size"))
		}
		pageSize = min(value, 1000)
	}

	return page, pageSize, nil
}

func toHTTPJob(meta entity.JobMeta) Job {
	return Job{
		ID:        meta.ID,
		Source:    meta.Source,
		File:      meta.File,
		Bytes:     meta.Bytes,
		Status:    meta.Status,
		Error:     meta.Err,
		ErrorCode: meta.ErrCode,
		Workers:   meta.Workers,
		Stations:  meta.Stations,
		CreatedAt: meta.CreatedAt,
		StartedAt: meta.StartedAt,
		EndedAt:   meta.EndedAt,
	}
}

func toHTTPStation(st entity.Station) Station {
	return Station{
		Name:  st.Name,
		Min:   engine.FormatTenths(st.Min),
		Mean:  engine.FormatTenths(st.Mean),
		Max:   engine.FormatTenths(st.Max),
		Count: st.Count,
	}
}

func extractBody(r *http.Request) (io.Reader, func(), error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && strings.EqualFold(mediaType, "multipart/form-data") {
			return extractMultipartFile(r)
		}
	}

	if r.Body == nil || r.Body == http.NoBody {
		return nil, func() {}, pkgerror.NewInvalidInput(errors.New("empty request body"))
	}

	return r.Body, func() {}, nil
}

func extractMultipartFile(r *http.Request) (io.Reader, func(), error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, func() {}, pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, func() {}, pkgerror.NewInvalidInput(errors.New("file part is required"))
			}
			return nil, func() {}, pkgerror.NewInvalidFormat()
		}

		if part.FormName() == "file" {
			return part, func() { _ = part.Close() }, nil
		}
		_ = part.Close()
	}
}
