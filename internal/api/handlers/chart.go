package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"natal-chart-service/internal/adapters/cache"
	"natal-chart-service/internal/api/dto"
	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/platform/logger"
	"natal-chart-service/internal/platform/metrics"
	"natal-chart-service/internal/platform/obs"
	"net/http"
	"regexp"
	"strings"
)

const maxBodyBytes = 1 << 16

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

// ChartComputer is the engine contract the handler depends on.
type ChartComputer interface {
	ComputeChart(ctx context.Context, in domain.BirthInput) (*domain.ChartResult, error)
	HouseSystem() string
}

type ChartHandler struct {
	Engine ChartComputer
	// Cache is optional.
	Cache *cache.ChartCache
	Log   *logger.Logger
}

// Create validates birth data, computes the chart and maps engine failures
// onto HTTP statuses.
func (h *ChartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ChartRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(h.Log, w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	in, msg := validateChartRequest(req)
	if msg != "" {
		writeError(h.Log, w, r, http.StatusBadRequest, msg)
		return
	}

	if h.Cache != nil {
		if chart, ok := h.Cache.Get(in); ok {
			metrics.RecordCacheHit()
			writeJSON(h.Log, w, r, http.StatusOK, dto.FromChart(chart, h.Engine.HouseSystem()))
			return
		}
	}

	chart, err := h.Engine.ComputeChart(r.Context(), in)
	if err != nil {
		status, msg := statusFor(err)
		l := h.Log.WithError(err).WithField("req_id", obs.RequestID(r.Context()))
		if status >= http.StatusInternalServerError {
			l.Error("compute chart failed")
		} else {
			l.Info("chart request rejected")
		}
		writeError(h.Log, w, r, status, msg)
		return
	}

	if h.Cache != nil {
		h.Cache.Put(in, chart)
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.FromChart(chart, h.Engine.HouseSystem()))
}

// validateChartRequest returns the trimmed input, or a client-facing message.
func validateChartRequest(req dto.ChartRequest) (domain.BirthInput, string) {
	in := domain.BirthInput{
		Date:    strings.TrimSpace(req.Date),
		Time:    strings.TrimSpace(req.Time),
		Country: strings.TrimSpace(req.Country),
		City:    strings.TrimSpace(req.City),
	}

	switch {
	case !datePattern.MatchString(in.Date):
		return in, "date must be in YYYY-MM-DD format"
	case !timePattern.MatchString(in.Time):
		return in, "time must be in HH:MM format"
	case in.Country == "":
		return in, "country is required"
	case in.City == "":
		return in, "city is required"
	}

	return in, ""
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid birth data: date must be a real calendar date and time a valid clock time"
	case errors.Is(err, domain.ErrUndefinedHouseGeometry):
		return http.StatusUnprocessableEntity, "houses are undefined at this latitude"
	case errors.Is(err, domain.ErrPositionUnavailable):
		return http.StatusBadGateway, "planetary positions are temporarily unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "request cancelled"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
