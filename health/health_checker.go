// Package health reports whether the service can answer recommendations.
package health

import (
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/giygas/magistral-api/interfaces"
)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	index       interfaces.IndexStore
	provider    string
	reloadTimes []time.Duration
	now         func() time.Time
}

// NewHealthChecker creates a health checker. reloadTimes are HH:MM entries;
// invalid ones are ignored.
func NewHealthChecker(index interfaces.IndexStore, provider string, reloadTimes []string) interfaces.HealthChecker {
	offsets := make([]time.Duration, 0, len(reloadTimes))
	for _, rt := range reloadTimes {
		t, err := time.Parse("15:04", rt)
		if err != nil {
			continue
		}
		offsets = append(offsets, time.Duration(t.Hour())*time.Hour+time.Duration(t.Minute())*time.Minute)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	return &HealthCheckerImpl{
		index:       index,
		provider:    provider,
		reloadTimes: offsets,
		now:         time.Now,
	}
}

// HealthCheck returns the index status. Only an empty index is reported as
// unavailable; stale data still serves recommendations.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	chunks := h.index.Size()
	lastUpdate := h.index.GetLastUpdated()
	isUpdating := h.index.IsUpdating()

	dataAge := h.now().Sub(lastUpdate)

	switch {
	case chunks == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 48*time.Hour:
		status = "degraded"
		httpStatus = http.StatusOK

	case isUpdating && dataAge > 6*time.Hour:
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"monographs":  chunks,
		"source":      h.index.Source(),
		"provider":    h.provider,
		"is_updating": isUpdating,
	}
	if !lastUpdate.IsZero() {
		data["last_update"] = lastUpdate.Format(time.RFC3339)
		data["data_age_hours"] = math.Round(dataAge.Hours()*10) / 10
	}
	if next := h.CalculateNextUpdate(); !next.IsZero() {
		data["next_update"] = next.Format(time.RFC3339)
	}

	return status, data, httpStatus
}

// CalculateNextUpdate returns the next configured reload time, or the zero
// time when no reload is scheduled.
func (h *HealthCheckerImpl) CalculateNextUpdate() time.Time {
	if len(h.reloadTimes) == 0 {
		return time.Time{}
	}

	now := h.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, offset := range h.reloadTimes {
		if candidate := midnight.Add(offset); candidate.After(now) {
			return candidate
		}
	}

	tomorrow := midnight.AddDate(0, 0, 1)
	return tomorrow.Add(h.reloadTimes[0])
}
