package projection

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"qmatrix/internal/platform/cache"
	"qmatrix/internal/platform/metrics"
)

// Service loads snapshots, runs the engine and memoizes forecast reports.
// Caching is keyed by snapshot version and horizon, so it never changes
// observable results.
type Service struct {
	store     *Store
	cache     *cache.Client
	collector *metrics.Collector
}

func NewService(store *Store, reportCache *cache.Client, collector *metrics.Collector) *Service {
	return &Service{store: store, cache: reportCache, collector: collector}
}

// MatrixReport returns the report for an instant; a nil instant means now.
// Past instants replay the assessment change log. Historical levels are
// scored against today's targets, a documented simplification of the
// reconstruction.
func (s *Service) MatrixReport(ctx context.Context, at *time.Time) (Report, error) {
	snap, _, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return Report{}, err
	}
	engine, err := NewEngine(snap, time.Now().UTC())
	if err != nil {
		return Report{}, err
	}
	instant := time.Now().UTC()
	if at != nil {
		instant = at.UTC()
	}
	if s.collector != nil {
		s.collector.RecordReport(false)
	}
	return engine.ReportAt(instant), nil
}

// ForecastReport simulates the organization a number of months ahead.
func (s *Service) ForecastReport(ctx context.Context, months int) (Report, error) {
	snap, version, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return Report{}, err
	}

	key := cache.ForecastKey(version, months)
	if payload, ok := s.cache.Get(ctx, key); ok {
		var report Report
		if err := json.Unmarshal(payload, &report); err == nil {
			if s.collector != nil {
				s.collector.RecordReport(true)
			}
			return report, nil
		}
		slog.Warn("forecast cache entry unreadable, recomputing", "key", key)
	}

	engine, err := NewEngine(snap, time.Now().UTC())
	if err != nil {
		return Report{}, err
	}
	report := engine.ForecastMonths(months)
	if s.collector != nil {
		s.collector.RecordReport(false)
	}

	if payload, err := json.Marshal(report); err == nil {
		s.cache.Set(ctx, key, payload)
	}
	return report, nil
}
