package smp

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Service runs the fetch → extract → format pipeline. Every request builds
// its table and report from scratch; nothing is cached between requests.
type Service struct {
	crawler  *Crawler
	recorder StatusRecorder
	logger   zerolog.Logger
}

// NewService creates a new Service. recorder may be nil when run-status
// tracking is not wanted (tests).
func NewService(logger zerolog.Logger, crawler *Crawler, recorder StatusRecorder) *Service {
	return &Service{
		crawler:  crawler,
		recorder: recorder,
		logger:   logger,
	}
}

// BuildReport resolves the filter to an optional target date, fetches the
// table and renders the report. The filter stays in play for display-side
// column selection: the server returns a full week for any supplied date,
// so narrowing to a single day is the formatter's job, not a re-query.
func (s *Service) BuildReport(ctx context.Context, filter string, region Region) (string, error) {
	var target *time.Time
	if d, ok := ParseDateFilter(filter, time.Now()); ok {
		target = &d
	}
	return s.BuildReportAt(ctx, target, filter, region)
}

// BuildReportAt is BuildReport with an explicit target date, used by the
// weekly scheduled job which anchors the window on last Sunday.
func (s *Service) BuildReportAt(ctx context.Context, target *time.Time, filter string, region Region) (string, error) {
	now := time.Now()

	table, err := s.crawler.Fetch(ctx, target, region)
	if err != nil {
		s.record(RunStatus{Region: region, When: now, OK: false, Error: err.Error()})
		return "", err
	}

	report := FormatReport(table, filter, region, now)

	s.record(RunStatus{
		Region:        region,
		When:          now,
		OK:            true,
		ReportLength:  len(report),
		LowConfidence: table.LowConfidence,
	})

	return report, nil
}

func (s *Service) record(status RunStatus) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(status)
}
