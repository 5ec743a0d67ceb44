package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/databridge-io/databridge/internal/domain"
)

// instantLayout renders UTC instants that order lexicographically, the same
// property the cache_history cursor relies on.
const instantLayout = "2006-01-02T15:04:05.000Z"

// Interval is one bounded slice of a historical read.
type Interval struct {
	Start string
	End   string
}

// HistoryService owns history queries and the interval-resumption logic
// around the south cache cursor.
type HistoryService struct {
	histories domain.HistoryQueryRepository
	caches    domain.SouthCacheRepository
	scanModes domain.ScanModeRepository
	log       logrus.FieldLogger
}

func NewHistoryService(histories domain.HistoryQueryRepository, caches domain.SouthCacheRepository, scanModes domain.ScanModeRepository, log logrus.FieldLogger) *HistoryService {
	return &HistoryService{histories: histories, caches: caches, scanModes: scanModes, log: log}
}

func (s *HistoryService) GetAll(ctx context.Context) ([]domain.HistoryQuery, error) {
	return s.histories.GetAll(ctx)
}

func (s *HistoryService) Search(ctx context.Context, name string, page int) (domain.Page[domain.HistoryQuery], error) {
	if page < 0 {
		page = 0
	}
	return s.histories.Search(ctx, name, page)
}

func (s *HistoryService) GetByID(ctx context.Context, id string) (domain.HistoryQuery, error) {
	return s.histories.GetByID(ctx, id)
}

func (s *HistoryService) Create(ctx context.Context, command domain.HistoryQueryCommand) (domain.HistoryQuery, error) {
	if err := s.validate(ctx, command); err != nil {
		return domain.HistoryQuery{}, err
	}
	return s.histories.Create(ctx, command)
}

func (s *HistoryService) Update(ctx context.Context, id string, command domain.HistoryQueryCommand) error {
	if err := s.validate(ctx, command); err != nil {
		return err
	}
	if _, err := s.histories.GetByID(ctx, id); err != nil {
		return err
	}
	return s.histories.Update(ctx, id, command)
}

func (s *HistoryService) Delete(ctx context.Context, id string) error {
	return s.histories.Delete(ctx, id)
}

// Reset drops the resumption cursor of a history query so its next run
// starts over from the configured start time.
func (s *HistoryService) Reset(ctx context.Context, id string) error {
	query, err := s.histories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.caches.Delete(ctx, query.Caching.ScanModeID)
}

func (s *HistoryService) validate(ctx context.Context, command domain.HistoryQueryCommand) error {
	if command.Name == "" {
		return errors.New("name is required")
	}
	start, err := time.Parse(time.RFC3339, command.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time %q: %w", command.StartTime, err)
	}
	end, err := time.Parse(time.RFC3339, command.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time %q: %w", command.EndTime, err)
	}
	if !end.After(start) {
		return errors.New("end time must be after start time")
	}
	if command.Caching.ScanModeID != "" {
		if _, err := s.scanModes.GetByID(ctx, command.Caching.ScanModeID); err != nil {
			return fmt.Errorf("scan mode %s: %w", command.Caching.ScanModeID, err)
		}
	}
	return nil
}

// ResumePoint returns the stored cursor for a scan mode, or a fresh cursor
// at fallbackStart when none exists yet.
func (s *HistoryService) ResumePoint(ctx context.Context, scanModeID, fallbackStart string) (domain.SouthCache, error) {
	entry, err := s.caches.GetByScanMode(ctx, scanModeID)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.SouthCache{}, err
	}
	return domain.SouthCache{ScanModeID: scanModeID, IntervalIndex: 0, MaxInstant: fallbackStart}, nil
}

// Advance records progress after a successful interval fetch. MaxInstant is
// monotonically non-decreasing for a given scan mode: a stale writer cannot
// move the cursor backwards.
func (s *HistoryService) Advance(ctx context.Context, scanModeID string, intervalIndex int, maxInstant string) error {
	current, err := s.caches.GetByScanMode(ctx, scanModeID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if err == nil && maxInstant < current.MaxInstant {
		s.log.WithFields(logrus.Fields{
			"scanMode": scanModeID,
			"stored":   current.MaxInstant,
			"proposed": maxInstant,
		}).Warn("ignoring backwards cursor advance")
		return nil
	}
	return s.caches.Upsert(ctx, domain.SouthCache{
		ScanModeID:    scanModeID,
		IntervalIndex: intervalIndex,
		MaxInstant:    maxInstant,
	})
}

// PlanIntervals splits [start, end) into slices of at most maxSeconds so a
// large historical range never turns into one oversized request. A
// non-positive maxSeconds keeps the range whole.
func PlanIntervals(start, end string, maxSeconds int) ([]Interval, error) {
	from, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start instant %q: %w", start, err)
	}
	to, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end instant %q: %w", end, err)
	}
	if !to.After(from) {
		return nil, errors.New("end must be after start")
	}

	max := time.Duration(maxSeconds) * time.Second
	if maxSeconds <= 0 || to.Sub(from) <= max {
		return []Interval{{Start: formatInstant(from), End: formatInstant(to)}}, nil
	}

	intervals := make([]Interval, 0, int(to.Sub(from)/max)+1)
	for cursor := from; cursor.Before(to); cursor = cursor.Add(max) {
		stop := cursor.Add(max)
		if stop.After(to) {
			stop = to
		}
		intervals = append(intervals, Interval{Start: formatInstant(cursor), End: formatInstant(stop)})
	}
	return intervals, nil
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(instantLayout)
}
