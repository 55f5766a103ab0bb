package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/domain"
	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/metrics"
	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/repository"
	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/view"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("schedule source unavailable")
)

type SchedulerClient interface {
	FetchSlots(ctx context.Context, sel domain.Selection) ([]domain.ScheduleSlot, error)
}

type IdentityClient interface {
	GetMe(ctx context.Context, userID uuid.UUID) (IdentityUser, error)
}

type IdentityUser struct {
	ID       uuid.UUID
	FullName string
}

// SlotCache holds recently fetched raw slots per selection. Implementations
// treat errors as misses; a broken cache must never fail a request.
type SlotCache interface {
	Get(ctx context.Context, sel domain.Selection) ([]domain.ScheduleSlot, bool)
	Set(ctx context.Context, sel domain.Selection, slots []domain.ScheduleSlot)
}

// Query is the UI state for one recomputation of the timetable view.
type Query struct {
	Search   string
	OnlyMine bool
	SortKey  view.SortKey
	Page     int
	PageSize int
	Expanded map[int]struct{}
}

type ViewService struct {
	txManager repository.TxManager
	scheduler SchedulerClient
	identity  IdentityClient
	cache     SlotCache
	logger    *log.Logger
	clock     func() time.Time

	refreshAfter time.Duration
}

func NewViewService(
	txManager repository.TxManager,
	scheduler SchedulerClient,
	identity IdentityClient,
	cache SlotCache,
	refreshAfter time.Duration,
	logger *log.Logger,
) *ViewService {
	return &ViewService{
		txManager:    txManager,
		scheduler:    scheduler,
		identity:     identity,
		cache:        cache,
		logger:       logger,
		clock:        time.Now,
		refreshAfter: refreshAfter,
	}
}

// TimetableView loads the raw slots for a selection, aggregates them, and
// runs the presentation pipeline under the given query. requesterID is only
// consulted when the "only mine" filter is on.
func (s *ViewService) TimetableView(ctx context.Context, requesterID uuid.UUID, sel domain.Selection, q Query) (view.Result, error) {
	metrics.ViewRequests.Inc()

	opts := view.Options{
		Search:   q.Search,
		SortKey:  q.SortKey,
		Page:     q.Page,
		PageSize: q.PageSize,
		Expanded: q.Expanded,
	}

	if q.OnlyMine {
		user, err := s.identity.GetMe(ctx, requesterID)
		if err != nil {
			return view.Result{}, err
		}
		opts.OnlyMineName = user.FullName
	}

	slots, err := s.loadSlots(ctx, sel)
	if err != nil {
		return view.Result{}, err
	}

	return view.Process(view.BuildCourses(slots), opts), nil
}

// loadSlots tries the cache, then the scheduler backend, then the persisted
// snapshot as a stale fallback when the backend is unreachable.
func (s *ViewService) loadSlots(ctx context.Context, sel domain.Selection) ([]domain.ScheduleSlot, error) {
	if sel.MajorID <= 0 || sel.AcademicYear <= 0 || sel.Term <= 0 {
		return nil, ErrInvalidInput
	}

	if s.cache != nil {
		if slots, ok := s.cache.Get(ctx, sel); ok {
			metrics.SlotCacheHits.Inc()
			return slots, nil
		}
		metrics.SlotCacheMisses.Inc()
	}

	slots, err := s.scheduler.FetchSlots(ctx, sel)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
			return nil, err
		}
		metrics.SchedulerFetchFailures.Inc()
		stale, staleErr := s.loadSnapshot(ctx, sel)
		if staleErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		metrics.SnapshotFallbacks.Inc()
		s.logger.Printf("scheduler fetch failed, serving snapshot for major=%d year=%d term=%d: %v",
			sel.MajorID, sel.AcademicYear, sel.Term, err)
		return stale, nil
	}

	if s.cache != nil {
		s.cache.Set(ctx, sel, slots)
	}
	if err := s.storeSnapshot(ctx, sel, slots); err != nil {
		s.logger.Printf("snapshot store failed for major=%d year=%d term=%d: %v",
			sel.MajorID, sel.AcademicYear, sel.Term, err)
	}

	return slots, nil
}

func (s *ViewService) storeSnapshot(ctx context.Context, sel domain.Selection, slots []domain.ScheduleSlot) error {
	payload, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	snapshot := domain.ScheduleSnapshot{
		ID:        uuid.New(),
		Selection: sel,
		Payload:   payload,
		FetchedAt: s.clock(),
	}
	return s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		return repos.Snapshots.Upsert(ctx, snapshot)
	})
}

func (s *ViewService) loadSnapshot(ctx context.Context, sel domain.Selection) ([]domain.ScheduleSlot, error) {
	var snapshot domain.ScheduleSnapshot
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		snapshot, err = repos.Snapshots.GetBySelection(ctx, sel)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var slots []domain.ScheduleSlot
	if err := json.Unmarshal(snapshot.Payload, &slots); err != nil {
		return nil, fmt.Errorf("decode snapshot payload: %w", err)
	}
	return slots, nil
}

// RefreshStaleSnapshots re-fetches every selection whose stored snapshot is
// older than the refresh window, keeping the cache and snapshots warm for
// selections the dashboard has shown before. Individual failures are logged
// and skipped.
func (s *ViewService) RefreshStaleSnapshots(ctx context.Context, now time.Time) error {
	if s.refreshAfter <= 0 {
		return nil
	}

	var selections []domain.Selection
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		selections, err = repos.Snapshots.ListStale(ctx, now.Add(-s.refreshAfter))
		return err
	})
	if err != nil {
		return err
	}

	for _, sel := range selections {
		slots, err := s.scheduler.FetchSlots(ctx, sel)
		if err != nil {
			metrics.SchedulerFetchFailures.Inc()
			s.logger.Printf("snapshot refresh fetch failed for major=%d year=%d term=%d: %v",
				sel.MajorID, sel.AcademicYear, sel.Term, err)
			continue
		}
		if s.cache != nil {
			s.cache.Set(ctx, sel, slots)
		}
		if err := s.storeSnapshot(ctx, sel, slots); err != nil {
			s.logger.Printf("snapshot refresh store failed for major=%d year=%d term=%d: %v",
				sel.MajorID, sel.AcademicYear, sel.Term, err)
		}
	}

	return nil
}
