package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"jammshop/domain"
)

type fakeViewEventRepo struct {
	created []domain.ProductView
	count   int64
	err     error
}

func (f *fakeViewEventRepo) Create(ctx context.Context, view *domain.ProductView) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *view)
	return nil
}

func (f *fakeViewEventRepo) CountSince(ctx context.Context, productID uint64, since time.Time) (int64, error) {
	return f.count, nil
}

type fakeCounterRepo struct {
	incremented int
	sum         int64
	err         error
}

func (f *fakeCounterRepo) Incr(ctx context.Context, productID uint64, day time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.incremented++
	return nil
}

func (f *fakeCounterRepo) SumWindow(ctx context.Context, productID uint64, days int) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.sum, nil
}

func TestTrackView(t *testing.T) {
	views := &fakeViewEventRepo{}
	counters := &fakeCounterRepo{}
	svc := NewAnalyticsService(views, counters)

	if err := svc.TrackView(context.Background(), 7, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(views.created) != 1 {
		t.Fatalf("created = %d, want 1", len(views.created))
	}
	if views.created[0].ProductID != 7 || views.created[0].UserID != 3 {
		t.Errorf("recorded view = %+v", views.created[0])
	}
	if counters.incremented != 1 {
		t.Errorf("counter increments = %d, want 1", counters.incremented)
	}
}

func TestTrackView_CounterFailureIsNotFatal(t *testing.T) {
	views := &fakeViewEventRepo{}
	counters := &fakeCounterRepo{err: errors.New("redis down")}
	svc := NewAnalyticsService(views, counters)

	if err := svc.TrackView(context.Background(), 7, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views.created) != 1 {
		t.Errorf("created = %d, want 1", len(views.created))
	}
}

func TestTrackView_InvalidProduct(t *testing.T) {
	svc := NewAnalyticsService(&fakeViewEventRepo{}, nil)

	if err := svc.TrackView(context.Background(), 0, 1); err == nil {
		t.Error("expected error for product id 0")
	}
}

func TestViewCount_PrefersCounter(t *testing.T) {
	views := &fakeViewEventRepo{count: 999}
	counters := &fakeCounterRepo{sum: 42}
	svc := NewAnalyticsService(views, counters)

	got, err := svc.ViewCount(context.Background(), 7, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("count = %d, want 42 from counter", got)
	}
}

func TestViewCount_FallsBackToDatabase(t *testing.T) {
	views := &fakeViewEventRepo{count: 17}
	counters := &fakeCounterRepo{err: errors.New("redis down")}
	svc := NewAnalyticsService(views, counters)

	got, err := svc.ViewCount(context.Background(), 7, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 17 {
		t.Errorf("count = %d, want 17 from database", got)
	}
}

func TestViewCount_RejectsBadWindow(t *testing.T) {
	svc := NewAnalyticsService(&fakeViewEventRepo{}, nil)

	if _, err := svc.ViewCount(context.Background(), 7, 0); err == nil {
		t.Error("expected error for zero-day window")
	}
}
