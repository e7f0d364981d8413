package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"seatbooking/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testTimeout = 5 * time.Second

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID  map[int64]*domain.Event
	list  []*domain.Event
	err   error
	calls int
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

// fakeBookingRepo is an in-memory BookingRepository. Reserve serialises on a mutex the
// way the postgres implementation serialises on the event row lock.
type fakeBookingRepo struct {
	mu       sync.Mutex
	events   map[int64]*domain.Event
	bookings []*domain.Booking
	nextID   int64
	clock    func() time.Time

	reserveErr    error
	countErr      error
	listErr       error
	countsErr     error
	counts        []domain.UserBookingCount
	lastSince     time.Time
	reserveCalls  int
	countsCalls   int
	byUserResults map[string][]*domain.BookingWithEvent
}

func newFakeBookingRepo(events ...*domain.Event) *fakeBookingRepo {
	f := &fakeBookingRepo{
		events: make(map[int64]*domain.Event),
		clock:  time.Now,
	}
	for _, e := range events {
		f.events[e.ID] = e
	}
	return f
}

func (f *fakeBookingRepo) Reserve(ctx context.Context, b *domain.Booking) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reserveCalls++
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	ev, ok := f.events[b.EventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	booked := 0
	for _, existing := range f.bookings {
		if existing.EventID != b.EventID {
			continue
		}
		if existing.UserID == b.UserID {
			return nil, domain.ErrAlreadyBooked
		}
		booked++
	}
	if booked >= ev.TotalSeats {
		return nil, domain.ErrSoldOut
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = f.clock()
	stored := *b
	f.bookings = append(f.bookings, &stored)
	return ev, nil
}

func (f *fakeBookingRepo) CountByEventID(ctx context.Context, eventID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	n := 0
	for _, b := range f.bookings {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.BookingWithEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byUserResults[userID], nil
}

func (f *fakeBookingRepo) CountByUserSince(ctx context.Context, since time.Time) ([]domain.UserBookingCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countsCalls++
	f.lastSince = since
	if f.countsErr != nil {
		return nil, f.countsErr
	}
	if f.counts != nil {
		return f.counts, nil
	}
	perUser := make(map[string]int)
	var order []string
	for _, b := range f.bookings {
		if b.CreatedAt.Before(since) {
			continue
		}
		if _, ok := perUser[b.UserID]; !ok {
			order = append(order, b.UserID)
		}
		perUser[b.UserID]++
	}
	out := make([]domain.UserBookingCount, 0, len(order))
	for _, u := range order {
		out = append(out, domain.UserBookingCount{UserID: u, Count: perUser[u]})
	}
	return out, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	err       error
	published []*domain.Booking
}

func (p *fakePublisher) PublishReserved(ctx context.Context, b *domain.Booking, ev *domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, b)
	return p.err
}

type cacheKey struct {
	period domain.Period
	limit  int
}

type fakeCache struct {
	entries map[cacheKey]*domain.Leaderboard
	getErr  error
	setErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[cacheKey]*domain.Leaderboard)}
}

func (c *fakeCache) Get(ctx context.Context, period domain.Period, limit int) (*domain.Leaderboard, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	lb, ok := c.entries[cacheKey{period, limit}]
	return lb, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, period domain.Period, limit int, lb *domain.Leaderboard) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[cacheKey{period, limit}] = lb
	return nil
}
