package scheduling

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"salonbook-backend/models"

	"github.com/google/uuid"
)

// memStore is an in-memory AppointmentStore and WorkingHoursStore for tests.
// WithStylistLock serializes callers per stylist with a mutex, mirroring the
// row-lock semantics of the Postgres store.
type memStore struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
	appts map[uuid.UUID]*models.Appointment
	rules map[ruleKey]*models.WorkingHoursRule
}

type ruleKey struct {
	stylistID uuid.UUID
	day       time.Weekday
}

func newMemStore() *memStore {
	return &memStore{
		locks: make(map[uuid.UUID]*sync.Mutex),
		appts: make(map[uuid.UUID]*models.Appointment),
		rules: make(map[ruleKey]*models.WorkingHoursRule),
	}
}

func (m *memStore) addRule(rule models.WorkingHoursRule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules[ruleKey{rule.StylistID, rule.DayOfWeek}] = &rule
}

func (m *memStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appt, ok := m.appts[id]
	if !ok {
		return nil, fmt.Errorf("appointment %s: %w", id, ErrNotFound)
	}
	cp := *appt
	return &cp, nil
}

func (m *memStore) HasOverlap(ctx context.Context, stylistID uuid.UUID, startUTC, endUTC time.Time, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, appt := range m.appts {
		if appt.StylistID != stylistID || appt.ID == excludeID {
			continue
		}
		if !appt.Status.Occupies() {
			continue
		}
		if Overlaps(startUTC, endUTC, appt.StartAt, appt.EndAt) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Create(ctx context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *appt
	m.appts[appt.ID] = &cp
	return nil
}

func (m *memStore) Update(ctx context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appts[appt.ID]; !ok {
		return fmt.Errorf("appointment %s: %w", appt.ID, ErrNotFound)
	}
	cp := *appt
	m.appts[appt.ID] = &cp
	return nil
}

func (m *memStore) ListByStylistAndRange(ctx context.Context, stylistID uuid.UUID, fromUTC, toUTC time.Time) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, appt := range m.appts {
		if appt.StylistID == stylistID && Overlaps(fromUTC, toUTC, appt.StartAt, appt.EndAt) {
			out = append(out, *appt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (m *memStore) WithStylistLock(ctx context.Context, stylistID uuid.UUID, fn func(AppointmentStore) error) error {
	m.mu.Lock()
	lock, ok := m.locks[stylistID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[stylistID] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn(m)
}

func (m *memStore) RuleFor(ctx context.Context, stylistID uuid.UUID, day time.Weekday) (*models.WorkingHoursRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rule, ok := m.rules[ruleKey{stylistID, day}]
	if !ok {
		return nil, nil
	}
	cp := *rule
	return &cp, nil
}

// fakeClock is a settable Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
