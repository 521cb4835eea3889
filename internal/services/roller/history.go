package roller

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/louisbranch/rollexpr/internal/core/dice"
	"github.com/louisbranch/rollexpr/internal/random"
)

// DefaultHistoryLimit is the number of entries History returns when asked
// for a non-positive limit.
const DefaultHistoryLimit = 20

// Entry is one recorded roll.
type Entry struct {
	ID         string
	Expression string
	Mode       dice.Mode
	Total      int
	Seed       int64
	SeedSource random.SeedSource
	Rolls      []dice.DieRoll
	RolledAt   time.Time
}

// HistoryStore persists rolls.
type HistoryStore interface {
	Record(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// WithHistory records every successful roll in store.
func WithHistory(store HistoryStore) Option {
	return func(s *Service) {
		s.history = store
	}
}

// WithClock replaces the clock used to timestamp history entries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// History returns the most recent rolls, newest first. It returns no entries
// when the service has no history store.
func (s *Service) History(ctx context.Context, limit int) (entries []Entry, err error) {
	ctx, span := s.tracer.Start(ctx, "roller.History")
	defer func() { endSpan(span, err) }()

	if s.history == nil {
		return []Entry{}, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.history.Recent(ctx, limit)
}

// record stores result. Failures are logged; the roll itself already happened.
func (s *Service) record(ctx context.Context, result Result) {
	if s.history == nil {
		return
	}
	id, err := uuid.NewV7()
	if err != nil {
		log.Printf("roll history id: %v", err)
		return
	}
	entry := Entry{
		ID:         id.String(),
		Expression: result.Expression,
		Mode:       result.Mode,
		Total:      result.Total,
		Seed:       result.Seed,
		SeedSource: result.SeedSource,
		Rolls:      result.Rolls,
		RolledAt:   s.now().UTC(),
	}
	if err := s.history.Record(ctx, entry); err != nil {
		log.Printf("record roll %s: %v", entry.ID, err)
	}
}
