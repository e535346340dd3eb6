package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jkeats/budgetbuddy/internal/events"
	"github.com/jkeats/budgetbuddy/internal/store"
	"github.com/jkeats/budgetbuddy/pkg/logger"
)

// Fallbacks used when the category/account lists are empty during seeding.
const (
	fallbackAccount  = "Checking"
	fallbackCategory = "Housing"
)

// payeeSuggestionLimit bounds the distinct payees offered as input suggestions
const payeeSuggestionLimit = 25

// ListProvider supplies the current category and account lists for seeding
// and normalization. Implemented by the settings service.
type ListProvider interface {
	Categories(ctx context.Context) []string
	Accounts(ctx context.Context) []string
}

// Config parameterizes one ledger section. The three sections run the same
// code against distinct storage keys.
type Config struct {
	Section    Section
	StorageKey string
	Type       Type

	// AllowEmpty permits a zero-row empty state instead of the
	// minimum-one-row floor.
	AllowEmpty bool
}

// Service owns the ordered row collection of one section. It is stateless
// over the store: every operation re-reads the persisted rows, so sections
// mounted elsewhere always observe the last write.
type Service struct {
	cfg   Config
	store *store.Store
	lists ListProvider
	bus   *events.Bus
	log   *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewService creates a ledger service for one section
func NewService(cfg Config, st *store.Store, lists ListProvider, bus *events.Bus, log *logger.Logger) *Service {
	return &Service{
		cfg:   cfg,
		store: st,
		lists: lists,
		bus:   bus,
		log:   log.WithField("section", string(cfg.Section)),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Section returns the section this ledger serves
func (s *Service) Section() Section {
	return s.cfg.Section
}

// Type returns the row type of this ledger
func (s *Service) Type() Type {
	return s.cfg.Type
}

// Rows returns the current normalized row collection, seeding a single blank
// row when nothing usable is persisted.
func (s *Service) Rows(ctx context.Context) []Row {
	return s.load(ctx)
}

// AddRow inserts a blank row template, after the referenced row when afterID
// names an existing row, otherwise at the end.
func (s *Service) AddRow(ctx context.Context, afterID string) Row {
	rows := s.load(ctx)
	row := s.blankRow(ctx)

	inserted := false
	if afterID != "" {
		for i := range rows {
			if rows[i].ID == afterID {
				rows = append(rows[:i+1], append([]Row{row}, rows[i+1:]...)...)
				inserted = true
				break
			}
		}
	}
	if !inserted {
		rows = append(rows, row)
	}

	s.save(ctx, rows)
	return row
}

// UpdateRow applies a partial field update to the identified row
func (s *Service) UpdateRow(ctx context.Context, id string, patch Patch) (Row, error) {
	rows := s.load(ctx)

	for i := range rows {
		if rows[i].ID != id {
			continue
		}
		rows[i] = s.normalize(ctx, patch.apply(rows[i]))
		s.save(ctx, rows)
		return rows[i], nil
	}

	return Row{}, ErrRowNotFound
}

// RemoveRow deletes the identified row, refusing to drop below one row
// unless the section supports an empty state.
func (s *Service) RemoveRow(ctx context.Context, id string) error {
	rows := s.load(ctx)

	idx := -1
	for i := range rows {
		if rows[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrRowNotFound
	}

	if len(rows) <= 1 && !s.cfg.AllowEmpty {
		return ErrMinimumRows
	}

	rows = append(rows[:idx], rows[idx+1:]...)
	s.save(ctx, rows)
	return nil
}

// PayeeSuggestions returns recent distinct payee values for input suggestions
func (s *Service) PayeeSuggestions(ctx context.Context) []string {
	return PayeeSuggestions(s.load(ctx), payeeSuggestionLimit)
}

// load reads the persisted rows, falling back to a seeded blank row when the
// stored value is missing, malformed, or empty (for floored sections).
func (s *Service) load(ctx context.Context) []Row {
	var rows []Row
	ok := s.store.GetJSON(ctx, s.cfg.StorageKey, &rows)

	if (!ok || len(rows) == 0) && !s.cfg.AllowEmpty {
		rows = []Row{s.blankRow(ctx)}
		s.store.SetJSON(ctx, s.cfg.StorageKey, rows)
		return rows
	}

	// Rows imported without an ID get one here; it must be written back,
	// or the row would answer to a different ID on every read.
	filledID := false
	for i := range rows {
		if rows[i].ID == "" {
			filledID = true
		}
		rows[i] = s.normalize(ctx, rows[i])
	}
	if filledID {
		s.store.SetJSON(ctx, s.cfg.StorageKey, rows)
	}
	return rows
}

// save persists the whole collection and notifies sibling sections
func (s *Service) save(ctx context.Context, rows []Row) {
	s.store.SetJSON(ctx, s.cfg.StorageKey, rows)

	if s.cfg.Type == TypeIncome {
		s.bus.Publish(events.IncomeChanged{})
	} else {
		s.bus.Publish(events.TransactionsChanged{Section: string(s.cfg.Section)})
	}
}

// normalize fills the defaults a row loaded from storage may be missing
func (s *Service) normalize(ctx context.Context, r Row) Row {
	if r.ID == "" {
		r.ID = s.newID()
	}
	if r.Date == "" {
		r.Date = s.today()
	}
	if r.Account == "" {
		r.Account = s.firstAccount(ctx)
	}
	r.Type = s.cfg.Type
	return r
}

func (s *Service) blankRow(ctx context.Context) Row {
	return Row{
		ID:       s.newID(),
		Date:     s.today(),
		Account:  s.firstAccount(ctx),
		Category: s.firstCategory(ctx),
		Payee:    "",
		Amount:   0,
		Type:     s.cfg.Type,
	}
}

func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

func (s *Service) firstAccount(ctx context.Context) string {
	if accounts := s.lists.Accounts(ctx); len(accounts) > 0 {
		return accounts[0]
	}
	return fallbackAccount
}

func (s *Service) firstCategory(ctx context.Context) string {
	if categories := s.lists.Categories(ctx); len(categories) > 0 {
		return categories[0]
	}
	return fallbackCategory
}
