// Package tickets is the ticket repository. The whole collection is one
// blob: every operation reads it, changes it in memory and writes it back.
package tickets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ticketly/ticketly/internal/common"
	"github.com/ticketly/ticketly/internal/ids"
	"github.com/ticketly/ticketly/internal/kvstore"
	"github.com/ticketly/ticketly/internal/logging"
	"github.com/ticketly/ticketly/internal/models"
	"github.com/ticketly/ticketly/internal/timex"
)

// Repository stores tickets under common.KeyTickets.
type Repository struct {
	mu     sync.Mutex
	store  kvstore.Store
	logger logging.Logger
	ids    ids.Generator
	now    func() time.Time
}

type Option func(*Repository)

func WithLogger(l logging.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
		r.ids = ids.Generator{Now: now}
	}
}

func NewRepository(store kvstore.Store, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		logger: logging.Nop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Add stores a new ticket with a fresh id and createdAt == updatedAt == now.
// An empty status means open. Title length is not checked here.
func (r *Repository) Add(ctx context.Context, draft models.TicketDraft) (models.Ticket, error) {
	if draft.Status == "" {
		draft.Status = models.StatusOpen
	}
	if !draft.Status.Valid() {
		return models.Ticket{}, fmt.Errorf("%w: unknown status %q", common.ErrValidation, draft.Status)
	}
	if !draft.Priority.Valid() {
		return models.Ticket{}, fmt.Errorf("%w: unknown priority %q", common.ErrValidation, draft.Priority)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return models.Ticket{}, err
	}

	now := timex.At(r.now())
	t := models.Ticket{
		ID:          r.ids.New(ids.PrefixTicket),
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.save(ctx, append(list, t)); err != nil {
		return models.Ticket{}, err
	}

	r.logger.Debug(ctx, "ticket added", "ticket_id", t.ID)
	return t, nil
}

// Update merges patch into the ticket with the given id and refreshes
// updatedAt. A missing id reports false and writes nothing.
func (r *Repository) Update(ctx context.Context, id string, patch models.TicketPatch) (bool, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return false, fmt.Errorf("%w: unknown status %q", common.ErrValidation, *patch.Status)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return false, fmt.Errorf("%w: unknown priority %q", common.ErrValidation, *patch.Priority)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	i := indexOf(list, id)
	if i < 0 {
		r.logger.Debug(ctx, "update of unknown ticket ignored", "ticket_id", id)
		return false, nil
	}

	t := &list[i]
	patch.Apply(t)
	t.UpdatedAt = timex.Max(timex.At(r.now()), t.CreatedAt)

	if err := r.save(ctx, list); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the ticket with the given id. A missing id reports false.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	i := indexOf(list, id)
	if i < 0 {
		return false, nil
	}

	list = append(list[:i], list[i+1:]...)
	if err := r.save(ctx, list); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns common.ErrNotFound for an unknown id.
func (r *Repository) Get(ctx context.Context, id string) (models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return models.Ticket{}, err
	}
	if i := indexOf(list, id); i >= 0 {
		return list[i], nil
	}
	return models.Ticket{}, fmt.Errorf("ticket %s: %w", id, common.ErrNotFound)
}

// List returns every ticket in insertion order.
func (r *Repository) List(ctx context.Context) ([]models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

// Stats counts tickets per status. It is recomputed on each call.
func (r *Repository) Stats(ctx context.Context) (models.Stats, error) {
	list, err := r.List(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	return Count(list), nil
}

// Count aggregates list. Every stored status is one of the three known
// values, so Open+InProgress+Closed == Total.
func Count(list []models.Ticket) models.Stats {
	s := models.Stats{Total: len(list)}
	for _, t := range list {
		switch t.Status {
		case models.StatusOpen:
			s.Open++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusClosed:
			s.Closed++
		}
	}
	return s
}

func (r *Repository) load(ctx context.Context) ([]models.Ticket, error) {
	list, _, err := kvstore.ReadJSON[[]models.Ticket](ctx, r.store, r.logger, common.KeyTickets)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}
	return list, nil
}

func (r *Repository) save(ctx context.Context, list []models.Ticket) error {
	if list == nil {
		list = []models.Ticket{}
	}
	if err := kvstore.WriteJSON(ctx, r.store, common.KeyTickets, list); err != nil {
		return fmt.Errorf("failed to save tickets: %w", err)
	}
	return nil
}

func indexOf(list []models.Ticket, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
