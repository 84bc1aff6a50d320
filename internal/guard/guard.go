// Package guard decides whether protected views may be shown.
package guard

import (
	"context"

	"github.com/ticketly/ticketly/internal/common"
	"github.com/ticketly/ticketly/internal/kvstore"
	"github.com/ticketly/ticketly/internal/logging"
)

// Guard checks the persisted session slot. It does not validate the token.
type Guard struct {
	store  kvstore.Store
	logger logging.Logger
}

func New(store kvstore.Store, logger logging.Logger) *Guard {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Guard{store: store, logger: logger}
}

// IsAuthorized reports whether a non-empty session token is stored.
// A backend error reads as false.
func (g *Guard) IsAuthorized(ctx context.Context) bool {
	token, ok, err := g.store.Get(ctx, common.KeySession)
	if err != nil {
		g.logger.Debug(ctx, "session lookup failed", "error", err)
		return false
	}
	return ok && token != ""
}
