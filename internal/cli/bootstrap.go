package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ticketly/ticketly/internal/auth"
	"github.com/ticketly/ticketly/internal/config"
	"github.com/ticketly/ticketly/internal/guard"
	"github.com/ticketly/ticketly/internal/kvstore"
	"github.com/ticketly/ticketly/internal/logging"
	"github.com/ticketly/ticketly/internal/tickets"
)

// openStore is a test seam.
var openStore = kvstore.Open

// NewAppFromConfig opens the configured store and wires every service to
// it. The returned closer releases the store.
func NewAppFromConfig(ctx context.Context, cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, io.Closer, error) {
	openCtx, cancel := context.WithTimeout(ctx, cfg.OperationTimeout)
	defer cancel()

	store, err := openStore(openCtx, cfg.StoreOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("error opening %s storage: %w", cfg.StorageBackend, err)
	}
	logger.Info(ctx, "storage ready", "backend", cfg.StorageBackend)

	app := NewApp(Deps{
		Auth:    auth.NewService(store, []byte(cfg.TokenSecret), auth.WithLogger(logger)),
		Tickets: tickets.NewRepository(store, tickets.WithLogger(logger)),
		Guard:   guard.New(store, logger),
		Logger:  logger,
		In:      in,
		Out:     out,
		Timeout: cfg.OperationTimeout,
	})
	return app, store, nil
}
