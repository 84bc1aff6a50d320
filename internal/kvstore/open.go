package kvstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/ticketly/ticketly/internal/common"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string
	DSN     string
	S3      S3Options
}

var newS3API = func(ctx context.Context, opts S3Options) (S3API, error) {
	return NewS3Client(ctx, opts)
}

// Open returns the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendSQLite:
		return OpenSQLite(ctx, opts.Path)
	case BackendPostgres:
		return OpenPostgres(ctx, opts.DSN)
	case BackendS3:
		api, err := newS3API(ctx, opts.S3)
		if err != nil {
			return nil, err
		}
		return NewS3Store(api, opts.S3.Bucket, opts.S3.Prefix), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownBackend, opts.Backend)
	}
}
