package kvstore

import (
	"context"
	"fmt"
)

// Store is a string-keyed, string-valued persistent map.
type Store interface {
	// Get returns the value under key. A missing key yields ("", false, nil).
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Op is one step of a multi-key write.
type Op struct {
	Key    string
	Value  string
	Delete bool
}

// SetOp and DeleteOp build Ops.
func SetOp(key, value string) Op { return Op{Key: key, Value: value} }
func DeleteOp(key string) Op     { return Op{Key: key, Delete: true} }

// Batcher is implemented by stores that can apply several ops all-or-nothing.
type Batcher interface {
	Batch(ctx context.Context, ops []Op) error
}

// Apply runs ops against s, atomically when s is a Batcher and in order
// otherwise.
func Apply(ctx context.Context, s Store, ops ...Op) error {
	if b, ok := s.(Batcher); ok {
		return b.Batch(ctx, ops)
	}
	for _, op := range ops {
		var err error
		if op.Delete {
			err = s.Remove(ctx, op.Key)
		} else {
			err = s.Set(ctx, op.Key, op.Value)
		}
		if err != nil {
			return fmt.Errorf("apply %s: %w", op.Key, err)
		}
	}
	return nil
}
