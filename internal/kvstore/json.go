package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ticketly/ticketly/internal/logging"
)

// ReadJSON decodes the blob under key into a fresh T.
//
// A missing key reports false. A blob that does not decode is logged,
// removed and also reported as false; the caller sees an empty value.
// Only backend failures are returned as errors.
func ReadJSON[T any](ctx context.Context, s Store, logger logging.Logger, key string) (T, bool, error) {
	var zero T

	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		logger.Warn(ctx, "discarding corrupt blob", "key", key, "error", err)
		if err := s.Remove(ctx, key); err != nil {
			return zero, false, fmt.Errorf("failed to remove corrupt %s: %w", key, err)
		}
		return zero, false, nil
	}
	return v, true, nil
}

// EncodeJSON marshals v into the string form stored under a key.
func EncodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode blob: %w", err)
	}
	return string(b), nil
}

// WriteJSON replaces the blob under key with v.
func WriteJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := EncodeJSON(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}
