// Package ids generates the opaque identifiers used for users, tickets and
// session token ids.
//
// An identifier has the form <prefix>_<unix-ms>_<sequence>_<random>. The
// sequence is a process-wide counter, so two identifiers minted in one
// process never collide; the random part keeps separate processes apart.
package ids

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	PrefixUser   = "user"
	PrefixTicket = "ticket"
	PrefixToken  = "token"
)

var sequence atomic.Uint64

// Generator mints identifiers. The zero value uses the wall clock.
type Generator struct {
	Now func() time.Time
}

// New returns a fresh identifier with the given prefix.
func (g Generator) New(prefix string) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s_%d_%d_%s", prefix, now().UnixMilli(), sequence.Add(1), random)
}

// New is a shorthand for Generator{}.New.
func New(prefix string) string {
	return Generator{}.New(prefix)
}
