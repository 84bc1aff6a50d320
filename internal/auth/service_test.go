package auth

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketly/ticketly/internal/common"
	"github.com/ticketly/ticketly/internal/kvstore"
	"github.com/ticketly/ticketly/internal/logging"
	"github.com/ticketly/ticketly/internal/models"
)

var testSecret = []byte("test-secret")

func newTestService(t *testing.T) (*Service, *kvstore.MemoryStore) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	return NewService(store, testSecret), store
}

func storedUsers(t *testing.T, s kvstore.Store) []models.User {
	t.Helper()
	users, _, err := kvstore.ReadJSON[[]models.User](context.Background(), s, logging.Nop(), common.KeyUsers)
	require.NoError(t, err)
	return users
}

// ---- TESTS ----

func TestSignup_CreatesUserAndSession(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	sess, err := svc.Signup(ctx, "  a@x.com ", "secret", "Alice")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "a@x.com", sess.User.Email)
	assert.Equal(t, "Alice", sess.User.Name)
	assert.True(t, strings.HasPrefix(sess.User.ID, "user_"))

	users := storedUsers(t, store)
	require.Len(t, users, 1)
	assert.Equal(t, "secret", users[0].Password)
	assert.Equal(t, sess.User.ID, users[0].ID)

	raw, ok, _ := store.Get(ctx, common.KeySession)
	require.True(t, ok)
	assert.Equal(t, sess.Token, raw, "token is stored as a raw string")

	raw, ok, _ = store.Get(ctx, common.KeyCurrentUser)
	require.True(t, ok)
	assert.NotContains(t, raw, "password")
	assert.JSONEq(t, `{"id":"`+sess.User.ID+`","email":"a@x.com","name":"Alice"}`, raw)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.Signup(ctx, "a@x.com", "secret", "A")
	require.NoError(t, err)

	for _, email := range []string{"a@x.com", "A@X.com", " a@x.com"} {
		_, err = svc.Signup(ctx, email, "other", "B")
		require.ErrorIs(t, err, common.ErrAlreadyExists, email)
	}

	assert.Len(t, storedUsers(t, store), 1)
}

func TestSignup_MostRecentSessionWins(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	var last *models.Session
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		s, err := svc.Signup(ctx, email, "pw", email)
		require.NoError(t, err)

		cur, err := svc.CurrentSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, cur)
		assert.Equal(t, s.Token, cur.Token)
		assert.Equal(t, s.User, cur.User)
		if last != nil {
			assert.NotEqual(t, last.Token, cur.Token)
		}
		last = s
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	signed, err := svc.Signup(ctx, "a@x.com", "secret", "A")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	t.Run("success", func(t *testing.T) {
		sess, err := svc.Login(ctx, "a@x.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, signed.User, sess.User)
		assert.NotEqual(t, signed.Token, sess.Token)

		cur, err := svc.CurrentSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, sess.Token, cur.Token)
	})

	t.Run("email case-insensitive", func(t *testing.T) {
		_, err := svc.Login(ctx, "A@X.COM", "secret")
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@x.com", "wrong")
		require.ErrorIs(t, err, common.ErrInvalidCredentials)
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		_, errUnknown := svc.Login(ctx, "nobody@x.com", "secret")
		_, errWrong := svc.Login(ctx, "a@x.com", "wrong")
		require.ErrorIs(t, errUnknown, common.ErrInvalidCredentials)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("password is case-sensitive", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@x.com", "SECRET")
		require.ErrorIs(t, err, common.ErrInvalidCredentials)
	})
}

func TestLogin_FailureKeepsExistingSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	sess, err := svc.Signup(ctx, "a@x.com", "secret", "A")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "nope")
	require.Error(t, err)

	cur, err := svc.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, sess.Token, cur.Token)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("after signup", func(t *testing.T) {
		svc, store := newTestService(t)
		_, err := svc.Signup(ctx, "a@x.com", "pw", "A")
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx))

		cur, err := svc.CurrentSession(ctx)
		require.NoError(t, err)
		assert.Nil(t, cur)
		assert.Equal(t, []string{common.KeyUsers}, keys(store))
	})

	t.Run("without session", func(t *testing.T) {
		svc, _ := newTestService(t)
		require.NoError(t, svc.Logout(ctx))
		require.NoError(t, svc.Logout(ctx))

		cur, err := svc.CurrentSession(ctx)
		require.NoError(t, err)
		assert.Nil(t, cur)
	})
}

func TestCurrentSession_SelfHeals(t *testing.T) {
	ctx := context.Background()

	cases := map[string]map[string]string{
		"token only":   {common.KeySession: "tok"},
		"user only":    {common.KeyCurrentUser: `{"id":"u","email":"a","name":"A"}`},
		"corrupt user": {common.KeySession: "tok", common.KeyCurrentUser: `{"id":`},
		"empty token":  {common.KeySession: "", common.KeyCurrentUser: `{"id":"u","email":"a","name":"A"}`},
		"null user":    {common.KeySession: "tok", common.KeyCurrentUser: `null`},
	}

	for name, state := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			store := kvstore.NewMemoryStore()
			for k, v := range state {
				require.NoError(t, store.Set(ctx, k, v))
			}
			svc := NewService(store, testSecret, WithLogger(logging.NewTextLogger(&buf, "warn")))

			cur, err := svc.CurrentSession(ctx)
			require.NoError(t, err)
			assert.Nil(t, cur)
			assert.Empty(t, keys(store), "both session keys must be cleared")
			assert.NotEmpty(t, buf.String())
		})
	}
}

func TestCorruptUsersBlob_ReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	require.NoError(t, store.Set(ctx, common.KeyUsers, `[{"id":"u1","email":"a@x.com"`))

	_, err := svc.Login(ctx, "a@x.com", "pw")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	sess, err := svc.Signup(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)
	users := storedUsers(t, store)
	require.Len(t, users, 1)
	assert.Equal(t, sess.User.ID, users[0].ID)
}

func TestTokenInfo(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewService(kvstore.NewMemoryStore(), testSecret, WithClock(func() time.Time { return at }))

	sess, err := svc.Signup(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)
	assert.Contains(t, sess.User.ID, "_1735787045000_")

	sub, iat, err := svc.TokenInfo(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, sub)
	assert.True(t, iat.Equal(at))

	other := NewService(kvstore.NewMemoryStore(), []byte("other"))
	_, _, err = other.TokenInfo(sess.Token)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestTokens_UniqueUnderFrozenClock(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(kvstore.NewMemoryStore(), testSecret, WithClock(func() time.Time { return at }))

	_, err := svc.Signup(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s, err := svc.Login(ctx, "a@x.com", "pw")
		require.NoError(t, err)
		require.False(t, seen[s.Token], "token collision")
		seen[s.Token] = true
	}
}

func TestSignup_ConcurrentDistinctEmails(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Signup(ctx, string(rune('a'+i))+"@x.com", "pw", "U")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, storedUsers(t, store), 20)
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "auth.db")

	store, err := kvstore.OpenSQLite(ctx, path)
	require.NoError(t, err)
	sess, err := NewService(store, testSecret).Signup(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = kvstore.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	svc := NewService(store, testSecret)

	cur, err := svc.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, *sess, *cur)

	_, err = svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
}

type brokenStore struct {
	*kvstore.MemoryStore
	err error
}

func (b brokenStore) Set(context.Context, string, string) error { return b.err }

func (b brokenStore) Batch(context.Context, []kvstore.Op) error { return b.err }

func TestBackendErrorsAreReturned(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	svc := NewService(brokenStore{MemoryStore: kvstore.NewMemoryStore(), err: boom}, testSecret)

	_, err := svc.Signup(ctx, "a@x.com", "pw", "A")
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "failed to save users")

	err = svc.Logout(ctx)
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "failed to clear session")
}

func keys(m *kvstore.MemoryStore) []string {
	var out []string
	for k := range m.Snapshot() {
		out = append(out, k)
	}
	return out
}
