// Package auth is the identity and credential store: the users collection
// and the single active session slot.
//
// Credentials are stored and compared verbatim. Emails are trimmed, kept as
// entered and matched case-insensitively.
package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ticketly/ticketly/internal/common"
	"github.com/ticketly/ticketly/internal/ids"
	"github.com/ticketly/ticketly/internal/kvstore"
	"github.com/ticketly/ticketly/internal/logging"
	"github.com/ticketly/ticketly/internal/models"
)

// Service manages users and the session slot of one store.
type Service struct {
	mu     sync.Mutex
	store  kvstore.Store
	logger logging.Logger
	secret []byte
	ids    ids.Generator
	now    func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger used for self-healing reads.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces the wall clock for token timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
		s.ids = ids.Generator{Now: now}
	}
}

// NewService binds the store; secret signs session tokens.
func NewService(store kvstore.Store, secret []byte, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logging.Nop(),
		secret: secret,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Signup registers a new user and opens a session for them.
// It returns common.ErrAlreadyExists when the email is taken.
func (s *Service) Signup(ctx context.Context, email, password, name string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.TrimSpace(email)

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := findByEmail(users, email); ok {
		return nil, fmt.Errorf("%w: user with email %s", common.ErrAlreadyExists, email)
	}

	user := models.User{
		ID:       s.ids.New(ids.PrefixUser),
		Email:    email,
		Name:     strings.TrimSpace(name),
		Password: password,
	}
	users = append(users, user)

	if err := kvstore.WriteJSON(ctx, s.store, common.KeyUsers, users); err != nil {
		return nil, fmt.Errorf("failed to save users: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return s.startSession(ctx, user)
}

// Login opens a session for the user matching email and password. Unknown
// email and wrong password both yield common.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	user, ok := findByEmail(users, strings.TrimSpace(email))
	if !ok || user.Password != password {
		return nil, common.ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

// Logout clears the session slot. It succeeds when there is no session.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clearSession(ctx)
}

// CurrentSession returns the persisted session, or nil when there is none.
// A half-written or unreadable session is cleared and reported as nil.
func (s *Service) CurrentSession(ctx context.Context) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, hasToken, err := s.store.Get(ctx, common.KeySession)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	user, hasUser, err := kvstore.ReadJSON[models.UserView](ctx, s.store, s.logger, common.KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read current user: %w", err)
	}

	if !hasToken || token == "" || !hasUser || user.ID == "" {
		if hasToken || hasUser {
			s.logger.Warn(ctx, "clearing incomplete session", "has_token", hasToken, "has_user", hasUser)
		}
		if err := s.clearSession(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &models.Session{Token: token, User: user}, nil
}

// TokenInfo decodes a token issued by this service.
func (s *Service) TokenInfo(token string) (userID string, issuedAt time.Time, err error) {
	claims, err := ParseToken(token, s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	return claims.Subject, issuedAt, nil
}

func (s *Service) loadUsers(ctx context.Context) ([]models.User, error) {
	users, _, err := kvstore.ReadJSON[[]models.User](ctx, s.store, s.logger, common.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

func (s *Service) startSession(ctx context.Context, user models.User) (*models.Session, error) {
	token, err := IssueToken(user.ID, s.ids.New(ids.PrefixToken), s.secret, s.now())
	if err != nil {
		return nil, err
	}

	view := user.View()
	raw, err := kvstore.EncodeJSON(view)
	if err != nil {
		return nil, err
	}

	if err := kvstore.Apply(ctx, s.store,
		kvstore.SetOp(common.KeySession, token),
		kvstore.SetOp(common.KeyCurrentUser, raw),
	); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &models.Session{Token: token, User: view}, nil
}

func (s *Service) clearSession(ctx context.Context) error {
	if err := kvstore.Apply(ctx, s.store,
		kvstore.DeleteOp(common.KeySession),
		kvstore.DeleteOp(common.KeyCurrentUser),
	); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func findByEmail(users []models.User, email string) (models.User, bool) {
	for _, u := range users {
		if strings.EqualFold(strings.TrimSpace(u.Email), email) {
			return u, true
		}
	}
	return models.User{}, false
}
