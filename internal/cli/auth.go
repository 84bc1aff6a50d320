package cli

import (
	"context"
	"errors"

	"github.com/ticketly/ticketly/internal/common"
	"github.com/ticketly/ticketly/internal/models"
	"github.com/ticketly/ticketly/internal/timex"
)

// getSimpleText and getPassword can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Signup asks for name, email and password and registers the user. On
// success the new user is signed in.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	if err := models.ValidateSignup(email, password, name); err != nil {
		return err
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	s, err := a.auth.Signup(opCtx, email, password, name)
	if errors.Is(err, common.ErrAlreadyExists) {
		return errors.New("an account with this email already exists")
	}
	if err != nil {
		return err
	}

	a.logger.Info(ctx, "signed up", "user_id", s.User.ID)
	a.println("Account created. Welcome,", s.User.Name+"!")
	return nil
}

// Login asks for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	s, err := a.auth.Login(opCtx, email, password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		a.logger.Debug(ctx, "login rejected")
		return errors.New("invalid email or password")
	}
	if err != nil {
		return err
	}

	a.println("Welcome back,", s.User.Name+"!")
	return nil
}

// Logout clears the session.
func (a *App) Logout(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.auth.Logout(opCtx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

// WhoAmI prints the current user and when the session token was issued.
func (a *App) WhoAmI(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	s, err := a.auth.CurrentSession(opCtx)
	if err != nil {
		return err
	}
	if s == nil {
		a.println("Not logged in.")
		return nil
	}

	a.println("Name: ", s.User.Name)
	a.println("Email:", s.User.Email)
	a.println("ID:   ", s.User.ID)

	if _, issued, err := a.auth.TokenInfo(s.Token); err == nil && !issued.IsZero() {
		a.println("Since:", timex.At(issued))
	} else if err != nil {
		a.logger.Debug(ctx, "session token not readable", "error", err)
	}
	return nil
}
