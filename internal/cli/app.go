package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ticketly/ticketly/internal/logging"
	"github.com/ticketly/ticketly/internal/models"
)

// AuthService is the identity store as seen by the CLI.
type AuthService interface {
	Signup(ctx context.Context, email, password, name string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*models.Session, error)
	TokenInfo(token string) (string, time.Time, error)
}

// TicketService is the ticket repository as seen by the CLI.
type TicketService interface {
	Add(ctx context.Context, draft models.TicketDraft) (models.Ticket, error)
	Update(ctx context.Context, id string, patch models.TicketPatch) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Get(ctx context.Context, id string) (models.Ticket, error)
	List(ctx context.Context) ([]models.Ticket, error)
	Stats(ctx context.Context) (models.Stats, error)
}

// Authorizer gates protected commands.
type Authorizer interface {
	IsAuthorized(ctx context.Context) bool
}

// App wires the services to the terminal.
type App struct {
	auth    AuthService
	tickets TicketService
	guard   Authorizer
	logger  logging.Logger

	reader  *bufio.Reader
	out     io.Writer
	timeout time.Duration
}

// Deps collects what NewApp needs. Zero In/Out mean stdin/stdout.
type Deps struct {
	Auth    AuthService
	Tickets TicketService
	Guard   Authorizer
	Logger  logging.Logger
	In      io.Reader
	Out     io.Writer
	Timeout time.Duration
}

func NewApp(d Deps) *App {
	in, out := d.In, d.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &App{
		auth:    d.Auth,
		tickets: d.Tickets,
		guard:   d.Guard,
		logger:  logger,
		reader:  bufio.NewReader(in),
		out:     out,
		timeout: d.Timeout,
	}
}

// Run prints the greeting and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to ticketly (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
}

func (a *App) isAuthorized(ctx context.Context) bool {
	return a.guard.IsAuthorized(ctx)
}

// status is shown in the prompt: the signed-in user's email or nothing.
func (a *App) status(ctx context.Context) string {
	if !a.isAuthorized(ctx) {
		return ""
	}
	ctx, cancel := a.opContext(ctx)
	defer cancel()
	s, err := a.auth.CurrentSession(ctx)
	if err != nil || s == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", s.User.Email)
}

// opContext bounds one storage call. Prompts are never under a deadline.
func (a *App) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
