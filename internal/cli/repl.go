package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a stub.
type execIface interface {
	isAuthorized(ctx context.Context) bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Dashboard(ctx context.Context) error
	List(ctx context.Context, status string) error
	Search(ctx context.Context, query string) error
	New(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

const (
	helpPublic    = "Available commands: signup, login, help, exit"
	helpProtected = "Available commands: dashboard, list [status], search <text>, new, show <id>, edit <id>, status <id> <status>, delete <id>, whoami, logout, help, exit"
)

// runREPL reads one command per line and dispatches it to a until EOF,
// "exit" or "quit".
//
// Commands other than help, signup, login and exit require a session. When
// a reports no session, the REPL says so and runs the login prompt instead.
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ticketly %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isAuthorized(ctx) {
				printlnFn(helpProtected)
			} else {
				printlnFn(helpPublic)
			}
			continue
		case "signup", "register":
			report(a.Signup(ctx))
			continue
		case "login":
			report(a.Login(ctx))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		run, ok := protected(a, cmd, args)
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isAuthorized(ctx) {
			printlnFn("Please log in first.")
			report(a.Login(ctx))
			continue
		}
		report(run(ctx))
	}
}

// protected resolves a guarded command. ok is false for unknown commands.
func protected(a execIface, cmd string, args []string) (run func(context.Context) error, ok bool) {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}
	usage := func(u string) func(context.Context) error {
		return func(context.Context) error { printlnFn("Usage:", u); return nil }
	}
	needID := func(u string, fn func(context.Context, string) error) func(context.Context) error {
		if arg(0) == "" {
			return usage(u)
		}
		return func(ctx context.Context) error { return fn(ctx, arg(0)) }
	}

	switch cmd {
	case "whoami":
		return a.WhoAmI, true
	case "dashboard", "stats":
		return a.Dashboard, true
	case "l", "list":
		return func(ctx context.Context) error { return a.List(ctx, arg(0)) }, true
	case "search":
		if len(args) == 0 {
			return usage("search <text>"), true
		}
		q := strings.Join(args, " ")
		return func(ctx context.Context) error { return a.Search(ctx, q) }, true
	case "new", "add":
		return a.New, true
	case "show":
		return needID("show <id>", a.Show), true
	case "edit":
		return needID("edit <id>", a.Edit), true
	case "delete", "rm":
		return needID("delete <id>", a.Delete), true
	case "status":
		if len(args) < 2 {
			return usage("status <id> <open|in_progress|closed>"), true
		}
		id, st := args[0], strings.Join(args[1:], " ")
		return func(ctx context.Context) error { return a.SetStatus(ctx, id, st) }, true
	case "logout":
		return a.Logout, true
	}
	return nil, false
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}
