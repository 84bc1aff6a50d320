// Package cli implements the interactive terminal client for ticketly.
//
// The client is a line-oriented REPL. Public commands (help, signup, login,
// exit) are always available; every other command first asks the session
// guard, and without a stored session the user is sent to the login prompt.
//
// Prompts read from a single bufio.Reader. Passwords are read without echo
// when stdin is a terminal.
package cli
