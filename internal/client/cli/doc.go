// Package cli provides the interactive SnowballR command-line client.
//
// It dials the backend, then runs a small REPL that can register, log in
// and out, show the current user, list the user's projects and list the
// available fetcher APIs. Passwords are read from the terminal without echo.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
