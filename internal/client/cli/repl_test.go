package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	f.calls = append(f.calls, "register")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) WhoAmI(context.Context) error   { f.calls = append(f.calls, "whoami"); return nil }
func (f *fakeExec) Projects(context.Context) error { f.calls = append(f.calls, "projects"); return nil }
func (f *fakeExec) Fetchers(context.Context) error { f.calls = append(f.calls, "fetchers"); return nil }

// capturePrint collects everything printed through printlnFn.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			parts = append(parts, strings.TrimSpace(strings.ReplaceAll(toString(v), "\n", " ")))
		}
		out = append(out, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := capturePrint(t)
	f := &fakeExec{}

	input := strings.Join([]string{"", "help", "login", "help", "whoami", "projects", "fetchers", "logout", "bogus", "exit", "whoami"}, "\n")
	runREPL(context.Background(), f, func() string { return "st" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"login", "whoami", "projects", "fetchers", "logout"}, f.calls)
	assert.Contains(t, *out, "Available commands: register, login, exit")
	assert.Contains(t, *out, "Available commands: whoami, projects, fetchers, logout, exit")
	assert.Contains(t, *out, "Unknown command: bogus")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	capturePrint(t)
	f := &fakeExec{}

	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader("register")))

	assert.Equal(t, []string{"register"}, f.calls)
}
