package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/client/client"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/client/config"
)

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return newApp(c, apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out}
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.client.Close() }()

	printlnFn("SnowballR CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "(not logged in)"
	}
	return a.email
}

// withTimeout bounds one backend call by the configured request timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) fail(err error) error {
	printlnFn(fmt.Sprintf("error: %v", err))
	return err
}
