package client

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
)

// Client is the backend surface the CLI uses.
type Client interface {
	Close() error
	Register(ctx context.Context, spec models.RegisterSpec) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	LoggedIn() bool
	CurrentUser(ctx context.Context) (models.User, error)
	Projects(ctx context.Context) ([]models.Project, error)
	FetcherApis(ctx context.Context) ([]string, error)
}
