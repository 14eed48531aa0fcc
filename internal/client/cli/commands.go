package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
)

func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.fail(err)
	}
	firstName, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return a.fail(err)
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return a.fail(err)
	}
	password, err := getPassword(a.out)
	if err != nil {
		return a.fail(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	err = a.client.Register(ctx, models.RegisterSpec{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  string(password),
	})
	if err != nil {
		return a.fail(err)
	}

	a.email = email
	printlnFn("Registered and logged in as", email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.fail(err)
	}
	password, err := getPassword(a.out)
	if err != nil {
		return a.fail(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Login(ctx, email, string(password)); err != nil {
		return a.fail(err)
	}

	a.email = email
	printlnFn("Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	err := a.client.Logout(ctx)
	a.email = ""
	if err != nil {
		return a.fail(err)
	}
	printlnFn("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		return a.fail(err)
	}
	printlnFn(fmt.Sprintf("%s %s <%s> id=%s role=%s", user.FirstName, user.LastName, user.Email, user.ID, user.Role))
	return nil
}

func (a *App) Projects(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	projects, err := a.client.Projects(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(projects) == 0 {
		printlnFn("No projects")
		return nil
	}
	for _, p := range projects {
		printlnFn(fmt.Sprintf("[%s] %s (stage %d/%d)", p.ID, p.Name, p.CurrentStage, p.MaxStage))
	}
	return nil
}

func (a *App) Fetchers(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	apis, err := a.client.FetcherApis(ctx)
	if err != nil {
		return a.fail(err)
	}
	printlnFn("Fetcher APIs:", strings.Join(apis, ", "))
	return nil
}
