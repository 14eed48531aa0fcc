// Package store keeps every SnowballR collection and secondary index and
// runs each multi-step mutation as one atomic unit.
package store

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
)

// Store gives transactional access to the collections.
//
// Update runs fn with exclusive access. If fn returns an error (or panics)
// none of its writes become visible. View runs fn with shared read access;
// writes made inside View are discarded.
type Store interface {
	Update(ctx context.Context, fn func(tx Tx) error) error
	View(ctx context.Context, fn func(tx Tx) error) error
}

// Tx exposes the collections inside one Update or View call.
type Tx interface {
	Users() *Collection[models.Account]
	Settings() *Collection[models.UserSettings]
	Projects() *Collection[models.Project]
	Papers() *Collection[models.Paper]
	ProjectPapers() *Collection[models.ProjectPaper]
	Criteria() *Collection[models.Criterion]
	Reviews() *Collection[models.Review]

	// Members maps project id to its member rows.
	Members() *Lists[models.Member]
	// ProjectCriteria maps project id to its ordered criterion ids.
	ProjectCriteria() *Lists[string]
	// ProjectPaperIndex maps project id to its ProjectPaper ids.
	ProjectPaperIndex() *Lists[string]
	// ReviewIndex maps ProjectPaper id to its review ids.
	ReviewIndex() *Lists[string]
	// ReadingLists maps user id to paper ids.
	ReadingLists() *Lists[string]
	// Invitations maps user id to the ids of projects they are invited to.
	Invitations() *Lists[string]
}
