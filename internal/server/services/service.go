// Package services contains the SnowballR business logic. Every operation
// validates its input and referenced parents first and only then writes,
// inside a single store transaction.
package services

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/blob"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/decision"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"
	"github.com/go-playground/validator/v10"
)

// AvailableFetcherAPIs are the paper fetchers a project may enable.
var AvailableFetcherAPIs = []string{"fake", "mock"}

// Service is the façade the RPC layer calls for every non-session operation.
type Service struct {
	store    store.Store
	pdfs     blob.Store
	validate *validator.Validate
}

func NewService(s store.Store, pdfs blob.Store) *Service {
	return &Service{store: s, pdfs: pdfs, validate: newValidator()}
}

// GetAvailableFetcherApis lists the fetcher names a project may use.
func (s *Service) GetAvailableFetcherApis(context.Context) []string {
	return append([]string(nil), AvailableFetcherAPIs...)
}

func (s *Service) view(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.store.View(ctx, fn)
}

func (s *Service) update(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.store.Update(ctx, fn)
}

// --- helpers shared by the operation files ---

// projectOfPaper returns the id of the project owning ProjectPaper ppID.
func projectOfPaper(tx store.Tx, ppID string) (string, error) {
	parents := tx.ProjectPaperIndex().ParentsOf(func(v string) bool { return v == ppID })
	if len(parents) == 0 {
		return "", common.NewNotFound("project paper", ppID)
	}
	return parents[0], nil
}

// projectPaperOfReview returns the id of the ProjectPaper holding reviewID.
func projectPaperOfReview(tx store.Tx, reviewID string) (string, error) {
	parents := tx.ReviewIndex().ParentsOf(func(v string) bool { return v == reviewID })
	if len(parents) == 0 {
		return "", common.NewNotFound("review", reviewID)
	}
	return parents[0], nil
}

func reviewsOf(tx store.Tx, ppID string) ([]models.Review, error) {
	ids, err := tx.ReviewIndex().Get(ppID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Review, 0, len(ids))
	for _, id := range ids {
		r, err := tx.Reviews().Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// redecide recomputes the decision of ProjectPaper ppID from its reviews.
func redecide(tx store.Tx, ppID string) error {
	pp, err := tx.ProjectPapers().Get(ppID)
	if err != nil {
		return err
	}
	projectID, err := projectOfPaper(tx, ppID)
	if err != nil {
		return err
	}
	project, err := tx.Projects().Get(projectID)
	if err != nil {
		return err
	}
	reviews, err := reviewsOf(tx, ppID)
	if err != nil {
		return err
	}
	pp.Decision = decision.Decide(project.Settings.DecisionMatrix, reviews)
	tx.ProjectPapers().Put(ppID, pp)
	return nil
}

func projectPapersOf(tx store.Tx, projectID string) ([]models.ProjectPaper, error) {
	ids, err := tx.ProjectPaperIndex().Get(projectID)
	if err != nil {
		return nil, err
	}
	out := make([]models.ProjectPaper, 0, len(ids))
	for _, id := range ids {
		pp, err := tx.ProjectPapers().Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, pp)
	}
	return out, nil
}

func detail(tx store.Tx, pp models.ProjectPaper) (models.ProjectPaperDetail, error) {
	paper, err := tx.Papers().Get(pp.PaperID)
	if err != nil {
		return models.ProjectPaperDetail{}, err
	}
	reviews, err := reviewsOf(tx, pp.ID)
	if err != nil {
		return models.ProjectPaperDetail{}, err
	}
	return models.ProjectPaperDetail{ProjectPaper: pp, Paper: paper, Reviews: reviews}, nil
}

func isMember(tx store.Tx, projectID, userID string) bool {
	rows, err := tx.Members().Get(projectID)
	if err != nil {
		return false
	}
	for _, m := range rows {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
