package services

import (
	"context"
	"slices"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/patch"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

func (s *Service) GetReview(ctx context.Context, id string) (models.Review, error) {
	var out models.Review
	err := s.view(ctx, func(tx store.Tx) error {
		var err error
		out, err = tx.Reviews().Get(id)
		return err
	})
	return out, err
}

func (s *Service) GetAllReviewsForProjectPaper(ctx context.Context, ppID string) ([]models.Review, error) {
	var out []models.Review
	err := s.view(ctx, func(tx store.Tx) error {
		var err error
		out, err = reviewsOf(tx, ppID)
		return err
	})
	return out, err
}

// CreateReview records the review of userID and recomputes the decision of
// the reviewed ProjectPaper.
func (s *Service) CreateReview(ctx context.Context, userID string, spec models.ReviewSpec) (models.Review, error) {
	if err := check(s.validate, spec); err != nil {
		return models.Review{}, err
	}
	var out models.Review
	err := s.update(ctx, func(tx store.Tx) error {
		if !tx.ProjectPapers().Has(spec.ProjectPaperID) {
			return common.NewNotFound("project paper", spec.ProjectPaperID)
		}
		if !tx.Users().Has(userID) {
			return common.NewNotFound("user", userID)
		}
		r := models.Review{
			ID:                  tx.Reviews().NextID(),
			UserID:              userID,
			Decision:            spec.Decision,
			SelectedCriteriaIDs: spec.SelectedCriteriaIDs,
		}
		if r.SelectedCriteriaIDs == nil {
			r.SelectedCriteriaIDs = []string{}
		}
		if err := checkReview(tx, spec.ProjectPaperID, r); err != nil {
			return err
		}
		tx.Reviews().Put(r.ID, r)
		if err := tx.ReviewIndex().Append(spec.ProjectPaperID, r.ID); err != nil {
			return err
		}
		out = r
		return redecide(tx, spec.ProjectPaperID)
	})
	return out, err
}

func (s *Service) UpdateReview(ctx context.Context, id string, p models.ReviewPatch, mask *fieldmaskpb.FieldMask) (models.Review, error) {
	var out models.Review
	err := s.update(ctx, func(tx store.Tx) error {
		cur, err := tx.Reviews().Get(id)
		if err != nil {
			return err
		}
		merged, err := patch.Apply(cur, p, mask)
		if err != nil {
			return err
		}
		merged.UserID = cur.UserID
		ppID, err := projectPaperOfReview(tx, id)
		if err != nil {
			return err
		}
		if err := checkReview(tx, ppID, merged); err != nil {
			return err
		}
		tx.Reviews().Put(id, merged)
		out = merged
		return redecide(tx, ppID)
	})
	return out, err
}

// DeleteReview removes the review from its ProjectPaper and recomputes the
// paper's decision.
func (s *Service) DeleteReview(ctx context.Context, id string) error {
	return s.update(ctx, func(tx store.Tx) error {
		if !tx.Reviews().Delete(id) {
			return common.NewNotFound("review", id)
		}
		for _, ppID := range tx.ReviewIndex().RemoveAll(func(v string) bool { return v == id }) {
			if err := redecide(tx, ppID); err != nil {
				return err
			}
		}
		return nil
	})
}

// checkReview enforces the project rules on r as a review of ppID: "maybe"
// only where the project allows it and criteria only from the project.
func checkReview(tx store.Tx, ppID string, r models.Review) error {
	projectID, err := projectOfPaper(tx, ppID)
	if err != nil {
		return err
	}
	project, err := tx.Projects().Get(projectID)
	if err != nil {
		return err
	}
	switch r.Decision {
	case models.ReviewDecisionAccepted, models.ReviewDecisionDeclined:
	case models.ReviewDecisionMaybe:
		if !project.Settings.ReviewMaybeAllowed {
			return common.NewInvalidArgument("decision", "maybe is not allowed in this project")
		}
	default:
		return common.NewInvalidArgument("decision", "unknown decision")
	}
	criteria, err := tx.ProjectCriteria().Get(projectID)
	if err != nil {
		return err
	}
	for _, c := range r.SelectedCriteriaIDs {
		if !slices.Contains(criteria, c) {
			return common.NewInvalidArgument("selectedCriteriaIds", "criterion "+c+" does not belong to the project")
		}
	}
	return nil
}
