package services

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/patch"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

func (s *Service) GetCriterion(ctx context.Context, id string) (models.Criterion, error) {
	var out models.Criterion
	err := s.view(ctx, func(tx store.Tx) error {
		var err error
		out, err = tx.Criteria().Get(id)
		return err
	})
	return out, err
}

// GetAllCriteriaForProject returns the criteria of projectID in the order
// they were created.
func (s *Service) GetAllCriteriaForProject(ctx context.Context, projectID string) ([]models.Criterion, error) {
	var out []models.Criterion
	err := s.view(ctx, func(tx store.Tx) error {
		ids, err := tx.ProjectCriteria().Get(projectID)
		if err != nil {
			return err
		}
		out = make([]models.Criterion, 0, len(ids))
		for _, id := range ids {
			c, err := tx.Criteria().Get(id)
			if err != nil {
				return err
			}
			out = append(out, c)
		}
		return nil
	})
	return out, err
}

func (s *Service) CreateCriterion(ctx context.Context, spec models.CriterionSpec) (models.Criterion, error) {
	if err := check(s.validate, spec); err != nil {
		return models.Criterion{}, err
	}
	var out models.Criterion
	err := s.update(ctx, func(tx store.Tx) error {
		if !tx.ProjectCriteria().Has(spec.ProjectID) {
			return common.NewNotFound("project", spec.ProjectID)
		}
		out = models.Criterion{
			ID:          tx.Criteria().NextID(),
			Tag:         spec.Tag,
			Name:        spec.Name,
			Description: spec.Description,
			Category:    spec.Category,
		}
		tx.Criteria().Put(out.ID, out)
		return tx.ProjectCriteria().Append(spec.ProjectID, out.ID)
	})
	return out, err
}

func (s *Service) UpdateCriterion(ctx context.Context, id string, p models.CriterionPatch, mask *fieldmaskpb.FieldMask) (models.Criterion, error) {
	var out models.Criterion
	err := s.update(ctx, func(tx store.Tx) error {
		cur, err := tx.Criteria().Get(id)
		if err != nil {
			return err
		}
		merged, err := patch.Apply(cur, p, mask)
		if err != nil {
			return err
		}
		switch {
		case common.IsBlank(merged.Tag):
			return common.NewInvalidArgument("tag", "must not be blank")
		case common.IsBlank(merged.Name):
			return common.NewInvalidArgument("name", "must not be blank")
		}
		switch merged.Category {
		case models.CriterionInclusion, models.CriterionExclusion, models.CriterionHardExclusion:
		default:
			return common.NewInvalidArgument("category", "unknown category")
		}
		tx.Criteria().Put(id, merged)
		out = merged
		return nil
	})
	return out, err
}

// DeleteCriterion removes the criterion from its project's list and from the
// selected criteria of every review.
func (s *Service) DeleteCriterion(ctx context.Context, id string) error {
	return s.update(ctx, func(tx store.Tx) error {
		if !tx.Criteria().Delete(id) {
			return common.NewNotFound("criterion", id)
		}
		tx.ProjectCriteria().RemoveAll(func(v string) bool { return v == id })
		for _, r := range tx.Reviews().List() {
			kept := r.SelectedCriteriaIDs[:0:0]
			for _, c := range r.SelectedCriteriaIDs {
				if c != id {
					kept = append(kept, c)
				}
			}
			if len(kept) != len(r.SelectedCriteriaIDs) {
				r.SelectedCriteriaIDs = kept
				tx.Reviews().Put(r.ID, r)
			}
		}
		return nil
	})
}
