package services

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/patch"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

func (s *Service) GetProjectPaper(ctx context.Context, id string) (models.ProjectPaperDetail, error) {
	var out models.ProjectPaperDetail
	err := s.view(ctx, func(tx store.Tx) error {
		pp, err := tx.ProjectPapers().Get(id)
		if err != nil {
			return err
		}
		out, err = detail(tx, pp)
		return err
	})
	return out, err
}

func (s *Service) GetAllProjectPapersForProject(ctx context.Context, projectID string) ([]models.ProjectPaperDetail, error) {
	var out []models.ProjectPaperDetail
	err := s.view(ctx, func(tx store.Tx) error {
		papers, err := projectPapersOf(tx, projectID)
		if err != nil {
			return err
		}
		out = make([]models.ProjectPaperDetail, 0, len(papers))
		for _, pp := range papers {
			d, err := detail(tx, pp)
			if err != nil {
				return err
			}
			out = append(out, d)
		}
		return nil
	})
	return out, err
}

// AddPaperToProject places a paper into a project stage, the current one
// unless spec names another. The same paper may be added more than once.
func (s *Service) AddPaperToProject(ctx context.Context, spec models.ProjectPaperSpec) (models.ProjectPaperDetail, error) {
	if err := check(s.validate, spec); err != nil {
		return models.ProjectPaperDetail{}, err
	}
	var out models.ProjectPaperDetail
	err := s.update(ctx, func(tx store.Tx) error {
		project, err := tx.Projects().Get(spec.ProjectID)
		if err != nil {
			return err
		}
		if !tx.Papers().Has(spec.PaperID) {
			return common.NewNotFound("paper", spec.PaperID)
		}
		stage := project.CurrentStage
		if spec.Stage != nil {
			stage = *spec.Stage
		}
		if stage > project.MaxStage {
			return common.NewInvalidArgument("stage", "must not exceed the project's maxStage")
		}

		prefix := project.ID + "-"
		id := store.SmallestUnused(tx.ProjectPapers().Has, prefix)
		pp := models.ProjectPaper{
			ID:       id,
			LocalID:  id[len(prefix):],
			PaperID:  spec.PaperID,
			Stage:    stage,
			Decision: models.PaperDecisionUnreviewed,
		}
		tx.ProjectPapers().Put(id, pp)
		tx.ReviewIndex().Init(id)
		if err := tx.ProjectPaperIndex().Append(project.ID, id); err != nil {
			return err
		}
		out, err = detail(tx, pp)
		return err
	})
	return out, err
}

func (s *Service) UpdateProjectPaper(ctx context.Context, id string, p models.ProjectPaperPatch, mask *fieldmaskpb.FieldMask) (models.ProjectPaperDetail, error) {
	var out models.ProjectPaperDetail
	err := s.update(ctx, func(tx store.Tx) error {
		cur, err := tx.ProjectPapers().Get(id)
		if err != nil {
			return err
		}
		merged, err := patch.Apply(cur, p, mask)
		if err != nil {
			return err
		}
		// localId and paperId are not part of ProjectPaperPatch; keep them.
		merged.LocalID, merged.PaperID = cur.LocalID, cur.PaperID

		projectID, err := projectOfPaper(tx, id)
		if err != nil {
			return err
		}
		project, err := tx.Projects().Get(projectID)
		if err != nil {
			return err
		}
		if merged.Stage < 0 || merged.Stage > project.MaxStage {
			return common.NewInvalidArgument("stage", "out of range")
		}
		switch merged.Decision {
		case models.PaperDecisionUnreviewed, models.PaperDecisionInReview,
			models.PaperDecisionAccepted, models.PaperDecisionDeclined:
		default:
			return common.NewInvalidArgument("decision", "unknown decision")
		}
		tx.ProjectPapers().Put(id, merged)
		out, err = detail(tx, merged)
		return err
	})
	return out, err
}

// RemovePaperFromProject deletes a ProjectPaper together with its reviews.
func (s *Service) RemovePaperFromProject(ctx context.Context, id string) error {
	return s.update(ctx, func(tx store.Tx) error {
		if !tx.ProjectPapers().Has(id) {
			return common.NewNotFound("project paper", id)
		}
		reviewIDs, err := tx.ReviewIndex().Get(id)
		if err != nil {
			return err
		}
		for _, rid := range reviewIDs {
			tx.Reviews().Delete(rid)
		}
		tx.ReviewIndex().Drop(id)
		tx.ProjectPaperIndex().RemoveAll(func(v string) bool { return v == id })
		tx.ProjectPapers().Delete(id)
		return nil
	})
}
