package services

import (
	"context"
	"slices"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/decision"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/patch"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

func (s *Service) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	return s.projectsWithStatus(ctx, "", models.ProjectStatusActive)
}

func (s *Service) GetAllDeletedProjects(ctx context.Context) ([]models.Project, error) {
	return s.projectsWithStatus(ctx, "", models.ProjectStatusDeleted)
}

func (s *Service) GetAllArchivedProjects(ctx context.Context) ([]models.Project, error) {
	return s.projectsWithStatus(ctx, "", models.ProjectStatusArchived)
}

func (s *Service) GetAllProjectsForUser(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projectsWithStatus(ctx, userID, models.ProjectStatusActive)
}

func (s *Service) GetAllDeletedProjectsForUser(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projectsWithStatus(ctx, userID, models.ProjectStatusDeleted)
}

func (s *Service) GetAllArchivedProjectsForUser(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projectsWithStatus(ctx, userID, models.ProjectStatusArchived)
}

// projectsWithStatus lists projects in status; a non-empty userID narrows
// the result to projects that user is a member of.
func (s *Service) projectsWithStatus(ctx context.Context, userID string, status models.ProjectStatus) ([]models.Project, error) {
	var out []models.Project
	err := s.view(ctx, func(tx store.Tx) error {
		if userID != "" && !tx.Users().Has(userID) {
			return common.NewNotFound("user", userID)
		}
		out = tx.Projects().Filter(func(p models.Project) bool {
			return p.Status == status && (userID == "" || isMember(tx, p.ID, userID))
		})
		return nil
	})
	return out, err
}

// CreateProject creates an active project at stage 0 with creatorID as its
// admin. Missing settings fall back to DefaultProjectSettings.
func (s *Service) CreateProject(ctx context.Context, creatorID string, spec models.ProjectSpec) (models.Project, error) {
	if err := check(s.validate, spec); err != nil {
		return models.Project{}, err
	}
	settings := models.DefaultProjectSettings()
	if spec.Settings != nil {
		settings = spec.Settings.Clone()
	}
	if err := validateSettings(settings); err != nil {
		return models.Project{}, err
	}

	var project models.Project
	err := s.update(ctx, func(tx store.Tx) error {
		if !tx.Users().Has(creatorID) {
			return common.NewNotFound("user", creatorID)
		}
		project = models.Project{
			ID:       tx.Projects().NextID(),
			Name:     spec.Name,
			Status:   models.ProjectStatusActive,
			MaxStage: spec.MaxStage,
			Settings: settings,
		}
		tx.Projects().Put(project.ID, project)
		tx.Members().Set(project.ID, []models.Member{{UserID: creatorID, Role: models.MemberRoleAdmin}})
		tx.ProjectCriteria().Init(project.ID)
		tx.ProjectPaperIndex().Init(project.ID)
		return nil
	})
	return project, err
}

func (s *Service) GetProject(ctx context.Context, id string) (models.Project, error) {
	var out models.Project
	err := s.view(ctx, func(tx store.Tx) error {
		var err error
		out, err = tx.Projects().Get(id)
		return err
	})
	return out, err
}

// UpdateProject merges p into project id. Existing paper decisions are not
// recomputed when the decision matrix changes.
func (s *Service) UpdateProject(ctx context.Context, id string, p models.ProjectPatch, mask *fieldmaskpb.FieldMask) (models.Project, error) {
	var out models.Project
	err := s.update(ctx, func(tx store.Tx) error {
		cur, err := tx.Projects().Get(id)
		if err != nil {
			return err
		}
		merged, err := patch.Apply(cur, p, mask)
		if err != nil {
			return err
		}
		if err := validateProject(merged); err != nil {
			return err
		}
		tx.Projects().Put(id, merged)
		out = merged
		return nil
	})
	return out, err
}

func validateProject(p models.Project) error {
	switch {
	case common.IsBlank(p.Name):
		return common.NewInvalidArgument("name", "must not be blank")
	case p.CurrentStage < 0:
		return common.NewInvalidArgument("currentStage", "must not be negative")
	case p.CurrentStage > p.MaxStage:
		return common.NewInvalidArgument("currentStage", "must not exceed maxStage")
	}
	switch p.Status {
	case models.ProjectStatusActive, models.ProjectStatusArchived, models.ProjectStatusDeleted:
	default:
		return common.NewInvalidArgument("status", "unknown status")
	}
	return validateSettings(p.Settings)
}

func validateSettings(st models.ProjectSettings) error {
	switch st.SnowballingType {
	case models.SnowballingBackward, models.SnowballingForward, models.SnowballingBoth:
	default:
		return common.NewInvalidArgument("settings.snowballingType", "unknown snowballing type")
	}
	for _, api := range st.FetcherAPIs {
		if !slices.Contains(AvailableFetcherAPIs, api) {
			return common.NewInvalidArgument("settings.fetcherApis", "unknown fetcher "+api)
		}
	}
	if st.DecisionMatrix.NumberOfReviewers < 0 {
		return common.NewInvalidArgument("settings.decisionMatrix.numberOfReviewers", "must not be negative")
	}
	for _, pt := range st.DecisionMatrix.Patterns {
		if pt.Accepted < 0 || pt.Declined < 0 || pt.Maybe < 0 {
			return common.NewInvalidArgument("settings.decisionMatrix.patterns", "counts must not be negative")
		}
		switch pt.Decision {
		case models.PaperDecisionUnreviewed, models.PaperDecisionInReview,
			models.PaperDecisionAccepted, models.PaperDecisionDeclined:
		default:
			return common.NewInvalidArgument("settings.decisionMatrix.patterns", "unknown decision")
		}
	}
	return nil
}

// ExportProject is not supported by the mock.
func (s *Service) ExportProject(ctx context.Context, id string) ([]byte, error) {
	if _, err := s.GetProject(ctx, id); err != nil {
		return nil, err
	}
	return nil, common.ErrorUnimplemented
}

func (s *Service) SoftDeleteProject(ctx context.Context, id string) error {
	return s.setProjectStatus(ctx, id, models.ProjectStatusDeleted)
}

// SoftUndeleteProject makes a deleted project active again.
func (s *Service) SoftUndeleteProject(ctx context.Context, id string) error {
	return s.setProjectStatus(ctx, id, models.ProjectStatusActive)
}

func (s *Service) setProjectStatus(ctx context.Context, id string, status models.ProjectStatus) error {
	return s.update(ctx, func(tx store.Tx) error {
		p, err := tx.Projects().Get(id)
		if err != nil {
			return err
		}
		p.Status = status
		tx.Projects().Put(id, p)
		return nil
	})
}

// GetProjectStatistics counts the decisions of one stage of projectID. A nil
// stage means the current one.
func (s *Service) GetProjectStatistics(ctx context.Context, projectID string, stage *int64) (models.ProjectStatistics, error) {
	var out models.ProjectStatistics
	err := s.view(ctx, func(tx store.Tx) error {
		project, err := tx.Projects().Get(projectID)
		if err != nil {
			return err
		}
		st := project.CurrentStage
		if stage != nil {
			st = *stage
		}
		if st < 0 || st > project.MaxStage {
			return common.NewInvalidArgument("stage", "out of range")
		}
		papers, err := projectPapersOf(tx, projectID)
		if err != nil {
			return err
		}
		out = decision.Statistics(st, papers)
		return nil
	})
	return out, err
}
