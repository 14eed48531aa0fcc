package grpc

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/api"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"google.golang.org/protobuf/types/known/emptypb"
)

// --- members and invitations ---

func (s *GRPCServer) InviteUserToProject(ctx context.Context, req *models.MemberInvite) (*emptypb.Empty, error) {
	return empty(s.service.InviteUserToProject(ctx, *req))
}

func (s *GRPCServer) GetPendingInvitationsForProject(ctx context.Context, req *api.Id) (*api.List[models.User], error) {
	users, err := s.service.GetPendingInvitationsForProject(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return api.NewList(users), nil
}

// AcceptProjectInvitation accepts the caller's invitation to project req.ID.
func (s *GRPCServer) AcceptProjectInvitation(ctx context.Context, req *api.Id) (*emptypb.Empty, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return empty(s.service.AcceptProjectInvitation(ctx, user.ID, req.ID))
}

func (s *GRPCServer) DeclineProjectInvitation(ctx context.Context, req *api.Id) (*emptypb.Empty, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return empty(s.service.DeclineProjectInvitation(ctx, user.ID, req.ID))
}

func (s *GRPCServer) GetProjectMembers(ctx context.Context, req *api.Id) (*api.List[models.MemberDetail], error) {
	members, err := s.service.GetProjectMembers(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return api.NewList(members), nil
}

func (s *GRPCServer) RemoveProjectMember(ctx context.Context, req *api.MemberRemove) (*emptypb.Empty, error) {
	return empty(s.service.RemoveProjectMember(ctx, req.ProjectID, req.UserID))
}

func (s *GRPCServer) ChangeProjectMemberRole(ctx context.Context, req *api.MemberRoleChange) (*emptypb.Empty, error) {
	return empty(s.service.ChangeProjectMemberRole(ctx, req.ProjectID, req.UserID, req.Role))
}

// --- projects ---

func projects(ps []models.Project, err error) (*api.List[models.Project], error) {
	if err != nil {
		return nil, err
	}
	return api.NewList(ps), nil
}

func (s *GRPCServer) GetAllProjects(ctx context.Context, _ *emptypb.Empty) (*api.List[models.Project], error) {
	return projects(s.service.GetAllProjects(ctx))
}

func (s *GRPCServer) GetAllDeletedProjects(ctx context.Context, _ *emptypb.Empty) (*api.List[models.Project], error) {
	return projects(s.service.GetAllDeletedProjects(ctx))
}

func (s *GRPCServer) GetAllArchivedProjects(ctx context.Context, _ *emptypb.Empty) (*api.List[models.Project], error) {
	return projects(s.service.GetAllArchivedProjects(ctx))
}

func (s *GRPCServer) GetAllProjectsForUser(ctx context.Context, req *api.Id) (*api.List[models.Project], error) {
	userID, err := userOrSelf(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return projects(s.service.GetAllProjectsForUser(ctx, userID))
}

func (s *GRPCServer) GetAllDeletedProjectsForUser(ctx context.Context, req *api.Id) (*api.List[models.Project], error) {
	userID, err := userOrSelf(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return projects(s.service.GetAllDeletedProjectsForUser(ctx, userID))
}

func (s *GRPCServer) GetAllArchivedProjectsForUser(ctx context.Context, req *api.Id) (*api.List[models.Project], error) {
	userID, err := userOrSelf(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return projects(s.service.GetAllArchivedProjectsForUser(ctx, userID))
}

// CreateProject makes the caller the admin of the new project.
func (s *GRPCServer) CreateProject(ctx context.Context, req *models.ProjectSpec) (*models.Project, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.service.CreateProject(ctx, user.ID, *req)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GRPCServer) GetProjectById(ctx context.Context, req *api.Id) (*models.Project, error) {
	p, err := s.service.GetProject(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GRPCServer) UpdateProject(ctx context.Context, req *api.Update[models.ProjectPatch]) (*models.Project, error) {
	p, err := s.service.UpdateProject(ctx, req.ID, req.Patch, req.UpdateMask)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GRPCServer) ExportProject(ctx context.Context, req *api.Id) (*api.Blob, error) {
	data, err := s.service.ExportProject(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &api.Blob{Data: data}, nil
}

func (s *GRPCServer) SoftDeleteProject(ctx context.Context, req *api.Id) (*emptypb.Empty, error) {
	return empty(s.service.SoftDeleteProject(ctx, req.ID))
}

func (s *GRPCServer) SoftUndeleteProject(ctx context.Context, req *api.Id) (*emptypb.Empty, error) {
	return empty(s.service.SoftUndeleteProject(ctx, req.ID))
}

func (s *GRPCServer) GetProjectStatistics(ctx context.Context, req *api.StatisticsRequest) (*models.ProjectStatistics, error) {
	stats, err := s.service.GetProjectStatistics(ctx, req.ProjectID, req.Stage)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// --- criteria ---

func (s *GRPCServer) GetCriterionById(ctx context.Context, req *api.Id) (*models.Criterion, error) {
	c, err := s.service.GetCriterion(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *GRPCServer) GetAllCriteriaForProject(ctx context.Context, req *api.Id) (*api.List[models.Criterion], error) {
	cs, err := s.service.GetAllCriteriaForProject(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return api.NewList(cs), nil
}

func (s *GRPCServer) CreateCriterion(ctx context.Context, req *models.CriterionSpec) (*models.Criterion, error) {
	c, err := s.service.CreateCriterion(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *GRPCServer) UpdateCriterion(ctx context.Context, req *api.Update[models.CriterionPatch]) (*models.Criterion, error) {
	c, err := s.service.UpdateCriterion(ctx, req.ID, req.Patch, req.UpdateMask)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *GRPCServer) DeleteCriterion(ctx context.Context, req *api.Id) (*emptypb.Empty, error) {
	return empty(s.service.DeleteCriterion(ctx, req.ID))
}

// --- project papers ---

func (s *GRPCServer) GetProjectPaperById(ctx context.Context, req *api.Id) (*models.ProjectPaperDetail, error) {
	pp, err := s.service.GetProjectPaper(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &pp, nil
}

func (s *GRPCServer) GetAllProjectPapersForProject(ctx context.Context, req *api.Id) (*api.List[models.ProjectPaperDetail], error) {
	pps, err := s.service.GetAllProjectPapersForProject(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return api.NewList(pps), nil
}

func (s *GRPCServer) AddPaperToProject(ctx context.Context, req *models.ProjectPaperSpec) (*models.ProjectPaperDetail, error) {
	pp, err := s.service.AddPaperToProject(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &pp, nil
}

func (s *GRPCServer) UpdateProjectPaper(ctx context.Context, req *api.Update[models.ProjectPaperPatch]) (*models.ProjectPaperDetail, error) {
	pp, err := s.service.UpdateProjectPaper(ctx, req.ID, req.Patch, req.UpdateMask)
	if err != nil {
		return nil, err
	}
	return &pp, nil
}

func (s *GRPCServer) RemovePaperFromProject(ctx context.Context, req *api.Id) (*emptypb.Empty, error) {
	return empty(s.service.RemovePaperFromProject(ctx, req.ID))
}

// --- reviews ---

func (s *GRPCServer) GetReviewById(ctx context.Context, req *api.Id) (*models.Review, error) {
	r, err := s.service.GetReview(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GRPCServer) GetAllReviewsForProjectPaper(ctx context.Context, req *api.Id) (*api.List[models.Review], error) {
	rs, err := s.service.GetAllReviewsForProjectPaper(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return api.NewList(rs), nil
}

// CreateReview records a review by the caller.
func (s *GRPCServer) CreateReview(ctx context.Context, req *models.ReviewSpec) (*models.Review, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.service.CreateReview(ctx, user.ID, *req)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GRPCServer) UpdateReview(ctx context.Context, req *api.Update[models.ReviewPatch]) (*models.Review, error) {
	r, err := s.service.UpdateReview(ctx, req.ID, req.Patch, req.UpdateMask)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GRPCServer) DeleteReview(ctx context.Context, req *api.Id) (*emptypb.Empty, error) {
	return empty(s.service.DeleteReview(ctx, req.ID))
}
