package grpc

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/api"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) GetAllUsers(ctx context.Context, _ *emptypb.Empty) (*api.List[models.User], error) {
	users, err := s.service.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	return api.NewList(users), nil
}

func (s *GRPCServer) GetCurrentUser(ctx context.Context, _ *emptypb.Empty) (*models.User, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GRPCServer) GetUserById(ctx context.Context, req *api.Id) (*models.User, error) {
	user, err := s.service.GetUserByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GRPCServer) GetUserByEmail(ctx context.Context, req *api.Email) (*models.User, error) {
	user, err := s.service.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GRPCServer) UpdateUser(ctx context.Context, req *api.Update[models.UserPatch]) (*models.User, error) {
	user, err := s.service.UpdateUser(ctx, req.ID, req.Patch, req.UpdateMask)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GRPCServer) SoftDeleteUser(ctx context.Context, req *api.Id) (*emptypb.Empty, error) {
	return empty(s.service.SoftDeleteUser(ctx, req.ID))
}

func (s *GRPCServer) SoftUndeleteUser(ctx context.Context, req *api.Id) (*emptypb.Empty, error) {
	return empty(s.service.SoftUndeleteUser(ctx, req.ID))
}

func (s *GRPCServer) GetAllPapersToReview(ctx context.Context, _ *emptypb.Empty) (*api.List[models.ProjectPaperDetail], error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	papers, err := s.service.GetAllPapersToReview(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return api.NewList(papers), nil
}

func (s *GRPCServer) GetPapersToReviewForProject(ctx context.Context, req *api.Id) (*api.List[models.ProjectPaperDetail], error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	papers, err := s.service.GetPapersToReviewForProject(ctx, user.ID, req.ID)
	if err != nil {
		return nil, err
	}
	return api.NewList(papers), nil
}

func (s *GRPCServer) GetUserSettings(ctx context.Context, _ *emptypb.Empty) (*models.UserSettings, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.service.GetUserSettings(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateUserSettings always targets the caller; the request id is ignored.
func (s *GRPCServer) UpdateUserSettings(ctx context.Context, req *api.Update[models.UserSettingsPatch]) (*models.UserSettings, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.service.UpdateUserSettings(ctx, user.ID, req.Patch, req.UpdateMask)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *GRPCServer) GetReadingList(ctx context.Context, _ *emptypb.Empty) (*api.List[models.Paper], error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	papers, err := s.service.GetReadingList(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return api.NewList(papers), nil
}

func (s *GRPCServer) IsPaperOnReadingList(ctx context.Context, req *api.Id) (*wrapperspb.BoolValue, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	on, err := s.service.IsPaperOnReadingList(ctx, user.ID, req.ID)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bool(on), nil
}

func (s *GRPCServer) AddPaperToReadingList(ctx context.Context, req *api.Id) (*emptypb.Empty, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return empty(s.service.AddPaperToReadingList(ctx, user.ID, req.ID))
}

func (s *GRPCServer) RemovePaperFromReadingList(ctx context.Context, req *api.Id) (*emptypb.Empty, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return empty(s.service.RemovePaperFromReadingList(ctx, user.ID, req.ID))
}

// GetPendingInvitationsForUser lists the invitations of the user named in
// the request, or of the caller when the id is empty.
func (s *GRPCServer) GetPendingInvitationsForUser(ctx context.Context, req *api.Id) (*api.List[models.Project], error) {
	userID, err := userOrSelf(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	projects, err := s.service.GetPendingInvitationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return api.NewList(projects), nil
}

func userOrSelf(ctx context.Context, id string) (string, error) {
	if id != "" {
		return id, nil
	}
	user, err := currentUser(ctx)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func empty(err error) (*emptypb.Empty, error) {
	if err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}
