package services

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"
)

// GetPendingInvitationsForUser returns the projects userID is invited to.
func (s *Service) GetPendingInvitationsForUser(ctx context.Context, userID string) ([]models.Project, error) {
	var out []models.Project
	err := s.view(ctx, func(tx store.Tx) error {
		ids, err := tx.Invitations().Get(userID)
		if err != nil {
			return err
		}
		out = make([]models.Project, 0, len(ids))
		for _, id := range ids {
			p, err := tx.Projects().Get(id)
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

// InviteUserToProject records a pending invitation. Inviting a member fails
// with AlreadyExists; inviting twice is a no-op.
func (s *Service) InviteUserToProject(ctx context.Context, in models.MemberInvite) error {
	if err := check(s.validate, in); err != nil {
		return err
	}
	return s.update(ctx, func(tx store.Tx) error {
		if !tx.Projects().Has(in.ProjectID) {
			return common.NewNotFound("project", in.ProjectID)
		}
		if !tx.Users().Has(in.UserID) {
			return common.NewNotFound("user", in.UserID)
		}
		if isMember(tx, in.ProjectID, in.UserID) {
			return common.AlreadyExistsf("user %s is a member of project %s", in.UserID, in.ProjectID)
		}
		if tx.Invitations().Contains(in.UserID, in.ProjectID) {
			return nil
		}
		return tx.Invitations().Append(in.UserID, in.ProjectID)
	})
}

// GetPendingInvitationsForProject returns the users invited to projectID.
func (s *Service) GetPendingInvitationsForProject(ctx context.Context, projectID string) ([]models.User, error) {
	var out []models.User
	err := s.view(ctx, func(tx store.Tx) error {
		if !tx.Projects().Has(projectID) {
			return common.NewNotFound("project", projectID)
		}
		for _, userID := range tx.Invitations().ParentsOf(func(v string) bool { return v == projectID }) {
			acc, err := tx.Users().Get(userID)
			if err != nil {
				return err
			}
			out = append(out, acc.User)
		}
		return nil
	})
	return out, err
}

// AcceptProjectInvitation turns the invitation of userID into a default-role
// membership.
func (s *Service) AcceptProjectInvitation(ctx context.Context, userID, projectID string) error {
	return s.update(ctx, func(tx store.Tx) error {
		if !tx.Invitations().Remove(userID, func(v string) bool { return v == projectID }) {
			return common.NewNotFound("invitation", projectID)
		}
		if isMember(tx, projectID, userID) {
			return nil
		}
		return tx.Members().Append(projectID, models.Member{UserID: userID, Role: models.MemberRoleDefault})
	})
}

func (s *Service) DeclineProjectInvitation(ctx context.Context, userID, projectID string) error {
	return s.update(ctx, func(tx store.Tx) error {
		if !tx.Invitations().Remove(userID, func(v string) bool { return v == projectID }) {
			return common.NewNotFound("invitation", projectID)
		}
		return nil
	})
}

func (s *Service) GetProjectMembers(ctx context.Context, projectID string) ([]models.MemberDetail, error) {
	var out []models.MemberDetail
	err := s.view(ctx, func(tx store.Tx) error {
		rows, err := tx.Members().Get(projectID)
		if err != nil {
			return err
		}
		out = make([]models.MemberDetail, 0, len(rows))
		for _, m := range rows {
			acc, err := tx.Users().Get(m.UserID)
			if err != nil {
				return err
			}
			out = append(out, models.MemberDetail{User: acc.User, Role: m.Role})
		}
		return nil
	})
	return out, err
}

// RemoveProjectMember removes the membership of userID, or failing that a
// pending invitation. It is NotFound only when neither exists.
func (s *Service) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	return s.update(ctx, func(tx store.Tx) error {
		if !tx.Members().Has(projectID) {
			return common.NewNotFound("project", projectID)
		}
		if tx.Members().Remove(projectID, func(m models.Member) bool { return m.UserID == userID }) {
			return nil
		}
		if tx.Invitations().Remove(userID, func(v string) bool { return v == projectID }) {
			return nil
		}
		return common.NewNotFound("project member", userID)
	})
}

// ChangeProjectMemberRole removes the member row and appends it again with
// the new role.
func (s *Service) ChangeProjectMemberRole(ctx context.Context, projectID, userID string, role models.MemberRole) error {
	if role != models.MemberRoleAdmin && role != models.MemberRoleDefault {
		return common.NewInvalidArgument("role", "unknown role")
	}
	return s.update(ctx, func(tx store.Tx) error {
		if !tx.Members().Has(projectID) {
			return common.NewNotFound("project", projectID)
		}
		if !tx.Members().Remove(projectID, func(m models.Member) bool { return m.UserID == userID }) {
			return common.NewNotFound("project member", userID)
		}
		return tx.Members().Append(projectID, models.Member{UserID: userID, Role: role})
	})
}
