package services

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/patch"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

func (s *Service) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := s.view(ctx, func(tx store.Tx) error {
		for _, acc := range tx.Users().List() {
			out = append(out, acc.User)
		}
		return nil
	})
	return out, err
}

func (s *Service) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.view(ctx, func(tx store.Tx) error {
		acc, err := tx.Users().Get(id)
		user = acc.User
		return err
	})
	return user, err
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.view(ctx, func(tx store.Tx) error {
		acc, ok := findAccountByEmail(tx, email)
		if !ok {
			return common.NewNotFound("user", email)
		}
		user = acc.User
		return nil
	})
	return user, err
}

// UpdateUser merges p into user id. The email must stay unique and names
// must stay non-blank.
func (s *Service) UpdateUser(ctx context.Context, id string, p models.UserPatch, mask *fieldmaskpb.FieldMask) (models.User, error) {
	var user models.User
	err := s.update(ctx, func(tx store.Tx) error {
		acc, err := tx.Users().Get(id)
		if err != nil {
			return err
		}
		merged, err := patch.Apply(acc.User, p, mask)
		if err != nil {
			return err
		}
		if err := validateUser(merged); err != nil {
			return err
		}
		if other, ok := findAccountByEmail(tx, merged.Email); ok && other.User.ID != id {
			return common.AlreadyExistsf("user with email %s", merged.Email)
		}
		acc.User = merged
		tx.Users().Put(id, acc)
		user = merged
		return nil
	})
	return user, err
}

func validateUser(u models.User) error {
	switch {
	case common.IsBlank(u.Email):
		return common.NewInvalidArgument("email", "must not be blank")
	case common.IsBlank(u.FirstName):
		return common.NewInvalidArgument("firstName", "must not be blank")
	case common.IsBlank(u.LastName):
		return common.NewInvalidArgument("lastName", "must not be blank")
	case u.Role != models.UserRoleDefault && u.Role != models.UserRoleAdmin:
		return common.NewInvalidArgument("role", "unknown role")
	case u.Status != models.UserStatusActive && u.Status != models.UserStatusDeleted:
		return common.NewInvalidArgument("status", "unknown status")
	}
	return nil
}

func (s *Service) SoftDeleteUser(ctx context.Context, id string) error {
	return s.setUserStatus(ctx, id, models.UserStatusDeleted)
}

func (s *Service) SoftUndeleteUser(ctx context.Context, id string) error {
	return s.setUserStatus(ctx, id, models.UserStatusActive)
}

func (s *Service) setUserStatus(ctx context.Context, id string, status models.UserStatus) error {
	return s.update(ctx, func(tx store.Tx) error {
		acc, err := tx.Users().Get(id)
		if err != nil {
			return err
		}
		acc.User.Status = status
		tx.Users().Put(id, acc)
		return nil
	})
}

// --- settings ---

func (s *Service) GetUserSettings(ctx context.Context, userID string) (models.UserSettings, error) {
	var out models.UserSettings
	err := s.view(ctx, func(tx store.Tx) error {
		var err error
		out, err = tx.Settings().Get(userID)
		return err
	})
	return out, err
}

func (s *Service) UpdateUserSettings(ctx context.Context, userID string, p models.UserSettingsPatch, mask *fieldmaskpb.FieldMask) (models.UserSettings, error) {
	var out models.UserSettings
	err := s.update(ctx, func(tx store.Tx) error {
		cur, err := tx.Settings().Get(userID)
		if err != nil {
			return err
		}
		out, err = patch.Apply(cur, p, mask)
		if err != nil {
			return err
		}
		tx.Settings().Put(userID, out)
		return nil
	})
	return out, err
}

// --- reading list ---

func (s *Service) GetReadingList(ctx context.Context, userID string) ([]models.Paper, error) {
	var out []models.Paper
	err := s.view(ctx, func(tx store.Tx) error {
		ids, err := tx.ReadingLists().Get(userID)
		if err != nil {
			return err
		}
		out = make([]models.Paper, 0, len(ids))
		for _, id := range ids {
			p, err := tx.Papers().Get(id)
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func (s *Service) IsPaperOnReadingList(ctx context.Context, userID, paperID string) (bool, error) {
	var on bool
	err := s.view(ctx, func(tx store.Tx) error {
		if !tx.ReadingLists().Has(userID) {
			return common.NewNotFound("user", userID)
		}
		on = tx.ReadingLists().Contains(userID, paperID)
		return nil
	})
	return on, err
}

// AddPaperToReadingList is idempotent; the paper must exist.
func (s *Service) AddPaperToReadingList(ctx context.Context, userID, paperID string) error {
	return s.update(ctx, func(tx store.Tx) error {
		if !tx.Papers().Has(paperID) {
			return common.NewNotFound("paper", paperID)
		}
		if tx.ReadingLists().Contains(userID, paperID) {
			return nil
		}
		return tx.ReadingLists().Append(userID, paperID)
	})
}

// RemovePaperFromReadingList is idempotent.
func (s *Service) RemovePaperFromReadingList(ctx context.Context, userID, paperID string) error {
	return s.update(ctx, func(tx store.Tx) error {
		if !tx.ReadingLists().Has(userID) {
			return common.NewNotFound("user", userID)
		}
		tx.ReadingLists().Remove(userID, func(v string) bool { return v == paperID })
		return nil
	})
}

// --- review queue ---

// GetAllPapersToReview returns the current-stage papers of every active
// project userID belongs to that userID has not reviewed yet.
func (s *Service) GetAllPapersToReview(ctx context.Context, userID string) ([]models.ProjectPaperDetail, error) {
	var out []models.ProjectPaperDetail
	err := s.view(ctx, func(tx store.Tx) error {
		for _, projectID := range tx.Members().Parents() {
			if !isMember(tx, projectID, userID) {
				continue
			}
			project, err := tx.Projects().Get(projectID)
			if err != nil {
				return err
			}
			if project.Status != models.ProjectStatusActive {
				continue
			}
			todo, err := toReview(tx, project, userID)
			if err != nil {
				return err
			}
			out = append(out, todo...)
		}
		return nil
	})
	return out, err
}

// GetPapersToReviewForProject is GetAllPapersToReview narrowed to one
// project, which userID must be a member of.
func (s *Service) GetPapersToReviewForProject(ctx context.Context, userID, projectID string) ([]models.ProjectPaperDetail, error) {
	var out []models.ProjectPaperDetail
	err := s.view(ctx, func(tx store.Tx) error {
		project, err := tx.Projects().Get(projectID)
		if err != nil {
			return err
		}
		if !isMember(tx, projectID, userID) {
			return common.ErrorPermissionDenied
		}
		out, err = toReview(tx, project, userID)
		return err
	})
	return out, err
}

func toReview(tx store.Tx, project models.Project, userID string) ([]models.ProjectPaperDetail, error) {
	papers, err := projectPapersOf(tx, project.ID)
	if err != nil {
		return nil, err
	}
	var out []models.ProjectPaperDetail
	for _, pp := range papers {
		if pp.Stage != project.CurrentStage {
			continue
		}
		d, err := detail(tx, pp)
		if err != nil {
			return nil, err
		}
		reviewed := false
		for _, r := range d.Reviews {
			if r.UserID == userID {
				reviewed = true
				break
			}
		}
		if !reviewed {
			out = append(out, d)
		}
	}
	return out, nil
}
