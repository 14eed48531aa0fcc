package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/cryptox"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/auth"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/config"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"
	"github.com/go-playground/validator/v10"
)

// refreshTokenSize is in bytes; the hex form is 40 characters.
const refreshTokenSize = 20

// SessionService registers users, checks credentials and owns the token
// pair of every account. Each account holds exactly one pair; issuing a new
// one invalidates the old.
type SessionService struct {
	store                       store.Store
	validate                    *validator.Validate
	jwtSecret                   []byte
	resetPassword               string
	accessTokenValidityDuration time.Duration
}

// NewSessionService constructs a SessionService using the store and server config.
func NewSessionService(s store.Store, cfg *config.Config) *SessionService {
	return &SessionService{
		store:                       s,
		validate:                    newValidator(),
		jwtSecret:                   []byte(cfg.SecretKey),
		resetPassword:               cfg.ResetPassword,
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates an active default-role user with default settings, an
// empty reading list and no invitations, and returns its first token pair.
func (s *SessionService) Register(ctx context.Context, spec models.RegisterSpec) (*models.TokenPair, error) {
	var pair models.TokenPair
	err := s.store.Update(ctx, func(tx store.Tx) error {
		acc, err := s.CreateAccount(tx, spec, models.UserRoleDefault)
		if err != nil {
			return err
		}
		pair = acc.Tokens
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// CreateAccount registers a user with the given role inside an existing
// transaction. It is used by the example-data import.
func (s *SessionService) CreateAccount(tx store.Tx, spec models.RegisterSpec, role models.UserRole) (models.Account, error) {
	if _, taken := findAccountByEmail(tx, spec.Email); taken {
		return models.Account{}, common.AlreadyExistsf("user with email %s", spec.Email)
	}
	if err := check(s.validate, spec); err != nil {
		return models.Account{}, err
	}
	return s.createAccount(tx, spec, role)
}

func (s *SessionService) createAccount(tx store.Tx, spec models.RegisterSpec, role models.UserRole) (models.Account, error) {
	id := tx.Users().NextID()
	salt := cryptox.NewSalt()
	acc := models.Account{
		User: models.User{
			ID:        id,
			Email:     spec.Email,
			FirstName: spec.FirstName,
			LastName:  spec.LastName,
			Role:      role,
			Status:    models.UserStatusActive,
		},
		Salt:         salt,
		PasswordHash: cryptox.HashPassword(spec.Password, salt),
	}

	tokens, err := s.generateTokenPair(tx, id)
	if err != nil {
		return models.Account{}, err
	}
	acc.Tokens = *tokens

	tx.Users().Put(id, acc)
	tx.Settings().Put(id, models.DefaultUserSettings())
	tx.ReadingLists().Init(id)
	tx.Invitations().Init(id)
	return acc, nil
}

// Login verifies the credentials and returns the account's current pair,
// replaced by a fresh one when its access token has expired.
// Unknown users, deleted users and wrong passwords all yield PermissionDenied.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	var pair models.TokenPair
	err := s.store.Update(ctx, func(tx store.Tx) error {
		acc, ok := findAccountByEmail(tx, email)
		if !ok || acc.User.Status == models.UserStatusDeleted {
			return common.ErrorPermissionDenied
		}
		if !cryptox.VerifyPassword(password, acc.Salt, acc.PasswordHash) {
			return common.ErrorPermissionDenied
		}
		var err error
		pair, err = s.livePair(tx, acc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Logout replaces the pair of userID with a fresh one, so the tokens the
// client holds stop resolving.
func (s *SessionService) Logout(ctx context.Context, userID string) error {
	return s.store.Update(ctx, func(tx store.Tx) error {
		acc, err := tx.Users().Get(userID)
		if err != nil {
			return err
		}
		tokens, err := s.generateTokenPair(tx, userID)
		if err != nil {
			return err
		}
		acc.Tokens = *tokens
		tx.Users().Put(userID, acc)
		return nil
	})
}

// IsAuthenticated reports whether accessToken resolves to an active user.
func (s *SessionService) IsAuthenticated(ctx context.Context, accessToken string) (bool, error) {
	_, err := s.Resolve(ctx, accessToken)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorUnauthenticated):
		return false, nil
	default:
		return false, err
	}
}

// RenewSession returns the current pair of the account owning refreshToken.
// An expired access token is replaced together with its refresh token.
func (s *SessionService) RenewSession(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if common.IsBlank(refreshToken) {
		return nil, common.ErrorUnauthenticated
	}
	var pair models.TokenPair
	err := s.store.Update(ctx, func(tx store.Tx) error {
		acc, ok := tx.Users().Find(func(a models.Account) bool {
			return tokenEqual(a.Tokens.RefreshToken, refreshToken)
		})
		if !ok || acc.User.Status == models.UserStatusDeleted {
			return common.ErrorUnauthenticated
		}
		var err error
		pair, err = s.livePair(tx, acc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// RequestPasswordReset sets the password of email to the configured reset
// password and marks a reset as pending. Unknown addresses are ignored.
func (s *SessionService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.store.Update(ctx, func(tx store.Tx) error {
		acc, ok := findAccountByEmail(tx, email)
		if !ok {
			return nil
		}
		acc.Salt = cryptox.NewSalt()
		acc.PasswordHash = cryptox.HashPassword(s.resetPassword, acc.Salt)
		acc.ResetPending = true
		tx.Users().Put(acc.User.ID, acc)
		return nil
	})
}

// ResetPassword completes a pending reset. resetCode must be the reset
// password handed out by RequestPasswordReset.
func (s *SessionService) ResetPassword(ctx context.Context, email, resetCode, newPassword string) error {
	if common.IsBlank(newPassword) {
		return common.NewInvalidArgument("newPassword", "must not be blank")
	}
	return s.store.Update(ctx, func(tx store.Tx) error {
		acc, ok := findAccountByEmail(tx, email)
		if !ok || !acc.ResetPending || !cryptox.VerifyPassword(resetCode, acc.Salt, acc.PasswordHash) {
			return common.ErrorPermissionDenied
		}
		s.setPassword(&acc, newPassword)
		acc.ResetPending = false
		tx.Users().Put(acc.User.ID, acc)
		return nil
	})
}

// ChangePassword replaces the password of userID after checking the old one.
func (s *SessionService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if common.IsBlank(newPassword) {
		return common.NewInvalidArgument("newPassword", "must not be blank")
	}
	return s.store.Update(ctx, func(tx store.Tx) error {
		acc, err := tx.Users().Get(userID)
		if err != nil {
			return err
		}
		if !cryptox.VerifyPassword(oldPassword, acc.Salt, acc.PasswordHash) {
			return common.ErrorUnauthenticated
		}
		s.setPassword(&acc, newPassword)
		acc.ResetPending = false
		tx.Users().Put(userID, acc)
		return nil
	})
}

// Resolve returns the active user whose stored access token equals
// accessToken. Blank tokens never resolve.
func (s *SessionService) Resolve(ctx context.Context, accessToken string) (models.User, error) {
	if common.IsBlank(accessToken) {
		return models.User{}, common.ErrorUnauthenticated
	}
	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", common.ErrorUnauthenticated, err)
	}

	var user models.User
	err = s.store.View(ctx, func(tx store.Tx) error {
		acc, err := tx.Users().Get(userID)
		if err != nil || !tokenEqual(acc.Tokens.AccessToken, accessToken) || acc.User.Status == models.UserStatusDeleted {
			return common.ErrorUnauthenticated
		}
		user = acc.User
		return nil
	})
	return user, err
}

// --- helpers below ---

func (s *SessionService) setPassword(acc *models.Account, password string) {
	acc.Salt = cryptox.NewSalt()
	acc.PasswordHash = cryptox.HashPassword(password, acc.Salt)
}

// livePair returns the stored pair of acc, rotating it first when the access
// token no longer verifies.
func (s *SessionService) livePair(tx store.Tx, acc models.Account) (models.TokenPair, error) {
	if _, err := auth.GetUserIDFromToken(acc.Tokens.AccessToken, s.jwtSecret); err == nil {
		return acc.Tokens, nil
	}
	tokens, err := s.generateTokenPair(tx, acc.User.ID)
	if err != nil {
		return models.TokenPair{}, err
	}
	acc.Tokens = *tokens
	tx.Users().Put(acc.User.ID, acc)
	return acc.Tokens, nil
}

func (s *SessionService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *SessionService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(refreshTokenSize)
}

// generateTokenPair mints a pair that differs from every token currently
// held by any account.
func (s *SessionService) generateTokenPair(tx store.Tx, userID string) (*models.TokenPair, error) {
	for {
		access, err := s.generateAccessToken(userID)
		if err != nil {
			return nil, common.ErrorInternal
		}
		refresh, err := s.generateRefreshToken()
		if err != nil {
			return nil, common.ErrorInternal
		}
		_, clash := tx.Users().Find(func(a models.Account) bool {
			return a.Tokens.AccessToken == access || a.Tokens.RefreshToken == refresh ||
				a.Tokens.AccessToken == refresh || a.Tokens.RefreshToken == access
		})
		if !clash {
			return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
		}
	}
}

func tokenEqual(stored, presented string) bool {
	return stored != "" && subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

func findAccountByEmail(tx store.Tx, email string) (models.Account, bool) {
	if email == "" {
		return models.Account{}, false
	}
	return tx.Users().Find(func(a models.Account) bool { return a.User.Email == email })
}
