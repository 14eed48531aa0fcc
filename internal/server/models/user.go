// Package models holds the entities kept by the SnowballR store.
package models

type UserRole string

const (
	UserRoleDefault UserRole = "default"
	UserRoleAdmin   UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusDeleted UserStatus = "deleted"
)

// User is the public view of an account.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
}

// TokenPair bundles the access and refresh token handed to a client.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Account is a User plus the server-private credentials. It never leaves
// the server.
type Account struct {
	User         User
	Salt         []byte
	PasswordHash []byte
	Tokens       TokenPair
	ResetPending bool
}

// UserSettings are per-user client preferences.
type UserSettings struct {
	ShowHotkeys bool `json:"showHotkeys"`
}

// DefaultUserSettings is what a freshly registered user starts with.
func DefaultUserSettings() UserSettings {
	return UserSettings{ShowHotkeys: true}
}
