package api

import (
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

// Id addresses a single entity.
type Id struct {
	ID string `json:"id"`
}

type Email struct {
	Email string `json:"email"`
}

// List wraps every repeated reply.
type List[T any] struct {
	Items []T `json:"items"`
}

// NewList never produces a null items array.
func NewList[T any](items []T) *List[T] {
	if items == nil {
		items = []T{}
	}
	return &List[T]{Items: items}
}

// Update carries a sparse patch for entity ID. Only the paths in UpdateMask
// are applied; without a mask every field set in Patch is.
type Update[P any] struct {
	ID         string                 `json:"id"`
	Patch      P                      `json:"patch"`
	UpdateMask *fieldmaskpb.FieldMask `json:"updateMask,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RenewRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type PasswordResetRequest struct {
	Email       string `json:"email"`
	ResetCode   string `json:"resetCode"`
	NewPassword string `json:"newPassword"`
}

type PasswordChangeRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type MemberRemove struct {
	ProjectID string `json:"projectId"`
	UserID    string `json:"userId"`
}

type MemberRoleChange struct {
	ProjectID string            `json:"projectId"`
	UserID    string            `json:"userId"`
	Role      models.MemberRole `json:"role"`
}

// StatisticsRequest asks for one stage; a nil Stage means the current one.
type StatisticsRequest struct {
	ProjectID string `json:"projectId"`
	Stage     *int64 `json:"stage,omitempty"`
}

// Blob is binary content, base64 in JSON.
type Blob struct {
	Data []byte `json:"data"`
}

type PdfUpdate struct {
	PaperID string `json:"paperId"`
	Data    []byte `json:"data"`
}

type FetcherApis struct {
	FetcherApis []string `json:"fetcherApis"`
}
