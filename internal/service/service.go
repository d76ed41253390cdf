package service

import (
	"context"

	"itemvault/internal/config"
	"itemvault/internal/models"
	"itemvault/internal/repository"
)

// RegisterInput is a new-account request after boundary validation.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// CreateItemInput is a new-item request after boundary validation.
type CreateItemInput struct {
	Title       string
	Description string
}

// ItemPatch / UserPatch mirror the repository patch types: nil means "field
// absent from the payload".
type ItemPatch struct {
	Title       *string
	Description *string
}

type UserPatch struct {
	Email    *string
	FullName *string
}

type Authorization interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(accessToken string) (string, error)
	// Authenticate resolves a bearer token to its user, failing on any broken
	// link in the chain (signature, expiry, unknown subject).
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

// Items exposes the ownership-scoped CRUD operations.
type Items interface {
	List(ctx context.Context, ownerID int) ([]models.Item, error)
	Create(ctx context.Context, ownerID int, input CreateItemInput) (*models.Item, error)
	Get(ctx context.Context, id, ownerID int) (*models.Item, error)
	Update(ctx context.Context, id, ownerID int, patch ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, id, ownerID int) error
}

// Users exposes self-service profile operations.
type Users interface {
	UpdateProfile(ctx context.Context, user *models.User, patch UserPatch) (*models.User, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Items
	Users
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg *config.Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg.JWT, cfg.TokenTTL()),
		Items:         NewItemService(repos.Items),
		Users:         NewUserService(repos.Users),
	}
}
