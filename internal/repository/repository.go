package repository

import (
	"context"
	"database/sql"

	"itemvault/internal/models"
	"itemvault/internal/repository/db"
)

// UserPatch carries the optional fields of a profile update. A nil field is
// left untouched.
type UserPatch struct {
	Email    *string
	FullName *string
}

// ItemPatch carries the optional fields of an item update.
type ItemPatch struct {
	Title       *string
	Description *string
}

type Users interface {
	Create(ctx context.Context, email, hashedPassword, fullName string) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	Update(ctx context.Context, id int, patch UserPatch) error
}

type Items interface {
	Create(ctx context.Context, ownerID int, title, description string) (int, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Item, error)
	GetForOwner(ctx context.Context, id, ownerID int) (*models.Item, error)
	// Update and Delete filter by both id and owner, returning the number of
	// affected rows so callers can distinguish "not found" without a prior read.
	Update(ctx context.Context, id, ownerID int, patch ItemPatch) (int64, error)
	Delete(ctx context.Context, id, ownerID int) (int64, error)
}

type Repository struct {
	Users Users
	Items Items
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(sqlDB),
		Items: NewItemRepository(sqlDB),
	}
}

// InitDB opens the SQLite store and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
