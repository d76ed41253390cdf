package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"itemvault/internal/models"
)

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Ensure implementation of Items interface at compile time.
var _ Items = (*ItemRepository)(nil)

const (
	insertItemSQL = `INSERT INTO items (title, description, owner_id) VALUES (?, ?, ?)`

	// Deterministic order so clients see a stable listing.
	selectItemsByOwnerSQL = `SELECT id, title, description, owner_id, created_at, updated_at FROM items WHERE owner_id = ? ORDER BY id ASC`

	// Every per-item statement filters by owner_id as well as id, so an item
	// owned by someone else behaves exactly like a missing one.
	selectItemForOwnerSQL = `SELECT id, title, description, owner_id, created_at, updated_at FROM items WHERE id = ? AND owner_id = ?`
	deleteItemForOwnerSQL = `DELETE FROM items WHERE id = ? AND owner_id = ?`
)

// Create inserts a new item for the owner and returns its ID.
func (r *ItemRepository) Create(ctx context.Context, ownerID int, title, description string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertItemSQL, title, description, ownerID)
	if err != nil {
		return 0, fmt.Errorf("insert item for owner %d: %w", ownerID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for item: %w", err)
	}
	return int(lastID), nil
}

// ListByOwner returns all items of the owner, ordered by id. A user with no
// items gets an empty (non-nil) slice.
func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx, selectItemsByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select items for owner %d: %w", ownerID, err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]models.Item, 0)
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.OwnerID, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item rows: %w", err)
	}
	return items, nil
}

// GetForOwner fetches a single owned item. Returns (nil, nil) if the item does
// not exist or belongs to another user.
func (r *ItemRepository) GetForOwner(ctx context.Context, id, ownerID int) (*models.Item, error) {
	var it models.Item
	err := r.db.QueryRowContext(ctx, selectItemForOwnerSQL, id, ownerID).
		Scan(&it.ID, &it.Title, &it.Description, &it.OwnerID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select item id=%d owner=%d: %w", id, ownerID, err)
	}
	return &it, nil
}

// Update applies only the fields set in patch via a single conditional UPDATE.
// Zero affected rows means the item is absent or not owned by ownerID; the
// ownership check and the mutation share one statement, so there is no window
// for the row to change hands in between.
func (r *ItemRepository) Update(ctx context.Context, id, ownerID int, patch ItemPatch) (int64, error) {
	set := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if patch.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *patch.Description)
	}
	if len(set) == 0 {
		return 0, errors.New("update item: empty patch")
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id, ownerID)

	query := fmt.Sprintf("UPDATE items SET %s WHERE id = ? AND owner_id = ?", strings.Join(set, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update item id=%d owner=%d: %w", id, ownerID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for item update id=%d: %w", id, err)
	}
	return affected, nil
}

// Delete removes an owned item. Zero affected rows means absent or not owned.
func (r *ItemRepository) Delete(ctx context.Context, id, ownerID int) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteItemForOwnerSQL, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete item id=%d owner=%d: %w", id, ownerID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for item delete id=%d: %w", id, err)
	}
	return affected, nil
}
