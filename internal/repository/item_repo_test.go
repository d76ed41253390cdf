package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockItemRepo(t *testing.T) (*ItemRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewItemRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func itemColumns() []string {
	return []string{"id", "title", "description", "owner_id", "created_at", "updated_at"}
}

func TestItemRepository_Create(t *testing.T) {
	repo, mock, cleanup := newMockItemRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertItemSQL)).
		WithArgs("t", "d", 3).
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := repo.Create(context.Background(), 3, "t", "d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 5 {
		t.Fatalf("expected id 5, got %d", id)
	}
}

func TestItemRepository_Create_ExecError(t *testing.T) {
	repo, mock, cleanup := newMockItemRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertItemSQL)).
		WithArgs("t", "", 3).
		WillReturnError(errors.New("db exec failed"))

	_, err := repo.Create(context.Background(), 3, "t", "")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !contains(err.Error(), "insert item") {
		t.Fatalf("expected wrapped insert error, got %q", err.Error())
	}
}

func TestItemRepository_ListByOwner(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		ownerID    int
		mockExpect func(sqlmock.Sqlmock)
		wantLen    int
		wantErr    bool
	}{
		{
			name:    "two items in id order",
			ownerID: 3,
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(itemColumns()).
					AddRow(1, "first", "", 3, now, now).
					AddRow(2, "second", "desc", 3, now, now)
				m.ExpectQuery(regexp.QuoteMeta(selectItemsByOwnerSQL)).
					WithArgs(3).
					WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name:    "no items yields empty slice",
			ownerID: 4,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectItemsByOwnerSQL)).
					WithArgs(4).
					WillReturnRows(sqlmock.NewRows(itemColumns()))
			},
			wantLen: 0,
		},
		{
			name:    "query error",
			ownerID: 5,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectItemsByOwnerSQL)).
					WithArgs(5).
					WillReturnError(errors.New("query failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockItemRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			items, err := repo.ListByOwner(context.Background(), tt.ownerID)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if items == nil {
				t.Fatalf("expected non-nil slice")
			}
			if len(items) != tt.wantLen {
				t.Fatalf("expected %d items, got %d", tt.wantLen, len(items))
			}
		})
	}
}

func TestItemRepository_GetForOwner(t *testing.T) {
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		rows := sqlmock.NewRows(itemColumns()).
			AddRow(8, "t", "d", 3, now, now)
		mock.ExpectQuery(regexp.QuoteMeta(selectItemForOwnerSQL)).
			WithArgs(8, 3).
			WillReturnRows(rows)

		it, err := repo.GetForOwner(context.Background(), 8, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if it == nil || it.ID != 8 || it.OwnerID != 3 {
			t.Fatalf("unexpected item: %+v", it)
		}
	})

	t.Run("someone else's item returns nil, nil", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectItemForOwnerSQL)).
			WithArgs(8, 99).
			WillReturnRows(sqlmock.NewRows(itemColumns()))

		it, err := repo.GetForOwner(context.Background(), 8, 99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if it != nil {
			t.Fatalf("expected nil item, got %+v", it)
		}
	})
}

func TestItemRepository_Update(t *testing.T) {
	title := "new title"
	desc := "new desc"

	tests := []struct {
		name         string
		patch        ItemPatch
		mockExpect   func(sqlmock.Sqlmock)
		wantAffected int64
		wantErr      bool
	}{
		{
			name:  "title only",
			patch: ItemPatch{Title: &title},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(`UPDATE items SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id = ?`)).
					WithArgs(title, 8, 3).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantAffected: 1,
		},
		{
			name:  "both fields",
			patch: ItemPatch{Title: &title, Description: &desc},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(`UPDATE items SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id = ?`)).
					WithArgs(title, desc, 8, 3).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantAffected: 1,
		},
		{
			name:  "not owned affects zero rows",
			patch: ItemPatch{Title: &title},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(`UPDATE items SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id = ?`)).
					WithArgs(title, 8, 3).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantAffected: 0,
		},
		{
			name:       "empty patch is a caller bug",
			patch:      ItemPatch{},
			mockExpect: func(m sqlmock.Sqlmock) {},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockItemRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			affected, err := repo.Update(context.Background(), 8, 3, tt.patch)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if affected != tt.wantAffected {
				t.Fatalf("expected %d affected rows, got %d", tt.wantAffected, affected)
			}
		})
	}
}

func TestItemRepository_Delete(t *testing.T) {
	t.Run("owned row deleted", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteItemForOwnerSQL)).
			WithArgs(8, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		affected, err := repo.Delete(context.Background(), 8, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if affected != 1 {
			t.Fatalf("expected 1 affected row, got %d", affected)
		}
	})

	t.Run("not owned affects zero rows", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteItemForOwnerSQL)).
			WithArgs(8, 99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		affected, err := repo.Delete(context.Background(), 8, 99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if affected != 0 {
			t.Fatalf("expected 0 affected rows, got %d", affected)
		}
	})
}
