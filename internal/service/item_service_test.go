package service

import (
	"context"
	"errors"
	"testing"

	"itemvault/internal/models"
	"itemvault/internal/repository"
)

// mockItemRepo is a lightweight in-test mock for repository.Items.
type mockItemRepo struct {
	CreateFn      func(ownerID int, title, description string) (int, error)
	ListByOwnerFn func(ownerID int) ([]models.Item, error)
	GetForOwnerFn func(id, ownerID int) (*models.Item, error)
	UpdateFn      func(id, ownerID int, patch repository.ItemPatch) (int64, error)
	DeleteFn      func(id, ownerID int) (int64, error)

	updateCalls int
	deleteCalls int
}

func (m *mockItemRepo) Create(_ context.Context, ownerID int, title, description string) (int, error) {
	return m.CreateFn(ownerID, title, description)
}

func (m *mockItemRepo) ListByOwner(_ context.Context, ownerID int) ([]models.Item, error) {
	return m.ListByOwnerFn(ownerID)
}

func (m *mockItemRepo) GetForOwner(_ context.Context, id, ownerID int) (*models.Item, error) {
	return m.GetForOwnerFn(id, ownerID)
}

func (m *mockItemRepo) Update(_ context.Context, id, ownerID int, patch repository.ItemPatch) (int64, error) {
	m.updateCalls++
	return m.UpdateFn(id, ownerID, patch)
}

func (m *mockItemRepo) Delete(_ context.Context, id, ownerID int) (int64, error) {
	m.deleteCalls++
	return m.DeleteFn(id, ownerID)
}

func strPtr(s string) *string { return &s }

func TestItemService_Create_ReturnsStoredRecord(t *testing.T) {
	stored := &models.Item{ID: 5, Title: "t", Description: "d", OwnerID: 3}
	mock := &mockItemRepo{
		CreateFn: func(ownerID int, title, description string) (int, error) {
			if ownerID != 3 || title != "t" || description != "d" {
				t.Fatalf("unexpected Create args: %d %q %q", ownerID, title, description)
			}
			return 5, nil
		},
		GetForOwnerFn: func(id, ownerID int) (*models.Item, error) {
			if id != 5 || ownerID != 3 {
				t.Fatalf("unexpected GetForOwner args: %d %d", id, ownerID)
			}
			return stored, nil
		},
	}
	svc := NewItemService(mock)

	it, err := svc.Create(context.Background(), 3, CreateItemInput{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if it != stored {
		t.Fatalf("expected the stored record back, got %+v", it)
	}
}

func TestItemService_Get_NotOwnedLooksLikeMissing(t *testing.T) {
	mock := &mockItemRepo{
		GetForOwnerFn: func(id, ownerID int) (*models.Item, error) { return nil, nil },
	}
	svc := NewItemService(mock)

	_, err := svc.Get(context.Background(), 8, 1)
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemService_Update_EmptyPatchIsNoOp(t *testing.T) {
	current := &models.Item{ID: 8, Title: "keep", OwnerID: 1}
	mock := &mockItemRepo{
		GetForOwnerFn: func(id, ownerID int) (*models.Item, error) { return current, nil },
		UpdateFn: func(id, ownerID int, patch repository.ItemPatch) (int64, error) {
			t.Fatal("Update should not hit the store for an empty patch")
			return 0, nil
		},
	}
	svc := NewItemService(mock)

	it, err := svc.Update(context.Background(), 8, 1, ItemPatch{})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if it != current {
		t.Fatalf("expected unchanged record, got %+v", it)
	}
	if mock.updateCalls != 0 {
		t.Fatalf("expected 0 store updates, got %d", mock.updateCalls)
	}
}

func TestItemService_Update_ZeroRowsMeansNotFound(t *testing.T) {
	mock := &mockItemRepo{
		UpdateFn: func(id, ownerID int, patch repository.ItemPatch) (int64, error) { return 0, nil },
	}
	svc := NewItemService(mock)

	_, err := svc.Update(context.Background(), 8, 2, ItemPatch{Title: strPtr("new")})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemService_Update_AppliedPatchReturnsFreshRecord(t *testing.T) {
	fresh := &models.Item{ID: 8, Title: "new", OwnerID: 2}
	mock := &mockItemRepo{
		UpdateFn: func(id, ownerID int, patch repository.ItemPatch) (int64, error) {
			if patch.Title == nil || *patch.Title != "new" {
				t.Fatalf("expected title patch, got %+v", patch)
			}
			if patch.Description != nil {
				t.Fatalf("description should stay nil, got %q", *patch.Description)
			}
			return 1, nil
		},
		GetForOwnerFn: func(id, ownerID int) (*models.Item, error) { return fresh, nil },
	}
	svc := NewItemService(mock)

	it, err := svc.Update(context.Background(), 8, 2, ItemPatch{Title: strPtr("new")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if it != fresh {
		t.Fatalf("expected fresh record, got %+v", it)
	}
}

func TestItemService_Delete_ZeroRowsMeansNotFound(t *testing.T) {
	mock := &mockItemRepo{
		DeleteFn: func(id, ownerID int) (int64, error) { return 0, nil },
	}
	svc := NewItemService(mock)

	if err := svc.Delete(context.Background(), 8, 2); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemService_Delete_Success(t *testing.T) {
	mock := &mockItemRepo{
		DeleteFn: func(id, ownerID int) (int64, error) {
			if id != 8 || ownerID != 2 {
				t.Fatalf("unexpected Delete args: %d %d", id, ownerID)
			}
			return 1, nil
		},
	}
	svc := NewItemService(mock)

	if err := svc.Delete(context.Background(), 8, 2); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if mock.deleteCalls != 1 {
		t.Fatalf("expected 1 Delete call, got %d", mock.deleteCalls)
	}
}
