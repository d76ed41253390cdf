package service

import (
	"context"
	"errors"
	"fmt"

	"itemvault/internal/models"
	"itemvault/internal/repository"
)

// ErrItemNotFound covers both a missing item and one owned by another user;
// callers must not be able to tell the difference.
var ErrItemNotFound = errors.New("item not found")

// ItemService implements the ownership-scoped item CRUD.
type ItemService struct {
	items repository.Items
}

func NewItemService(items repository.Items) *ItemService {
	return &ItemService{items: items}
}

func (s *ItemService) List(ctx context.Context, ownerID int) ([]models.Item, error) {
	return s.items.ListByOwner(ctx, ownerID)
}

func (s *ItemService) Create(ctx context.Context, ownerID int, input CreateItemInput) (*models.Item, error) {
	id, err := s.items.Create(ctx, ownerID, input.Title, input.Description)
	if err != nil {
		return nil, err
	}
	created, err := s.items.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("item id=%d vanished after insert", id)
	}
	return created, nil
}

func (s *ItemService) Get(ctx context.Context, id, ownerID int) (*models.Item, error) {
	it, err := s.items.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItemNotFound
	}
	return it, nil
}

// Update applies the patch via a single conditional UPDATE. An empty patch is
// a no-op that returns the current record without touching updated_at.
func (s *ItemService) Update(ctx context.Context, id, ownerID int, patch ItemPatch) (*models.Item, error) {
	if patch.Title == nil && patch.Description == nil {
		return s.Get(ctx, id, ownerID)
	}

	affected, err := s.items.Update(ctx, id, ownerID, repository.ItemPatch{
		Title:       patch.Title,
		Description: patch.Description,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrItemNotFound
	}
	return s.Get(ctx, id, ownerID)
}

func (s *ItemService) Delete(ctx context.Context, id, ownerID int) error {
	affected, err := s.items.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}
