package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dinnerplan/backend/internal/models"
)

// CreateExtraItemRequest creates a one-off shopping item.
type CreateExtraItemRequest struct {
	Name   string `json:"name" binding:"required"`
	Amount int    `json:"amount" binding:"required,min=1"`
	Bought bool   `json:"bought"`
}

// UpdateExtraItemRequest overwrites an extra item, including its bought flag.
type UpdateExtraItemRequest struct {
	Name   string `json:"name" binding:"required"`
	Amount int    `json:"amount" binding:"required,min=1"`
	Bought bool   `json:"bought"`
}

// ExtraItemService handles the independent one-off shopping list.
type ExtraItemService struct {
	db *gorm.DB
}

// NewExtraItemService creates a new ExtraItemService instance
func NewExtraItemService(db *gorm.DB) *ExtraItemService {
	return &ExtraItemService{db: db}
}

// Get retrieves an extra item by ID
func (s *ExtraItemService) Get(ctx context.Context, id int) (*models.ExtraItem, error) {
	var item models.ExtraItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("could not get extra item %d: %w", id, err)
	}
	return &item, nil
}

// List lists all extra items
func (s *ExtraItemService) List(ctx context.Context) ([]models.ExtraItem, error) {
	var items []models.ExtraItem
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("could not get extra items: %w", err)
	}
	return items, nil
}

// ListNotBought lists the items still to buy; drives the badge count.
func (s *ExtraItemService) ListNotBought(ctx context.Context) ([]models.ExtraItem, error) {
	var items []models.ExtraItem
	if err := s.db.WithContext(ctx).Where("bought = ?", false).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("could not get extra items not bought: %w", err)
	}
	return items, nil
}

// Create inserts a new extra item
func (s *ExtraItemService) Create(ctx context.Context, req *CreateExtraItemRequest) (*models.ExtraItem, error) {
	item := models.ExtraItem{
		Name:   req.Name,
		Amount: req.Amount,
		Bought: req.Bought,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("could not insert extra item %q: %w", req.Name, err)
	}
	return &item, nil
}

// Update overwrites an extra item by ID
func (s *ExtraItemService) Update(ctx context.Context, id int, req *UpdateExtraItemRequest) (*models.ExtraItem, error) {
	result := s.db.WithContext(ctx).Model(&models.ExtraItem{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":   req.Name,
			"amount": req.Amount,
			"bought": req.Bought,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("could not update extra item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("could not update extra item %d: %w", id, gorm.ErrRecordNotFound)
	}
	return s.Get(ctx, id)
}

// Delete removes an extra item by ID
func (s *ExtraItemService) Delete(ctx context.Context, id int) error {
	result := s.db.WithContext(ctx).Delete(&models.ExtraItem{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("could not delete extra item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("could not delete extra item %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
