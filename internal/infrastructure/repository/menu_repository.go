package repository

import (
	"context"
	"errors"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"gorm.io/gorm"
)

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates the remote menu_items table
func NewMenuRepository(db *gorm.DB) domainRepo.RemoteMenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) ListAvailable(ctx context.Context) ([]entity.MenuItem, error) {
	var rows []menuItemRow
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("category ASC, name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]entity.MenuItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toEntity())
	}
	return items, nil
}

func (r *menuRepository) Get(ctx context.Context, id string) (*entity.MenuItem, error) {
	var row menuItemRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item := row.toEntity()
	return &item, nil
}

func (r *menuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Create(toMenuItemRow(item)).Error
}

// Update writes every column, including a false availability
func (r *menuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	result := r.db.WithContext(ctx).
		Model(&menuItemRow{ID: item.ID}).
		Select("*").
		Updates(toMenuItemRow(item))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Menu item")
	}
	return nil
}

func (r *menuRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&menuItemRow{}, "id = ?", id).Error
}
