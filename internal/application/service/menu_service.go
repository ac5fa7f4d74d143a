package service

import (
	"context"
	"sort"
	"strings"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"github.com/atlantichotel/frontdesk-api/pkg/utils"
	"go.uber.org/zap"
)

// MenuCategoryAll selects every available item
const MenuCategoryAll = "All"

// MenuService serves the restaurant menu. The remote table is the source
// of truth; the local copy only keeps the till working offline.
type MenuService struct {
	cache  repository.MenuCache
	remote repository.RemoteMenuRepository
	conn   Connectivity
	logger *zap.Logger
}

// NewMenuService creates a new menu service
func NewMenuService(cache repository.MenuCache, remote repository.RemoteMenuRepository, conn Connectivity, logger *zap.Logger) *MenuService {
	return &MenuService{
		cache:  cache,
		remote: remote,
		conn:   conn,
		logger: logger.With(zap.String("service", "menu")),
	}
}

// Refresh reloads the menu from the remote table, falling back to the
// cached copy when offline or when the fetch fails.
func (s *MenuService) Refresh(ctx context.Context) ([]entity.MenuItem, error) {
	if s.conn.IsOnline() {
		items, err := s.remote.ListAvailable(ctx)
		if err == nil {
			if err := s.cache.Save(ctx, items); err != nil {
				return nil, err
			}
			return items, nil
		}
		s.logger.Warn("refresh menu failed, using cache", zap.Error(err))
	}
	return s.cache.Load(ctx)
}

// List returns available items in category; MenuCategoryAll or "" lists all
func (s *MenuService) List(ctx context.Context, category string) ([]entity.MenuItem, error) {
	items, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		if items, err = s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	out := make([]entity.MenuItem, 0, len(items))
	for _, it := range items {
		if !it.Available {
			continue
		}
		if category != "" && category != MenuCategoryAll && it.Category != category {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// Categories lists the menu categories, MenuCategoryAll first
func (s *MenuService) Categories(ctx context.Context) ([]string, error) {
	items, err := s.List(ctx, MenuCategoryAll)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{})
	for _, it := range items {
		set[it.Category] = struct{}{}
	}
	cats := make([]string, 0, len(set))
	for c := range set {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return append([]string{MenuCategoryAll}, cats...), nil
}

// LastSync returns the unix-millis time of the last refresh
func (s *MenuService) LastSync(ctx context.Context) (int64, error) {
	return s.cache.LastSync(ctx)
}

// MenuItemInput represents the create/update menu item input
type MenuItemInput struct {
	Name        string
	Category    string
	Price       float64
	Available   bool
	Description string
}

func (in *MenuItemInput) validate() error {
	var errs []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if strings.TrimSpace(in.Category) == "" {
		errs = append(errs, apperror.FieldError{Field: "category", Message: "Category is required"})
	}
	if in.Price < 0 {
		errs = append(errs, apperror.FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// Create adds a menu item. Menu management needs the remote table.
func (s *MenuService) Create(ctx context.Context, input *MenuItemInput) (*entity.MenuItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if !s.conn.IsOnline() {
		return nil, apperror.ErrOffline
	}

	item := &entity.MenuItem{
		ID:          utils.NewID(),
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		Price:       input.Price,
		Available:   input.Available,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.remote.Create(ctx, item); err != nil {
		return nil, err
	}
	s.refreshQuietly(ctx)
	return item, nil
}

// Update replaces a menu item
func (s *MenuService) Update(ctx context.Context, id string, input *MenuItemInput) (*entity.MenuItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	item, err := s.getRemote(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Category = strings.TrimSpace(input.Category)
	item.Price = input.Price
	item.Available = input.Available
	item.Description = strings.TrimSpace(input.Description)

	if err := s.remote.Update(ctx, item); err != nil {
		return nil, err
	}
	s.refreshQuietly(ctx)
	return item, nil
}

// SetAvailability toggles whether an item can be ordered
func (s *MenuService) SetAvailability(ctx context.Context, id string, available bool) (*entity.MenuItem, error) {
	item, err := s.getRemote(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Available = available
	if err := s.remote.Update(ctx, item); err != nil {
		return nil, err
	}
	s.refreshQuietly(ctx)
	return item, nil
}

// Delete removes a menu item
func (s *MenuService) Delete(ctx context.Context, id string) error {
	if _, err := s.getRemote(ctx, id); err != nil {
		return err
	}
	if err := s.remote.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshQuietly(ctx)
	return nil
}

func (s *MenuService) getRemote(ctx context.Context, id string) (*entity.MenuItem, error) {
	if !s.conn.IsOnline() {
		return nil, apperror.ErrOffline
	}
	item, err := s.remote.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

func (s *MenuService) refreshQuietly(ctx context.Context) {
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Warn("menu cache refresh failed", zap.Error(err))
	}
}

// index maps cached item ids to items
func (s *MenuService) index(ctx context.Context) (map[string]entity.MenuItem, error) {
	items, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		if items, err = s.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	out := make(map[string]entity.MenuItem, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}
