package repository

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
)

// MenuCache is a read-through copy of the menu
type MenuCache interface {
	Load(ctx context.Context) ([]entity.MenuItem, error)
	Save(ctx context.Context, items []entity.MenuItem) error
	// LastSync returns the unix-millis time of the last successful refresh, 0 if never
	LastSync(ctx context.Context) (int64, error)
}

// RemoteMenuRepository is the menu_items table
type RemoteMenuRepository interface {
	// ListAvailable returns available items ordered by category then name
	ListAvailable(ctx context.Context) ([]entity.MenuItem, error)
	Get(ctx context.Context, id string) (*entity.MenuItem, error)
	Create(ctx context.Context, item *entity.MenuItem) error
	Update(ctx context.Context, item *entity.MenuItem) error
	Delete(ctx context.Context, id string) error
}
