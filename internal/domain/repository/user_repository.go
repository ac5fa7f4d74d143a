package repository

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
)

// UserStore keeps the offline user list and the current session
type UserStore interface {
	List(ctx context.Context) ([]entity.User, error)
	Save(ctx context.Context, users []entity.User) error
	GetSession(ctx context.Context) (*entity.Session, error)
	SaveSession(ctx context.Context, session *entity.Session) error
	ClearSession(ctx context.Context) error
}
