package localstore

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
)

type userStore struct {
	kv repository.KeyValueStore
}

// NewUserStore creates the offline user list and session holder
func NewUserStore(kv repository.KeyValueStore) repository.UserStore {
	return &userStore{kv: kv}
}

func (s *userStore) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if _, err := readJSON(ctx, s.kv, KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userStore) Save(ctx context.Context, users []entity.User) error {
	return writeJSON(ctx, s.kv, KeyUsers, users)
}

func (s *userStore) GetSession(ctx context.Context) (*entity.Session, error) {
	var session entity.Session
	ok, err := readJSON(ctx, s.kv, KeySession, &session)
	if err != nil || !ok {
		return nil, err
	}
	return &session, nil
}

func (s *userStore) SaveSession(ctx context.Context, session *entity.Session) error {
	return writeJSON(ctx, s.kv, KeySession, session)
}

func (s *userStore) ClearSession(ctx context.Context) error {
	return s.kv.Delete(ctx, KeySession)
}
