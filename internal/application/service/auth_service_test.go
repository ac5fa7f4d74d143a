package service

import (
	"context"
	"testing"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/infrastructure/localstore"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"github.com/atlantichotel/frontdesk-api/pkg/utils"
	"go.uber.org/zap"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	kv := localstore.NewMemoryStore()
	svc := NewAuthService(localstore.NewUserStore(kv), utils.NewJWTManager("test-secret", time.Hour), zap.NewNop())
	if err := svc.EnsureDefaultUsers(context.Background()); err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestLoginWithDefaultUsers(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuth(t)

	out, err := svc.Login(ctx, &LoginInput{Username: "receptionist", Password: "recept123", Location: entity.LocationMusaYaradua})
	if err != nil {
		t.Fatal(err)
	}
	if out.User.Role != entity.RoleReceptionist || out.AccessToken == "" {
		t.Errorf("login = %+v", out)
	}

	session, err := svc.CurrentSession(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if session == nil || session.Location != entity.LocationMusaYaradua {
		t.Errorf("session = %+v", session)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if session, _ := svc.CurrentSession(ctx); session != nil {
		t.Error("session survived logout")
	}

	if _, err := svc.Login(ctx, &LoginInput{Username: "admin", Password: "wrong"}); err != apperror.ErrInvalidCredentials {
		t.Errorf("bad password: err = %v", err)
	}
}

func TestAddUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuth(t)
	in := &AddUserInput{Username: "tola", Password: "secret1", Name: "Tola", Role: entity.RoleReceptionist}

	if _, err := svc.AddUser(ctx, entity.RoleReceptionist, in); err == nil || apperror.GetAppError(err).Code != 403 {
		t.Errorf("receptionist added a user: %v", err)
	}
	if _, err := svc.AddUser(ctx, entity.RoleAdmin, in); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddUser(ctx, entity.RoleAdmin, in); err == nil || apperror.GetAppError(err).Code != 409 {
		t.Errorf("duplicate accepted: %v", err)
	}
	if _, err := svc.Login(ctx, &LoginInput{Username: "TOLA", Password: "secret1"}); err != nil {
		t.Errorf("new user cannot sign in: %v", err)
	}

	users, _ := svc.ListUsers(ctx)
	if len(users) != 3 {
		t.Errorf("users = %d, want 3", len(users))
	}
}
