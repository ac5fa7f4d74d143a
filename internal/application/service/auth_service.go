package service

import (
	"context"
	"strings"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"github.com/atlantichotel/frontdesk-api/pkg/utils"
	"go.uber.org/zap"
)

type defaultUser struct {
	username, password, name, role string
}

var defaultUsers = []defaultUser{
	{"admin", "admin123", "Administrator", entity.RoleAdmin},
	{"receptionist", "recept123", "Front Desk", entity.RoleReceptionist},
}

// AuthService matches credentials against the local user list, so staff
// can sign in while the cloud database is unreachable.
type AuthService struct {
	users      repository.UserStore
	jwtManager *utils.JWTManager
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserStore, jwtManager *utils.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtManager: jwtManager,
		logger:     logger.With(zap.String("service", "auth")),
		now:        time.Now,
	}
}

// EnsureDefaultUsers seeds the built-in accounts on first start
func (s *AuthService) EnsureDefaultUsers(ctx context.Context) error {
	users, err := s.users.List(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	for _, d := range defaultUsers {
		hash, err := utils.HashPassword(d.password)
		if err != nil {
			return err
		}
		users = append(users, entity.User{
			ID:           utils.NewID(),
			Username:     d.username,
			PasswordHash: hash,
			Name:         d.name,
			Role:         d.role,
		})
	}
	if err := s.users.Save(ctx, users); err != nil {
		return err
	}
	s.logger.Info("seeded default users", zap.Int("count", len(users)))
	return nil
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
	Location string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.User
	Session     *entity.Session
	AccessToken string
}

// Login authenticates a user and stores the session locally
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input.Location != "" {
		if _, ok := entity.GetLocation(input.Location); !ok {
			return nil, ErrUnknownLocation
		}
	}

	user, err := s.findUser(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Name, user.Role)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		UserID:    user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Role:      user.Role,
		Location:  input.Location,
		Token:     token,
		CreatedAt: s.now().UnixMilli(),
	}
	if err := s.users.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("user signed in", zap.String("username", user.Username), zap.String("location", input.Location))
	return &LoginOutput{User: user, Session: session, AccessToken: token}, nil
}

// CurrentSession returns the stored session, or nil when signed out
func (s *AuthService) CurrentSession(ctx context.Context) (*entity.Session, error) {
	return s.users.GetSession(ctx)
}

// Logout clears the stored session
func (s *AuthService) Logout(ctx context.Context) error {
	return s.users.ClearSession(ctx)
}

// GetUser returns a user by ID
func (s *AuthService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("User")
}

// ListUsers returns every local account
func (s *AuthService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.users.List(ctx)
}

// AddUserInput represents the add user input
type AddUserInput struct {
	Username string
	Password string
	Name     string
	Role     string
}

// AddUser creates an account. Only admins may add users.
func (s *AuthService) AddUser(ctx context.Context, actorRole string, input *AddUserInput) (*entity.User, error) {
	if actorRole != entity.RoleAdmin {
		return nil, apperror.NewForbiddenError("Only admins can add users")
	}

	var errs []apperror.FieldError
	username := strings.TrimSpace(input.Username)
	if username == "" {
		errs = append(errs, apperror.FieldError{Field: "username", Message: "Username is required"})
	}
	if len(input.Password) < 6 {
		errs = append(errs, apperror.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.Role != entity.RoleAdmin && input.Role != entity.RoleReceptionist {
		errs = append(errs, apperror.FieldError{Field: "role", Message: "Role must be Admin or Receptionist"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return nil, apperror.NewConflictError("Username already exists")
		}
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := entity.User{
		ID:           utils.NewID(),
		Username:     username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         input.Role,
	}
	if err := s.users.Save(ctx, append(users, user)); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) findUser(ctx context.Context, username string) (*entity.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			return &users[i], nil
		}
	}
	return nil, nil
}
