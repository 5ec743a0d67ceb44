package application

import (
	"context"
	"errors"
	"strings"

	"github.com/databridge-io/databridge/internal/domain"
)

// UserService hashes passwords through the injected capability before they
// reach the repository.
type UserService struct {
	users  domain.UserRepository
	hasher domain.Hasher
}

func NewUserService(users domain.UserRepository, hasher domain.Hasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

func (s *UserService) Search(ctx context.Context, login string, page int) (domain.Page[domain.User], error) {
	if page < 0 {
		page = 0
	}
	return s.users.Search(ctx, login, page)
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, command domain.UserCommand) (domain.User, error) {
	if strings.TrimSpace(command.Login) == "" {
		return domain.User{}, errors.New("login is required")
	}
	if command.Password == "" {
		return domain.User{}, errors.New("password is required")
	}
	hash, err := s.hasher.Hash(command.Password)
	if err != nil {
		return domain.User{}, err
	}
	return s.users.Create(ctx, command, hash)
}

// Update overwrites the profile; the stored hash changes only when the
// command carries a new password.
func (s *UserService) Update(ctx context.Context, id string, command domain.UserCommand) error {
	if strings.TrimSpace(command.Login) == "" {
		return errors.New("login is required")
	}
	if err := s.users.Update(ctx, id, command); err != nil {
		return err
	}
	if command.Password == "" {
		return nil
	}
	hash, err := s.hasher.Hash(command.Password)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, hash)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// Authenticate resolves a login/password pair to the stored user. The error
// never reveals whether the login exists.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (domain.User, error) {
	u, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		return domain.User{}, errors.New("invalid credentials")
	}
	if err := s.hasher.Verify(u.PasswordHash, password); err != nil {
		return domain.User{}, errors.New("invalid credentials")
	}
	return u, nil
}
