package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/store"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type Service struct {
	store store.UserStore
	cost  int
}

func NewUserService(store store.UserStore) *Service {
	return &Service{store: store, cost: bcrypt.DefaultCost}
}

func (s *Service) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if err := checkCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, username, hash)
	if err != nil {
		return nil, fmt.Errorf("store.CreateUser, username-%s: %w", username, err)
	}

	return user, nil
}

func (s *Service) SetPassword(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if err := checkCredentials(username, password); err != nil {
		return err
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("store.GetUserByUsername, username-%s: %w", username, err)
	}

	hash, err := s.hash(password)
	if err != nil {
		return err
	}

	if err = s.store.SetUserPassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("store.SetUserPassword, id-%d: %w", user.ID, err)
	}

	return nil
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}
	return string(hash), nil
}

func checkCredentials(username, password string) error {
	fields := make(map[string][]string)
	if username == "" {
		fields["username"] = append(fields["username"], "this field is required")
	}
	if len(password) < minPasswordLen {
		fields["password"] = append(fields["password"], fmt.Sprintf("ensure this field has at least %d characters", minPasswordLen))
	}
	if len(fields) > 0 {
		return constants.NewValidationError(fields)
	}
	return nil
}
