package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/logger"
	"github.com/ougirez/cellarium/internal/pkg/store"
	"github.com/ougirez/cellarium/internal/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	store  store.UserStore
	tokens *utils.TokenIssuer
}

func NewService(store store.UserStore, tokens *utils.TokenIssuer) *Service {
	return &Service{store: store, tokens: tokens}
}

// Login exchanges credentials for an access/refresh pair.
func (svc *Service) Login(ctx context.Context, request dto.TokenObtainRequest) (*domain.TokenPair, error) {
	user, err := svc.store.GetUserByUsername(ctx, request.Username)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrInvalidLogin
		}
		return nil, fmt.Errorf("store.GetUserByUsername: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		logger.Warnf(ctx, "failed login for %s", request.Username)
		return nil, constants.ErrInvalidLogin
	}

	access, err := svc.tokens.NewAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := svc.tokens.NewRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh issues a new access token for a valid refresh token.
func (svc *Service) Refresh(ctx context.Context, request dto.TokenRefreshRequest) (*domain.AccessToken, error) {
	userID, err := svc.authenticate(ctx, request.Refresh, constants.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	access, err := svc.tokens.NewAccessToken(userID)
	if err != nil {
		return nil, err
	}

	return &domain.AccessToken{Access: access}, nil
}

// Authenticate resolves an access token to the id of an existing user.
func (svc *Service) Authenticate(ctx context.Context, raw string) (int64, error) {
	return svc.authenticate(ctx, raw, constants.TokenTypeAccess)
}

func (svc *Service) authenticate(ctx context.Context, raw, tokenType string) (int64, error) {
	token, err := svc.tokens.ParseAuthToken(raw, tokenType)
	if err != nil {
		return 0, err
	}

	if _, err = svc.store.GetUserByID(ctx, token.UserID); err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return 0, constants.ErrUnauthorized
		}
		return 0, fmt.Errorf("store.GetUserByID: %w", err)
	}

	return token.UserID, nil
}
