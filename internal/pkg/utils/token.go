package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/ougirez/cellarium/internal/pkg/constants"
)

// AuthToken is the claim set carried by both access and refresh tokens.
type AuthToken struct {
	jwt.StandardClaims
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
}

// TokenIssuer signs and verifies HS256 tokens with a shared secret.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (ti *TokenIssuer) NewAccessToken(userID int64) (string, error) {
	return ti.sign(userID, constants.TokenTypeAccess, ti.accessTTL)
}

func (ti *TokenIssuer) NewRefreshToken(userID int64) (string, error) {
	return ti.sign(userID, constants.TokenTypeRefresh, ti.refreshTTL)
}

func (ti *TokenIssuer) sign(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := ti.now()
	claims := AuthToken{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		UserID:    userID,
		TokenType: tokenType,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("jwt.SignedString: %w", err)
	}
	return signed, nil
}

// ParseAuthToken verifies the signature and expiry of raw and checks that it
// has the expected token type. Any failure is reported as ErrUnauthorized.
func (ti *TokenIssuer) ParseAuthToken(raw, tokenType string) (*AuthToken, error) {
	claims := new(AuthToken)
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), constants.ErrUnauthorized)
	}
	if !token.Valid || claims.TokenType != tokenType || claims.UserID <= 0 {
		return nil, constants.ErrUnauthorized
	}

	return claims, nil
}
