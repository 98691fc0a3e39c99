package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/pkg/constants"
)

var userColumns = []string{"id", "username", "password_hash", "created_at"}

func (s *store) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	query := builder().Insert(tableUsers).
		Columns("username", "password_hash").
		Values(username, passwordHash).
		Suffix("RETURNING id, username, password_hash, created_at")

	var created domain.User
	if err := s.pool.Getx(ctx, &created, query); err != nil {
		return nil, wrapErr(err)
	}
	return &created, nil
}

func (s *store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUser(ctx, sq.Eq{"username": username})
}

func (s *store) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getUser(ctx, sq.Eq{"id": id})
}

func (s *store) getUser(ctx context.Context, where sq.Eq) (*domain.User, error) {
	query := builder().Select(userColumns...).From(tableUsers).Where(where)

	var selected domain.User
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}
	return &selected, nil
}

func (s *store) SetUserPassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := s.pool.Execx(ctx, builder().Update(tableUsers).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return constants.ErrDBNotFound
	}
	return nil
}
