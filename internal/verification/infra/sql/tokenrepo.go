package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/klwxsrx/go-auth-session/internal/verification/domain"
	pkgsql "github.com/klwxsrx/go-auth-session/pkg/sql"
)

const tokenTable = "verification_token"

type tokenRepo struct {
	db pkgsql.Client
}

func NewTokenRepo(db pkgsql.Client) domain.TokenRepo {
	return tokenRepo{db: db}
}

func (r tokenRepo) Store(ctx context.Context, token *domain.Token) error {
	query, args, err := sq.
		Insert(tokenTable).
		Columns("value", "email", "created_at", "expires_at", "consumed_at").
		Values(token.Value, token.Email, token.CreatedAt, token.ExpiresAt, token.ConsumedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r tokenRepo) FindOne(ctx context.Context, value domain.TokenValue) (*domain.Token, error) {
	query, args, err := sq.
		Select("value", "email", "created_at", "expires_at", "consumed_at").
		From(tokenTable).
		Where(sq.Eq{"value": value}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row sqlxToken
	err = r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	return row.toDomain(), nil
}

func (r tokenRepo) MarkConsumed(ctx context.Context, value domain.TokenValue, at time.Time) error {
	query, args, err := sq.
		Update(tokenTable).
		Set("consumed_at", at).
		Where(sq.Eq{"value": value, "consumed_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrTokenAlreadyUsed
	}

	return nil
}

type sqlxToken struct {
	Value      string     `db:"value"`
	Email      string     `db:"email"`
	CreatedAt  time.Time  `db:"created_at"`
	ExpiresAt  time.Time  `db:"expires_at"`
	ConsumedAt *time.Time `db:"consumed_at"`
}

func (t sqlxToken) toDomain() *domain.Token {
	return &domain.Token{
		Value:      domain.TokenValue(t.Value),
		Email:      t.Email,
		CreatedAt:  t.CreatedAt,
		ExpiresAt:  t.ExpiresAt,
		ConsumedAt: t.ConsumedAt,
	}
}
