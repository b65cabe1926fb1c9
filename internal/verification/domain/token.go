//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "TokenRepo=TokenRepo"
package domain

import (
	"context"
	"errors"
	"time"
)

const Name = "verification"

var (
	ErrTokenNotFound    = errors.New("verification token not found")
	ErrTokenExpired     = errors.New("verification token expired")
	ErrTokenAlreadyUsed = errors.New("verification token already used")
)

type (
	TokenValue string

	Token struct {
		Value      TokenValue
		Email      string
		CreatedAt  time.Time
		ExpiresAt  time.Time
		ConsumedAt *time.Time
	}

	TokenRepo interface {
		Store(context.Context, *Token) error
		FindOne(context.Context, TokenValue) (*Token, error)
		// MarkConsumed returns ErrTokenAlreadyUsed when the token was consumed concurrently.
		MarkConsumed(ctx context.Context, value TokenValue, at time.Time) error
	}
)

func (t *Token) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *Token) IsConsumed() bool {
	return t.ConsumedAt != nil
}

// Consume checks the token is still usable at the given time and marks it consumed.
func (t *Token) Consume(now time.Time) error {
	if t.IsConsumed() {
		return ErrTokenAlreadyUsed
	}
	if t.IsExpired(now) {
		return ErrTokenExpired
	}

	t.ConsumedAt = &now
	return nil
}
