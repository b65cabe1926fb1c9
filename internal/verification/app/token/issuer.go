package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/klwxsrx/go-auth-session/internal/verification/domain"
	pkgtime "github.com/klwxsrx/go-auth-session/pkg/time"
)

const (
	ValueBytes = 32

	DefaultValidityHours = 24
	MaxValidityHours     = int(math.MaxInt64 / int64(time.Hour))
)

var (
	ErrInsufficientEntropy  = errors.New("insufficient entropy for verification token")
	ErrInvalidValidityHours = errors.New("validity hours must be positive and fit a duration")
)

type (
	Issuer interface {
		GenerateToken() (domain.TokenValue, error)
		ComputeExpiration(ctx context.Context, validityHours int) (time.Time, error)
		Issue(ctx context.Context, email string, validityHours int) (*domain.Token, error)
	}

	IssuerOption func(*issuer)

	issuer struct {
		entropy io.Reader
		clock   pkgtime.Clock
	}
)

func WithEntropySource(r io.Reader) IssuerOption {
	return func(i *issuer) {
		i.entropy = r
	}
}

func WithClock(clock pkgtime.Clock) IssuerOption {
	return func(i *issuer) {
		i.clock = clock
	}
}

func NewIssuer(opts ...IssuerOption) Issuer {
	i := &issuer{
		entropy: rand.Reader,
		clock:   pkgtime.NewAdjustableClock(),
	}
	for _, opt := range opts {
		opt(i)
	}

	return i
}

// GenerateToken returns 32 random bytes encoded as 64 lowercase hex characters.
func (i *issuer) GenerateToken() (domain.TokenValue, error) {
	buf := make([]byte, ValueBytes)
	_, err := io.ReadFull(i.entropy, buf)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInsufficientEntropy, err)
	}

	return domain.TokenValue(hex.EncodeToString(buf)), nil
}

func (i *issuer) ComputeExpiration(ctx context.Context, validityHours int) (time.Time, error) {
	if validityHours <= 0 || validityHours > MaxValidityHours {
		return time.Time{}, fmt.Errorf("%w: got %d", ErrInvalidValidityHours, validityHours)
	}

	return i.clock.Now(ctx).Add(time.Duration(validityHours) * time.Hour), nil
}

func (i *issuer) Issue(ctx context.Context, email string, validityHours int) (*domain.Token, error) {
	if clock, ok := i.clock.(pkgtime.AdjustableClock); ok {
		ctx = clock.Freeze(ctx)
	}

	expiresAt, err := i.ComputeExpiration(ctx, validityHours)
	if err != nil {
		return nil, err
	}

	value, err := i.GenerateToken()
	if err != nil {
		return nil, err
	}

	return &domain.Token{
		Value:     value,
		Email:     email,
		CreatedAt: i.clock.Now(ctx),
		ExpiresAt: expiresAt,
	}, nil
}
