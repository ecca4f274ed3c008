package mocks

import (
	"context"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
)

// MockTokenAuthority implements auth.TokenAuthority with function fields.
// A nil function falls back to a fixed token and ErrTokenNotFound.
type MockTokenAuthority struct {
	IssueFn    func() (string, error)
	ValidateFn func(ctx context.Context, token string) (*domain.User, error)
}

var _ auth.TokenAuthority = (*MockTokenAuthority)(nil)

// Issue implements auth.TokenAuthority
func (m *MockTokenAuthority) Issue() (string, error) {
	if m.IssueFn != nil {
		return m.IssueFn()
	}
	return "0123456789abcdef0123456789abcdef", nil
}

// Validate implements auth.TokenAuthority
func (m *MockTokenAuthority) Validate(ctx context.Context, token string) (*domain.User, error) {
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, token)
	}
	return nil, auth.ErrTokenNotFound
}

// SequenceIssuer returns an IssueFn that hands out tokens in order and
// repeats the last one when exhausted.
func SequenceIssuer(tokens ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		token := tokens[i]
		if i < len(tokens)-1 {
			i++
		}
		return token, nil
	}
}
