package auth_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/mocks"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIssue(t *testing.T) {
	t.Parallel()

	t.Run("produces 32 lowercase hex characters", func(t *testing.T) {
		t.Parallel()
		a := auth.NewTokenAuthority(new(mocks.TestifyMockUserStore), nil)

		token, err := a.Issue()
		require.NoError(t, err)
		assert.Len(t, token, auth.TokenLength)
		assert.True(t, auth.IsWellFormed(token))
	})

	t.Run("encodes the random bytes", func(t *testing.T) {
		t.Parallel()
		random := bytes.NewReader(bytes.Repeat([]byte{0xab}, auth.TokenBytes))
		a := auth.NewTokenAuthorityWithRandom(new(mocks.TestifyMockUserStore), random, nil)

		token, err := a.Issue()
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("ab", auth.TokenBytes), token)
	})

	t.Run("short random source fails", func(t *testing.T) {
		t.Parallel()
		a := auth.NewTokenAuthorityWithRandom(new(mocks.TestifyMockUserStore), bytes.NewReader([]byte{1, 2}), nil)

		_, err := a.Issue()
		assert.ErrorIs(t, err, auth.ErrTokenGeneration)
	})

	t.Run("tokens do not repeat", func(t *testing.T) {
		t.Parallel()
		a := auth.NewTokenAuthority(new(mocks.TestifyMockUserStore), nil)

		seen := make(map[string]struct{})
		for i := 0; i < 1000; i++ {
			token, err := a.Issue()
			require.NoError(t, err)
			_, dup := seen[token]
			require.False(t, dup, "token issued twice: %s", token)
			seen[token] = struct{}{}
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := "0123456789abcdef0123456789abcdef"
	unknown := "ffffffffffffffffffffffffffffffff"
	broken := "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"
	owner := &domain.User{ID: 1, Token: valid}

	users := new(mocks.TestifyMockUserStore)
	users.On("GetByToken", mock.Anything, valid).Return(owner, nil)
	users.On("GetByToken", mock.Anything, unknown).Return(nil, store.ErrUserNotFound)
	users.On("GetByToken", mock.Anything, broken).Return(nil, errors.New("connection refused"))

	a := auth.NewTokenAuthority(users, nil)

	tests := []struct {
		name       string
		token      string
		wantUser   *domain.User
		wantErr    error
		wantAnyErr bool
	}{
		{name: "known token", token: valid, wantUser: owner},
		{name: "unknown token", token: unknown, wantErr: auth.ErrTokenNotFound},
		{name: "store failure", token: broken, wantAnyErr: true},
		{name: "empty token", token: "", wantErr: auth.ErrTokenNotFound},
		{name: "too short", token: "abc", wantErr: auth.ErrTokenNotFound},
		{name: "uppercase hex", token: strings.ToUpper(valid), wantErr: auth.ErrTokenNotFound},
		{name: "non hex", token: strings.Repeat("z", auth.TokenLength), wantErr: auth.ErrTokenNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := a.Validate(context.Background(), tt.token)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			case tt.wantAnyErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, auth.ErrTokenNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantUser, user)
			}
		})
	}

	users.AssertNumberOfCalls(t, "GetByToken", 3)
}
