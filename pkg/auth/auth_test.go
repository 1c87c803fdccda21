package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/home-library/pkg/auth"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, key string, method jwt.SigningMethod, claims auth.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func TestVerifier_Verify(t *testing.T) {
	t.Parallel()
	v, err := auth.NewVerifier(auth.Config{Secret: secret, Audience: "authenticated"})
	require.NoError(t, err)

	valid := auth.Claims{
		Email: "reader@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "2f2c4f37-5e1c-4b8a-9d3e-0b7b0f1b2c3d",
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	tests := []struct {
		name    string
		token   string
		want    auth.Subject
		wantErr bool
	}{
		{
			name:  "ok",
			token: sign(t, secret, jwt.SigningMethodHS256, valid),
			want:  auth.Subject{ID: valid.Subject, Email: valid.Email},
		},
		{
			name:    "wrong secret",
			token:   sign(t, "other", jwt.SigningMethodHS256, valid),
			wantErr: true,
		},
		{
			name:    "wrong method",
			token:   sign(t, secret, jwt.SigningMethodHS512, valid),
			wantErr: true,
		},
		{
			name: "expired",
			token: sign(t, secret, jwt.SigningMethodHS256, auth.Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   valid.Subject,
					Audience:  jwt.ClaimStrings{"authenticated"},
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				},
			}),
			wantErr: true,
		},
		{
			name: "no subject",
			token: sign(t, secret, jwt.SigningMethodHS256, auth.Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Audience:  jwt.ClaimStrings{"authenticated"},
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}),
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   "not.a.jwt",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := v.Verify(context.Background(), tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, auth.ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewVerifier_NoSecret(t *testing.T) {
	_, err := auth.NewVerifier(auth.Config{})
	require.Error(t, err)
}
