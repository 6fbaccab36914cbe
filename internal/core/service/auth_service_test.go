package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcall/clients/internal/core/domain"
)

func newTestAuthService() *AuthService {
	return NewAuthService(AuthConfig{JWTSecret: "test-secret", JWTAlgorithm: "HS256"})
}

func TestIssueAndValidateToken(t *testing.T) {
	s := newTestAuthService()

	token, err := s.IssueToken("user-1", "ana@acme.co", "SuperAdmin", time.Hour)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ana@acme.co", claims.Email)
	assert.Equal(t, "SuperAdmin", claims.Role)
}

func TestSigningAlgorithmIgnoresCase(t *testing.T) {
	tests := []struct {
		algorithm string
		want      string
	}{
		{algorithm: "hs512", want: "HS512"},
		{algorithm: "Hs384", want: "HS384"},
		{algorithm: "", want: "HS256"},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			s := NewAuthService(AuthConfig{JWTSecret: "test-secret", JWTAlgorithm: tt.algorithm})

			token, err := s.IssueToken("user-1", "", "superadmin", time.Hour)
			require.NoError(t, err)

			parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed.Method.Alg())

			_, err = s.ValidateToken(token)
			assert.NoError(t, err)
		})
	}
}

func TestValidateTokenRejects(t *testing.T) {
	s := newTestAuthService()

	expired, err := s.IssueToken("user-1", "", "superadmin", -time.Minute)
	require.NoError(t, err)

	otherSecret, err := NewAuthService(AuthConfig{JWTSecret: "other"}).IssueToken("user-1", "", "superadmin", time.Hour)
	require.NoError(t, err)

	otherAlg, err := NewAuthService(AuthConfig{JWTSecret: "test-secret", JWTAlgorithm: "HS512"}).IssueToken("user-1", "", "superadmin", time.Hour)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: otherSecret},
		{name: "wrong algorithm", token: otherAlg},
		{name: "no expiry", token: noExp},
		{name: "no subject", token: noSub},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateToken(tt.token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestRequireRole(t *testing.T) {
	s := newTestAuthService()

	tests := []struct {
		name    string
		claims  *TokenClaims
		wantErr error
	}{
		{name: "exact role", claims: &TokenClaims{Subject: "u", Role: "superadmin"}},
		{name: "case insensitive", claims: &TokenClaims{Subject: "u", Role: "SUPERADMIN"}},
		{name: "other role", claims: &TokenClaims{Subject: "u", Role: "agent"}, wantErr: domain.ErrForbidden},
		{name: "missing role", claims: &TokenClaims{Subject: "u"}, wantErr: domain.ErrForbidden},
		{name: "no identity", claims: nil, wantErr: domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.RequireRole(tt.claims)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCustomRoleClaim(t *testing.T) {
	s := NewAuthService(AuthConfig{JWTSecret: "k", RoleClaim: "role", RequiredRole: "admin"})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                    "u",
		"exp":                    jwt.NewNumericDate(time.Now().Add(time.Hour)),
		"role":                   "admin",
		"custom:custom:userRole": "agent",
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.NoError(t, s.RequireRole(claims))
}

func TestServiceError(t *testing.T) {
	err := NewServiceError(503, "unavailable")
	assert.Equal(t, "remote service returned 503: unavailable", err.Error())
}
