package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abcall/clients/internal/core/domain"
)

const (
	DefaultRoleClaim    = "custom:custom:userRole"
	DefaultRequiredRole = "superadmin"
	TokenIssuer         = "abcall-clients"
)

// AuthConfig configures token validation.
type AuthConfig struct {
	JWTSecret    string
	JWTAlgorithm string
	// RoleClaim is the claim holding the caller's role.
	RoleClaim string
	// RequiredRole is the role privileged routes demand, compared case-insensitively.
	RequiredRole string
}

type AuthService struct {
	jwtSecret    string
	jwtAlgorithm string
	roleClaim    string
	requiredRole string
}

func NewAuthService(cfg AuthConfig) *AuthService {
	if cfg.RoleClaim == "" {
		cfg.RoleClaim = DefaultRoleClaim
	}
	if cfg.RequiredRole == "" {
		cfg.RequiredRole = DefaultRequiredRole
	}
	return &AuthService{
		jwtSecret:    cfg.JWTSecret,
		jwtAlgorithm: strings.ToUpper(cfg.JWTAlgorithm),
		roleClaim:    cfg.RoleClaim,
		requiredRole: cfg.RequiredRole,
	}
}

// TokenClaims is the caller identity extracted from a bearer token.
type TokenClaims struct {
	Subject string
	Email   string
	// Role is empty when the token carries no role claim.
	Role string
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	},
		jwt.WithValidMethods([]string{s.signingMethod().Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrUnauthorized)
	}

	result := &TokenClaims{Subject: subject}
	if email, ok := claims["email"].(string); ok {
		result.Email = email
	}
	if role, ok := claims[s.roleClaim]; ok && role != nil {
		result.Role = fmt.Sprint(role)
	}
	return result, nil
}

// RequireRole checks that the caller holds the privileged role.
func (s *AuthService) RequireRole(claims *TokenClaims) error {
	if claims == nil {
		return fmt.Errorf("%w: no caller identity", domain.ErrUnauthorized)
	}
	if claims.Role == "" {
		return fmt.Errorf("%w: missing role claim %q", domain.ErrForbidden, s.roleClaim)
	}
	if !strings.EqualFold(claims.Role, s.requiredRole) {
		return fmt.Errorf("%w: only %q role is allowed", domain.ErrForbidden, s.requiredRole)
	}
	return nil
}

// IssueToken signs a token for subject carrying role. It stands in for the
// identity provider during local development and tests.
func (s *AuthService) IssueToken(subject, email, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iss": TokenIssuer,
		"iat": jwt.NewNumericDate(now),
		"nbf": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(ttl)),
	}
	if email != "" {
		claims["email"] = email
	}
	if role != "" {
		claims[s.roleClaim] = role
	}

	token := jwt.NewWithClaims(s.signingMethod(), claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *AuthService) signingMethod() jwt.SigningMethod {
	switch s.jwtAlgorithm {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}
