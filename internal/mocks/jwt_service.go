package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	// Function fields for customizable behavior
	GenerateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Lifetime is returned by AccessTokenLifetime; defaults to an hour.
	Lifetime time.Duration
}

// NewMockJWTService creates a mock token service whose default behavior
// issues "token-<uuid>" strings and accepts any token of that shape.
func NewMockJWTService() *MockJWTService {
	return &MockJWTService{Lifetime: time.Hour}
}

// Ensure MockJWTService implements auth.JWTService
var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return "token-" + userID.String(), nil
}

// ValidateToken implements the JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return claimsFromMockToken(tokenString, "token-", "access")
}

// GenerateRefreshToken implements the JWTService interface
func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	return "refresh-" + userID.String(), nil
}

// ValidateRefreshToken implements the JWTService interface
func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return claimsFromMockToken(tokenString, "refresh-", "refresh")
}

// AccessTokenLifetime implements the JWTService interface
func (m *MockJWTService) AccessTokenLifetime() time.Duration {
	if m.Lifetime != 0 {
		return m.Lifetime
	}
	return time.Hour
}

// claimsFromMockToken parses the "<prefix><uuid>" mock token format.
func claimsFromMockToken(token, prefix, tokenType string) (*auth.Claims, error) {
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		if tokenType == "refresh" {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, auth.ErrInvalidToken
	}

	userID, err := uuid.Parse(token[len(prefix):])
	if err != nil {
		if tokenType == "refresh" {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, auth.ErrInvalidToken
	}

	now := time.Now().UTC()
	return &auth.Claims{
		UserID:    userID,
		TokenType: tokenType,
		Subject:   userID.String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
		ID:        uuid.New().String(),
	}, nil
}
