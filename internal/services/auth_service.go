package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"cozycomfort/internal/caching"
	"cozycomfort/internal/common"
	"cozycomfort/internal/models"
	"cozycomfort/internal/repositories"
)

// TokenClaims carries caller identity for the role gate: who, which tier,
// and the display name shown on dashboards.
type TokenClaims struct {
	Role        string `json:"role"`
	CompanyName string `json:"company_name"`
	TokenID     string `json:"token_id"`
	jwt.RegisteredClaims
}

// AuthService authenticates callers and manages token lifetimes. Refresh
// tokens are stored hashed in the cache with a TTL; access tokens can be
// blacklisted until their natural expiry on logout.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.TokenResponse, *models.User, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	// ValidateToken parses and verifies an access token, rejecting
	// blacklisted ones.
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
}

type authService struct {
	userRepo   repositories.UserRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   time.Duration
	refreshTTL time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.TokenResponse, *models.User, error) {
	if username == "" || password == "" {
		return nil, nil, fmt.Errorf("username and password are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, fmt.Errorf("invalid username or password: %w", common.ErrUnauthenticated)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("invalid username or password: %w", common.ErrUnauthenticated)
	}

	tokens, err := s.generateTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	hash := hashToken(refreshToken)
	userIDStr, err := s.cacheSvc.GetString(ctx, refreshKey(hash))
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", common.ErrUnauthenticated)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", common.ErrUnauthenticated)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", common.ErrUnauthenticated)
	}

	// Rotation: the presented token is consumed before new ones issue.
	if err := s.cacheSvc.Delete(ctx, refreshKey(hash)); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	return s.generateTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if refreshToken != "" {
		if err := s.cacheSvc.Delete(ctx, refreshKey(hashToken(refreshToken))); err != nil {
			return fmt.Errorf("revoke refresh token: %w", err)
		}
	}

	claims, err := s.ValidateToken(ctx, accessToken)
	if err != nil {
		// An already-invalid access token needs no blacklisting.
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.cacheSvc.SetString(ctx, blacklistKey(claims.TokenID), "revoked", ttl)
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid token: %w", common.ErrUnauthenticated)
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims: %w", common.ErrUnauthenticated)
	}

	if _, err := s.cacheSvc.GetString(ctx, blacklistKey(claims.TokenID)); err == nil {
		return nil, fmt.Errorf("token revoked: %w", common.ErrUnauthenticated)
	}
	return claims, nil
}

func (s *authService) generateTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := TokenClaims{
		Role:        user.Role.String(),
		CompanyName: user.CompanyName,
		TokenID:     tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "cozycomfort-auth",
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := generateSecureToken()
	if err := s.cacheSvc.SetString(ctx, refreshKey(hashToken(refreshToken)), user.ID.String(), s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokenTTL.Seconds()),
		RefreshToken: refreshToken,
		IssuedAt:     now,
	}, nil
}

func generateSecureToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func refreshKey(hash string) string { return "refresh_token:" + hash }

func blacklistKey(id string) string { return "token_blacklist:" + id }
