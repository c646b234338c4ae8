package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"cozycomfort/internal/common"
	"cozycomfort/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type AuthServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockUserRepository
	mockCache *MockCacheService
	service   AuthService
	user      *models.User
	context   context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockUserRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewAuthService(suite.mockRepo, suite.mockCache, "test-secret", 15*time.Minute, 7*24*time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	assert.NoError(suite.T(), err)

	suite.user = &models.User{
		ID:           uuid.New(),
		Username:     "mill",
		Email:        "mill@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleManufacturer,
		CompanyName:  "The Mill",
	}
	suite.context = context.Background()

	suite.mockRepo.Test(suite.T())
	suite.mockCache.Test(suite.T())
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) expectRefreshTokenStored() {
	suite.mockCache.On("SetString", suite.context, mock.MatchedBy(func(key string) bool {
		return len(key) > len("refresh_token:") && key[:len("refresh_token:")] == "refresh_token:"
	}), suite.user.ID.String(), 7*24*time.Hour).Return(nil)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	suite.mockRepo.On("GetByUsername", suite.context, "mill").Return(suite.user, nil)
	suite.expectRefreshTokenStored()

	tokens, user, err := suite.service.Login(suite.context, "mill", "correct horse")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.user.ID, user.ID)
	assert.NotEmpty(suite.T(), tokens.AccessToken)
	assert.NotEmpty(suite.T(), tokens.RefreshToken)
	assert.Equal(suite.T(), "Bearer", tokens.TokenType)
	assert.Equal(suite.T(), int((15 * time.Minute).Seconds()), tokens.ExpiresIn)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	suite.mockRepo.On("GetByUsername", suite.context, "mill").Return(suite.user, nil)

	_, _, err := suite.service.Login(suite.context, "mill", "wrong")
	assert.ErrorIs(suite.T(), err, common.ErrUnauthenticated)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUser() {
	// Unknown usernames and wrong passwords produce the same message so
	// the response does not reveal which usernames exist.
	suite.mockRepo.On("GetByUsername", suite.context, "ghost").Return(nil, pgx.ErrNoRows)

	_, _, err := suite.service.Login(suite.context, "ghost", "whatever")
	assert.ErrorIs(suite.T(), err, common.ErrUnauthenticated)
	assert.Contains(suite.T(), err.Error(), "invalid username or password")
}

func (suite *AuthServiceTestSuite) TestLogin_MissingCredentials() {
	_, _, err := suite.service.Login(suite.context, "", "")
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *AuthServiceTestSuite) TestValidateToken_RoundTrip() {
	suite.mockRepo.On("GetByUsername", suite.context, "mill").Return(suite.user, nil)
	suite.expectRefreshTokenStored()
	suite.mockCache.On("GetString", suite.context, mock.MatchedBy(func(key string) bool {
		return len(key) > len("token_blacklist:") && key[:len("token_blacklist:")] == "token_blacklist:"
	})).Return("", errors.New("key not found"))

	tokens, _, err := suite.service.Login(suite.context, "mill", "correct horse")
	assert.NoError(suite.T(), err)

	claims, err := suite.service.ValidateToken(suite.context, tokens.AccessToken)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.user.ID.String(), claims.Subject)
	assert.Equal(suite.T(), "manufacturer", claims.Role)
	assert.Equal(suite.T(), "The Mill", claims.CompanyName)
}

func (suite *AuthServiceTestSuite) TestValidateToken_Blacklisted() {
	suite.mockRepo.On("GetByUsername", suite.context, "mill").Return(suite.user, nil)
	suite.expectRefreshTokenStored()
	suite.mockCache.On("GetString", suite.context, mock.MatchedBy(func(key string) bool {
		return len(key) > len("token_blacklist:") && key[:len("token_blacklist:")] == "token_blacklist:"
	})).Return("revoked", nil)

	tokens, _, err := suite.service.Login(suite.context, "mill", "correct horse")
	assert.NoError(suite.T(), err)

	_, err = suite.service.ValidateToken(suite.context, tokens.AccessToken)
	assert.ErrorIs(suite.T(), err, common.ErrUnauthenticated)
}

func (suite *AuthServiceTestSuite) TestValidateToken_Garbage() {
	_, err := suite.service.ValidateToken(suite.context, "not-a-jwt")
	assert.ErrorIs(suite.T(), err, common.ErrUnauthenticated)
}

func (suite *AuthServiceTestSuite) TestValidateToken_WrongSigningKey() {
	other := NewAuthService(suite.mockRepo, suite.mockCache, "different-secret", 15*time.Minute, time.Hour)

	suite.mockRepo.On("GetByUsername", suite.context, "mill").Return(suite.user, nil)
	suite.expectRefreshTokenStored()

	tokens, _, err := suite.service.Login(suite.context, "mill", "correct horse")
	assert.NoError(suite.T(), err)

	_, err = other.ValidateToken(suite.context, tokens.AccessToken)
	assert.ErrorIs(suite.T(), err, common.ErrUnauthenticated)
}

func (suite *AuthServiceTestSuite) TestRefresh_RotatesToken() {
	suite.mockRepo.On("GetByUsername", suite.context, "mill").Return(suite.user, nil)
	suite.expectRefreshTokenStored()

	tokens, _, err := suite.service.Login(suite.context, "mill", "correct horse")
	assert.NoError(suite.T(), err)

	suite.mockCache.On("GetString", suite.context, mock.MatchedBy(func(key string) bool {
		return key[:len("refresh_token:")] == "refresh_token:"
	})).Return(suite.user.ID.String(), nil)
	suite.mockRepo.On("GetByID", suite.context, suite.user.ID).Return(suite.user, nil)
	suite.mockCache.On("Delete", suite.context, mock.AnythingOfType("string")).Return(nil)

	rotated, err := suite.service.Refresh(suite.context, tokens.RefreshToken)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), tokens.RefreshToken, rotated.RefreshToken)

	// The presented token was consumed before the new one issued.
	suite.mockCache.AssertCalled(suite.T(), "Delete", suite.context, mock.AnythingOfType("string"))
}

func (suite *AuthServiceTestSuite) TestRefresh_UnknownToken() {
	suite.mockCache.On("GetString", suite.context, mock.AnythingOfType("string")).
		Return("", errors.New("key not found"))

	_, err := suite.service.Refresh(suite.context, "stale-or-forged")
	assert.ErrorIs(suite.T(), err, common.ErrUnauthenticated)
}
