package service_test

import (
	"context"
	"testing"

	"planner/internal/auth"
	"planner/internal/config"
	"planner/internal/model"
	"planner/internal/repository"
	"planner/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpiryHours: 24}
}

func registerInput() service.RegisterInput {
	return service.RegisterInput{
		Username: "dawid",
		Email:    "dawid@example.com",
		Name:     "Dawid",
		Surname:  "C",
		Password: "password123",
	}
}

func TestRegister_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	svc := service.NewAuthService(mockRepo, testConfig())

	mockRepo.On("FindByUsername", mock.Anything, "dawid").Return(nil, nil)
	mockRepo.On("FindByEmail", mock.Anything, "dawid@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	// Act
	user, err := svc.Register(context.Background(), registerInput())

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, uuid.Nil, user.ID)
	// The stored hash verifies against the plaintext, and the plaintext is
	// not stored anywhere.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("password123")))
	assert.NotEqual(t, "password123", user.HashedPassword)
	mockRepo.AssertExpectations(t)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	svc := service.NewAuthService(mockRepo, testConfig())

	mockRepo.On("FindByUsername", mock.Anything, "dawid").Return(&model.User{ID: uuid.New(), Username: "dawid"}, nil)

	// Act
	user, err := svc.Register(context.Background(), registerInput())

	// Assert: no duplicate row is created
	assert.ErrorIs(t, err, service.ErrDuplicateUser)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	svc := service.NewAuthService(mockRepo, testConfig())

	mockRepo.On("FindByUsername", mock.Anything, "dawid").Return(nil, nil)
	mockRepo.On("FindByEmail", mock.Anything, "dawid@example.com").Return(&model.User{ID: uuid.New()}, nil)

	// Act
	user, err := svc.Register(context.Background(), registerInput())

	// Assert
	assert.ErrorIs(t, err, service.ErrDuplicateUser)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_MissingFields(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	svc := service.NewAuthService(mockRepo, testConfig())

	in := registerInput()
	in.Password = ""

	// Act
	user, err := svc.Register(context.Background(), in)

	// Assert
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	svc := service.NewAuthService(mockRepo, testConfig())

	hash, _ := auth.HashPassword("password123")
	userID := uuid.New()
	mockRepo.On("FindByUsername", mock.Anything, "dawid").Return(&model.User{
		ID:             userID,
		Username:       "dawid",
		Role:           model.RoleUser,
		HashedPassword: hash,
	}, nil)

	// Act
	token, user, err := svc.Login(context.Background(), "dawid", "password123")

	// Assert: the token is bound to the user id and role
	assert.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	claims, err := auth.ParseToken("test-secret", token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	svc := service.NewAuthService(mockRepo, testConfig())

	hash, _ := auth.HashPassword("password123")
	mockRepo.On("FindByUsername", mock.Anything, "dawid").Return(&model.User{
		ID:             uuid.New(),
		Username:       "dawid",
		HashedPassword: hash,
	}, nil)

	// Act
	token, user, err := svc.Login(context.Background(), "dawid", "wrong-password")

	// Assert: no session is issued
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestLogin_UnknownUser(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	svc := service.NewAuthService(mockRepo, testConfig())

	mockRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, nil)

	// Act
	token, _, err := svc.Login(context.Background(), "nobody", "password123")

	// Assert
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestCurrentUser_Unknown(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	svc := service.NewAuthService(mockRepo, testConfig())

	userID := uuid.New()
	mockRepo.On("GetByID", mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	// Act
	user, err := svc.CurrentUser(context.Background(), userID)

	// Assert
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
	assert.Nil(t, user)
}

func TestSeedAdmin_CreatesAdminOnce(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	svc := service.NewAuthService(mockRepo, testConfig())

	mockRepo.On("FindByUsername", mock.Anything, "admin").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "admin" && u.Role == model.RoleAdmin
	})).Return(nil)

	// Act
	err := svc.SeedAdmin(context.Background(), "admin", "admin123", "admin@localhost")

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestSeedAdmin_SkipsExisting(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	svc := service.NewAuthService(mockRepo, testConfig())

	mockRepo.On("FindByUsername", mock.Anything, "admin").Return(&model.User{ID: uuid.New(), Username: "admin"}, nil)

	// Act
	err := svc.SeedAdmin(context.Background(), "admin", "admin123", "admin@localhost")

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeedAdmin_NoPasswordConfigured(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	svc := service.NewAuthService(mockRepo, testConfig())

	// Act
	err := svc.SeedAdmin(context.Background(), "admin", "", "admin@localhost")

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}
