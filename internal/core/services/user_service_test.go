package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/cryptojournal/cryptojournal_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockAccountRepo *MockAccountRepository
	mockTradeRepo   *MockTradeRepository
	mockJournalRepo *MockJournalRepository
	mockTagRepo     *MockTagRepository
	service         portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTradeRepo = new(MockTradeRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockTagRepo = new(MockTagRepository)
	suite.service = services.NewUserService(
		suite.mockUserRepo,
		suite.mockAccountRepo,
		suite.mockTradeRepo,
		suite.mockJournalRepo,
		suite.mockTagRepo,
	)
}

func (suite *UserServiceTestSuite) existingUser(email, password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	now := time.Now()
	return &domain.User{
		UserID:       uuid.NewString(),
		Name:         "Trader",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.UserRoleUser,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestRegister_NormalizesEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:     "Trader",
		Email:    "  Trader@Example.COM ",
		Password: "a-long-password",
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "trader@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "trader@example.com" && u.Role == domain.UserRoleUser && u.PasswordHash != ""
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("trader@example.com", user.Email)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	existing := suite.existingUser("trader@example.com", "a-long-password")

	suite.mockUserRepo.On("FindUserByEmail", ctx, "trader@example.com").Return(existing, nil).Once()

	user, err := suite.service.Register(ctx, dto.RegisterRequest{
		Name:     "Trader",
		Email:    "trader@example.com",
		Password: "a-long-password",
	})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	existing := suite.existingUser("trader@example.com", "a-long-password")

	suite.mockUserRepo.On("FindUserByEmail", ctx, "trader@example.com").Return(existing, nil).Once()

	user, err := suite.service.Authenticate(ctx, "Trader@Example.com", "a-long-password")

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	existing := suite.existingUser("trader@example.com", "a-long-password")

	suite.mockUserRepo.On("FindUserByEmail", ctx, "trader@example.com").Return(existing, nil).Once()

	user, err := suite.service.Authenticate(ctx, "trader@example.com", "wrong-password")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.Authenticate(ctx, "nobody@example.com", "whatever-password")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestAuthenticate_GoogleOnlyAccount() {
	ctx := context.Background()
	existing := suite.existingUser("trader@example.com", "a-long-password")
	existing.PasswordHash = ""
	existing.GoogleID = "google-subject-id"

	suite.mockUserRepo.On("FindUserByEmail", ctx, "trader@example.com").Return(existing, nil).Once()

	user, err := suite.service.Authenticate(ctx, "trader@example.com", "a-long-password")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_LinksByEmail() {
	ctx := context.Background()
	existing := suite.existingUser("trader@example.com", "a-long-password")
	info := &domain.GoogleUserInfo{
		ID:    "google-subject-id",
		Email: "Trader@Example.com",
		Name:  "Trader",
	}

	suite.mockUserRepo.On("FindUserByGoogleID", ctx, info.ID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "trader@example.com").Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == existing.UserID && u.GoogleID == info.ID
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.Equal(info.ID, user.GoogleID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesNewUser() {
	ctx := context.Background()
	info := &domain.GoogleUserInfo{
		ID:    "google-subject-id",
		Email: "new@example.com",
		Name:  "New Trader",
	}

	suite.mockUserRepo.On("FindUserByGoogleID", ctx, info.ID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "new@example.com" && u.GoogleID == info.ID && u.PasswordHash == ""
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(info.ID, user.GoogleID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUserData_CascadeOrder() {
	ctx := context.Background()
	existing := suite.existingUser("trader@example.com", "a-long-password")
	userID := existing.UserID

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()
	suite.mockTradeRepo.On("DeleteTradesByUser", ctx, userID).Return(nil).Once()
	suite.mockJournalRepo.On("DeleteEntriesByUser", ctx, userID).Return(int64(2), nil).Once()
	suite.mockTagRepo.On("DeleteTagsByUser", ctx, userID).Return(nil).Once()
	suite.mockAccountRepo.On("DeleteAccountsByUser", ctx, userID).Return(nil).Once()
	suite.mockUserRepo.On("DeleteUser", ctx, userID).Return(nil).Once()

	err := suite.service.DeleteUserData(ctx, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockTradeRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockTagRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
