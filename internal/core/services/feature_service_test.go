package services_test

import (
	"context"
	"testing"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockFeatureRepository is a mock type for the FeatureRepositoryFacade interface
type MockFeatureRepository struct {
	mock.Mock
}

func (m *MockFeatureRepository) SaveFeature(ctx context.Context, feature domain.Feature) error {
	args := m.Called(ctx, feature)
	return args.Error(0)
}

func (m *MockFeatureRepository) FindFeatureByID(ctx context.Context, featureID string) (*domain.Feature, error) {
	args := m.Called(ctx, featureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feature), args.Error(1)
}

func (m *MockFeatureRepository) ListFeatures(ctx context.Context, category domain.FeatureCategory) ([]domain.Feature, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feature), args.Error(1)
}

func (m *MockFeatureRepository) AddVote(ctx context.Context, featureID, userID string) (*domain.Feature, error) {
	args := m.Called(ctx, featureID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feature), args.Error(1)
}

func (m *MockFeatureRepository) RemoveVote(ctx context.Context, featureID, userID string) (*domain.Feature, error) {
	args := m.Called(ctx, featureID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feature), args.Error(1)
}

// --- Test Suite Setup ---

type FeatureServiceTestSuite struct {
	suite.Suite
	mockRepo *MockFeatureRepository
	service  portssvc.FeatureSvcFacade
	userID   string
}

func (suite *FeatureServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFeatureRepository)
	suite.service = services.NewFeatureService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *FeatureServiceTestSuite) TestCreateFeature_Defaults() {
	ctx := context.Background()
	req := dto.CreateFeatureRequest{Title: "CSV export", Description: "Export trades as CSV."}

	suite.mockRepo.On("SaveFeature", ctx, mock.MatchedBy(func(f domain.Feature) bool {
		return f.Category == domain.FeatureCategoryFeature &&
			f.Status == domain.FeatureStatusPending &&
			f.Votes == 0 && len(f.VoterIDs) == 0 &&
			f.CreatedBy == suite.userID
	})).Return(nil).Once()

	feature, err := suite.service.CreateFeature(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(feature.FeatureID)
	suite.Equal(domain.FeatureStatusPending, feature.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FeatureServiceTestSuite) TestVoteFeature_Duplicate() {
	ctx := context.Background()
	featureID := uuid.NewString()

	suite.mockRepo.On("AddVote", ctx, featureID, suite.userID).Return(nil, apperrors.ErrDuplicate).Once()

	feature, err := suite.service.VoteFeature(ctx, suite.userID, featureID)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(feature)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FeatureServiceTestSuite) TestUnvoteFeature_NotVoted() {
	ctx := context.Background()
	featureID := uuid.NewString()

	suite.mockRepo.On("RemoveVote", ctx, featureID, suite.userID).Return(nil, apperrors.ErrInvalidState).Once()

	feature, err := suite.service.UnvoteFeature(ctx, suite.userID, featureID)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.Nil(feature)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FeatureServiceTestSuite) TestVoteFeature_ReturnsUpdatedTally() {
	ctx := context.Background()
	feature := &domain.Feature{
		FeatureID: uuid.NewString(),
		Title:     "Dark mode",
		Votes:     3,
		VoterIDs:  []string{uuid.NewString(), uuid.NewString(), suite.userID},
	}

	suite.mockRepo.On("AddVote", ctx, feature.FeatureID, suite.userID).Return(feature, nil).Once()

	got, err := suite.service.VoteFeature(ctx, suite.userID, feature.FeatureID)

	suite.Require().NoError(err)
	suite.Equal(3, got.Votes)
	suite.True(got.HasVoted(suite.userID))
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestFeatureServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeatureServiceTestSuite))
}
