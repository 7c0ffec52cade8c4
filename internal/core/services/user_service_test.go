package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmailAndPassword(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	args := m.Called(ctx, email, passwordHash)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) InsertUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, userID string, patch domain.UserPatch) error {
	args := m.Called(ctx, userID, patch)
	return args.Error(0)
}

// --- Mock FollowerRepository ---
type MockFollowerRepository struct {
	mock.Mock
}

func (m *MockFollowerRepository) InsertFollower(ctx context.Context, follower domain.Follower) error {
	args := m.Called(ctx, follower)
	return args.Error(0)
}

func (m *MockFollowerRepository) DeleteFollower(ctx context.Context, userID, followedUserID string) (bool, error) {
	args := m.Called(ctx, userID, followedUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowerRepository) FindFollower(ctx context.Context, userID, followedUserID string) (*domain.Follower, error) {
	args := m.Called(ctx, userID, followedUserID)
	var f *domain.Follower
	if args.Get(0) != nil {
		f = args.Get(0).(*domain.Follower)
	}
	return f, args.Error(1)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo     *MockUserRepository
	mockFollowerRepo *MockFollowerRepository
	service          portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockFollowerRepo = new(MockFollowerRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockFollowerRepo, nil)
}

// --- GetMe / GetProfile Tests ---
func (suite *UserServiceTestSuite) TestGetMe_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedUser := &domain.User{UserID: userID, Name: "Found User"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(expectedUser, nil).Once()

	user, err := suite.service.GetMe(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expectedUser, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetMe_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrUserNotFound).Once()

	user, err := suite.service.GetMe(ctx, userID)

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetProfile_RepoError() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(nil, assert.AnError).Once()

	user, err := suite.service.GetProfile(ctx, "alice")

	suite.Nil(user)
	suite.ErrorIs(err, assert.AnError)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateMe Tests ---
func (suite *UserServiceTestSuite) TestUpdateMe_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	newName := "Updated Name"
	newUsername := "updated"
	updated := &domain.User{UserID: userID, Name: newName, Username: newUsername}

	suite.mockUserRepo.On("FindUserByUsername", ctx, newUsername).Return(nil, apperrors.ErrUserNotFound).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, userID, mock.MatchedBy(func(p domain.UserPatch) bool {
		return p.Name != nil && *p.Name == newName &&
			p.Username != nil && *p.Username == newUsername &&
			p.PasswordHash == nil && p.Verify == nil &&
			time.Since(p.UpdatedAt) < time.Minute
	})).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(updated, nil).Once()

	user, err := suite.service.UpdateMe(ctx, userID, portssvc.UpdateMeInput{Name: &newName, Username: &newUsername})

	suite.Require().NoError(err)
	suite.Equal(updated, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateMe_UsernameTaken() {
	ctx := context.Background()
	userID := uuid.NewString()
	taken := "bob"

	suite.mockUserRepo.On("FindUserByUsername", ctx, taken).Return(&domain.User{UserID: "someone-else", Username: taken}, nil).Once()

	user, err := suite.service.UpdateMe(ctx, userID, portssvc.UpdateMeInput{Username: &taken})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUsernameExists)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateMe_KeepOwnUsername() {
	ctx := context.Background()
	userID := uuid.NewString()
	own := "alice"
	me := &domain.User{UserID: userID, Username: own}

	suite.mockUserRepo.On("FindUserByUsername", ctx, own).Return(me, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, userID, mock.AnythingOfType("domain.UserPatch")).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(me, nil).Once()

	_, err := suite.service.UpdateMe(ctx, userID, portssvc.UpdateMeInput{Username: &own})

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Follow / Unfollow Tests ---
func (suite *UserServiceTestSuite) TestFollow_Success() {
	ctx := context.Background()
	userID, targetID := uuid.NewString(), uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(&domain.User{UserID: targetID}, nil).Once()
	suite.mockFollowerRepo.On("InsertFollower", ctx, mock.MatchedBy(func(f domain.Follower) bool {
		return f.UserID == userID && f.FollowedUserID == targetID && !f.CreatedAt.IsZero()
	})).Return(nil).Once()

	suite.Require().NoError(suite.service.Follow(ctx, userID, targetID))
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockFollowerRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFollow_Self() {
	ctx := context.Background()
	userID := uuid.NewString()

	err := suite.service.Follow(ctx, userID, userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFollowerRepo.AssertNotCalled(suite.T(), "InsertFollower", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFollow_UnknownTarget() {
	ctx := context.Background()
	userID, targetID := uuid.NewString(), uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, targetID).Return(nil, apperrors.ErrUserNotFound).Once()

	err := suite.service.Follow(ctx, userID, targetID)

	suite.ErrorIs(err, apperrors.ErrUserNotFound)
	suite.mockFollowerRepo.AssertNotCalled(suite.T(), "InsertFollower", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUnfollow_Idempotent() {
	ctx := context.Background()
	userID, targetID := uuid.NewString(), uuid.NewString()

	suite.mockFollowerRepo.On("DeleteFollower", ctx, userID, targetID).Return(false, nil).Once()

	suite.NoError(suite.service.Unfollow(ctx, userID, targetID))
	suite.mockFollowerRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
