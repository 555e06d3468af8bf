package service

import (
	"context"
	"errors"
	"testing"

	"plume/internal/database"
	"plume/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn            func(context.Context, uint) (*models.User, error)
	getWithCredentialsFn func(context.Context, uint) (*models.User, error)
	getByUsernameFn      func(context.Context, string) (*models.User, error)
	getByEmailFn         func(context.Context, string) (*models.User, error)
	createFn             func(context.Context, *models.User) error
	updateFn             func(context.Context, *models.User) error
	sampleExcludingFn    func(context.Context, uint, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetWithCredentials(ctx context.Context, id uint) (*models.User, error) {
	return s.getWithCredentialsFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) SampleExcluding(ctx context.Context, excludeID uint, n int) ([]models.User, error) {
	return s.sampleExcludingFn(ctx, excludeID, n)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:            func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getWithCredentialsFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn:      func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:         func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:             func(_ context.Context, _ *models.User) error { return nil },
		updateFn:             func(_ context.Context, _ *models.User) error { return nil },
		sampleExcludingFn:    func(_ context.Context, _ uint, _ int) ([]models.User, error) { return nil, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context) ([]*models.Post, error)
	listByAuthorFn  func(context.Context, uint) ([]*models.Post, error)
	listByAuthorsFn func(context.Context, []uint) ([]*models.Post, error)
	listByIDsFn     func(context.Context, []uint) ([]*models.Post, error)
	addCommentFn    func(context.Context, *models.Comment) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, userID)
}
func (s *postRepoStub) ListByAuthors(ctx context.Context, userIDs []uint) ([]*models.Post, error) {
	return s.listByAuthorsFn(ctx, userIDs)
}
func (s *postRepoStub) ListByIDs(ctx context.Context, ids []uint) ([]*models.Post, error) {
	return s.listByIDsFn(ctx, ids)
}
func (s *postRepoStub) AddComment(ctx context.Context, comment *models.Comment) error {
	return s.addCommentFn(ctx, comment)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		listByAuthorFn:  func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		listByAuthorsFn: func(_ context.Context, _ []uint) ([]*models.Post, error) { return nil, nil },
		listByIDsFn:     func(_ context.Context, _ []uint) ([]*models.Post, error) { return nil, nil },
		addCommentFn:    func(_ context.Context, _ *models.Comment) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	existsFn       func(context.Context, uint, uint) (bool, error)
	createFn       func(context.Context, *models.Follow) error
	deleteFn       func(context.Context, uint, uint) error
	followingIDsFn func(context.Context, uint) ([]uint, error)
	followerIDsFn  func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) error {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}
func (s *followRepoStub) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followerIDsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		existsFn:       func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createFn:       func(_ context.Context, _ *models.Follow) error { return nil },
		deleteFn:       func(_ context.Context, _, _ uint) error { return nil },
		followingIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		followerIDsFn:  func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	existsFn       func(context.Context, uint, uint) (bool, error)
	createFn       func(context.Context, *models.Like) error
	deleteFn       func(context.Context, uint, uint) error
	likerIDsFn     func(context.Context, uint) ([]uint, error)
	likedPostIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *likeRepoStub) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	return s.existsFn(ctx, userID, postID)
}
func (s *likeRepoStub) Create(ctx context.Context, like *models.Like) error {
	return s.createFn(ctx, like)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID, postID uint) error {
	return s.deleteFn(ctx, userID, postID)
}
func (s *likeRepoStub) LikerIDs(ctx context.Context, postID uint) ([]uint, error) {
	return s.likerIDsFn(ctx, postID)
}
func (s *likeRepoStub) LikedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.likedPostIDsFn(ctx, userID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		existsFn:       func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createFn:       func(_ context.Context, _ *models.Like) error { return nil },
		deleteFn:       func(_ context.Context, _, _ uint) error { return nil },
		likerIDsFn:     func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		likedPostIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// binderStub records Bind/Release calls for media-binding assertions.
type binderStub struct {
	bindFn       func(context.Context, string) (string, error)
	bindCalls    []string
	releaseCalls []string
}

func (b *binderStub) Bind(ctx context.Context, payload string) (string, error) {
	b.bindCalls = append(b.bindCalls, payload)
	if b.bindFn != nil {
		return b.bindFn(ctx, payload)
	}
	return "https://res.example.com/img/upload/v1/bound-" + payload + ".png", nil
}

func (b *binderStub) Release(_ context.Context, resourceURL string) {
	b.releaseCalls = append(b.releaseCalls, resourceURL)
}

// newTestDB opens an isolated in-memory database with the schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	return db
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}
