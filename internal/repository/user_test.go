package repository

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

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	return db
}

func mustCreateUser(t *testing.T, repo UserRepository, username, email string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: email, Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	t.Parallel()
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	mustCreateUser(t, repo, "alice", "alice@example.com")

	err := repo.Create(ctx, &models.User{Username: "alice", Email: "other@example.com", Password: "hash"})
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Contains(t, appErr.Message, "username")
}

func TestUserRepository_UpdateDuplicateEmail(t *testing.T) {
	t.Parallel()
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	mustCreateUser(t, repo, "alice", "alice@example.com")
	bob := mustCreateUser(t, repo, "bob", "bob@example.com")

	bob.Email = "alice@example.com"
	err := repo.Update(ctx, bob)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Contains(t, appErr.Message, "email")
}

func TestUserRepository_GetByUsernameMissing(t *testing.T) {
	t.Parallel()
	repo := NewUserRepository(newTestDB(t))

	// Missing rows are nil, nil so callers can decide the error shape.
	user, err := repo.GetByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_GetByIDMissing(t *testing.T) {
	t.Parallel()
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), 999)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_GetWithCredentials(t *testing.T) {
	t.Parallel()
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	alice := mustCreateUser(t, repo, "alice", "alice@example.com")

	user, err := repo.GetWithCredentials(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", user.Password)
}

func TestUserRepository_SampleExcluding(t *testing.T) {
	t.Parallel()
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	excluded := mustCreateUser(t, repo, "excluded", "excluded@example.com")
	mustCreateUser(t, repo, "u1", "u1@example.com")
	mustCreateUser(t, repo, "u2", "u2@example.com")
	mustCreateUser(t, repo, "u3", "u3@example.com")

	sample, err := repo.SampleExcluding(ctx, excluded.ID, 2)
	require.NoError(t, err)
	assert.Len(t, sample, 2)
	for _, u := range sample {
		assert.NotEqual(t, excluded.ID, u.ID)
	}
}
