package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/feature/auth/domain/entity"
	"storefront/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entity.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestNewUserRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		user := &entity.User{Name: "Ada", Email: "test@example.com", Password: "hashed_password"}
		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate email error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		require.NoError(t, repo.Create(context.Background(), &entity.User{Email: "duplicate@example.com", Password: "p1"}))
		err := repo.Create(context.Background(), &entity.User{Email: "duplicate@example.com", Password: "p2"})

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
		var count int64
		require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("nil user error", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		assert.Error(t, repo.Create(context.Background(), nil))
	})
}

func TestUserGorm_Find(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	users := []*entity.User{
		{Name: "One", Email: "user1@example.com", Password: "pass1"},
		{Name: "Two", Email: "user2@example.com", Password: "pass2"},
	}
	for _, u := range users {
		require.NoError(t, repo.Create(ctx, u), "failed to create test data")
	}

	t.Run("by email", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "user2@example.com")

		require.NoError(t, err)
		assert.Equal(t, users[1].ID, found.ID)
		assert.Equal(t, "Two", found.Name)
		assert.Equal(t, "pass2", found.Password)
	})

	t.Run("by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, users[0].ID)

		require.NoError(t, err)
		assert.Equal(t, "user1@example.com", found.Email)
	})

	t.Run("email not found", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "notfound@example.com")

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
		assert.Nil(t, found)
	})

	t.Run("id not found", func(t *testing.T) {
		found, err := repo.FindByID(ctx, 999)

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
		assert.Nil(t, found)
	})
}

func TestUserGorm_Update(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	a := &entity.User{Name: "A", Email: "a@example.com", Password: "x"}
	b := &entity.User{Name: "B", Email: "b@example.com", Password: "y"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	t.Run("renames and changes email", func(t *testing.T) {
		a.Name, a.Email = "Alice", "alice@example.com"
		require.NoError(t, repo.Update(ctx, a))

		found, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", found.Name)
		assert.Equal(t, "alice@example.com", found.Email)
		assert.Equal(t, "x", found.Password, "password untouched")
	})

	t.Run("email taken by another user", func(t *testing.T) {
		err := repo.Update(ctx, &entity.User{ID: b.ID, Name: "B", Email: "alice@example.com"})

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})
}
