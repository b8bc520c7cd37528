package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewAuthService(repository.NewUserRepository(db))
}

func TestRegister(t *testing.T) {
	svc := setupAuthService(t)

	user, err := svc.Register(RegisterInput{
		Email:    "Alice@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	// Email is normalized, role defaults to student, hash never echoes the password
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, models.RoleStudent, user.Role)
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.Equal(t, "alice", user.Name)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(RegisterInput{
		Email:    "alice@example.com",
		Password: "abc",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(RegisterInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Email: "alice@example.com", Password: "secret2"})
	require.ErrorIs(t, err, ErrEmailTaken)

	// Case-normalized duplicates are rejected too
	_, err = svc.Register(RegisterInput{Email: "ALICE@example.com", Password: "secret3"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := setupAuthService(t)

	registered, err := svc.Register(RegisterInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	user, err := svc.Login(LoginInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(RegisterInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(LoginInput{Email: "alice@example.com", Password: "nope"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Login(LoginInput{Email: "ghost@example.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
