package usecase_test

import (
	"context"
	"testing"
	"time"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
	"bookstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Auth向けの小さなフェイク
// =====================

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type fakeVerifier struct{}

func (fakeVerifier) Verify(plain string, hashed string) bool {
	return hashed == "hashed:"+plain
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return "token", now.Add(15 * time.Minute), nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newAuthUsecase(users repo.UserRepository) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(
		users,
		fakeHasher{},
		fakeVerifier{},
		fakeIssuer{},
		fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	)
}

func TestAuthUsecase_Register_PasswordTooShort(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAuthUsecase(users)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Username: "john", Email: "john@example.com", Password: "short",
	})
	assertErrContains(t, err, "password too short")
}

func TestAuthUsecase_Register_DuplicateUsername(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	users.On("FindByUsername", mock.Anything, "john").Return(&model.User{ID: 1, Username: "john"}, nil)

	uc := newAuthUsecase(users)

	_, err := uc.Register(ctx, usecase.RegisterInput{
		Username: "john", Email: "john@example.com", Password: "password123",
	})
	assertErrContains(t, err, "username already exists")

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	users.On("FindByUsername", mock.Anything, "john").Return(nil, repo.ErrUserNotFound)
	users.On("FindByEmail", mock.Anything, "john@example.com").Return(&model.User{ID: 2}, nil)

	uc := newAuthUsecase(users)

	_, err := uc.Register(ctx, usecase.RegisterInput{
		Username: "john", Email: "john@example.com", Password: "password123",
	})
	assertErrContains(t, err, "email already exists")
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	users.On("FindByUsername", mock.Anything, "john").Return(nil, repo.ErrUserNotFound)
	users.On("FindByEmail", mock.Anything, "john@example.com").Return(nil, repo.ErrUserNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "john" &&
			u.Email == "john@example.com" &&
			u.PasswordHash == "hashed:password123" &&
			u.Role == model.RoleUser
	})).Return(nil)

	uc := newAuthUsecase(users)

	out, err := uc.Register(ctx, usecase.RegisterInput{
		Username: "john", Email: "john@example.com", Password: "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, "john", out.Username)
	assert.Equal(t, "USER", out.Role)

	users.AssertExpectations(t)
}

func TestAuthUsecase_Login_UnknownUser(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, repo.ErrUserNotFound)

	uc := newAuthUsecase(users)

	_, err := uc.Login(ctx, usecase.LoginInput{Username: "ghost", Password: "whatever"})
	assertErrContains(t, err, "invalid credentials")
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	users.On("FindByUsername", mock.Anything, "john").Return(&model.User{
		ID: 1, Username: "john", PasswordHash: "hashed:password123",
	}, nil)

	uc := newAuthUsecase(users)

	_, err := uc.Login(ctx, usecase.LoginInput{Username: "john", Password: "wrong"})
	assertErrContains(t, err, "invalid credentials")
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	users.On("FindByUsername", mock.Anything, "john").Return(&model.User{
		ID: 1, Username: "john", Role: model.RoleUser, PasswordHash: "hashed:password123",
	}, nil)

	uc := newAuthUsecase(users)

	out, err := uc.Login(ctx, usecase.LoginInput{Username: "john", Password: "password123"})
	assert.NoError(t, err)
	assert.Equal(t, "token", out.AccessToken)
	assert.Equal(t, int64(1), out.User.ID)
}

func TestAuthUsecase_GetProfile_NeverExposesHash(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{
		ID: 1, Username: "john", Email: "john@example.com",
		Role: model.RoleUser, PasswordHash: "hashed:secret",
	}, nil)

	uc := newAuthUsecase(users)

	out, err := uc.GetProfile(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "john", out.Username)
	//UserOutputにハッシュのフィールド自体が無いことの確認を兼ねる
	assert.NotContains(t, out.Email, "hashed:")
}
