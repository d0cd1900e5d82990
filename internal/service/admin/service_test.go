package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"internship-portal/internal/domain"
	"internship-portal/internal/mocks"
)

func newTestService(users *mocks.UserRepository, mailer *mocks.Mailer, roles *mocks.RoleDirectory) *service {
	svc := NewService(users, mailer, roles, zap.NewNop()).(*service)
	svc.async = func(fn func()) { fn() }
	return svc
}

func TestAdminService_Create(t *testing.T) {
	ctx := context.Background()
	input := domain.CreateAdminInput{Name: "Priya Nair", Username: "priya", Email: " Priya@Example.com "}

	t.Run("Success", func(t *testing.T) {
		users := new(mocks.UserRepository)
		mailer := new(mocks.Mailer)
		roles := new(mocks.RoleDirectory)
		svc := newTestService(users, mailer, roles)

		var password string
		users.On("ExistsByEmail", ctx, "priya@example.com").Return(false, nil).Once()
		users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleAdmin && u.Email == "priya@example.com" && u.PasswordHash != nil
		})).Return(nil).Once()
		roles.On("Invalidate", ctx, domain.RoleAdmin).Return().Once()
		mailer.On("SendAdminCredentials", mock.Anything, "priya@example.com", "Priya Nair", "priya", mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { password = args.String(4) }).
			Return(nil).Once()

		user, err := svc.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "priya", *user.Username)

		require.Len(t, password, passwordLength)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)))

		users.AssertExpectations(t)
		roles.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := newTestService(users, new(mocks.Mailer), new(mocks.RoleDirectory))
		users.On("ExistsByEmail", ctx, "priya@example.com").Return(true, nil).Once()

		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, domain.ErrEmailExists)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MailFailureDoesNotFail", func(t *testing.T) {
		users := new(mocks.UserRepository)
		mailer := new(mocks.Mailer)
		roles := new(mocks.RoleDirectory)
		svc := newTestService(users, mailer, roles)

		users.On("ExistsByEmail", ctx, mock.Anything).Return(false, nil).Once()
		users.On("Create", ctx, mock.Anything).Return(nil).Once()
		roles.On("Invalidate", ctx, domain.RoleAdmin).Return().Once()
		mailer.On("SendAdminCredentials", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("quota")).Once()

		_, err := svc.Create(ctx, input)
		assert.NoError(t, err)
	})
}

func TestAdminService_List(t *testing.T) {
	users := new(mocks.UserRepository)
	svc := newTestService(users, new(mocks.Mailer), new(mocks.RoleDirectory))
	users.On("ListByRole", mock.Anything, domain.RoleAdmin).Return(nil, nil).Once()

	admins, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, admins)
	assert.Empty(t, admins)
}

func TestGeneratePassword(t *testing.T) {
	a, err := generatePassword(passwordLength)
	require.NoError(t, err)
	b, err := generatePassword(passwordLength)
	require.NoError(t, err)

	assert.Len(t, a, passwordLength)
	assert.NotEqual(t, a, b)
	for _, ch := range a {
		assert.Contains(t, passwordAlphabet, string(ch))
	}
}
