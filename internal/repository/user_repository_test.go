package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-portal/internal/domain"
)

var userColumnNames = []string{"id", "role", "name", "username", "email", "password_hash", "created_at"}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	username, hash := "registrar", "$2a$10$hash"
	created := time.Now()

	user := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin, Name: "Registrar", Username: &username, Email: "r@example.edu", PasswordHash: &hash}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(user.ID, user.Role, user.Name, username, user.Email, hash).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, created, user.CreatedAt)
}

func TestUserRepository_GetByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	a, b := uuid.New(), uuid.New()

	users, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = ANY($1::uuid[])`)).
		WithArgs("{" + `"` + a.String() + `","` + b.String() + `"` + "}").
		WillReturnRows(sqlmock.NewRows(userColumnNames).
			AddRow(a.String(), "guide", "Dr. Rao", nil, "rao@example.edu", nil, time.Now()))

	users, err = repo.GetByIDs(context.Background(), []uuid.UUID{a, b})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleGuide, users[0].Role)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(email) = LOWER($1)`)).
		WithArgs("Office@Example.edu").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "Office@Example.edu")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_ListByRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE role = $1`)).
		WithArgs(domain.RoleAdmin).
		WillReturnRows(sqlmock.NewRows(userColumnNames).
			AddRow(uuid.NewString(), "admin", "Office", "office", "office@example.edu", "hash", time.Now()))

	users, err := repo.ListByRole(context.Background(), domain.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.NotNil(t, users[0].Username)
	assert.Equal(t, "office", *users[0].Username)
}

func TestUserRepository_CreateUniqueViolation(t *testing.T) {
	cases := []struct {
		constraint string
		want       error
	}{
		{"idx_users_email_lower", domain.ErrEmailExists},
		{"users_username_key", domain.ErrUsernameExists},
	}

	for _, tc := range cases {
		t.Run(tc.constraint, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db)

			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
				WillReturnError(&pq.Error{Code: "23505", Constraint: tc.constraint})

			err := repo.Create(context.Background(), &domain.User{ID: uuid.New(), Role: domain.RoleAdmin, Email: "r@example.edu"})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUserRepository_CreateOtherErrorPassesThrough(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	fk := &pq.Error{Code: "23503"}
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).WillReturnError(fk)

	err := repo.Create(context.Background(), &domain.User{ID: uuid.New()})
	assert.ErrorIs(t, err, fk)
}
