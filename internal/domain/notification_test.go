package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNotificationInput_Validate(t *testing.T) {
	base := func() CreateNotificationInput {
		return CreateNotificationInput{
			Recipients: []RecipientRef{{ID: uuid.New(), Model: RoleStudent}},
			Title:      "Marks Updated",
			Message:    "You received 7/10.",
		}
	}

	in := base()
	require.NoError(t, in.Validate())
	assert.Equal(t, PriorityMedium, in.Priority)

	in = base()
	in.Recipients = nil
	assert.True(t, IsValidationError(in.Validate()))

	in = base()
	in.Title = " "
	assert.True(t, IsValidationError(in.Validate()))

	in = base()
	in.Priority = "urgent"
	assert.True(t, IsValidationError(in.Validate()))
}

func TestNotification_RecipientFor(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	n := Notification{Recipients: []Recipient{
		{ID: a, Model: RoleAdmin},
		{ID: b, Model: RoleAdmin, IsRead: true},
	}}

	require.NotNil(t, n.RecipientFor(b, RoleAdmin))
	assert.True(t, n.RecipientFor(b, RoleAdmin).IsRead)
	assert.False(t, n.RecipientFor(a, RoleAdmin).IsRead)
	assert.Nil(t, n.RecipientFor(a, RoleGuide))
}

func TestUUIDList_ScanValue(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	list := UUIDList{a, b}

	v, err := list.Value()
	require.NoError(t, err)

	var out UUIDList
	require.NoError(t, out.Scan([]byte(v.(string))))
	assert.Equal(t, list, out)

	var empty UUIDList
	require.NoError(t, empty.Scan([]byte("{}")))
	assert.Empty(t, empty)

	var bad UUIDList
	assert.Error(t, bad.Scan([]byte(`{"not-a-uuid"}`)))
}

func TestErrors(t *testing.T) {
	assert.True(t, errors.Is(ErrReportNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrNotificationNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrReportNotAssigned, ErrNotFound))

	ve := &ValidationError{Message: "Validation failed", Fields: map[string]string{"reportWeek": "min", "projectTitle": "required"}}
	assert.Equal(t, "Validation failed (projectTitle: required, reportWeek: min)", ve.Error())
}

func TestPagination(t *testing.T) {
	assert.NoError(t, DefaultPagination().Validate())
	assert.Error(t, PaginationParams{Page: 0, PageSize: 10}.Validate())
	assert.Error(t, PaginationParams{Page: 1, PageSize: 0}.Validate())
	assert.Equal(t, 20, PaginationParams{Page: 3, PageSize: 10}.Offset())

	res := NewPaginatedResponse[int](nil, 2, 10, 21)
	assert.Equal(t, 3, res.TotalPages)
	assert.NotNil(t, res.Data)

	p := PaginationParams{Page: 1, PageSize: 500}
	p.Clamp(100)
	assert.Equal(t, 100, p.PageSize)
}
