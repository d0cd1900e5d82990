package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"internship-portal/internal/domain"
)

func TestNotificationHandler_ListWithFilters(t *testing.T) {
	ta := newTestApp(t)
	guide := newIdentity(domain.RoleGuide, "Dr. Rao")
	recipient := domain.RecipientRef{ID: guide.ID, Model: domain.RoleGuide}

	high := domain.PriorityHigh
	feedback := domain.NotificationType("GUIDE_REPORT_FEEDBACK")
	filter := domain.NotificationFilter{Type: &feedback, Priority: &high, UnreadOnly: true}

	ta.notifs.On("List", mock.Anything, recipient, filter, domain.PaginationParams{Page: 2, PageSize: 5}).
		Return(domain.NewPaginatedResponse([]domain.Notification{{ID: uuid.New(), Title: "Report approved"}}, 2, 5, 6), nil).Once()

	status, body := ta.do(t, httptest.NewRequest(http.MethodGet,
		"/api/notifications?page=2&limit=5&type=GUIDE_REPORT_FEEDBACK&priority=high&unreadOnly=true", nil), guide)

	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 6, *body.Total)
	assert.Equal(t, 2, *body.Pages)

	var items []domain.Notification
	require.NoError(t, json.Unmarshal(body.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Report approved", items[0].Title)
	ta.notifs.AssertExpectations(t)
}

func TestNotificationHandler_ListRejectsUnknownPriority(t *testing.T) {
	ta := newTestApp(t)
	student := newIdentity(domain.RoleStudent, "Asha Verma")

	status, _ := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/notifications?priority=urgent", nil), student)

	require.Equal(t, http.StatusBadRequest, status)
}

func TestNotificationHandler_UnreadCount(t *testing.T) {
	ta := newTestApp(t)
	admin := newIdentity(domain.RoleAdmin, "Office")

	ta.notifs.On("UnreadCount", mock.Anything, domain.RecipientRef{ID: admin.ID, Model: domain.RoleAdmin}).Return(int64(4), nil).Once()

	status, body := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/notifications/unread-count", nil), admin)

	require.Equal(t, http.StatusOK, status)
	var data struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.EqualValues(t, 4, data.Count)
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	ta := newTestApp(t)
	student := newIdentity(domain.RoleStudent, "Asha Verma")
	recipient := domain.RecipientRef{ID: student.ID, Model: domain.RoleStudent}
	mine, other := uuid.New(), uuid.New()

	ta.notifs.On("MarkRead", mock.Anything, mine, recipient).Return(nil).Once()
	ta.notifs.On("MarkRead", mock.Anything, other, recipient).Return(domain.ErrNotificationNotFound).Once()

	status, _ := ta.do(t, httptest.NewRequest(http.MethodPut, "/api/notifications/"+mine.String()+"/mark-read", nil), student)
	assert.Equal(t, http.StatusOK, status)

	status, body := ta.do(t, httptest.NewRequest(http.MethodPut, "/api/notifications/"+other.String()+"/mark-read", nil), student)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Notification not found", body.Message)

	status, _ = ta.do(t, httptest.NewRequest(http.MethodPut, "/api/notifications/nope/mark-read", nil), student)
	assert.Equal(t, http.StatusBadRequest, status)

	ta.notifs.AssertExpectations(t)
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	ta := newTestApp(t)
	guide := newIdentity(domain.RoleGuide, "Dr. Rao")

	ta.notifs.On("MarkAllRead", mock.Anything, domain.RecipientRef{ID: guide.ID, Model: domain.RoleGuide}).Return(int64(3), nil).Once()

	status, body := ta.do(t, httptest.NewRequest(http.MethodPut, "/api/notifications/mark-all-read", nil), guide)

	require.Equal(t, http.StatusOK, status)
	var data struct {
		Updated int64 `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.EqualValues(t, 3, data.Updated)
}
