package mongostore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"internship-portal/internal/domain"
)

func sampleNotification() *domain.Notification {
	readAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	reason := "Missing hours"
	link := "/weekly-reports"
	return &domain.Notification{
		ID:       uuid.New(),
		Sender:   domain.Sender{ID: uuid.New(), Model: domain.RoleAdmin, Name: "System Notification"},
		Title:    "Weekly report rejected",
		Message:  "Please revise. Feedback: Missing hours",
		Type:     domain.NotificationType("WEEKLY_REPORT_STATUS_CHANGE"),
		Link:     &link,
		Priority: domain.PriorityHigh,
		Recipients: []domain.Recipient{
			{ID: uuid.New(), Model: domain.RoleStudent},
			{ID: uuid.New(), Model: domain.RoleGuide, IsRead: true, ReadAt: &readAt},
		},
		RelatedEntity: &domain.RelatedEntity{ID: uuid.New(), Model: "WeeklyReport"},
		StatusChange:  &domain.StatusChange{To: domain.StatusRejected, Reason: &reason},
		CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNotificationDoc_BSONRoundTripKeepsCallerEntry(t *testing.T) {
	n := sampleNotification()

	raw, err := bson.Marshal(toDoc(n))
	require.NoError(t, err)

	var doc notificationDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	require.Len(t, doc.Recipients, 2)

	guide := n.Recipients[1]
	got, err := doc.toDomain(domain.RecipientRef{ID: guide.ID, Model: guide.Model})
	require.NoError(t, err)

	assert.Equal(t, n.ID, got.ID)
	assert.True(t, got.IsRead)
	require.Len(t, got.Recipients, 1)
	assert.Equal(t, guide.ID, got.Recipients[0].ID)
	require.NotNil(t, got.StatusChange)
	assert.Equal(t, "Missing hours", *got.StatusChange.Reason)
	assert.Equal(t, n.RelatedEntity.ID, got.RelatedEntity.ID)
	assert.Nil(t, got.MarksData)

	student := n.Recipients[0]
	got, err = doc.toDomain(domain.RecipientRef{ID: student.ID, Model: student.Model})
	require.NoError(t, err)
	assert.False(t, got.IsRead)
}

func TestNotificationDoc_SameIDDifferentModelIsDistinct(t *testing.T) {
	n := sampleNotification()
	doc := toDoc(n)

	got, err := doc.toDomain(domain.RecipientRef{ID: n.Recipients[1].ID, Model: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Empty(t, got.Recipients)
	assert.False(t, got.IsRead)
}

func TestNotificationDoc_InvalidID(t *testing.T) {
	doc := toDoc(sampleNotification())
	doc.ID = "not-a-uuid"

	_, err := doc.toDomain(domain.RecipientRef{ID: uuid.New(), Model: domain.RoleStudent})
	assert.Error(t, err)
}

func TestRecipientMatch(t *testing.T) {
	ref := domain.RecipientRef{ID: uuid.New(), Model: domain.RoleGuide}

	all := recipientMatch(ref, false)
	elem := all["recipients"].(bson.M)["$elemMatch"].(bson.M)
	assert.Equal(t, ref.ID.String(), elem["id"])
	assert.Equal(t, "guide", elem["model"])
	assert.NotContains(t, elem, "isRead")

	unread := recipientMatch(ref, true)
	elem = unread["recipients"].(bson.M)["$elemMatch"].(bson.M)
	assert.Equal(t, false, elem["isRead"])
}
