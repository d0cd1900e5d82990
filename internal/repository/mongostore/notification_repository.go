// Package mongostore keeps notification documents in MongoDB, one document
// per fan-out with the recipients embedded.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"internship-portal/internal/domain"
	"internship-portal/internal/repository"
)

const notificationsCollection = "notifications"

type notificationRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	return &notificationRepository{
		coll: db.Collection(notificationsCollection),
		now:  time.Now,
	}
}

// EnsureIndexes creates the recipient lookup and recency indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(notificationsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipients.id", Value: 1}, {Key: "recipients.model", Value: 1}, {Key: "recipients.isRead", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return err
}

type senderDoc struct {
	ID    string `bson:"id"`
	Model string `bson:"model"`
	Name  string `bson:"name"`
}

type recipientDoc struct {
	ID     string     `bson:"id"`
	Model  string     `bson:"model"`
	IsRead bool       `bson:"isRead"`
	ReadAt *time.Time `bson:"readAt,omitempty"`
}

type relatedDoc struct {
	ID    string `bson:"id"`
	Model string `bson:"model"`
}

type statusChangeDoc struct {
	To     string  `bson:"to"`
	Reason *string `bson:"reason,omitempty"`
}

type marksDoc struct {
	Marks int `bson:"marks"`
	Week  int `bson:"week"`
}

type notificationDoc struct {
	ID            string           `bson:"_id"`
	Sender        senderDoc        `bson:"sender"`
	Recipients    []recipientDoc   `bson:"recipients"`
	Title         string           `bson:"title"`
	Message       string           `bson:"message"`
	Type          string           `bson:"type"`
	Link          *string          `bson:"link,omitempty"`
	Priority      string           `bson:"priority"`
	RelatedEntity *relatedDoc      `bson:"relatedEntity,omitempty"`
	StatusChange  *statusChangeDoc `bson:"statusChange,omitempty"`
	MarksData     *marksDoc        `bson:"marksData,omitempty"`
	CreatedAt     time.Time        `bson:"createdAt"`
}

func toDoc(n *domain.Notification) notificationDoc {
	doc := notificationDoc{
		ID:        n.ID.String(),
		Sender:    senderDoc{ID: n.Sender.ID.String(), Model: string(n.Sender.Model), Name: n.Sender.Name},
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Link:      n.Link,
		Priority:  string(n.Priority),
		CreatedAt: n.CreatedAt,
	}
	doc.Recipients = make([]recipientDoc, len(n.Recipients))
	for i, r := range n.Recipients {
		doc.Recipients[i] = recipientDoc{ID: r.ID.String(), Model: string(r.Model), IsRead: r.IsRead, ReadAt: r.ReadAt}
	}
	if n.RelatedEntity != nil {
		doc.RelatedEntity = &relatedDoc{ID: n.RelatedEntity.ID.String(), Model: n.RelatedEntity.Model}
	}
	if n.StatusChange != nil {
		doc.StatusChange = &statusChangeDoc{To: string(n.StatusChange.To), Reason: n.StatusChange.Reason}
	}
	if n.MarksData != nil {
		doc.MarksData = &marksDoc{Marks: n.MarksData.Marks, Week: n.MarksData.Week}
	}
	return doc
}

// toDomain keeps only the entry addressed to the given recipient.
func (d notificationDoc) toDomain(recipient domain.RecipientRef) (domain.Notification, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("notification id %q: %w", d.ID, err)
	}
	senderID, err := uuid.Parse(d.Sender.ID)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("sender id %q: %w", d.Sender.ID, err)
	}

	n := domain.Notification{
		ID:        id,
		Sender:    domain.Sender{ID: senderID, Model: domain.UserRole(d.Sender.Model), Name: d.Sender.Name},
		Title:     d.Title,
		Message:   d.Message,
		Type:      domain.NotificationType(d.Type),
		Link:      d.Link,
		Priority:  domain.Priority(d.Priority),
		CreatedAt: d.CreatedAt,
	}
	for _, r := range d.Recipients {
		if r.ID == recipient.ID.String() && r.Model == string(recipient.Model) {
			n.Recipients = []domain.Recipient{{ID: recipient.ID, Model: recipient.Model, IsRead: r.IsRead, ReadAt: r.ReadAt}}
			n.IsRead = r.IsRead
			break
		}
	}
	if d.RelatedEntity != nil {
		relatedID, err := uuid.Parse(d.RelatedEntity.ID)
		if err != nil {
			return domain.Notification{}, fmt.Errorf("related entity id %q: %w", d.RelatedEntity.ID, err)
		}
		n.RelatedEntity = &domain.RelatedEntity{ID: relatedID, Model: d.RelatedEntity.Model}
	}
	if d.StatusChange != nil {
		n.StatusChange = &domain.StatusChange{To: domain.ApprovalStatus(d.StatusChange.To), Reason: d.StatusChange.Reason}
	}
	if d.MarksData != nil {
		n.MarksData = &domain.MarksData{Marks: d.MarksData.Marks, Week: d.MarksData.Week}
	}
	return n, nil
}

func recipientMatch(recipient domain.RecipientRef, unreadOnly bool) bson.M {
	match := bson.M{"id": recipient.ID.String(), "model": string(recipient.Model)}
	if unreadOnly {
		match["isRead"] = false
	}
	return bson.M{"recipients": bson.M{"$elemMatch": match}}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = r.now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, toDoc(notif))
	return err
}

func (r *notificationRepository) ListForRecipient(ctx context.Context, recipient domain.RecipientRef, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	query := recipientMatch(recipient, filter.UnreadOnly)
	if filter.Type != nil {
		query["type"] = string(*filter.Type)
	}
	if filter.Priority != nil {
		query["priority"] = string(*filter.Priority)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.PageSize))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []notificationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	notifications := make([]domain.Notification, 0, len(docs))
	for _, doc := range docs {
		n, err := doc.toDomain(recipient)
		if err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID, recipient domain.RecipientRef) error {
	filter := recipientMatch(recipient, true)
	filter["_id"] = id.String()

	result, err := r.coll.UpdateOne(ctx, filter, r.markReadUpdate())
	if err != nil {
		return err
	}
	if result.ModifiedCount > 0 {
		return nil
	}

	addressed := recipientMatch(recipient, false)
	addressed["_id"] = id.String()
	count, err := r.coll.CountDocuments(ctx, addressed)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead relies on a recipient appearing at most once per document, so
// the positional operator reaches the only matching entry.
func (r *notificationRepository) MarkAllRead(ctx context.Context, recipient domain.RecipientRef) (int64, error) {
	result, err := r.coll.UpdateMany(ctx, recipientMatch(recipient, true), r.markReadUpdate())
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipient domain.RecipientRef) (int64, error) {
	return r.coll.CountDocuments(ctx, recipientMatch(recipient, true))
}

func (r *notificationRepository) markReadUpdate() bson.M {
	return bson.M{"$set": bson.M{
		"recipients.$.isRead": true,
		"recipients.$.readAt": r.now().UTC(),
	}}
}
