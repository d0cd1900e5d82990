package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"internship-portal/internal/domain"
)

// NotificationRepository stores one notification per fan-out with an
// independent read state per recipient.
type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	ListForRecipient(ctx context.Context, recipient domain.RecipientRef, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkRead(ctx context.Context, id uuid.UUID, recipient domain.RecipientRef) error
	MarkAllRead(ctx context.Context, recipient domain.RecipientRef) (int64, error)
	CountUnread(ctx context.Context, recipient domain.RecipientRef) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

type notificationRow struct {
	ID           uuid.UUID               `db:"id"`
	SenderID     uuid.UUID               `db:"sender_id"`
	SenderModel  domain.UserRole         `db:"sender_model"`
	SenderName   string                  `db:"sender_name"`
	Title        string                  `db:"title"`
	Message      string                  `db:"message"`
	Type         domain.NotificationType `db:"type"`
	Link         *string                 `db:"link"`
	Priority     domain.Priority         `db:"priority"`
	RelatedID    *uuid.UUID              `db:"related_id"`
	RelatedModel *string                 `db:"related_model"`
	StatusTo     *domain.ApprovalStatus  `db:"status_to"`
	StatusReason *string                 `db:"status_reason"`
	Marks        *int                    `db:"marks"`
	MarksWeek    *int                    `db:"marks_week"`
	CreatedAt    time.Time               `db:"created_at"`

	RecipientID    uuid.UUID       `db:"recipient_id"`
	RecipientModel domain.UserRole `db:"recipient_model"`
	IsRead         bool            `db:"is_read"`
	ReadAt         *time.Time      `db:"read_at"`
}

type recipientRow struct {
	NotificationID uuid.UUID       `db:"notification_id"`
	RecipientID    uuid.UUID       `db:"recipient_id"`
	RecipientModel domain.UserRole `db:"recipient_model"`
}

func newNotificationRow(n *domain.Notification) notificationRow {
	row := notificationRow{
		ID:          n.ID,
		SenderID:    n.Sender.ID,
		SenderModel: n.Sender.Model,
		SenderName:  n.Sender.Name,
		Title:       n.Title,
		Message:     n.Message,
		Type:        n.Type,
		Link:        n.Link,
		Priority:    n.Priority,
	}
	if n.RelatedEntity != nil {
		row.RelatedID = &n.RelatedEntity.ID
		row.RelatedModel = &n.RelatedEntity.Model
	}
	if n.StatusChange != nil {
		row.StatusTo = &n.StatusChange.To
		row.StatusReason = n.StatusChange.Reason
	}
	if n.MarksData != nil {
		row.Marks = &n.MarksData.Marks
		row.MarksWeek = &n.MarksData.Week
	}
	return row
}

// toDomain returns the notification as seen by the recipient of the row.
func (row notificationRow) toDomain() domain.Notification {
	n := domain.Notification{
		ID:       row.ID,
		Sender:   domain.Sender{ID: row.SenderID, Model: row.SenderModel, Name: row.SenderName},
		Title:    row.Title,
		Message:  row.Message,
		Type:     row.Type,
		Link:     row.Link,
		Priority: row.Priority,
		Recipients: []domain.Recipient{{
			ID: row.RecipientID, Model: row.RecipientModel, IsRead: row.IsRead, ReadAt: row.ReadAt,
		}},
		IsRead:    row.IsRead,
		CreatedAt: row.CreatedAt,
	}
	if row.RelatedID != nil {
		model := ""
		if row.RelatedModel != nil {
			model = *row.RelatedModel
		}
		n.RelatedEntity = &domain.RelatedEntity{ID: *row.RelatedID, Model: model}
	}
	if row.StatusTo != nil {
		n.StatusChange = &domain.StatusChange{To: *row.StatusTo, Reason: row.StatusReason}
	}
	if row.Marks != nil {
		week := 0
		if row.MarksWeek != nil {
			week = *row.MarksWeek
		}
		n.MarksData = &domain.MarksData{Marks: *row.Marks, Week: week}
	}
	return n
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := newNotificationRow(notif)
	query := `
		INSERT INTO notifications (id, sender_id, sender_model, sender_name, title, message, type, link,
			priority, related_id, related_model, status_to, status_reason, marks, marks_week)
		VALUES (:id, :sender_id, :sender_model, :sender_name, :title, :message, :type, :link,
			:priority, :related_id, :related_model, :status_to, :status_reason, :marks, :marks_week)
		RETURNING created_at`

	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if err := stmt.GetContext(ctx, &notif.CreatedAt, row); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	recipients := make([]recipientRow, len(notif.Recipients))
	for i, rc := range notif.Recipients {
		recipients[i] = recipientRow{NotificationID: notif.ID, RecipientID: rc.ID, RecipientModel: rc.Model}
	}
	recipientQuery := `
		INSERT INTO notification_recipients (notification_id, recipient_id, recipient_model)
		VALUES (:notification_id, :recipient_id, :recipient_model)
		ON CONFLICT DO NOTHING`
	if _, err := tx.NamedExecContext(ctx, recipientQuery, recipients); err != nil {
		return fmt.Errorf("insert notification recipients: %w", err)
	}

	return tx.Commit()
}

func (r *notificationRepository) ListForRecipient(ctx context.Context, recipient domain.RecipientRef, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	conds := []string{"nr.recipient_id = $1", "nr.recipient_model = $2"}
	args := []interface{}{recipient.ID, recipient.Model}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		conds = append(conds, fmt.Sprintf("n.type = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		conds = append(conds, fmt.Sprintf("n.priority = $%d", len(args)))
	}
	if filter.UnreadOnly {
		conds = append(conds, "nr.is_read = false")
	}

	from := `
		FROM notifications n
		JOIN notification_recipients nr ON nr.notification_id = n.id
		WHERE ` + strings.Join(conds, " AND ")

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+from, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT n.id, n.sender_id, n.sender_model, n.sender_name, n.title, n.message, n.type, n.link,
			n.priority, n.related_id, n.related_model, n.status_to, n.status_reason, n.marks,
			n.marks_week, n.created_at, nr.recipient_id, nr.recipient_model, nr.is_read, nr.read_at
		%s
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT $%d OFFSET $%d`, from, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, err
	}

	notifications := make([]domain.Notification, len(rows))
	for i, row := range rows {
		notifications[i] = row.toDomain()
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID, recipient domain.RecipientRef) error {
	query := `
		UPDATE notification_recipients
		SET is_read = true, read_at = NOW()
		WHERE notification_id = $1 AND recipient_id = $2 AND recipient_model = $3 AND is_read = false`
	result, err := r.db.ExecContext(ctx, query, id, recipient.ID, recipient.Model)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n > 0 {
		return nil
	}

	// Nothing flipped: either already read or not addressed to this recipient.
	var exists bool
	existsQuery := `
		SELECT EXISTS(
			SELECT 1 FROM notification_recipients
			WHERE notification_id = $1 AND recipient_id = $2 AND recipient_model = $3
		)`
	if err := r.db.GetContext(ctx, &exists, existsQuery, id, recipient.ID, recipient.Model); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipient domain.RecipientRef) (int64, error) {
	query := `
		UPDATE notification_recipients
		SET is_read = true, read_at = NOW()
		WHERE recipient_id = $1 AND recipient_model = $2 AND is_read = false`
	result, err := r.db.ExecContext(ctx, query, recipient.ID, recipient.Model)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipient domain.RecipientRef) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notification_recipients WHERE recipient_id = $1 AND recipient_model = $2 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, recipient.ID, recipient.Model)
	return count, err
}
