package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifReportSubmission   NotificationType = "WEEKLY_REPORT_SUBMISSION"
	NotifReportStatusChange NotificationType = "WEEKLY_REPORT_STATUS_CHANGE"
	NotifMarksChange        NotificationType = "MARKS_CHANGE"
	NotifGuideFeedback      NotificationType = "GUIDE_REPORT_FEEDBACK"
	NotifGuideEvaluation    NotificationType = "GUIDE_REPORT_EVALUATION"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Sender struct {
	ID    uuid.UUID `json:"id"`
	Model UserRole  `json:"model"`
	Name  string    `json:"name"`
}

type Recipient struct {
	ID     uuid.UUID  `json:"id"`
	Model  UserRole   `json:"model"`
	IsRead bool       `json:"isRead"`
	ReadAt *time.Time `json:"readAt,omitempty"`
}

type RelatedEntity struct {
	ID    uuid.UUID `json:"id"`
	Model string    `json:"model"`
}

type StatusChange struct {
	To     ApprovalStatus `json:"to"`
	Reason *string        `json:"reason,omitempty"`
}

type MarksData struct {
	Marks int `json:"marks"`
	Week  int `json:"week"`
}

type Notification struct {
	ID            uuid.UUID        `json:"id"`
	Sender        Sender           `json:"sender"`
	Recipients    []Recipient      `json:"recipients"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	Type          NotificationType `json:"type"`
	Link          *string          `json:"link,omitempty"`
	Priority      Priority         `json:"priority"`
	RelatedEntity *RelatedEntity   `json:"relatedEntity,omitempty"`
	StatusChange  *StatusChange    `json:"statusChange,omitempty"`
	MarksData     *MarksData       `json:"marksData,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`

	// IsRead is the calling recipient's own read state; derived, never stored.
	IsRead bool `json:"isRead"`
}

// RecipientFor returns the entry addressed to (id, model), if any.
func (n *Notification) RecipientFor(id uuid.UUID, model UserRole) *Recipient {
	for i := range n.Recipients {
		if n.Recipients[i].ID == id && n.Recipients[i].Model == model {
			return &n.Recipients[i]
		}
	}
	return nil
}

// RecipientRef addresses a recipient before delivery.
type RecipientRef struct {
	ID    uuid.UUID
	Model UserRole
}

// CreateNotificationInput describes one fan-out: one document, many recipients.
type CreateNotificationInput struct {
	Sender        Sender
	Recipients    []RecipientRef
	Title         string
	Message       string
	Type          NotificationType
	Priority      Priority
	Link          *string
	RelatedEntity *RelatedEntity
	StatusChange  *StatusChange
	MarksData     *MarksData
}

func (in *CreateNotificationInput) Validate() error {
	if len(in.Recipients) == 0 {
		return NewValidationError("notification requires at least one recipient")
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Message) == "" {
		return NewValidationError("notification title and message are required")
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !in.Priority.IsValid() {
		return NewValidationError("invalid notification priority")
	}
	return nil
}

type NotificationFilter struct {
	Type       *NotificationType
	Priority   *Priority
	UnreadOnly bool
}
