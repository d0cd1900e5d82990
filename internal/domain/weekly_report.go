package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "Pending"
	StatusApproved ApprovalStatus = "Approved"
	StatusRejected ApprovalStatus = "Rejected"
)

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

const (
	MinMarks = 0
	MaxMarks = 10
)

type WeeklyReport struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	StudentID       uuid.UUID      `json:"student" db:"student_id"`
	StudentName     string         `json:"studentName" db:"student_name"`
	ProjectTitle    string         `json:"projectTitle" db:"project_title"`
	ReportWeek      int            `json:"reportWeek" db:"report_week"`
	Content         string         `json:"content" db:"content"`
	AttachmentKey   *string        `json:"-" db:"attachment_key"`
	AttachmentURL   string         `json:"attachmentUrl,omitempty" db:"-"`
	ApprovalStatus  ApprovalStatus `json:"approvalStatus" db:"approval_status"`
	Comments        *string        `json:"comments" db:"comments"`
	Marks           *int           `json:"marks" db:"marks"`
	ApprovedBy      *uuid.UUID     `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovalDate    *time.Time     `json:"approvalDate,omitempty" db:"approval_date"`
	MarkedBy        *uuid.UUID     `json:"markedBy,omitempty" db:"marked_by"`
	MarkingDate     *time.Time     `json:"markingDate,omitempty" db:"marking_date"`
	StatusUpdatedAt *time.Time     `json:"statusUpdatedAt,omitempty" db:"status_updated_at"`
	IsDeleted       bool           `json:"isDeleted" db:"is_deleted"`
	DeletedAt       *time.Time     `json:"deletedAt" db:"deleted_at"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

type CreateWeeklyReportInput struct {
	ProjectTitle string `json:"projectTitle" validate:"required,max=200"`
	ReportWeek   int    `json:"reportWeek" validate:"required,min=1,max=104"`
	Content      string `json:"content" validate:"max=10000"`
}

type UpdateWeeklyReportInput struct {
	ProjectTitle *string `json:"projectTitle,omitempty" validate:"omitempty,min=1,max=200"`
	ReportWeek   *int    `json:"reportWeek,omitempty" validate:"omitempty,min=1,max=104"`
	Content      *string `json:"content,omitempty" validate:"omitempty,max=10000"`
}

type ApprovalInput struct {
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
	Comments       *string        `json:"comments"`
}

// Validate enforces the status enum and the comments-on-rejection rule.
func (in ApprovalInput) Validate() error {
	if !in.ApprovalStatus.IsValid() {
		return NewValidationError("Invalid approval status")
	}
	if in.ApprovalStatus == StatusRejected && (in.Comments == nil || strings.TrimSpace(*in.Comments) == "") {
		return NewValidationError("Comments are required for rejected status")
	}
	return nil
}

// StoredComments returns the value persisted for comments: kept only on rejection.
func (in ApprovalInput) StoredComments() *string {
	if in.ApprovalStatus != StatusRejected {
		return nil
	}
	c := strings.TrimSpace(*in.Comments)
	return &c
}

// Reason is the reviewer's comment as sent, whatever the status; nil when blank.
func (in ApprovalInput) Reason() *string {
	if in.Comments == nil {
		return nil
	}
	c := strings.TrimSpace(*in.Comments)
	if c == "" {
		return nil
	}
	return &c
}

type MarksInput struct {
	Marks *int `json:"marks"`
}

func (in MarksInput) Validate() error {
	if in.Marks == nil || *in.Marks < MinMarks || *in.Marks > MaxMarks {
		return NewValidationError("Marks must be between 0 and 10")
	}
	return nil
}

// ReportSortFields is the allow-list for list ordering, mapped to columns.
var ReportSortFields = map[string]string{
	"createdAt":   "created_at",
	"studentName": "student_name",
	"reportWeek":  "report_week",
}

const DefaultReportSort = "createdAt"

type ReportFilter struct {
	StudentName    string
	ReportWeek     *int
	ApprovalStatus *ApprovalStatus
	IncludeDeleted bool

	// ReportIDs restricts the result to these ids when non-nil (guide scope).
	ReportIDs []uuid.UUID
	// StudentIDs restricts the result to these students when non-nil (guide scope).
	StudentIDs []uuid.UUID
}

type ReportQuery struct {
	Filter     ReportFilter
	SortBy     string
	SortDesc   bool
	Pagination PaginationParams
}

// SortColumn resolves SortBy against the allow-list, falling back to created_at.
func (q ReportQuery) SortColumn() string {
	if col, ok := ReportSortFields[q.SortBy]; ok {
		return col
	}
	return ReportSortFields[DefaultReportSort]
}
