package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"internship-portal/internal/domain"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type WeeklyReportRepository struct {
	mock.Mock
}

func (m *WeeklyReportRepository) Create(ctx context.Context, report *domain.WeeklyReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *WeeklyReportRepository) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

func (m *WeeklyReportRepository) UpdateContent(ctx context.Context, report *domain.WeeklyReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *WeeklyReportRepository) UpdateApproval(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, comments *string, approvedBy *uuid.UUID) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, id, status, comments, approvedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

func (m *WeeklyReportRepository) UpdateMarks(ctx context.Context, id uuid.UUID, marks int, markedBy *uuid.UUID) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, id, marks, markedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

func (m *WeeklyReportRepository) SetAttachment(ctx context.Context, id uuid.UUID, key *string) error {
	args := m.Called(ctx, id, key)
	return args.Error(0)
}

func (m *WeeklyReportRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

func (m *WeeklyReportRepository) Restore(ctx context.Context, id uuid.UUID) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

func (m *WeeklyReportRepository) List(ctx context.Context, q domain.ReportQuery) ([]domain.WeeklyReport, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.WeeklyReport), args.Get(1).(int64), args.Error(2)
}

type InternshipRepository struct {
	mock.Mock
}

func (m *InternshipRepository) GetByStudent(ctx context.Context, studentID uuid.UUID) (*domain.StudentInternship, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentInternship), args.Error(1)
}

func (m *InternshipRepository) AppendReport(ctx context.Context, internshipID, reportID uuid.UUID) error {
	args := m.Called(ctx, internshipID, reportID)
	return args.Error(0)
}

func (m *InternshipRepository) GuideOwnsReport(ctx context.Context, guideID, reportID uuid.UUID) (bool, error) {
	args := m.Called(ctx, guideID, reportID)
	return args.Bool(0), args.Error(1)
}

func (m *InternshipRepository) ListByGuide(ctx context.Context, guideID uuid.UUID) ([]domain.StudentInternship, error) {
	args := m.Called(ctx, guideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentInternship), args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *NotificationRepository) ListForRecipient(ctx context.Context, recipient domain.RecipientRef, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, recipient, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID, recipient domain.RecipientRef) error {
	args := m.Called(ctx, id, recipient)
	return args.Error(0)
}

func (m *NotificationRepository) MarkAllRead(ctx context.Context, recipient domain.RecipientRef) (int64, error) {
	args := m.Called(ctx, recipient)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) CountUnread(ctx context.Context, recipient domain.RecipientRef) (int64, error) {
	args := m.Called(ctx, recipient)
	return args.Get(0).(int64), args.Error(1)
}
