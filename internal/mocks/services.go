package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"internship-portal/internal/domain"
	"internship-portal/internal/service/attachment"
	"internship-portal/internal/service/notification"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) List(ctx context.Context, recipient domain.RecipientRef, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, recipient, filter, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context, recipient domain.RecipientRef) (int64, error) {
	args := m.Called(ctx, recipient)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkRead(ctx context.Context, id uuid.UUID, recipient domain.RecipientRef) error {
	args := m.Called(ctx, id, recipient)
	return args.Error(0)
}

func (m *NotificationService) MarkAllRead(ctx context.Context, recipient domain.RecipientRef) (int64, error) {
	args := m.Called(ctx, recipient)
	return args.Get(0).(int64), args.Error(1)
}

type RoleDirectory struct {
	mock.Mock
}

func (m *RoleDirectory) Members(ctx context.Context, role domain.UserRole) ([]notification.Member, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Member), args.Error(1)
}

func (m *RoleDirectory) Lookup(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]notification.Member, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]notification.Member), args.Error(1)
}

func (m *RoleDirectory) Refresh(ctx context.Context, role domain.UserRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *RoleDirectory) Invalidate(ctx context.Context, role domain.UserRole) {
	m.Called(ctx, role)
}

type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendNotificationEmail(ctx context.Context, toEmail, recipientName string, notif *domain.Notification) error {
	args := m.Called(ctx, toEmail, recipientName, notif)
	return args.Error(0)
}

func (m *Mailer) SendAdminCredentials(ctx context.Context, toEmail, name, username, password string) error {
	args := m.Called(ctx, toEmail, name, username, password)
	return args.Error(0)
}

type AttachmentService struct {
	mock.Mock
}

func (m *AttachmentService) Put(ctx context.Context, reportID uuid.UUID, file attachment.File) (string, error) {
	args := m.Called(ctx, reportID, file)
	return args.String(0), args.Error(1)
}

func (m *AttachmentService) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *AttachmentService) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

// Publisher records published events in order.
type Publisher struct {
	mu     sync.Mutex
	Events []notification.Event
}

func (p *Publisher) Publish(event notification.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

func (p *Publisher) Published() []notification.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notification.Event(nil), p.Events...)
}

type ReportService struct {
	mock.Mock
}

func (m *ReportService) Submit(ctx context.Context, student domain.Identity, input domain.CreateWeeklyReportInput) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, student, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

func (m *ReportService) SetApproval(ctx context.Context, reportID uuid.UUID, input domain.ApprovalInput, actor domain.Actor) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, reportID, input, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

func (m *ReportService) SetMarks(ctx context.Context, reportID uuid.UUID, input domain.MarksInput, actor domain.Actor) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, reportID, input, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

func (m *ReportService) List(ctx context.Context, query domain.ReportQuery, actor domain.Actor) (domain.PaginatedResponse[domain.WeeklyReport], error) {
	args := m.Called(ctx, query, actor)
	return args.Get(0).(domain.PaginatedResponse[domain.WeeklyReport]), args.Error(1)
}

func (m *ReportService) Get(ctx context.Context, reportID uuid.UUID, viewer domain.Identity) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, reportID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

func (m *ReportService) Update(ctx context.Context, reportID uuid.UUID, student domain.Identity, input domain.UpdateWeeklyReportInput) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, reportID, student, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

func (m *ReportService) Delete(ctx context.Context, reportID uuid.UUID) error {
	args := m.Called(ctx, reportID)
	return args.Error(0)
}

func (m *ReportService) Restore(ctx context.Context, reportID uuid.UUID) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

func (m *ReportService) UploadAttachment(ctx context.Context, reportID uuid.UUID, student domain.Identity, file attachment.File) (*domain.WeeklyReport, error) {
	args := m.Called(ctx, reportID, student, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyReport), args.Error(1)
}

type AdminService struct {
	mock.Mock
}

func (m *AdminService) Create(ctx context.Context, input domain.CreateAdminInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *AdminService) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
