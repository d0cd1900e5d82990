package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"internship-portal/internal/domain"
	"internship-portal/internal/repository"
	"internship-portal/internal/service/attachment"
	"internship-portal/internal/service/notification"
)

type Service interface {
	Submit(ctx context.Context, student domain.Identity, input domain.CreateWeeklyReportInput) (*domain.WeeklyReport, error)
	SetApproval(ctx context.Context, reportID uuid.UUID, input domain.ApprovalInput, actor domain.Actor) (*domain.WeeklyReport, error)
	SetMarks(ctx context.Context, reportID uuid.UUID, input domain.MarksInput, actor domain.Actor) (*domain.WeeklyReport, error)
	List(ctx context.Context, query domain.ReportQuery, actor domain.Actor) (domain.PaginatedResponse[domain.WeeklyReport], error)
	Get(ctx context.Context, reportID uuid.UUID, viewer domain.Identity) (*domain.WeeklyReport, error)
	Update(ctx context.Context, reportID uuid.UUID, student domain.Identity, input domain.UpdateWeeklyReportInput) (*domain.WeeklyReport, error)
	Delete(ctx context.Context, reportID uuid.UUID) error
	Restore(ctx context.Context, reportID uuid.UUID) (*domain.WeeklyReport, error)
	UploadAttachment(ctx context.Context, reportID uuid.UUID, student domain.Identity, file attachment.File) (*domain.WeeklyReport, error)
}

type service struct {
	reportRepo     repository.WeeklyReportRepository
	internshipRepo repository.InternshipRepository
	attachments    attachment.Service
	publisher      notification.Publisher
	systemSender   uuid.UUID
	logger         *zap.Logger
}

func NewService(
	reportRepo repository.WeeklyReportRepository,
	internshipRepo repository.InternshipRepository,
	attachments attachment.Service,
	publisher notification.Publisher,
	systemSender uuid.UUID,
	logger *zap.Logger,
) Service {
	return &service{
		reportRepo:     reportRepo,
		internshipRepo: internshipRepo,
		attachments:    attachments,
		publisher:      publisher,
		systemSender:   systemSender,
		logger:         logger,
	}
}

func (s *service) Submit(ctx context.Context, student domain.Identity, input domain.CreateWeeklyReportInput) (*domain.WeeklyReport, error) {
	if strings.TrimSpace(input.ProjectTitle) == "" {
		return nil, domain.NewValidationError("Project title is required")
	}
	if input.ReportWeek < 1 {
		return nil, domain.NewValidationError("Report week must be at least 1")
	}

	internship, err := s.internshipRepo.GetByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if internship == nil {
		return nil, domain.ErrInternshipNotFound
	}

	report := &domain.WeeklyReport{
		ID:             uuid.New(),
		StudentID:      student.ID,
		StudentName:    student.Name,
		ProjectTitle:   strings.TrimSpace(input.ProjectTitle),
		ReportWeek:     input.ReportWeek,
		Content:        input.Content,
		ApprovalStatus: domain.StatusPending,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create weekly report: %w", err)
	}

	// Not transactional with the insert: a failure here leaves an unlisted report.
	if err := s.internshipRepo.AppendReport(ctx, internship.ID, report.ID); err != nil {
		return nil, fmt.Errorf("link weekly report to internship: %w", err)
	}

	s.publishSubmission(report, internship)

	s.logger.Info("weekly report submitted",
		zap.String("report_id", report.ID.String()),
		zap.String("student_id", student.ID.String()),
		zap.Int("week", report.ReportWeek))

	return report, nil
}

func (s *service) SetApproval(ctx context.Context, reportID uuid.UUID, input domain.ApprovalInput, actor domain.Actor) (*domain.WeeklyReport, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, reportID, actor); err != nil {
		return nil, err
	}

	var approvedBy *uuid.UUID
	if actor.IsGuide() {
		approvedBy = &actor.ID
	}

	report, err := s.reportRepo.UpdateApproval(ctx, reportID, input.ApprovalStatus, input.StoredComments(), approvedBy)
	if err != nil {
		return nil, err
	}

	s.publishStatusChange(report, actor, input.Reason())

	s.logger.Info("weekly report status updated",
		zap.String("report_id", report.ID.String()),
		zap.String("status", string(report.ApprovalStatus)),
		zap.String("actor", string(actor.Scope)),
		zap.String("actor_id", actor.ID.String()))

	return report, nil
}

func (s *service) SetMarks(ctx context.Context, reportID uuid.UUID, input domain.MarksInput, actor domain.Actor) (*domain.WeeklyReport, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, reportID, actor); err != nil {
		return nil, err
	}

	var markedBy *uuid.UUID
	if actor.IsGuide() {
		markedBy = &actor.ID
	}

	report, err := s.reportRepo.UpdateMarks(ctx, reportID, *input.Marks, markedBy)
	if err != nil {
		return nil, err
	}

	s.publishMarks(report, actor)

	s.logger.Info("weekly report marks updated",
		zap.String("report_id", report.ID.String()),
		zap.Int("marks", *input.Marks),
		zap.String("actor", string(actor.Scope)),
		zap.String("actor_id", actor.ID.String()))

	return report, nil
}

// authorize confirms the report is live and, for guides, listed in one of
// their internships. A foreign report is indistinguishable from a missing one.
func (s *service) authorize(ctx context.Context, reportID uuid.UUID, actor domain.Actor) error {
	if actor.IsGuide() {
		owns, err := s.internshipRepo.GuideOwnsReport(ctx, actor.ID, reportID)
		if err != nil {
			return err
		}
		if !owns {
			return domain.ErrReportNotAssigned
		}
	}

	report, err := s.reportRepo.GetByID(ctx, reportID, false)
	if err != nil {
		return err
	}
	if report == nil {
		return domain.ErrReportNotFound
	}
	return nil
}

func (s *service) List(ctx context.Context, query domain.ReportQuery, actor domain.Actor) (domain.PaginatedResponse[domain.WeeklyReport], error) {
	if err := query.Pagination.Validate(); err != nil {
		return domain.PaginatedResponse[domain.WeeklyReport]{}, err
	}

	if actor.IsGuide() {
		internships, err := s.internshipRepo.ListByGuide(ctx, actor.ID)
		if err != nil {
			return domain.PaginatedResponse[domain.WeeklyReport]{}, err
		}

		ids := make([]uuid.UUID, 0)
		students := make([]uuid.UUID, 0, len(internships))
		for _, in := range internships {
			ids = append(ids, in.WeeklyReports...)
			students = append(students, in.StudentID)
		}
		query.Filter.ReportIDs = ids
		query.Filter.StudentIDs = students
		query.Filter.IncludeDeleted = false
	}

	if len(query.Filter.ReportIDs) == 0 && query.Filter.ReportIDs != nil {
		return domain.NewPaginatedResponse([]domain.WeeklyReport{}, query.Pagination.Page, query.Pagination.PageSize, 0), nil
	}

	reports, total, err := s.reportRepo.List(ctx, query)
	if err != nil {
		return domain.PaginatedResponse[domain.WeeklyReport]{}, err
	}

	for i := range reports {
		s.decorate(&reports[i])
	}
	return domain.NewPaginatedResponse(reports, query.Pagination.Page, query.Pagination.PageSize, total), nil
}

func (s *service) Get(ctx context.Context, reportID uuid.UUID, viewer domain.Identity) (*domain.WeeklyReport, error) {
	if viewer.Role == domain.RoleGuide {
		owns, err := s.internshipRepo.GuideOwnsReport(ctx, viewer.ID, reportID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, domain.ErrReportNotAssigned
		}
	}

	report, err := s.reportRepo.GetByID(ctx, reportID, false)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrReportNotFound
	}
	if viewer.Role == domain.RoleStudent && report.StudentID != viewer.ID {
		return nil, domain.ErrReportNotFound
	}

	s.decorate(report)
	return report, nil
}

func (s *service) Update(ctx context.Context, reportID uuid.UUID, student domain.Identity, input domain.UpdateWeeklyReportInput) (*domain.WeeklyReport, error) {
	report, err := s.ownedByStudent(ctx, reportID, student)
	if err != nil {
		return nil, err
	}

	if input.ProjectTitle != nil {
		title := strings.TrimSpace(*input.ProjectTitle)
		if title == "" {
			return nil, domain.NewValidationError("Project title is required")
		}
		report.ProjectTitle = title
	}
	if input.ReportWeek != nil {
		if *input.ReportWeek < 1 {
			return nil, domain.NewValidationError("Report week must be at least 1")
		}
		report.ReportWeek = *input.ReportWeek
	}
	if input.Content != nil {
		report.Content = *input.Content
	}

	if err := s.reportRepo.UpdateContent(ctx, report); err != nil {
		return nil, err
	}

	s.decorate(report)
	return report, nil
}

func (s *service) Delete(ctx context.Context, reportID uuid.UUID) error {
	report, err := s.reportRepo.SoftDelete(ctx, reportID)
	if err != nil {
		return err
	}
	s.logger.Info("weekly report deleted", zap.String("report_id", report.ID.String()))
	return nil
}

func (s *service) Restore(ctx context.Context, reportID uuid.UUID) (*domain.WeeklyReport, error) {
	report, err := s.reportRepo.Restore(ctx, reportID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("weekly report restored", zap.String("report_id", report.ID.String()))
	s.decorate(report)
	return report, nil
}

func (s *service) UploadAttachment(ctx context.Context, reportID uuid.UUID, student domain.Identity, file attachment.File) (*domain.WeeklyReport, error) {
	if err := file.Validate(); err != nil {
		return nil, err
	}

	report, err := s.ownedByStudent(ctx, reportID, student)
	if err != nil {
		return nil, err
	}

	key, err := s.attachments.Put(ctx, report.ID, file)
	if err != nil {
		return nil, err
	}

	if err := s.reportRepo.SetAttachment(ctx, report.ID, &key); err != nil {
		_ = s.attachments.Remove(ctx, key)
		return nil, err
	}

	if report.AttachmentKey != nil && *report.AttachmentKey != key {
		if err := s.attachments.Remove(ctx, *report.AttachmentKey); err != nil {
			s.logger.Warn("failed to remove previous attachment",
				zap.String("report_id", report.ID.String()),
				zap.String("key", *report.AttachmentKey),
				zap.Error(err))
		}
	}

	report.AttachmentKey = &key
	s.decorate(report)
	return report, nil
}

func (s *service) ownedByStudent(ctx context.Context, reportID uuid.UUID, student domain.Identity) (*domain.WeeklyReport, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID, false)
	if err != nil {
		return nil, err
	}
	if report == nil || report.StudentID != student.ID {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

func (s *service) decorate(report *domain.WeeklyReport) {
	if report.AttachmentKey != nil && s.attachments != nil {
		report.AttachmentURL = s.attachments.PublicURL(*report.AttachmentKey)
	}
}
