package report

import (
	"fmt"
	"strings"

	"internship-portal/internal/domain"
	"internship-portal/internal/pkg/i18n"
	"internship-portal/internal/service/notification"
)

const reportEntityModel = "WeeklyReport"

func studentLink(report *domain.WeeklyReport) *string {
	link := fmt.Sprintf("/student/weekly-reports/%s", report.ID)
	return &link
}

func guideLink(report *domain.WeeklyReport) *string {
	link := fmt.Sprintf("/guide/weekly-reports/%s", report.ID)
	return &link
}

func reportVars(report *domain.WeeklyReport) i18n.Vars {
	return i18n.Vars{
		"student": report.StudentName,
		"project": report.ProjectTitle,
		"week":    report.ReportWeek,
	}
}

// publishSubmission notifies every admin (medium) and the assigned guide (high).
func (s *service) publishSubmission(report *domain.WeeklyReport, internship *domain.StudentInternship) {
	sender := domain.Sender{ID: report.StudentID, Model: domain.RoleStudent, Name: report.StudentName}
	title := i18n.Translate(i18n.DefaultLocale, "report_submitted.title")
	message := i18n.Format(i18n.DefaultLocale, "report_submitted.message", reportVars(report))
	related := &domain.RelatedEntity{ID: report.ID, Model: reportEntityModel}

	s.publisher.Publish(notification.Event{
		Notification: domain.CreateNotificationInput{
			Sender:        sender,
			Title:         title,
			Message:       message,
			Type:          domain.NotifReportSubmission,
			Priority:      domain.PriorityMedium,
			RelatedEntity: related,
		},
		BroadcastRoles: []domain.UserRole{domain.RoleAdmin},
	})

	if internship.GuideID == nil {
		return
	}

	s.publisher.Publish(notification.Event{
		Notification: domain.CreateNotificationInput{
			Sender:        sender,
			Recipients:    []domain.RecipientRef{{ID: *internship.GuideID, Model: domain.RoleGuide}},
			Title:         title,
			Message:       message,
			Type:          domain.NotifReportSubmission,
			Priority:      domain.PriorityHigh,
			Link:          guideLink(report),
			RelatedEntity: related,
		},
	})
}

func (s *service) publishStatusChange(report *domain.WeeklyReport, actor domain.Actor, reason *string) {
	scope := string(actor.Scope)
	status := strings.ToLower(string(report.ApprovalStatus))

	priority := domain.PriorityMedium
	if report.ApprovalStatus == domain.StatusApproved || report.ApprovalStatus == domain.StatusRejected {
		priority = domain.PriorityHigh
	}

	message := i18n.Format(i18n.DefaultLocale, scope+"."+status+".message", reportVars(report))
	if report.ApprovalStatus == domain.StatusRejected && report.Comments != nil {
		message += i18n.Format(i18n.DefaultLocale, "feedback.suffix", i18n.Vars{"feedback": *report.Comments})
	}

	notifType := domain.NotifReportStatusChange
	if actor.IsGuide() {
		notifType = domain.NotifGuideFeedback
	}

	s.publisher.Publish(notification.Event{
		Notification: domain.CreateNotificationInput{
			Sender:        s.sender(actor),
			Recipients:    []domain.RecipientRef{{ID: report.StudentID, Model: domain.RoleStudent}},
			Title:         i18n.Translate(i18n.DefaultLocale, scope+"."+status+".title"),
			Message:       message,
			Type:          notifType,
			Priority:      priority,
			Link:          studentLink(report),
			RelatedEntity: &domain.RelatedEntity{ID: report.ID, Model: reportEntityModel},
			StatusChange:  &domain.StatusChange{To: report.ApprovalStatus, Reason: reason},
		},
	})
}

func (s *service) publishMarks(report *domain.WeeklyReport, actor domain.Actor) {
	scope := string(actor.Scope)
	vars := reportVars(report)
	vars["marks"] = *report.Marks

	notifType := domain.NotifMarksChange
	if actor.IsGuide() {
		notifType = domain.NotifGuideEvaluation
	}

	s.publisher.Publish(notification.Event{
		Notification: domain.CreateNotificationInput{
			Sender:        s.sender(actor),
			Recipients:    []domain.RecipientRef{{ID: report.StudentID, Model: domain.RoleStudent}},
			Title:         i18n.Translate(i18n.DefaultLocale, scope+".marks.title"),
			Message:       i18n.Format(i18n.DefaultLocale, scope+".marks.message", vars),
			Type:          notifType,
			Priority:      domain.PriorityHigh,
			Link:          studentLink(report),
			RelatedEntity: &domain.RelatedEntity{ID: report.ID, Model: reportEntityModel},
			MarksData:     &domain.MarksData{Marks: *report.Marks, Week: report.ReportWeek},
		},
	})
}

// sender attributes admin actions to the system account and guide actions to
// the guide.
func (s *service) sender(actor domain.Actor) domain.Sender {
	if actor.IsGuide() {
		return domain.Sender{ID: actor.ID, Model: domain.RoleGuide, Name: actor.Name}
	}
	return domain.Sender{
		ID:    s.systemSender,
		Model: domain.RoleAdmin,
		Name:  i18n.Translate(i18n.DefaultLocale, "admin.sender"),
	}
}
