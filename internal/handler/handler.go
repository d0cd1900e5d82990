package handler

import "internship-portal/internal/service"

type Handlers struct {
	WeeklyReport *WeeklyReportHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		WeeklyReport: NewWeeklyReportHandler(services.Report),
		Notification: NewNotificationHandler(services.Notification),
		Admin:        NewAdminHandler(services.Admin),
	}
}
