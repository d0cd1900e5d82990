package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	WeeklyReport WeeklyReportRepository
	Internship   InternshipRepository
	Notification NotificationRepository
}

// NewRepositories wires the Postgres stores. The notification store can be
// swapped afterwards (see mongostore).
func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		WeeklyReport: NewWeeklyReportRepository(db),
		Internship:   NewInternshipRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
