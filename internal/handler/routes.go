package handler

import (
	"github.com/gofiber/fiber/v2"

	"internship-portal/internal/domain"
	"internship-portal/internal/middleware"
)

func SetupRoutes(app *fiber.App, h *Handlers, validator middleware.TokenValidator) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", middleware.AuthRequired(validator))

	admin := middleware.RequireRole(domain.RoleAdmin)
	student := middleware.RequireRole(domain.RoleStudent)
	guide := middleware.RequireRole(domain.RoleGuide)

	reports := api.Group("/weekly-reports")
	reports.Post("/", student, h.WeeklyReport.Submit)
	reports.Get("/", admin, h.WeeklyReport.List)
	reports.Get("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleStudent), h.WeeklyReport.Get)
	reports.Put("/:id", student, h.WeeklyReport.Update)
	reports.Delete("/:id", admin, h.WeeklyReport.Delete)
	reports.Patch("/:id/approval", admin, h.WeeklyReport.UpdateApproval)
	reports.Patch("/:id/marks", admin, h.WeeklyReport.UpdateMarks)
	reports.Patch("/:id/restore", admin, h.WeeklyReport.Restore)
	reports.Post("/:id/attachment", student, h.WeeklyReport.UploadAttachment)

	guideReports := api.Group("/weeklyReport/guide", guide)
	guideReports.Get("/", h.WeeklyReport.GuideList)
	guideReports.Get("/:id", h.WeeklyReport.GuideGet)
	guideReports.Patch("/:id/approval", h.WeeklyReport.GuideUpdateApproval)
	guideReports.Patch("/:id/marks", h.WeeklyReport.GuideUpdateMarks)

	notifications := api.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Put("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Put("/:id/mark-read", h.Notification.MarkAsRead)

	admins := api.Group("/admin", admin)
	admins.Post("/", h.Admin.Create)
	admins.Get("/", h.Admin.List)
}
