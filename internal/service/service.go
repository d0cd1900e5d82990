package service

import (
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"internship-portal/internal/config"
	"internship-portal/internal/repository"
	"internship-portal/internal/service/admin"
	"internship-portal/internal/service/attachment"
	"internship-portal/internal/service/auth"
	"internship-portal/internal/service/email"
	"internship-portal/internal/service/notification"
	"internship-portal/internal/service/report"
)

type Services struct {
	Auth         auth.Service
	Email        email.Service
	Attachment   attachment.Service
	Notification notification.Service
	Directory    notification.RoleDirectory
	Outbox       *notification.Outbox
	Report       report.Service
	Admin        admin.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger) *Services {
	emailService := email.NewService(cfg, logger.Named("email"))
	authService := auth.NewService(cfg)
	attachmentService := attachment.NewService(minioClient, cfg)

	notificationService := notification.NewService(repos.Notification, redis, logger.Named("notification"))
	directory := notification.NewRoleDirectory(repos.User, redis, cfg.RoleCacheTTL, logger.Named("directory"))
	outbox := notification.NewOutbox(notificationService, directory, emailService, cfg.OutboxBuffer, logger.Named("outbox"))

	systemSender, err := uuid.Parse(cfg.SystemSenderID)
	if err != nil {
		logger.Warn("invalid SYSTEM_SENDER_ID, using nil uuid", zap.String("value", cfg.SystemSenderID))
		systemSender = uuid.Nil
	}

	reportService := report.NewService(
		repos.WeeklyReport,
		repos.Internship,
		attachmentService,
		outbox,
		systemSender,
		logger.Named("report"),
	)
	adminService := admin.NewService(repos.User, emailService, directory, logger.Named("admin"))

	return &Services{
		Auth:         authService,
		Email:        emailService,
		Attachment:   attachmentService,
		Notification: notificationService,
		Directory:    directory,
		Outbox:       outbox,
		Report:       reportService,
		Admin:        adminService,
	}
}
