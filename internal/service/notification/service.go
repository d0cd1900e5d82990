package notification

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"internship-portal/internal/domain"
	"internship-portal/internal/repository"
)

const unreadCountTTL = 30 * time.Second

// Service is the fan-out and the per-recipient read API.
type Service interface {
	Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error)
	List(ctx context.Context, recipient domain.RecipientRef, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	UnreadCount(ctx context.Context, recipient domain.RecipientRef) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID, recipient domain.RecipientRef) error
	MarkAllRead(ctx context.Context, recipient domain.RecipientRef) (int64, error)
}

type service struct {
	notifRepo repository.NotificationRepository
	redis     *redis.Client
	logger    *zap.Logger
}

// NewService builds the service; redis may be nil, which disables the
// unread-count cache.
func NewService(notifRepo repository.NotificationRepository, redis *redis.Client, logger *zap.Logger) Service {
	return &service{
		notifRepo: notifRepo,
		redis:     redis,
		logger:    logger,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	notif := &domain.Notification{
		ID:            uuid.New(),
		Sender:        input.Sender,
		Title:         input.Title,
		Message:       input.Message,
		Type:          input.Type,
		Link:          input.Link,
		Priority:      input.Priority,
		RelatedEntity: input.RelatedEntity,
		StatusChange:  input.StatusChange,
		MarksData:     input.MarksData,
	}

	seen := make(map[domain.RecipientRef]bool, len(input.Recipients))
	for _, ref := range input.Recipients {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		notif.Recipients = append(notif.Recipients, domain.Recipient{ID: ref.ID, Model: ref.Model})
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	for _, r := range notif.Recipients {
		s.invalidateUnread(ctx, domain.RecipientRef{ID: r.ID, Model: r.Model})
	}
	return notif, nil
}

func (s *service) List(ctx context.Context, recipient domain.RecipientRef, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	if err := params.Validate(); err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	notifications, total, err := s.notifRepo.ListForRecipient(ctx, recipient, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	for i := range notifications {
		if r := notifications[i].RecipientFor(recipient.ID, recipient.Model); r != nil {
			notifications[i].IsRead = r.IsRead
		}
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) UnreadCount(ctx context.Context, recipient domain.RecipientRef) (int64, error) {
	key := unreadKey(recipient)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			if n, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return n, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, recipient)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, count, unreadCountTTL).Err(); err != nil {
			s.logger.Warn("failed to cache unread count", zap.String("key", key), zap.Error(err))
		}
	}
	return count, nil
}

func (s *service) MarkRead(ctx context.Context, id uuid.UUID, recipient domain.RecipientRef) error {
	if err := s.notifRepo.MarkRead(ctx, id, recipient); err != nil {
		return err
	}
	s.invalidateUnread(ctx, recipient)
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, recipient domain.RecipientRef) (int64, error) {
	updated, err := s.notifRepo.MarkAllRead(ctx, recipient)
	if err != nil {
		return 0, err
	}
	s.invalidateUnread(ctx, recipient)
	return updated, nil
}

func (s *service) invalidateUnread(ctx context.Context, recipient domain.RecipientRef) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, unreadKey(recipient)).Err()
}

func unreadKey(recipient domain.RecipientRef) string {
	return fmt.Sprintf("notifications:unread:%s:%s", recipient.Model, recipient.ID)
}
