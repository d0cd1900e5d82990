package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"internship-portal/internal/domain"
)

const eventTimeout = 15 * time.Second

// Event is one fan-out request. BroadcastRoles are resolved to their current
// members when the event is processed.
type Event struct {
	Notification   domain.CreateNotificationInput
	BroadcastRoles []domain.UserRole
}

// Publisher hands events to the notification pipeline without waiting on it.
type Publisher interface {
	Publish(event Event)
}

// Mailer mirrors a delivered notification to one recipient.
type Mailer interface {
	SendNotificationEmail(ctx context.Context, toEmail, recipientName string, notif *domain.Notification) error
}

// Outbox is a bounded queue drained by a single worker. Delivery is
// at-most-once: a full queue or a failed create drops the event.
type Outbox struct {
	svc    Service
	dir    RoleDirectory
	mailer Mailer
	logger *zap.Logger

	events chan Event
	done   chan struct{}

	mu      sync.RWMutex
	closed  bool
	started bool
}

func NewOutbox(svc Service, dir RoleDirectory, mailer Mailer, buffer int, logger *zap.Logger) *Outbox {
	if buffer < 1 {
		buffer = 1
	}
	return &Outbox{
		svc:    svc,
		dir:    dir,
		mailer: mailer,
		logger: logger,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

func (o *Outbox) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started {
		return
	}
	o.started = true
	go o.run()
}

func (o *Outbox) Publish(event Event) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		o.logger.Warn("notification outbox closed, dropping event",
			zap.String("type", string(event.Notification.Type)))
		return
	}

	select {
	case o.events <- event:
	default:
		o.logger.Warn("notification outbox full, dropping event",
			zap.String("type", string(event.Notification.Type)),
			zap.Int("capacity", cap(o.events)))
	}
}

// Close stops intake and waits for queued events to drain or ctx to expire.
func (o *Outbox) Close(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	close(o.events)
	started := o.started
	o.mu.Unlock()

	if !started {
		go o.run()
	}

	select {
	case <-o.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Outbox) run() {
	defer close(o.done)
	for event := range o.events {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		o.process(ctx, event)
		cancel()
	}
}

func (o *Outbox) process(ctx context.Context, event Event) {
	input := event.Notification
	input.Recipients = append([]domain.RecipientRef(nil), input.Recipients...)

	known := make(map[uuid.UUID]Member)
	for _, role := range event.BroadcastRoles {
		members, err := o.dir.Members(ctx, role)
		if err != nil {
			o.logger.Error("failed to resolve broadcast role", zap.String("role", string(role)), zap.Error(err))
			continue
		}
		for _, m := range members {
			known[m.ID] = m
			input.Recipients = append(input.Recipients, domain.RecipientRef{ID: m.ID, Model: role})
		}
	}

	if len(input.Recipients) == 0 {
		o.logger.Warn("no recipients to notify", zap.String("type", string(input.Type)))
		return
	}

	notif, err := o.svc.Create(ctx, input)
	if err != nil {
		o.logger.Error("failed to create notification", zap.String("type", string(input.Type)), zap.Error(err))
		return
	}

	o.logger.Info("notification sent",
		zap.String("notification_id", notif.ID.String()),
		zap.String("type", string(notif.Type)),
		zap.Int("recipients", len(notif.Recipients)))

	if notif.Priority == domain.PriorityHigh && o.mailer != nil {
		o.mirror(ctx, notif, known)
	}
}

func (o *Outbox) mirror(ctx context.Context, notif *domain.Notification, known map[uuid.UUID]Member) {
	var missing []uuid.UUID
	for _, r := range notif.Recipients {
		if _, ok := known[r.ID]; !ok {
			missing = append(missing, r.ID)
		}
	}
	if len(missing) > 0 {
		found, err := o.dir.Lookup(ctx, missing)
		if err != nil {
			o.logger.Warn("failed to look up e-mail recipients", zap.Error(err))
		}
		for id, m := range found {
			known[id] = m
		}
	}

	for _, r := range notif.Recipients {
		m, ok := known[r.ID]
		if !ok || m.Email == "" {
			continue
		}
		if err := o.mailer.SendNotificationEmail(ctx, m.Email, m.Name, notif); err != nil {
			o.logger.Warn("failed to mirror notification by e-mail",
				zap.String("notification_id", notif.ID.String()),
				zap.String("recipient_id", r.ID.String()),
				zap.Error(err))
		}
	}
}
