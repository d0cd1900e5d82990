package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"internship-portal/internal/domain"
	"internship-portal/internal/repository"
)

// Member is a broadcast recipient with what the e-mail mirror needs.
type Member struct {
	ID    uuid.UUID       `json:"id"`
	Role  domain.UserRole `json:"role"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
}

// RoleDirectory resolves "everyone with role R" at send time.
type RoleDirectory interface {
	Members(ctx context.Context, role domain.UserRole) ([]Member, error)
	Lookup(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Member, error)
	Refresh(ctx context.Context, role domain.UserRole) error
	Invalidate(ctx context.Context, role domain.UserRole)
}

type roleDirectory struct {
	userRepo repository.UserRepository
	redis    *redis.Client
	ttl      time.Duration
	logger   *zap.Logger

	// local is used when redis is not configured.
	mu    sync.RWMutex
	local map[domain.UserRole]cachedMembers
}

type cachedMembers struct {
	members []Member
	expires time.Time
}

func NewRoleDirectory(userRepo repository.UserRepository, redis *redis.Client, ttl time.Duration, logger *zap.Logger) RoleDirectory {
	return &roleDirectory{
		userRepo: userRepo,
		redis:    redis,
		ttl:      ttl,
		logger:   logger,
		local:    make(map[domain.UserRole]cachedMembers),
	}
}

func roleKey(role domain.UserRole) string {
	return "roles:" + string(role) + ":members"
}

func (d *roleDirectory) Members(ctx context.Context, role domain.UserRole) ([]Member, error) {
	if members, ok := d.cached(ctx, role); ok {
		return members, nil
	}

	members, err := d.load(ctx, role)
	if err != nil {
		return nil, err
	}
	d.store(ctx, role, members)
	return members, nil
}

func (d *roleDirectory) Lookup(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Member, error) {
	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]Member, len(users))
	for _, u := range users {
		out[u.ID] = toMember(u)
	}
	return out, nil
}

func (d *roleDirectory) Refresh(ctx context.Context, role domain.UserRole) error {
	members, err := d.load(ctx, role)
	if err != nil {
		return err
	}
	d.store(ctx, role, members)
	return nil
}

func (d *roleDirectory) Invalidate(ctx context.Context, role domain.UserRole) {
	d.mu.Lock()
	delete(d.local, role)
	d.mu.Unlock()

	if d.redis != nil {
		_ = d.redis.Del(ctx, roleKey(role)).Err()
	}
}

func (d *roleDirectory) load(ctx context.Context, role domain.UserRole) ([]Member, error) {
	users, err := d.userRepo.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list %s users: %w", role, err)
	}

	members := make([]Member, len(users))
	for i, u := range users {
		members[i] = toMember(u)
	}
	return members, nil
}

func (d *roleDirectory) cached(ctx context.Context, role domain.UserRole) ([]Member, bool) {
	if d.redis == nil {
		d.mu.RLock()
		defer d.mu.RUnlock()
		entry, ok := d.local[role]
		if !ok || time.Now().After(entry.expires) {
			return nil, false
		}
		return entry.members, true
	}

	raw, err := d.redis.Get(ctx, roleKey(role)).Bytes()
	if err != nil {
		return nil, false
	}
	var members []Member
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, false
	}
	return members, true
}

func (d *roleDirectory) store(ctx context.Context, role domain.UserRole, members []Member) {
	if d.redis == nil {
		d.mu.Lock()
		d.local[role] = cachedMembers{members: members, expires: time.Now().Add(d.ttl)}
		d.mu.Unlock()
		return
	}

	raw, err := json.Marshal(members)
	if err != nil {
		return
	}
	if err := d.redis.Set(ctx, roleKey(role), raw, d.ttl).Err(); err != nil {
		d.logger.Warn("failed to cache role members", zap.String("role", string(role)), zap.Error(err))
	}
}

func toMember(u domain.User) Member {
	return Member{ID: u.ID, Role: u.Role, Name: u.Name, Email: u.Email}
}

// StartRefresher re-warms the cache for the given roles on schedule (cron
// expression or @every). The caller stops the returned scheduler.
func StartRefresher(dir RoleDirectory, schedule string, logger *zap.Logger, roles ...domain.UserRole) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, role := range roles {
			if err := dir.Refresh(ctx, role); err != nil {
				logger.Warn("role directory refresh failed", zap.String("role", string(role)), zap.Error(err))
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule role refresh %q: %w", schedule, err)
	}

	logger.Info("role directory refresher started", zap.String("schedule", schedule))
	c.Start()
	return c, nil
}
