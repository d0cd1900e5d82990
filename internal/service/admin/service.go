package admin

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"internship-portal/internal/domain"
	"internship-portal/internal/repository"
)

const passwordLength = 12

const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789!@#$%"

// CredentialMailer delivers a new admin's generated password.
type CredentialMailer interface {
	SendAdminCredentials(ctx context.Context, toEmail, name, username, password string) error
}

// RoleCache is invalidated when role membership changes.
type RoleCache interface {
	Invalidate(ctx context.Context, role domain.UserRole)
}

type Service interface {
	Create(ctx context.Context, input domain.CreateAdminInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type service struct {
	userRepo repository.UserRepository
	mailer   CredentialMailer
	roles    RoleCache
	logger   *zap.Logger

	// async runs credential delivery off the request path.
	async func(func())
}

func NewService(userRepo repository.UserRepository, mailer CredentialMailer, roles RoleCache, logger *zap.Logger) Service {
	return &service{
		userRepo: userRepo,
		mailer:   mailer,
		roles:    roles,
		logger:   logger,
		async:    func(fn func()) { go fn() },
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateAdminInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	password, err := generatePassword(passwordLength)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hash := string(hashedPassword)
	username := strings.TrimSpace(input.Username)

	user := &domain.User{
		ID:           uuid.New(),
		Role:         domain.RoleAdmin,
		Name:         strings.TrimSpace(input.Name),
		Username:     &username,
		Email:        email,
		PasswordHash: &hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.roles != nil {
		s.roles.Invalidate(ctx, domain.RoleAdmin)
	}

	s.async(func() {
		if err := s.mailer.SendAdminCredentials(context.Background(), user.Email, user.Name, username, password); err != nil {
			s.logger.Error("failed to send admin credentials", zap.String("admin_id", user.ID.String()), zap.Error(err))
		}
	})

	s.logger.Info("admin created", zap.String("admin_id", user.ID.String()), zap.String("username", username))
	return user, nil
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	admins, err := s.userRepo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if admins == nil {
		admins = []domain.User{}
	}
	return admins, nil
}

func generatePassword(n int) (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
