package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lwazim/claim-workflow/internal/application/port"
	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// UserService exposes user lookup plus first-boot seeding of the default
// accounts the workflow needs (one per role, plus the system actor used by
// the automation sweep).
type UserService interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	EnsureDefaultUsers(ctx context.Context) error
}

type userService struct {
	userRepo port.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(userRepo port.UserRepository, logger *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userService) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

type seedUser struct {
	username string
	password string
	fullName string
	email    string
	role     entity.Role
}

var defaultUsers = []seedUser{
	{"lecturer", "lecturer123", "John Doe", "lecturer@university.ac.za", entity.RoleLecturer},
	{"coordinator", "coordinator123", "Jane Smith", "coordinator@university.ac.za", entity.RoleCoordinator},
	{"manager", "manager123", "Mike Johnson", "manager@university.ac.za", entity.RoleManager},
	{"system", "", "Automation Sweep", "system@university.ac.za", entity.RoleManager},
}

// EnsureDefaultUsers inserts the default accounts if they do not exist yet.
// Existing accounts are left untouched, so the call is safe on every startup.
func (s *userService) EnsureDefaultUsers(ctx context.Context) error {
	for _, seed := range defaultUsers {
		existing, err := s.userRepo.GetByUsername(ctx, seed.username)
		if err != nil {
			return fmt.Errorf("failed to look up user %s: %w", seed.username, err)
		}
		if existing != nil {
			continue
		}

		hash := ""
		if seed.password != "" {
			b, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password for %s: %w", seed.username, err)
			}
			hash = string(b)
		}

		user := &entity.User{
			Username:     seed.username,
			PasswordHash: hash,
			FullName:     seed.fullName,
			Email:        seed.email,
			Role:         seed.role,
			CreatedAt:    time.Now(),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", seed.username, err)
		}
		s.logger.Info("seeded default user",
			zap.String("username", seed.username),
			zap.String("role", seed.role.String()))
	}
	return nil
}
