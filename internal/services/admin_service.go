package services

import (
	"context"
	"errors"

	"github.com/okamel/cvbank/internal/repositories"
	"github.com/okamel/cvbank/internal/utils"
)

// AdminService gates the admin screen. Login is a pure check: no session,
// token or lockout state is produced.
type AdminService interface {
	Login(ctx context.Context, password string) error
}

type adminService struct {
	users        repositories.UserRepository
	username     string
	fallbackHash string // bcrypt hash from env, used until an admin is seeded
}

func NewAdminService(users repositories.UserRepository, username, fallbackHash string) AdminService {
	return &adminService{users: users, username: username, fallbackHash: fallbackHash}
}

func (s *adminService) Login(ctx context.Context, password string) error {
	const op = "AdminService.Login"

	if password == "" {
		return utils.E(utils.CodeUnauthorized, op, "invalid password", nil)
	}

	hash := s.fallbackHash
	if s.users != nil {
		u, err := s.users.GetByUsername(ctx, s.username)
		switch {
		case err == nil:
			hash = u.Password
		case errors.Is(err, utils.ErrNotFound):
			// fall through to the configured hash
		default:
			return utils.E(utils.CodeInternal, op, "failed to load admin account", err)
		}
	}
	if hash == "" {
		return utils.E(utils.CodeInternal, op, "admin secret is not configured", nil)
	}

	if err := utils.CheckPassword(hash, password); err != nil {
		return utils.E(utils.CodeUnauthorized, op, "invalid password", nil)
	}
	return nil
}
