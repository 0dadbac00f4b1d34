package service

import (
	"errors"
	"log/slog"

	"github.com/GioRdrz/food-delivery/internal/apperr"
	"github.com/GioRdrz/food-delivery/internal/auth"
	"github.com/GioRdrz/food-delivery/internal/models"
	"github.com/GioRdrz/food-delivery/internal/repository"
)

type UserService struct {
	users repository.UserRepository
	log   *slog.Logger
}

func NewUserService(users repository.UserRepository, log *slog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("user not found")
		}
		return nil, apperr.Internalf(err, "failed to load user")
	}
	return user, nil
}

func (s *UserService) List(offset, limit int) ([]models.User, error) {
	users, err := s.users.List(offset, limit)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to list users")
	}
	return users, nil
}

// Register creates a new account. Duplicate emails are a Conflict.
func (s *UserService) Register(email, password, fullName string, role models.UserRole) (*models.User, error) {
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, apperr.Conflictf("email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internalf(err, "failed to check email")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to hash password")
	}

	user := &models.User{
		Email:          email,
		HashedPassword: hashed,
		FullName:       fullName,
		Role:           role,
		IsActive:       true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, apperr.Internalf(err, "failed to create user")
	}

	s.log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Authenticate verifies credentials and returns a signed bearer token.
func (s *UserService) Authenticate(email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, apperr.Unauthenticatedf("incorrect email or password")
		}
		return "", nil, apperr.Internalf(err, "failed to load user")
	}

	if !auth.CheckPassword(user.HashedPassword, password) {
		s.log.Warn("failed login attempt", "email", email)
		return "", nil, apperr.Unauthenticatedf("incorrect email or password")
	}

	token, err := auth.IssueToken(user)
	if err != nil {
		return "", nil, apperr.Internalf(err, "failed to issue token")
	}
	return token, user, nil
}

type UserUpdate struct {
	Email     *string
	Password  *string
	FullName  *string
	IsActive  *bool
	IsBlocked *bool
}

func (s *UserService) Update(id string, update UserUpdate) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Email != nil && *update.Email != user.Email {
		if _, err := s.users.GetByEmail(*update.Email); err == nil {
			return nil, apperr.Conflictf("email already registered")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Internalf(err, "failed to check email")
		}
		user.Email = *update.Email
	}
	if update.Password != nil {
		hashed, err := auth.HashPassword(*update.Password)
		if err != nil {
			return nil, apperr.Internalf(err, "failed to hash password")
		}
		user.HashedPassword = hashed
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.IsBlocked != nil {
		user.IsBlocked = *update.IsBlocked
	}

	if err := s.users.Update(user); err != nil {
		return nil, apperr.Internalf(err, "failed to update user")
	}
	return user, nil
}

func (s *UserService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.users.Delete(id); err != nil {
		return apperr.Internalf(err, "failed to delete user")
	}
	return nil
}

// EnsureAdmin creates the bootstrap administrator if it does not exist yet.
func (s *UserService) EnsureAdmin(email, password string) error {
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return apperr.Internalf(err, "failed to check admin user")
	}

	_, err := s.Register(email, password, "Administrator", models.RoleAdmin)
	return err
}
