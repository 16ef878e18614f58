package service

import (
	"context"
	"fmt"

	"sustainshare/internal/cache"
	"sustainshare/internal/model"
	"sustainshare/internal/repository"
)

// UserService backs the admin panel's user management.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Remove(ctx context.Context, id string) error
	UpdateRole(ctx context.Context, id string, role model.UserRole) (*model.User, error)
	SetStatus(ctx context.Context, id string, status model.UserStatus) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, cacheClient *cache.Client) UserService {
	return &userService{userRepo: userRepo, cache: cacheClient}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) Remove(ctx context.Context, id string) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	_ = s.cache.Delete(ctx, statsCacheKey)
	return nil
}

func (s *userService) UpdateRole(ctx context.Context, id string, role model.UserRole) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	_ = s.cache.Delete(ctx, statsCacheKey)
	return user, nil
}

func (s *userService) SetStatus(ctx context.Context, id string, status model.UserStatus) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return user, nil
}
