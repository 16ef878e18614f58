package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sustainshare/internal/auth"
	"sustainshare/internal/cache"
	apperrors "sustainshare/internal/errors"
	"sustainshare/internal/model"
	"sustainshare/internal/repository"
)

const bcryptCost = 10

// SignupInput carries the fields of a new user registration. ID is optional;
// clients registering offline supply their own so records merge cleanly when
// the upstream comes back.
type SignupInput struct {
	ID       string
	Name     string
	Username string
	Email    string
	Password string
	Role     model.UserRole
}

// AuthService handles signup and login.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, cacheClient *cache.Client) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		cache:      cacheClient,
	}
}

// Signup creates a new user with a hashed password. Email and username must
// both be unused.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*model.User, error) {
	existing, err := s.userRepo.FindByEmailOrUsername(ctx, input.Email, input.Username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateUser
	}
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = model.RoleDonor
	}
	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}

	user := &model.User{
		ID:           id,
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Status:       model.UserStatusActive,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Donor/charity counts feed the public stats.
	_ = s.cache.Delete(ctx, statsCacheKey)

	return user, nil
}

// Login authenticates a user and returns a signed token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}
