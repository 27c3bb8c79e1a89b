package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/internal/domains/user/repository"
	"bookreview-backend/pkg/cache"
	"bookreview-backend/pkg/jwt"
	"bookreview-backend/pkg/logger"
)

const (
	maxFailedLogins   = 5
	failedLoginWindow = 15 * time.Minute
)

type userService struct {
	userRepo   repository.UserRepository
	cache      cache.Cache
	jwtManager *jwt.Manager
}

func NewUserService(
	userRepo repository.UserRepository,
	cache cache.Cache,
	jwtManager *jwt.Manager,
) ServiceInterface {
	return &userService{
		userRepo:   userRepo,
		cache:      cache,
		jwtManager: jwtManager,
	}
}

func (s *userService) Register(
	ctx context.Context,
	req model.RegisterRequest,
) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) || errors.Is(err, model.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}

func (s *userService) Login(
	ctx context.Context,
	req model.LoginRequest,
) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lockKey := "auth:failed_logins:" + req.Email

	if locked, err := s.isLocked(ctx, lockKey); err != nil {
		logger.Error("failed login lookup failed", err)
	} else if locked {
		return nil, model.ErrAccountLocked
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.trackFailedLogin(ctx, lockKey)
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.trackFailedLogin(ctx, lockKey)
		return nil, model.ErrInvalidCredentials
	}

	// Successful login clears the counter
	if err := s.cache.Delete(ctx, lockKey, lockKey+":locked"); err != nil {
		logger.Error("failed to reset login counter", err)
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	pub := user.Public()
	return &pub, nil
}

// isLocked reports whether the lock marker for this email is still live.
func (s *userService) isLocked(ctx context.Context, key string) (bool, error) {
	return s.cache.Exists(ctx, key+":locked")
}

// trackFailedLogin increments the failure counter and sets the lock marker
// once the threshold is reached. Cache failures only lose the lockout,
// never the login itself.
func (s *userService) trackFailedLogin(ctx context.Context, key string) {
	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Error("failed to track login failure", err)
		return
	}

	if count == 1 {
		if err := s.cache.Expire(ctx, key, failedLoginWindow); err != nil {
			logger.Error("failed to expire login counter", err)
		}
	}

	if count >= maxFailedLogins {
		if _, err := s.cache.Increment(ctx, key+":locked"); err != nil {
			logger.Error("failed to set lock marker", err)
			return
		}
		if err := s.cache.Expire(ctx, key+":locked", failedLoginWindow); err != nil {
			logger.Error("failed to expire lock marker", err)
		}
		logger.Warn("account locked after repeated failed logins", map[string]interface{}{
			"key": key,
		})
	}
}
