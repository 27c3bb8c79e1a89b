package service

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/user/model"
)

type ServiceInterface interface {
	// Register creates an account and returns an access token
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)

	// Login authenticates by email/password
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)

	// GetProfile gets the public identity of a principal
	GetProfile(ctx context.Context, id uuid.UUID) (*model.PublicUser, error)
}
