package repository

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/user/model"
)

type UserRepository interface {
	// Create persists a new user
	Create(ctx context.Context, user *model.User) error

	// GetByID gets user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail gets user by email (for login)
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetPublicByIDs resolves principal ids to their public identities.
	// Ids with no matching user are simply absent from the result.
	GetPublicByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.PublicUser, error)
}
