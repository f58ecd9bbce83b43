package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreview-backend/internal/domains/user/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Update applies the given field set and returns the updated document.
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
