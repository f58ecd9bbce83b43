package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreview-backend/internal/domains/review/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Review, error)
	// List returns reviews newest first, optionally restricted to one book.
	List(ctx context.Context, bookID *primitive.ObjectID) ([]model.Review, error)
	// ListByBook returns every review of a book, for rating recomputation.
	ListByBook(ctx context.Context, bookID primitive.ObjectID) ([]model.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
