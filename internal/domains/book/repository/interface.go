package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/shared/query"
)

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Book, error)
	// List executes a query plan: the paged find plus an unpaginated count
	// over the same filter.
	List(ctx context.Context, plan *query.Plan) ([]model.Book, int64, error)
	Featured(ctx context.Context, limit int) ([]model.Book, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Book, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// UpdateRatingStats writes the derived rating fields as one set.
	UpdateRatingStats(ctx context.Context, id primitive.ObjectID, count, total int, average float64) error
	// AllIDs supports the full rating audit.
	AllIDs(ctx context.Context) ([]primitive.ObjectID, error)
}
