package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/shared/authz"
)

type ServiceInterface interface {
	List(ctx context.Context, bookID string) ([]model.Review, error)
	GetByID(ctx context.Context, id string) (*model.Review, error)
	Create(ctx context.Context, identity authz.Identity, req model.CreateReviewRequest) (*model.Review, error)
	Update(ctx context.Context, identity authz.Identity, id string, req model.UpdateReviewRequest) (*model.Review, error)
	Delete(ctx context.Context, identity authz.Identity, id string) error
	// Refine queues AI refinement of the review's text.
	Refine(ctx context.Context, identity authz.Identity, id string) (*model.Review, error)
	// RecomputeBookRating re-derives a book's rating aggregate from its
	// reviews. Idempotent; also invoked by the nightly audit job.
	RecomputeBookRating(ctx context.Context, bookID primitive.ObjectID) error
}

// TaskEnqueuer queues background work. Implemented by the asynq queue client.
type TaskEnqueuer interface {
	EnqueueRefineReview(ctx context.Context, reviewID string) error
}
