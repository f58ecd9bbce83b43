package service

import (
	"context"

	"bookreview-backend/internal/domains/book/model"
	reviewmodel "bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/shared/authz"
)

type ServiceInterface interface {
	// List runs the query-feature pipeline over the catalog and returns the
	// page plus the unpaginated total.
	List(ctx context.Context, params map[string][]string) ([]model.Book, int64, error)
	Featured(ctx context.Context) ([]model.Book, error)
	// GetByID returns the book together with its reviews.
	GetByID(ctx context.Context, id string) (*model.Book, []reviewmodel.Review, error)
	Create(ctx context.Context, identity authz.Identity, req model.CreateBookRequest) (*model.Book, error)
	Update(ctx context.Context, identity authz.Identity, id string, req model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, identity authz.Identity, id string) error
}
