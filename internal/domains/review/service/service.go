package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	bookrepo "bookreview-backend/internal/domains/book/repository"
	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/domains/review/repository"
	"bookreview-backend/internal/shared/apperror"
	"bookreview-backend/internal/shared/authz"
)

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   bookrepo.BookRepository
	tasks      TaskEnqueuer
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookRepo bookrepo.BookRepository,
	tasks TaskEnqueuer,
) ServiceInterface {
	return &reviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		tasks:      tasks,
	}
}

func (s *reviewService) List(ctx context.Context, bookID string) ([]model.Review, error) {
	var filter *primitive.ObjectID
	if bookID != "" {
		oid, err := primitive.ObjectIDFromHex(bookID)
		if err != nil {
			return nil, apperror.NewValidation("invalid book ID")
		}
		filter = &oid
	}

	return s.reviewRepo.List(ctx, filter)
}

func (s *reviewService) GetByID(ctx context.Context, id string) (*model.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewValidation("invalid review ID")
	}
	return s.reviewRepo.GetByID(ctx, oid)
}

func (s *reviewService) Create(ctx context.Context, identity authz.Identity, req model.CreateReviewRequest) (*model.Review, error) {
	if !authz.CanMutate(identity, identity.ID, authz.ActionCreate, authz.ResourceReview) {
		return nil, apperror.NewUnauthorized("You must be logged in to review")
	}

	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	bookID, err := primitive.ObjectIDFromHex(req.Book)
	if err != nil {
		return nil, apperror.NewValidation("invalid book ID")
	}
	userID, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		return nil, apperror.NewValidation("invalid user ID")
	}

	// The book must exist before accepting a review for it.
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	finalReview := req.FinalReview
	if finalReview == "" {
		finalReview = req.Review
	}

	review := &model.Review{
		Book:        bookID,
		User:        userID,
		Rating:      req.Rating,
		Review:      req.Review,
		FinalReview: finalReview,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.RecomputeBookRating(ctx, bookID); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewService) Update(ctx context.Context, identity authz.Identity, id string, req model.UpdateReviewRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewValidation("invalid review ID")
	}

	review, err := s.reviewRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if !authz.CanMutate(identity, review.User.Hex(), authz.ActionUpdate, authz.ResourceReview) {
		return nil, model.ErrNotOwner
	}

	fields := bson.M{}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.Review != nil {
		fields["review"] = *req.Review
		// Updated review text supersedes the displayed text unless the
		// author provides a final version themselves.
		if req.FinalReview == nil {
			fields["finalReview"] = *req.Review
		}
	}
	if req.FinalReview != nil {
		fields["finalReview"] = *req.FinalReview
	}
	if len(fields) == 0 {
		return review, nil
	}

	// Book reference captured before the mutating call.
	bookID := review.Book

	updated, err := s.reviewRepo.Update(ctx, oid, fields)
	if err != nil {
		return nil, err
	}

	if err := s.RecomputeBookRating(ctx, bookID); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *reviewService) Delete(ctx context.Context, identity authz.Identity, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NewValidation("invalid review ID")
	}

	// Fetch first: the book reference is unreadable once the review is gone,
	// and ownership has to be checked anyway.
	review, err := s.reviewRepo.GetByID(ctx, oid)
	if err != nil {
		return err
	}

	if !authz.CanMutate(identity, review.User.Hex(), authz.ActionDelete, authz.ResourceReview) {
		return model.ErrNotOwnerDelete
	}

	bookID := review.Book

	if err := s.reviewRepo.Delete(ctx, oid); err != nil {
		return err
	}

	return s.RecomputeBookRating(ctx, bookID)
}

func (s *reviewService) Refine(ctx context.Context, identity authz.Identity, id string) (*model.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewValidation("invalid review ID")
	}

	review, err := s.reviewRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	// Refinement rewrites the author's words; owner only, like update.
	if !authz.CanMutate(identity, review.User.Hex(), authz.ActionUpdate, authz.ResourceReview) {
		return nil, model.ErrNotOwner
	}

	if err := s.tasks.EnqueueRefineReview(ctx, id); err != nil {
		return nil, fmt.Errorf("enqueue refinement: %w", err)
	}

	return review, nil
}

func (s *reviewService) RecomputeBookRating(ctx context.Context, bookID primitive.ObjectID) error {
	reviews, err := s.reviewRepo.ListByBook(ctx, bookID)
	if err != nil {
		return fmt.Errorf("scan reviews for recompute: %w", err)
	}

	stats := model.ComputeRatingStats(reviews)

	if err := s.bookRepo.UpdateRatingStats(ctx, bookID, stats.Count, stats.Total, stats.Average); err != nil {
		return fmt.Errorf("write rating stats: %w", err)
	}
	return nil
}
