package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreview-backend/internal/domains/book/repository"
	"bookreview-backend/pkg/logger"
)

// RatingRecomputer re-derives one book's rating aggregate from its reviews.
// Implemented by the review service.
type RatingRecomputer interface {
	RecomputeBookRating(ctx context.Context, bookID primitive.ObjectID) error
}

// RatingAuditHandler processes the scheduled book:rating_audit task. The
// mutate-then-recompute sequence on review writes is not transactional, so a
// crash between the two steps can leave a stale aggregate; this audit
// converges every book back to the true value.
type RatingAuditHandler struct {
	bookRepo repository.BookRepository
	reviews  RatingRecomputer
}

func NewRatingAuditHandler(bookRepo repository.BookRepository, reviews RatingRecomputer) *RatingAuditHandler {
	return &RatingAuditHandler{
		bookRepo: bookRepo,
		reviews:  reviews,
	}
}

func (h *RatingAuditHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	ids, err := h.bookRepo.AllIDs(ctx)
	if err != nil {
		return fmt.Errorf("list book ids: %w", err)
	}

	var failed int
	for _, id := range ids {
		if err := h.reviews.RecomputeBookRating(ctx, id); err != nil {
			failed++
			logger.Error("rating audit recompute failed for book "+id.Hex(), err)
		}
	}

	logger.Info("rating audit finished", map[string]interface{}{
		"books":  len(ids),
		"failed": failed,
	})

	if failed > 0 {
		return fmt.Errorf("rating audit: %d of %d books failed", failed, len(ids))
	}
	return nil
}
