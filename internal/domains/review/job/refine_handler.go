package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreview-backend/internal/domains/review/repository"
	"bookreview-backend/internal/infrastructure/ai"
	"bookreview-backend/internal/infrastructure/queue"
	"bookreview-backend/pkg/logger"
)

// RefineReviewHandler processes review:refine tasks: it rewrites the review
// text through the AI client and stores the result on the review. The
// original text is never touched.
type RefineReviewHandler struct {
	reviewRepo repository.ReviewRepository
	refiner    ai.Refiner
}

func NewRefineReviewHandler(reviewRepo repository.ReviewRepository, refiner ai.Refiner) *RefineReviewHandler {
	return &RefineReviewHandler{
		reviewRepo: reviewRepo,
		refiner:    refiner,
	}
}

func (h *RefineReviewHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload queue.RefineReviewPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", queue.TypeRefineReview, err)
	}

	oid, err := primitive.ObjectIDFromHex(payload.ReviewID)
	if err != nil {
		return fmt.Errorf("invalid review ID %q: %w", payload.ReviewID, err)
	}

	review, err := h.reviewRepo.GetByID(ctx, oid)
	if err != nil {
		return fmt.Errorf("load review %s: %w", payload.ReviewID, err)
	}

	text := review.FinalReview
	if text == "" {
		text = review.Review
	}

	refined, err := h.refiner.RefineReview(ctx, text)
	if err != nil {
		return fmt.Errorf("refine review %s: %w", payload.ReviewID, err)
	}

	if _, err := h.reviewRepo.Update(ctx, oid, bson.M{"aiRefinedReview": refined}); err != nil {
		return fmt.Errorf("store refined review %s: %w", payload.ReviewID, err)
	}

	logger.Info("review refined", map[string]interface{}{
		"review_id": payload.ReviewID,
	})
	return nil
}
