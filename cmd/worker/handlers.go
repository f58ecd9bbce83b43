package main

import (
	"context"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	bookJob "bookreview-backend/internal/domains/book/job"
	reviewJob "bookreview-backend/internal/domains/review/job"
	"bookreview-backend/internal/infrastructure/ai"
	"bookreview-backend/internal/infrastructure/queue"
	"bookreview-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	refineReview *reviewJob.RefineReviewHandler
	ratingAudit  *bookJob.RatingAuditHandler
}

// initializeHandlers creates all job handlers with their dependencies.
func initializeHandlers(c *container.Container) *HandlerRegistry {
	var refiner ai.Refiner
	geminiClient, err := ai.NewGeminiClient(c.Config.AI.GeminiAPIKey, c.Config.AI.Model)
	if err != nil {
		// Without a key the refine queue still drains, tasks just fail
		// without retrying until the worker restarts with one.
		log.Printf("[Handlers] AI refinement disabled: %v", err)
		refiner = disabledRefiner{}
	} else {
		refiner = geminiClient
	}

	return &HandlerRegistry{
		refineReview: reviewJob.NewRefineReviewHandler(c.ReviewRepo, refiner),
		ratingAudit:  bookJob.NewRatingAuditHandler(c.BookRepo, c.ReviewService),
	}
}

// RegisterHandlers registers all handlers with the mux.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeRefineReview, h.refineReview.ProcessTask)
	mux.HandleFunc(queue.TypeRatingAudit, h.ratingAudit.ProcessTask)
}

type disabledRefiner struct{}

func (disabledRefiner) RefineReview(context.Context, string) (string, error) {
	return "", fmt.Errorf("GEMINI_API_KEY not configured: %w", asynq.SkipRetry)
}
