package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"bookreview-backend/pkg/logger"
)

// Client enqueues background tasks.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
	}
}

// EnqueueRefineReview queues the AI refinement of a review. Retries are
// bounded: refinement is best-effort and the review stays valid without it.
func (c *Client) EnqueueRefineReview(ctx context.Context, reviewID string) error {
	payload, err := json.Marshal(RefineReviewPayload{ReviewID: reviewID})
	if err != nil {
		return fmt.Errorf("marshal refine payload: %w", err)
	}

	task := asynq.NewTask(TypeRefineReview, payload)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
		asynq.Queue("default"),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeRefineReview, err)
	}

	logger.Info("task enqueued", map[string]interface{}{
		"type": TypeRefineReview,
		"id":   info.ID,
	})
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
