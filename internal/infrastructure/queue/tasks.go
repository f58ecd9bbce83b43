package queue

// Task type names registered on the asynq mux.
const (
	TypeRefineReview = "review:refine"
	TypeRatingAudit  = "book:rating_audit"
)

// RefineReviewPayload asks the worker to produce an AI-refined version of a
// review's text.
type RefineReviewPayload struct {
	ReviewID string `json:"review_id"`
}

// RatingAuditPayload triggers a full recompute of every book's rating
// aggregate. Empty on purpose: the audit always scans everything.
type RatingAuditPayload struct{}
