package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreview-backend/internal/domains/book/repository"
)

// stubBookRepo only needs AllIDs for the audit; the embedded interface covers
// the rest.
type stubBookRepo struct {
	repository.BookRepository
	ids []primitive.ObjectID
	err error
}

func (s *stubBookRepo) AllIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	return s.ids, s.err
}

type recordingRecomputer struct {
	seen    []primitive.ObjectID
	failFor primitive.ObjectID
}

func (r *recordingRecomputer) RecomputeBookRating(ctx context.Context, bookID primitive.ObjectID) error {
	r.seen = append(r.seen, bookID)
	if bookID == r.failFor {
		return errors.New("recompute failed")
	}
	return nil
}

func auditTask(t *testing.T) *asynq.Task {
	t.Helper()
	return asynq.NewTask("book:rating_audit", []byte("{}"))
}

func TestRatingAudit_RecomputesEveryBook(t *testing.T) {
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	recomputer := &recordingRecomputer{}
	handler := NewRatingAuditHandler(&stubBookRepo{ids: ids}, recomputer)

	err := handler.ProcessTask(context.Background(), auditTask(t))

	require.NoError(t, err)
	assert.Equal(t, ids, recomputer.seen)
}

func TestRatingAudit_ContinuesPastFailures(t *testing.T) {
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	recomputer := &recordingRecomputer{failFor: ids[0]}
	handler := NewRatingAuditHandler(&stubBookRepo{ids: ids}, recomputer)

	err := handler.ProcessTask(context.Background(), auditTask(t))

	// Every book is still visited, and the failure is reported for retry.
	require.Error(t, err)
	assert.Len(t, recomputer.seen, 3)
}

func TestRatingAudit_ListFailure(t *testing.T) {
	recomputer := &recordingRecomputer{}
	handler := NewRatingAuditHandler(&stubBookRepo{err: errors.New("cursor error")}, recomputer)

	err := handler.ProcessTask(context.Background(), auditTask(t))

	require.Error(t, err)
	assert.Empty(t, recomputer.seen)
}
