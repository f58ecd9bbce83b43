package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	bookmodel "bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/shared/authz"
	"bookreview-backend/internal/shared/query"
)

// --- Mocks ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *mockReviewRepository) List(ctx context.Context, bookID *primitive.ObjectID) ([]model.Review, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *mockReviewRepository) ListByBook(ctx context.Context, bookID primitive.ObjectID) ([]model.Review, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *mockReviewRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Review, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) Create(ctx context.Context, book *bookmodel.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *mockBookRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*bookmodel.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookmodel.Book), args.Error(1)
}

func (m *mockBookRepository) List(ctx context.Context, plan *query.Plan) ([]bookmodel.Book, int64, error) {
	args := m.Called(ctx, plan)
	return args.Get(0).([]bookmodel.Book), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookRepository) Featured(ctx context.Context, limit int) ([]bookmodel.Book, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]bookmodel.Book), args.Error(1)
}

func (m *mockBookRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*bookmodel.Book, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookmodel.Book), args.Error(1)
}

func (m *mockBookRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBookRepository) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, count, total int, average float64) error {
	args := m.Called(ctx, id, count, total, average)
	return args.Error(0)
}

func (m *mockBookRepository) AllIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueRefineReview(ctx context.Context, reviewID string) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

// --- Helpers ---

type testDeps struct {
	reviews *mockReviewRepository
	books   *mockBookRepository
	tasks   *mockEnqueuer
}

func newTestService() (ServiceInterface, *testDeps) {
	deps := &testDeps{
		reviews: &mockReviewRepository{},
		books:   &mockBookRepository{},
		tasks:   &mockEnqueuer{},
	}
	return NewReviewService(deps.reviews, deps.books, deps.tasks), deps
}

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}

var (
	ownerID    = primitive.NewObjectID()
	ctx        = context.Background()
	owner      = authz.Identity{ID: ownerID.Hex(), Role: authz.RoleUser}
	adminActor = authz.Identity{ID: primitive.NewObjectID().Hex(), Role: authz.RoleAdmin}
	stranger   = authz.Identity{ID: primitive.NewObjectID().Hex(), Role: authz.RoleUser}
)

// --- Create ---

func TestCreate_RecomputesBookRating(t *testing.T) {
	svc, deps := newTestService()
	bookID := primitive.NewObjectID()

	deps.books.On("GetByID", ctx, bookID).Return(&bookmodel.Book{ID: bookID}, nil)
	deps.reviews.On("Create", ctx, mock.AnythingOfType("*model.Review")).Return(nil)
	deps.reviews.On("ListByBook", ctx, bookID).Return([]model.Review{
		{Rating: 5},
		{Rating: 4},
	}, nil)
	deps.books.On("UpdateRatingStats", ctx, bookID, 2, 9, 4.5).Return(nil)

	review, err := svc.Create(ctx, owner, model.CreateReviewRequest{
		Book:   bookID.Hex(),
		Rating: 5,
		Review: "Loved it",
	})

	require.NoError(t, err)
	assert.Equal(t, bookID, review.Book)
	assert.Equal(t, ownerID, review.User)
	deps.books.AssertExpectations(t)
	deps.reviews.AssertExpectations(t)
}

func TestCreate_FinalReviewDefaultsToReviewText(t *testing.T) {
	svc, deps := newTestService()
	bookID := primitive.NewObjectID()

	deps.books.On("GetByID", ctx, bookID).Return(&bookmodel.Book{ID: bookID}, nil)
	deps.reviews.On("Create", ctx, mock.AnythingOfType("*model.Review")).Return(nil)
	deps.reviews.On("ListByBook", ctx, bookID).Return([]model.Review{{Rating: 3}}, nil)
	deps.books.On("UpdateRatingStats", ctx, bookID, 1, 3, 3.0).Return(nil)

	review, err := svc.Create(ctx, owner, model.CreateReviewRequest{
		Book:   bookID.Hex(),
		Rating: 3,
		Review: "Decent read",
	})

	require.NoError(t, err)
	assert.Equal(t, "Decent read", review.FinalReview)
}

func TestCreate_UnknownBookRejected(t *testing.T) {
	svc, deps := newTestService()
	bookID := primitive.NewObjectID()

	deps.books.On("GetByID", ctx, bookID).Return(nil, bookmodel.ErrBookNotFound)

	_, err := svc.Create(ctx, owner, model.CreateReviewRequest{
		Book:   bookID.Hex(),
		Rating: 4,
		Review: "ghost book",
	})

	assert.ErrorIs(t, err, bookmodel.ErrBookNotFound)
	deps.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_DuplicateReviewRejected(t *testing.T) {
	svc, deps := newTestService()
	bookID := primitive.NewObjectID()

	deps.books.On("GetByID", ctx, bookID).Return(&bookmodel.Book{ID: bookID}, nil)
	deps.reviews.On("Create", ctx, mock.Anything).Return(model.ErrAlreadyReviewed)

	_, err := svc.Create(ctx, owner, model.CreateReviewRequest{
		Book:   bookID.Hex(),
		Rating: 4,
		Review: "again",
	})

	assert.ErrorIs(t, err, model.ErrAlreadyReviewed)
	deps.books.AssertNotCalled(t, "UpdateRatingStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_RatingOutOfRangeRejected(t *testing.T) {
	svc, deps := newTestService()

	_, err := svc.Create(ctx, owner, model.CreateReviewRequest{
		Book:   primitive.NewObjectID().Hex(),
		Rating: 6,
		Review: "too good",
	})

	require.Error(t, err)
	deps.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// --- Update ---

func TestUpdate_OwnerTriggersRecompute(t *testing.T) {
	svc, deps := newTestService()
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()
	existing := &model.Review{ID: reviewID, Book: bookID, User: ownerID, Rating: 2}

	deps.reviews.On("GetByID", ctx, reviewID).Return(existing, nil)
	deps.reviews.On("Update", ctx, reviewID, bson.M{"rating": 5}).
		Return(&model.Review{ID: reviewID, Book: bookID, User: ownerID, Rating: 5}, nil)
	deps.reviews.On("ListByBook", ctx, bookID).Return([]model.Review{{Rating: 5}}, nil)
	deps.books.On("UpdateRatingStats", ctx, bookID, 1, 5, 5.0).Return(nil)

	updated, err := svc.Update(ctx, owner, reviewID.Hex(), model.UpdateReviewRequest{Rating: intPtr(5)})

	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	deps.books.AssertExpectations(t)
}

func TestUpdate_ReviewTextSupersedesFinalReview(t *testing.T) {
	svc, deps := newTestService()
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()
	existing := &model.Review{ID: reviewID, Book: bookID, User: ownerID}

	deps.reviews.On("GetByID", ctx, reviewID).Return(existing, nil)
	deps.reviews.On("Update", ctx, reviewID, bson.M{
		"review":      "rewritten",
		"finalReview": "rewritten",
	}).Return(existing, nil)
	deps.reviews.On("ListByBook", ctx, bookID).Return([]model.Review{}, nil)
	deps.books.On("UpdateRatingStats", ctx, bookID, 0, 0, 0.0).Return(nil)

	_, err := svc.Update(ctx, owner, reviewID.Hex(), model.UpdateReviewRequest{Review: strPtr("rewritten")})

	require.NoError(t, err)
	deps.reviews.AssertExpectations(t)
}

func TestUpdate_NonOwnerForbidden(t *testing.T) {
	svc, deps := newTestService()
	reviewID := primitive.NewObjectID()
	existing := &model.Review{ID: reviewID, Book: primitive.NewObjectID(), User: ownerID}

	deps.reviews.On("GetByID", ctx, reviewID).Return(existing, nil)

	for _, actor := range []authz.Identity{stranger, adminActor} {
		_, err := svc.Update(ctx, actor, reviewID.Hex(), model.UpdateReviewRequest{Rating: intPtr(1)})
		assert.ErrorIs(t, err, model.ErrNotOwner)
	}
	deps.reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_NoFieldsIsNoOp(t *testing.T) {
	svc, deps := newTestService()
	reviewID := primitive.NewObjectID()
	existing := &model.Review{ID: reviewID, Book: primitive.NewObjectID(), User: ownerID}

	deps.reviews.On("GetByID", ctx, reviewID).Return(existing, nil)

	updated, err := svc.Update(ctx, owner, reviewID.Hex(), model.UpdateReviewRequest{})

	require.NoError(t, err)
	assert.Equal(t, existing, updated)
	deps.reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	deps.books.AssertNotCalled(t, "UpdateRatingStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Delete ---

func TestDelete_OwnerRecomputesWithRemainingReviews(t *testing.T) {
	svc, deps := newTestService()
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()
	existing := &model.Review{ID: reviewID, Book: bookID, User: ownerID, Rating: 5}

	deps.reviews.On("GetByID", ctx, reviewID).Return(existing, nil)
	deps.reviews.On("Delete", ctx, reviewID).Return(nil)
	deps.reviews.On("ListByBook", ctx, bookID).Return([]model.Review{{Rating: 2}}, nil)
	deps.books.On("UpdateRatingStats", ctx, bookID, 1, 2, 2.0).Return(nil)

	require.NoError(t, svc.Delete(ctx, owner, reviewID.Hex()))
	deps.books.AssertExpectations(t)
}

func TestDelete_LastReviewZeroesAggregate(t *testing.T) {
	svc, deps := newTestService()
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()
	existing := &model.Review{ID: reviewID, Book: bookID, User: ownerID, Rating: 5}

	deps.reviews.On("GetByID", ctx, reviewID).Return(existing, nil)
	deps.reviews.On("Delete", ctx, reviewID).Return(nil)
	deps.reviews.On("ListByBook", ctx, bookID).Return([]model.Review{}, nil)
	deps.books.On("UpdateRatingStats", ctx, bookID, 0, 0, 0.0).Return(nil)

	require.NoError(t, svc.Delete(ctx, owner, reviewID.Hex()))
	deps.books.AssertExpectations(t)
}

func TestDelete_AdminMayDeleteAnyReview(t *testing.T) {
	svc, deps := newTestService()
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()
	existing := &model.Review{ID: reviewID, Book: bookID, User: ownerID}

	deps.reviews.On("GetByID", ctx, reviewID).Return(existing, nil)
	deps.reviews.On("Delete", ctx, reviewID).Return(nil)
	deps.reviews.On("ListByBook", ctx, bookID).Return([]model.Review{}, nil)
	deps.books.On("UpdateRatingStats", ctx, bookID, 0, 0, 0.0).Return(nil)

	assert.NoError(t, svc.Delete(ctx, adminActor, reviewID.Hex()))
}

func TestDelete_StrangerForbidden(t *testing.T) {
	svc, deps := newTestService()
	reviewID := primitive.NewObjectID()
	existing := &model.Review{ID: reviewID, Book: primitive.NewObjectID(), User: ownerID}

	deps.reviews.On("GetByID", ctx, reviewID).Return(existing, nil)

	err := svc.Delete(ctx, stranger, reviewID.Hex())

	assert.ErrorIs(t, err, model.ErrNotOwnerDelete)
	deps.reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// --- Refine ---

func TestRefine_OwnerEnqueuesTask(t *testing.T) {
	svc, deps := newTestService()
	reviewID := primitive.NewObjectID()
	existing := &model.Review{ID: reviewID, Book: primitive.NewObjectID(), User: ownerID}

	deps.reviews.On("GetByID", ctx, reviewID).Return(existing, nil)
	deps.tasks.On("EnqueueRefineReview", ctx, reviewID.Hex()).Return(nil)

	review, err := svc.Refine(ctx, owner, reviewID.Hex())

	require.NoError(t, err)
	assert.Equal(t, existing, review)
	deps.tasks.AssertExpectations(t)
}

func TestRefine_NonOwnerForbidden(t *testing.T) {
	svc, deps := newTestService()
	reviewID := primitive.NewObjectID()
	existing := &model.Review{ID: reviewID, Book: primitive.NewObjectID(), User: ownerID}

	deps.reviews.On("GetByID", ctx, reviewID).Return(existing, nil)

	_, err := svc.Refine(ctx, stranger, reviewID.Hex())

	assert.ErrorIs(t, err, model.ErrNotOwner)
	deps.tasks.AssertNotCalled(t, "EnqueueRefineReview", mock.Anything, mock.Anything)
}

// --- Recompute ---

func TestRecomputeBookRating_WritesDerivedStats(t *testing.T) {
	svc, deps := newTestService()
	bookID := primitive.NewObjectID()

	deps.reviews.On("ListByBook", ctx, bookID).Return([]model.Review{
		{Rating: 5},
		{Rating: 4},
		{Rating: 2},
	}, nil)
	deps.books.On("UpdateRatingStats", ctx, bookID, 3, 11, mock.AnythingOfType("float64")).Return(nil)

	require.NoError(t, svc.RecomputeBookRating(ctx, bookID))
	deps.books.AssertExpectations(t)
}
