package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/shared/query"
)

type bookRepository struct {
	collection *mongo.Collection
}

func NewBookRepository(db *mongo.Database) BookRepository {
	return &bookRepository{collection: db.Collection("books")}
}

func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	result, err := r.collection.InsertOne(ctx, book)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrISBNTaken
		}
		return fmt.Errorf("insert book: %w", err)
	}

	book.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Book, error) {
	var book model.Book
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context, plan *query.Plan) ([]model.Book, int64, error) {
	cursor, err := r.collection.Find(ctx, plan.Filter, plan.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("find books: %w", err)
	}

	books := []model.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, 0, fmt.Errorf("decode books: %w", err)
	}

	// The count runs on the bare filter: sort, pagination and projection do
	// not apply.
	total, err := r.collection.CountDocuments(ctx, plan.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	return books, total, nil
}

func (r *bookRepository) Featured(ctx context.Context, limit int) ([]model.Book, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"featured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("find featured books: %w", err)
	}

	books := []model.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode featured books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Book, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var book model.Book
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrBookNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, model.ErrISBNTaken
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return &book, nil
}

func (r *bookRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, count, total int, average float64) error {
	update := bson.M{"$set": bson.M{
		"ratingCount":   count,
		"totalRating":   total,
		"averageRating": average,
	}}

	result, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("update rating stats: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) AllIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find book ids: %w", err)
	}

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode book ids: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
