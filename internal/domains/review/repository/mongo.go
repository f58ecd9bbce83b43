package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookreview-backend/internal/domains/review/model"
)

type reviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepository{collection: db.Collection("reviews")}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrAlreadyReviewed
		}
		return fmt.Errorf("insert review: %w", err)
	}

	review.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Review, error) {
	var review model.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context, bookID *primitive.ObjectID) ([]model.Review, error) {
	filter := bson.M{}
	if bookID != nil {
		filter["book"] = *bookID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	reviews := []model.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID primitive.ObjectID) ([]model.Review, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"book": bookID})
	if err != nil {
		return nil, fmt.Errorf("find reviews by book: %w", err)
	}

	reviews := []model.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews by book: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Review, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var review model.Review
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}
