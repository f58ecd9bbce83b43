package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's review of a book. At most one review exists per
// (book, user) pair, enforced by a unique compound index.
type Review struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Book   primitive.ObjectID `bson:"book" json:"book"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Rating int                `bson:"rating" json:"rating"`
	Review string             `bson:"review" json:"review"`
	// FinalReview is what the platform displays; it defaults to the raw
	// review text when the author provides nothing else.
	FinalReview string `bson:"finalReview" json:"finalReview"`
	// AIRefinedReview is written by the background refinement job.
	AIRefinedReview string    `bson:"aiRefinedReview,omitempty" json:"aiRefinedReview,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}
