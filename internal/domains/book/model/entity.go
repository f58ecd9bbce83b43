package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreview-backend/internal/shared/query"
)

const (
	DefaultCoverImage = "default-book.jpg"

	// FeaturedLimit is the fixed page size of the featured-books endpoint.
	FeaturedLimit = 6
)

// Book represents a catalog entry. The three rating fields are derived from
// the book's reviews and are only ever written together by the rating
// recomputation; averageRating is always totalRating/ratingCount (0 when
// ratingCount is 0).
type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Author        string             `bson:"author" json:"author"`
	Description   string             `bson:"description" json:"description"`
	CoverImage    string             `bson:"coverImage" json:"coverImage"`
	Genre         []string           `bson:"genre" json:"genre"`
	PublishedYear int                `bson:"publishedYear,omitempty" json:"publishedYear,omitempty"`
	Publisher     string             `bson:"publisher,omitempty" json:"publisher,omitempty"`
	ISBN          string             `bson:"isbn,omitempty" json:"isbn,omitempty"`
	TotalRating   int                `bson:"totalRating" json:"totalRating"`
	RatingCount   int                `bson:"ratingCount" json:"ratingCount"`
	AverageRating float64            `bson:"averageRating" json:"averageRating"`
	Featured      bool               `bson:"featured" json:"featured"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// QuerySchema declares the filterable fields of the books collection for the
// query-feature pipeline. Genre equality matches set membership (mongo array
// semantics).
var QuerySchema = query.Schema{
	Filterable: map[string]query.FieldType{
		"title":         query.String,
		"author":        query.String,
		"genre":         query.String,
		"publishedYear": query.Int,
		"publisher":     query.String,
		"isbn":          query.String,
		"featured":      query.Bool,
		"averageRating": query.Float,
		"ratingCount":   query.Int,
	},
	DefaultSort: bson.D{{Key: "createdAt", Value: -1}},
}
