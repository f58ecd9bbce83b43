package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"bookreview-backend/internal/config"
	bookModel "bookreview-backend/internal/domains/book/model"
	bookRepo "bookreview-backend/internal/domains/book/repository"
	reviewModel "bookreview-backend/internal/domains/review/model"
	reviewRepo "bookreview-backend/internal/domains/review/repository"
	userModel "bookreview-backend/internal/domains/user/model"
	userRepo "bookreview-backend/internal/domains/user/repository"
	"bookreview-backend/internal/infrastructure/database"
	"bookreview-backend/pkg/logger"
)

const seedPassword = "password123"

// Seeds a development database with a handful of users, books and reviews.
// Run with -destroy to wipe the collections instead.
func main() {
	destroy := flag.Bool("destroy", false, "wipe seeded collections instead of importing")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.NewMongoDB(&cfg.Mongo)
	if err := db.Connect(ctx); err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer db.Close(context.Background())

	if err := clearCollections(ctx, db); err != nil {
		log.Fatalf("failed to clear collections: %v", err)
	}
	if *destroy {
		log.Println("Data destroyed successfully")
		return
	}

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	if err := importData(ctx, db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Data imported successfully")
}

func clearCollections(ctx context.Context, db *database.MongoDB) error {
	for _, name := range []string{"users", "books", "reviews"} {
		if _, err := db.Database.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return err
		}
	}
	return nil
}

func importData(ctx context.Context, db *database.MongoDB) error {
	users := userRepo.NewUserRepository(db.Database)
	books := bookRepo.NewBookRepository(db.Database)
	reviews := reviewRepo.NewReviewRepository(db.Database)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seedUsers := []*userModel.User{
		{
			Username:       "admin",
			Email:          "admin@example.com",
			PasswordHash:   string(hash),
			Role:           userModel.RoleAdmin,
			ProfilePicture: userModel.DefaultProfilePicture,
			Bio:            "Admin user for the platform",
		},
		{
			Username:       "user1",
			Email:          "user1@example.com",
			PasswordHash:   string(hash),
			Role:           userModel.RoleUser,
			ProfilePicture: userModel.DefaultProfilePicture,
			Bio:            "Regular book lover",
		},
		{
			Username:       "user2",
			Email:          "user2@example.com",
			PasswordHash:   string(hash),
			Role:           userModel.RoleUser,
			ProfilePicture: userModel.DefaultProfilePicture,
			Bio:            "Avid reader and reviewer",
		},
	}
	for _, u := range seedUsers {
		u.CreatedAt = time.Now()
		if err := users.Create(ctx, u); err != nil {
			return err
		}
	}
	admin := seedUsers[0]

	seedBooks := []*bookModel.Book{
		{
			Title:         "The Great Gatsby",
			Author:        "F. Scott Fitzgerald",
			Description:   "Set in the Jazz Age on Long Island, the novel depicts narrator Nick Carraway's interactions with mysterious millionaire Jay Gatsby.",
			Genre:         []string{"Fiction", "Classic", "Literary Fiction"},
			PublishedYear: 1925,
			Publisher:     "Charles Scribner's Sons",
			ISBN:          "9780743273565",
			Featured:      true,
		},
		{
			Title:         "To Kill a Mockingbird",
			Author:        "Harper Lee",
			Description:   "Published in 1960, it was immediately successful, winning the Pulitzer Prize, and has become a classic of modern American literature.",
			Genre:         []string{"Fiction", "Classic", "Coming-of-age"},
			PublishedYear: 1960,
			Publisher:     "J. B. Lippincott & Co.",
			ISBN:          "9780061120084",
			Featured:      true,
		},
		{
			Title:         "1984",
			Author:        "George Orwell",
			Description:   "A dystopian novel centred on the consequences of totalitarianism, mass surveillance, and repressive regimentation of persons and behaviours.",
			Genre:         []string{"Fiction", "Dystopian", "Science Fiction", "Classic"},
			PublishedYear: 1949,
			Publisher:     "Secker & Warburg",
			ISBN:          "9780451524935",
			Featured:      true,
		},
		{
			Title:         "Pride and Prejudice",
			Author:        "Jane Austen",
			Description:   "An 1813 romantic novel of manners following the character development of Elizabeth Bennet, who learns the repercussions of hasty judgments.",
			Genre:         []string{"Fiction", "Classic", "Romance"},
			PublishedYear: 1813,
			Publisher:     "T. Egerton, Whitehall",
			ISBN:          "9780141439518",
		},
		{
			Title:         "The Hobbit",
			Author:        "J.R.R. Tolkien",
			Description:   "A children's fantasy novel published in 1937 to wide critical acclaim, nominated for the Carnegie Medal.",
			Genre:         []string{"Fiction", "Fantasy", "Adventure"},
			PublishedYear: 1937,
			Publisher:     "George Allen & Unwin",
			ISBN:          "9780547928227",
		},
		{
			Title:         "Harry Potter and the Philosopher's Stone",
			Author:        "J.K. Rowling",
			Description:   "The first novel in the Harry Potter series follows a young wizard who discovers his magical heritage on his eleventh birthday.",
			Genre:         []string{"Fiction", "Fantasy", "Young Adult"},
			PublishedYear: 1997,
			Publisher:     "Bloomsbury",
			ISBN:          "9780747532699",
			Featured:      true,
		},
	}
	for _, b := range seedBooks {
		b.CoverImage = bookModel.DefaultCoverImage
		b.CreatedBy = admin.ID
		b.CreatedAt = time.Now()
		if err := books.Create(ctx, b); err != nil {
			return err
		}
	}

	seedReviews := []*reviewModel.Review{
		{
			Book:   seedBooks[0].ID,
			User:   seedUsers[1].ID,
			Rating: 5,
			Review: "A masterpiece of American literature. Fitzgerald's prose is elegant and evocative, painting a vivid picture of the Jazz Age.",
		},
		{
			Book:   seedBooks[1].ID,
			User:   seedUsers[1].ID,
			Rating: 5,
			Review: "A timeless classic that everyone should read. The characters are complex and the story is as relevant today as when it was published.",
		},
		{
			Book:   seedBooks[2].ID,
			User:   seedUsers[2].ID,
			Rating: 4,
			Review: "Orwell's dystopian vision is chillingly prophetic. The concept of Big Brother has permeated our culture and vocabulary.",
		},
		{
			Book:   seedBooks[3].ID,
			User:   seedUsers[2].ID,
			Rating: 5,
			Review: "One of my favorite books of all time. The wit and social commentary are brilliant.",
		},
	}
	for _, r := range seedReviews {
		r.FinalReview = r.Review
		r.CreatedAt = time.Now()
		if err := reviews.Create(ctx, r); err != nil {
			return err
		}
	}

	// Rating aggregates are derived, so re-derive them for the books that
	// just received reviews.
	for _, b := range seedBooks {
		bookReviews, err := reviews.ListByBook(ctx, b.ID)
		if err != nil {
			return err
		}
		stats := reviewModel.ComputeRatingStats(bookReviews)
		if err := books.UpdateRatingStats(ctx, b.ID, stats.Count, stats.Total, stats.Average); err != nil {
			return err
		}
	}

	return nil
}
