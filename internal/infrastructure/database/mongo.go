package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookreview-backend/internal/config"
	"bookreview-backend/pkg/logger"
)

// MongoDB wraps the client and the application database handle.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Config   *config.MongoConfig
}

func NewMongoDB(cfg *config.MongoConfig) *MongoDB {
	return &MongoDB{Config: cfg}
}

// Connect establishes the connection with retry and exponential backoff, then
// verifies it with a ping.
func (db *MongoDB) Connect(ctx context.Context) error {
	var lastErr error

	for attempt := 1; attempt <= db.Config.MaxRetries; attempt++ {
		connectCtx, cancel := context.WithTimeout(ctx, time.Duration(db.Config.ConnectTimeout)*time.Second)

		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(db.Config.URI))
		if err == nil {
			err = client.Ping(connectCtx, nil)
			if err == nil {
				cancel()
				db.Client = client
				db.Database = client.Database(db.Config.Database)
				logger.Info("mongodb connected", map[string]interface{}{
					"database": db.Config.Database,
					"attempt":  attempt,
				})
				return nil
			}
			_ = client.Disconnect(context.Background())
		}
		cancel()
		lastErr = err

		if attempt < db.Config.MaxRetries {
			delay := time.Second * time.Duration(1<<uint(attempt-1))
			logger.Info("mongodb connect retry", map[string]interface{}{
				"attempt": attempt,
				"delay":   delay.String(),
				"error":   err.Error(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("mongodb connect failed after %d attempts: %w", db.Config.MaxRetries, lastErr)
}

// EnsureIndexes creates the unique indexes the data model relies on:
// users.email, books.isbn (sparse, isbn is optional) and the one-review-per-
// (book,user) compound index.
func (db *MongoDB) EnsureIndexes(ctx context.Context) error {
	users := db.Database.Collection("users")
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create users.email index: %w", err)
	}

	books := db.Database.Collection("books")
	if _, err := books.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "isbn", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}); err != nil {
		return fmt.Errorf("create books.isbn index: %w", err)
	}

	reviews := db.Database.Collection("reviews")
	if _, err := reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "book", Value: 1}, {Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create reviews.(book,user) index: %w", err)
	}

	return nil
}

func (db *MongoDB) HealthCheck(ctx context.Context) error {
	if db.Client == nil {
		return fmt.Errorf("mongodb client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.Client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

func (db *MongoDB) Close(ctx context.Context) error {
	if db.Client != nil {
		return db.Client.Disconnect(ctx)
	}
	return nil
}
