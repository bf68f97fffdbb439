package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aiVisibilityGO/internal/config"
	"aiVisibilityGO/internal/models"
)

// Repository defines operations on stored visibility reports
type Repository interface {
	SaveReport(ctx context.Context, report *models.VisibilityReport) error
	GetReport(ctx context.Context, id string) (*models.VisibilityReport, error)
	GetRecentReports(ctx context.Context, limit int) ([]*models.VisibilityReport, error)
	GetReportsByAPIKey(ctx context.Context, apiKey string, limit int) ([]*models.VisibilityReport, error)
	GetStats(ctx context.Context) (*models.Stats, error)
	Close(ctx context.Context) error
}

// MongoRepository implements Repository interface for MongoDB
type MongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoRepository creates a new MongoDB repository
func NewMongoRepository(ctx context.Context, cfg config.MongoDBConfig) (*MongoRepository, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	collection := client.Database(cfg.Database).Collection(cfg.CollectionName)

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "url", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "api_key", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		return nil, err
	}

	return &MongoRepository{
		client:     client,
		collection: collection,
	}, nil
}

// SaveReport saves a visibility report to MongoDB
func (r *MongoRepository) SaveReport(ctx context.Context, report *models.VisibilityReport) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}

	return nil
}

// GetReport retrieves a report by ID
func (r *MongoRepository) GetReport(ctx context.Context, id string) (*models.VisibilityReport, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var report models.VisibilityReport
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Not found
		}
		return nil, err
	}

	return &report, nil
}

// GetRecentReports retrieves the most recent reports
func (r *MongoRepository) GetRecentReports(ctx context.Context, limit int) ([]*models.VisibilityReport, error) {
	return r.findReports(ctx, bson.M{}, limit)
}

// GetReportsByAPIKey retrieves reports created under a specific API key
func (r *MongoRepository) GetReportsByAPIKey(ctx context.Context, apiKey string, limit int) ([]*models.VisibilityReport, error) {
	return r.findReports(ctx, bson.M{"api_key": apiKey}, limit)
}

func (r *MongoRepository) findReports(ctx context.Context, filter bson.M, limit int) ([]*models.VisibilityReport, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []*models.VisibilityReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}

// GetStats retrieves application statistics
func (r *MongoRepository) GetStats(ctx context.Context) (*models.Stats, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	last24h, err := r.collection.CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": time.Now().Add(-24 * time.Hour)},
	})
	if err != nil {
		return nil, err
	}

	urls, err := r.collection.Distinct(ctx, "url", bson.M{})
	if err != nil {
		return nil, err
	}

	stats := &models.Stats{
		TotalReports:   int(total),
		UniqueURLs:     len(urls),
		ReportsLast24h: int(last24h),
		LastUpdated:    time.Now(),
	}

	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avg_score", Value: bson.D{{Key: "$avg", Value: "$combined_score"}}},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var agg []struct {
		AvgScore float64 `bson:"avg_score"`
	}
	if err := cursor.All(ctx, &agg); err != nil {
		return nil, err
	}
	if len(agg) > 0 {
		stats.AvgCombinedScore = agg[0].AvgScore
	}

	return stats, nil
}

// Close closes the MongoDB connection
func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
