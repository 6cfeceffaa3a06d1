package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultry-stock/internal/domain/models"
)

// ErrReportNotFound is returned when no snapshot exists for the requested day.
var ErrReportNotFound = errors.New("stock report not found")

const reportsCollection = "daily_stock_reports"

// Repository defines the storage of daily reconciliation snapshots.
type Repository interface {
	SaveDailyStockReport(ctx context.Context, report models.DailyStockReport) error
	FindDailyStockReport(ctx context.Context, day time.Time) (models.DailyStockReport, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
	logger   *zap.Logger
}

// NewMongoDBRepository connects to MongoDB and ensures the one-report-per-day index.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: reportsCollection,
		logger:   logger,
	}

	_, err = repo.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create report date index: %w", err)
	}

	return repo, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveDailyStockReport upserts the snapshot for the report's day.
func (r *MongoDBRepository) SaveDailyStockReport(ctx context.Context, report models.DailyStockReport) error {
	day := truncateDay(report.Date)
	report.Date = day

	update := bson.M{"$set": bson.M{
		"date":                          report.Date,
		"start":                         report.Start,
		"end":                           report.End,
		"record_count":                  report.RecordCount,
		"previous_feed_consumed_amount": report.PreviousFeedConsumedAmount,
		"reconciliation":                report.Reconciliation,
		"warnings":                      report.Warnings,
		"created_at":                    report.CreatedAt,
	}, "$setOnInsert": bson.M{"_id": report.ID}}

	_, err := r.collection().UpdateOne(ctx, bson.M{"date": day}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert daily stock report: %w", err)
	}

	r.logger.Debug("daily stock report saved", zap.Time("date", day))
	return nil
}

// FindDailyStockReport loads the snapshot for day.
func (r *MongoDBRepository) FindDailyStockReport(ctx context.Context, day time.Time) (models.DailyStockReport, error) {
	var report models.DailyStockReport

	err := r.collection().FindOne(ctx, bson.M{"date": truncateDay(day)}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DailyStockReport{}, ErrReportNotFound
	}
	if err != nil {
		return models.DailyStockReport{}, fmt.Errorf("failed to load daily stock report: %w", err)
	}

	return report, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
