package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/focusflow/backend/internal/errs"
	"github.com/focusflow/backend/internal/models"
)

// MongoStore handles focus-session CRUD in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("sessions")}
}

func (s *MongoStore) Insert(ctx context.Context, sess *models.FocusSession) (string, error) {
	sess.StartedAt = time.Now()
	res, err := s.col.InsertOne(ctx, sess)
	if err != nil {
		return "", fmt.Errorf("mongo insert: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (s *MongoStore) ListByUser(ctx context.Context, userID string) ([]models.FocusSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sessions []models.FocusSession
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (*models.FocusSession, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	var sess models.FocusSession
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&sess); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

// Complete closes a session, recording actual minutes and its outcome.
func (s *MongoStore) Complete(ctx context.Context, id string, actualMinutes int, interrupted bool) (*models.FocusSession, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"actual_minutes": actualMinutes,
		"completed":      !interrupted,
		"interrupted":    interrupted,
		"ended_at":       now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sess models.FocusSession
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&sess); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}
