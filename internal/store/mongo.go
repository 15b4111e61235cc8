package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/feel-write/feelwrite-backend/internal/models"
)

const journalCollection = "journal_entries"

// MongoStore persists journal entries in a MongoDB collection, one document
// per entry, sorted by created_at for listing.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore wraps the given database handle.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// EnsureIndexes creates the user/created_at listing index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(journalCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (s *MongoStore) Create(ctx context.Context, in CreateInput) (*models.JournalEntry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	createdAt := time.Now().UTC()
	if in.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, in.CreatedAt); err == nil {
			createdAt = t.UTC()
		}
	}
	userID := in.UserID
	if userID == "" {
		userID = DefaultUserID
	}

	entry := &models.JournalEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Category:    in.Category,
		SubEmotion:  in.SubEmotion,
		Text:        in.Text,
		PhotoURL:    in.PhotoURL,
		Reflections: []models.Reflection{},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.db.Collection(journalCollection).InsertOne(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *MongoStore) List(ctx context.Context, userID string) ([]*models.JournalEntry, error) {
	if userID == "" {
		userID = DefaultUserID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.db.Collection(journalCollection).Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]*models.JournalEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*models.JournalEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var entry models.JournalEntry
	err := s.db.Collection(journalCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *MongoStore) Patch(ctx context.Context, id string, in PatchInput) (*models.JournalEntry, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Text != nil {
		set["text"] = *in.Text
	}
	if in.PhotoURL != nil {
		set["photo_url"] = *in.PhotoURL
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	after := options.After
	var entry models.JournalEntry
	err := s.db.Collection(journalCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *MongoStore) AddReflection(ctx context.Context, id string, ref models.Reflection) (*models.JournalEntry, error) {
	if ref.Timestamp.IsZero() {
		ref.Timestamp = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	after := options.After
	var entry models.JournalEntry
	err := s.db.Collection(journalCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"reflections": ref},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
