package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

const collectionMeetings = "meetings"

type MeetingRepository struct {
	col *mongo.Collection
}

func NewMeetingRepository(db *mongo.Database) *MeetingRepository {
	return &MeetingRepository{col: db.Collection(collectionMeetings)}
}

// Create inserts a new meeting document.
func (r *MeetingRepository) Create(ctx context.Context, m *domain.Meeting) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert meeting: %w", err)
	}
	return nil
}

func (r *MeetingRepository) FindByID(ctx context.Context, id string) (*domain.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.Meeting
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMeetingNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns meetings matching filter ordered by start time.
func (r *MeetingRepository) List(ctx context.Context, filter ports.ListMeetingsFilter) ([]*domain.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}
	if filter.ParticipantID != 0 {
		q["participants.user_id"] = filter.ParticipantID
	}
	if filter.Search != "" {
		rx := bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
		q["$or"] = bson.A{bson.M{"title": rx}, bson.M{"location": rx}}
	}
	start := bson.M{}
	if !filter.From.IsZero() {
		start["$gte"] = filter.From.UTC()
	}
	if !filter.To.IsZero() {
		start["$lte"] = filter.To.UTC()
	}
	if len(start) > 0 {
		q["start"] = start
	}

	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Meeting
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode meetings: %w", err)
	}
	return out, nil
}

// Update replaces the whole meeting document.
func (r *MeetingRepository) Update(ctx context.Context, m *domain.Meeting) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrMeetingNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the meetings collection.
func (r *MeetingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "participants.user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
