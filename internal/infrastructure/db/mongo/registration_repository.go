package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuslink/events-api/internal/core/domain"
)

const collectionRegistrations = "registrations"

type RegistrationRepository struct {
	coll *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{coll: db.Collection(collectionRegistrations)}
}

type mongoRegistration struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	EventID       string             `bson:"event_id"`
	ParticipantID string             `bson:"participant_id"`
	CreatedAt     time.Time          `bson:"created_at"`
	CheckedInAt   *time.Time         `bson:"checked_in_at,omitempty"`
}

func (mr *mongoRegistration) toDomain() *domain.Registration {
	return &domain.Registration{
		ID:            mr.ID.Hex(),
		EventID:       mr.EventID,
		ParticipantID: mr.ParticipantID,
		CreatedAt:     mr.CreatedAt,
		CheckedInAt:   mr.CheckedInAt,
	}
}

// Create inserts a registration. The unique compound index on
// (event_id, participant_id) maps a duplicate key violation to
// domain.ErrAlreadyRegistered.
func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRegistration{
		EventID:       reg.EventID,
		ParticipantID: reg.ParticipantID,
		CreatedAt:     reg.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	created := *reg
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*domain.Registration, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRegistrationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRegistration
	if err := r.coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return r.list(ctx, bson.M{"event_id": eventID})
}

func (r *RegistrationRepository) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Registration, error) {
	return r.list(ctx, bson.M{"participant_id": participantID})
}

func (r *RegistrationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cur.Close(ctx)

	regs := make([]*domain.Registration, 0)
	for cur.Next(ctx) {
		var mr mongoRegistration
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode registration: %w", err)
		}
		regs = append(regs, mr.toDomain())
	}
	return regs, cur.Err()
}

// MarkCheckedIn stamps the attendance time and returns the updated record.
func (r *RegistrationRepository) MarkCheckedIn(ctx context.Context, id string) (*domain.Registration, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRegistrationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"checked_in_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mr mongoRegistration
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("mark checked in: %w", err)
	}
	return mr.toDomain(), nil
}

// EnsureIndexes creates the uniqueness and listing indexes on the
// registrations collection. The unique compound index is what enforces the
// one-seat-per-participant invariant.
func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "participant_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "participant_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
